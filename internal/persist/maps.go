package persist

import "github.com/muurk/maptools/internal/world"

// LoadMap reads and indexes maps/<name>.yaml.
func LoadMap(s Store, name string) (*world.Map, error) {
	var m world.Map
	if err := s.ReadObject(MapsDir(), name, &m); err != nil {
		return nil, err
	}
	if err := m.Index(); err != nil {
		return nil, &MalformedError{Path: MapsDir() + "/" + name + objectExt, Err: err}
	}
	return &m, nil
}
