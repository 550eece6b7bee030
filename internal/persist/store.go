package persist

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/muurk/maptools/internal/geom"
)

const (
	objectExt  = ".yaml"
	polygonExt = ".poly"
)

// Store lists and loads named objects by category path.
type Store interface {
	// ListNamedObjects returns the sorted names in a category. A category
	// that does not exist yet is empty, not an error.
	ListNamedObjects(category string) ([]string, error)

	// ReadObject decodes the YAML object <category>/<name>.yaml into v.
	// If v has a Validate() error method it is called after decoding.
	ReadObject(category, name string, v any) error

	// ReadPolygon loads <category>/<name>.poly.
	ReadPolygon(category, name string) ([]geom.LonLat, error)

	// WritePolygon saves <category>/<name>.poly, replacing any existing file.
	WritePolygon(category, name string, pts []geom.LonLat) error
}

// Validator is implemented by objects that check themselves after decoding.
type Validator interface {
	Validate() error
}

// FS is a Store rooted at a directory on disk.
type FS struct {
	root string
}

// NewFS creates a store rooted at dir. The directory does not need to exist.
func NewFS(dir string) *FS {
	return &FS{root: dir}
}

// Root returns the store's data directory.
func (s *FS) Root() string {
	return s.root
}

// ListNamedObjects implements Store.
func (s *FS) ListNamedObjects(category string) ([]string, error) {
	dir := filepath.Join(s.root, filepath.FromSlash(category))

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", category, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".tmp") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, filepath.Ext(name)))
	}
	sort.Strings(names)
	return names, nil
}

// ReadObject implements Store.
func (s *FS) ReadObject(category, name string, v any) error {
	rel, data, err := s.read(category, name, objectExt)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty document")
		}
		return &MalformedError{Path: rel, Err: err}
	}

	if validator, ok := v.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return &MalformedError{Path: rel, Err: err}
		}
	}
	return nil
}

// ReadPolygon implements Store.
func (s *FS) ReadPolygon(category, name string) ([]geom.LonLat, error) {
	rel, data, err := s.read(category, name, polygonExt)
	if err != nil {
		return nil, err
	}

	pts, err := ParsePoly(bytes.NewReader(data))
	if err != nil {
		return nil, &MalformedError{Path: rel, Err: err}
	}
	return pts, nil
}

// WritePolygon implements Store. The write goes through a temporary file and
// a rename so a crash never leaves a truncated polygon behind.
func (s *FS) WritePolygon(category, name string, pts []geom.LonLat) error {
	if err := checkName(name); err != nil {
		return err
	}

	dir := filepath.Join(s.root, filepath.FromSlash(category))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", category, err)
	}

	var buf bytes.Buffer
	if err := WritePoly(&buf, name, pts); err != nil {
		return fmt.Errorf("failed to encode polygon %s: %w", name, err)
	}

	target := filepath.Join(dir, name+polygonExt)
	tmpPath := target + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write temporary polygon file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save polygon %s: %w", name, err)
	}
	return nil
}

func (s *FS) read(category, name, ext string) (string, []byte, error) {
	if err := checkName(name); err != nil {
		return "", nil, err
	}

	rel := path.Join(category, name+ext)
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(rel)))
	if errors.Is(err, fs.ErrNotExist) {
		return rel, nil, fmt.Errorf("%w: %s", ErrNotFound, rel)
	}
	if err != nil {
		return rel, nil, fmt.Errorf("failed to read %s: %w", rel, err)
	}
	return rel, data, nil
}

// checkName rejects names that would escape their category directory.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: invalid object name %q", ErrNotFound, name)
	}
	return nil
}
