package persist

import "path"

// Category paths, relative to the store root.

// MapsDir holds one YAML file per map.
func MapsDir() string {
	return "maps"
}

// ScenariosDir holds the scenarios recorded for a map.
func ScenariosDir(mapName string) string {
	return path.Join("scenarios", mapName)
}

// PolygonsDir holds Osmosis polygons for a city.
func PolygonsDir(city string) string {
	return path.Join("input", city, "polygons")
}

// DatasetsDir holds imported shape datasets for a city.
func DatasetsDir(city string) string {
	return path.Join("input", city, "datasets")
}
