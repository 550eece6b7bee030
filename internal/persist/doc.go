// Package persist is the read-mostly object store behind the dev tools.
//
// Objects live under a single data directory, grouped by category path:
//
//	maps/<map>.yaml
//	scenarios/<map>/<scenario>.yaml
//	input/<city>/polygons/<name>.poly
//	input/<city>/datasets/<name>.yaml
//
// Structured objects are YAML documents decoded with unknown-field checking.
// Polygons use the Osmosis .poly text format so they can be exchanged with
// extract tooling.
//
// # Errors
//
// Every lookup failure is one of two kinds, and callers branch on them with
// errors.Is / errors.As:
//
//   - ErrNotFound: the object does not exist
//   - *MalformedError: the object exists but could not be decoded or failed
//     validation
package persist
