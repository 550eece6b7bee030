// Package config provides user configuration management for maptools.
//
// The configuration is a small YAML file that records where map data lives,
// which map to open on startup, logging preferences and live-mirror settings.
// Command-line flags override whatever the file says.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/maptools/config.yaml or $HOME/.config/maptools/config.yaml
//   - macOS: $HOME/.config/maptools/config.yaml
//   - Windows: %LOCALAPPDATA%\maptools\config.yaml
//
// # Usage Example
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	cfg.DefaultMap = "montlake"
//	if err := cfg.Save(); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// The global configuration uses sync.Once for initialization. Saves are
// serialized by a mutex and written atomically.
package config
