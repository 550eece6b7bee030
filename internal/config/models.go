package config

import "path/filepath"

// CurrentVersion is the only configuration schema version understood.
const CurrentVersion = 1

// Config represents the entire user configuration file.
type Config struct {
	Version    int          `yaml:"version"`
	DataDir    string       `yaml:"data_dir"`              // Root of maps/, scenarios/, input/
	DefaultMap string       `yaml:"default_map,omitempty"` // Map opened on startup
	Log        *LogPrefs    `yaml:"log,omitempty"`
	Mirror     *MirrorPrefs `yaml:"mirror,omitempty"`
}

// LogPrefs controls the zap logger. An empty level means silent.
type LogPrefs struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// MirrorPrefs configures the live frame mirror.
type MirrorPrefs struct {
	Enabled       bool   `yaml:"enabled"`
	Addr          string `yaml:"addr"`           // Listen address, e.g. ":7420"
	Advertise     bool   `yaml:"advertise"`      // Register the mirror over mDNS
	Name          string `yaml:"name,omitempty"` // mDNS instance name
	BrowseTimeout int    `yaml:"browse_timeout"` // Discovery timeout in seconds
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	c := &Config{
		Version: CurrentVersion,
		DataDir: "data",
	}
	c.applyDefaults()
	return c
}

// applyDefaults fills sections missing from an older or hand-written file.
func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.Log == nil {
		c.Log = &LogPrefs{}
	}
	if c.Mirror == nil {
		c.Mirror = &MirrorPrefs{}
	}
	if c.Mirror.Addr == "" {
		c.Mirror.Addr = ":7420"
	}
	if c.Mirror.Name == "" {
		c.Mirror.Name = appName
	}
	if c.Mirror.BrowseTimeout <= 0 {
		c.Mirror.BrowseTimeout = 5
	}
}

// LogFile returns the configured log file, or maptools.log in the config
// directory.
func (c *Config) LogFile() string {
	if c.Log != nil && c.Log.File != "" {
		return c.Log.File
	}
	dir, err := GetConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName+".log")
}
