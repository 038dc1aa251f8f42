package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations and pointers
// where a configured zero/false must be distinguishable from an absent key.
type FileConfig struct {
	StartOffset   *int64 `toml:"start_offset"`
	BlockSize     int    `toml:"block_size"`
	NoOffset      *bool  `toml:"no_offset"`
	NoHexa        *bool  `toml:"no_hexa"`
	Charset       string `toml:"charset"`
	Watch         *bool  `toml:"watch"`
	WatchDebounce string `toml:"watch_debounce"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.hexwalk/config.toml if the user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".hexwalk", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setInt64("start-offset", fc.StartOffset, &cfg.StartOffset)
	s.setInt("block-size", fc.BlockSize, &cfg.BlockBits)
	s.setBool("no-offset", fc.NoOffset, &cfg.NoOffset)
	s.setBool("no-hexa", fc.NoHexa, &cfg.NoHex)
	s.setString("charset", fc.Charset, &cfg.Charset)
	s.setBool("watch", fc.Watch, &cfg.Watch)

	return s.setDuration("watch-debounce", fc.WatchDebounce, &cfg.WatchDebounce)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
