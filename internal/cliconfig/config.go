package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/hexwalk/hexwalk/pkg/render"
)

// Config holds CLI configuration for hexwalk.
type Config struct {
	// Path is the positional file argument. It never comes from a config
	// file or the environment.
	Path string

	StartOffset int64
	BlockBits   int
	NoOffset    bool
	NoHex       bool

	Charset string // auto, full or ascii

	Watch         bool
	WatchDebounce time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		BlockBits:     8,
		Charset:       "auto",
		WatchDebounce: 100 * time.Millisecond,
	}
}

// Validate checks the configuration for errors. It runs before any file I/O
// so invalid arguments never touch the target file.
func (c *Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("a file argument is required")
	}
	switch c.BlockBits {
	case 8, 16, 32, 64:
	default:
		return fmt.Errorf("block-size must be one of 8, 16, 32, 64 (got %d)", c.BlockBits)
	}
	if c.StartOffset < 0 {
		return fmt.Errorf("start-offset must be non-negative (got %d)", c.StartOffset)
	}
	switch c.Charset {
	case "auto", "full", "ascii":
	default:
		return fmt.Errorf("charset must be one of auto, full, ascii (got %q)", c.Charset)
	}
	if c.WatchDebounce <= 0 {
		return fmt.Errorf("watch-debounce must be positive")
	}
	return nil
}

// ResolveCharset maps the configured charset name onto a renderer charset.
// "auto" follows the host platform.
func (c *Config) ResolveCharset() render.Charset {
	switch c.Charset {
	case "full":
		return render.CharsetFull
	case "ascii":
		return render.CharsetASCII
	default:
		return render.HostCharset()
	}
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt64 sets an int64 value if present and flag not changed. A pointer
// distinguishes an absent value from a configured zero.
func (s *configSetter) setInt64(flag string, value *int64, dst *int64) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBool sets a bool value if present and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration given as a string like "150ms".
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses and sets an int value from a string.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s: %w", flag, err)
	}
	*dst = n
	return nil
}

// setInt64FromString parses and sets an int64 value from a string.
func (s *configSetter) setInt64FromString(flag, value string, dst *int64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", flag, err)
	}
	*dst = n
	return nil
}

// setBoolFromString parses and sets a bool value from a string.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	if b, err := strconv.ParseBool(value); err == nil {
		*dst = b
	}
}
