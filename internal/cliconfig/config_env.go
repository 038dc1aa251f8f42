package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (HEXWALK_*).
// It respects flags that have been explicitly set (changed map) and overrides
// file configuration. Returns an error if a variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setInt64FromString("start-offset", os.Getenv("HEXWALK_START_OFFSET"), &cfg.StartOffset); err != nil {
		return err
	}
	if err := s.setIntFromString("block-size", os.Getenv("HEXWALK_BLOCK_SIZE"), &cfg.BlockBits); err != nil {
		return err
	}
	if err := s.setDuration("watch-debounce", os.Getenv("HEXWALK_WATCH_DEBOUNCE"), &cfg.WatchDebounce); err != nil {
		return err
	}

	s.setString("charset", os.Getenv("HEXWALK_CHARSET"), &cfg.Charset)
	s.setBoolFromString("no-offset", os.Getenv("HEXWALK_NO_OFFSET"), &cfg.NoOffset)
	s.setBoolFromString("no-hexa", os.Getenv("HEXWALK_NO_HEXA"), &cfg.NoHex)
	s.setBoolFromString("watch", os.Getenv("HEXWALK_WATCH"), &cfg.Watch)

	return nil
}
