package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	t.Setenv("HEXWALK_START_OFFSET", "2048")
	t.Setenv("HEXWALK_BLOCK_SIZE", "64")
	t.Setenv("HEXWALK_NO_HEXA", "true")
	t.Setenv("HEXWALK_CHARSET", "ascii")
	t.Setenv("HEXWALK_WATCH_DEBOUNCE", "500ms")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}

	if cfg.StartOffset != 2048 {
		t.Errorf("StartOffset = %v, want 2048", cfg.StartOffset)
	}
	if cfg.BlockBits != 64 {
		t.Errorf("BlockBits = %v, want 64", cfg.BlockBits)
	}
	if !cfg.NoHex {
		t.Error("NoHex = false, want true")
	}
	if cfg.Charset != "ascii" {
		t.Errorf("Charset = %v, want ascii", cfg.Charset)
	}
	if cfg.WatchDebounce != 500*time.Millisecond {
		t.Errorf("WatchDebounce = %v, want 500ms", cfg.WatchDebounce)
	}
}

func TestApplyEnvConfig_FlagPrecedence(t *testing.T) {
	t.Setenv("HEXWALK_BLOCK_SIZE", "64")

	cfg := DefaultConfig()
	cfg.BlockBits = 16
	if err := ApplyEnvConfig(&cfg, map[string]bool{"block-size": true}); err != nil {
		t.Fatalf("ApplyEnvConfig: %v", err)
	}
	if cfg.BlockBits != 16 {
		t.Errorf("BlockBits = %v, want flag value 16", cfg.BlockBits)
	}
}

func TestApplyEnvConfig_Invalid(t *testing.T) {
	t.Setenv("HEXWALK_START_OFFSET", "sideways")

	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err == nil {
		t.Error("ApplyEnvConfig accepted a non-numeric start offset")
	}
}
