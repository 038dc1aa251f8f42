package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileConfig(t *testing.T) {
	path := writeConfigFile(t, `
start_offset = 4096
block_size = 32
no_offset = true
charset = "ascii"
watch_debounce = "250ms"
`)

	fc, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig: %v", err)
	}

	if fc.StartOffset == nil || *fc.StartOffset != 4096 {
		t.Errorf("StartOffset = %v, want 4096", fc.StartOffset)
	}
	if fc.BlockSize != 32 {
		t.Errorf("BlockSize = %v, want 32", fc.BlockSize)
	}
	if fc.NoOffset == nil || !*fc.NoOffset {
		t.Errorf("NoOffset = %v, want true", fc.NoOffset)
	}
	if fc.NoHexa != nil {
		t.Errorf("NoHexa = %v, want nil for an absent key", fc.NoHexa)
	}
	if fc.Charset != "ascii" {
		t.Errorf("Charset = %v, want ascii", fc.Charset)
	}
	if fc.WatchDebounce != "250ms" {
		t.Errorf("WatchDebounce = %v, want 250ms", fc.WatchDebounce)
	}
}

func TestLoadFileConfig_BadTOML(t *testing.T) {
	path := writeConfigFile(t, `block_size = [not toml`)
	if _, err := LoadFileConfig(path); err == nil {
		t.Error("LoadFileConfig accepted malformed TOML")
	}
}

func TestApplyFileConfig(t *testing.T) {
	offset := int64(128)
	yes := true
	fc := FileConfig{
		StartOffset:   &offset,
		BlockSize:     16,
		NoOffset:      &yes,
		Charset:       "full",
		WatchDebounce: "1s",
	}

	t.Run("applies unset fields", func(t *testing.T) {
		cfg := DefaultConfig()
		if err := ApplyFileConfig(&cfg, fc, map[string]bool{}); err != nil {
			t.Fatalf("ApplyFileConfig: %v", err)
		}
		if cfg.StartOffset != 128 {
			t.Errorf("StartOffset = %v, want 128", cfg.StartOffset)
		}
		if cfg.BlockBits != 16 {
			t.Errorf("BlockBits = %v, want 16", cfg.BlockBits)
		}
		if !cfg.NoOffset {
			t.Error("NoOffset = false, want true")
		}
		if cfg.Charset != "full" {
			t.Errorf("Charset = %v, want full", cfg.Charset)
		}
		if cfg.WatchDebounce != time.Second {
			t.Errorf("WatchDebounce = %v, want 1s", cfg.WatchDebounce)
		}
	})

	t.Run("flags win over file", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.StartOffset = 9
		cfg.BlockBits = 64
		changed := map[string]bool{"start-offset": true, "block-size": true}
		if err := ApplyFileConfig(&cfg, fc, changed); err != nil {
			t.Fatalf("ApplyFileConfig: %v", err)
		}
		if cfg.StartOffset != 9 {
			t.Errorf("StartOffset = %v, want flag value 9", cfg.StartOffset)
		}
		if cfg.BlockBits != 64 {
			t.Errorf("BlockBits = %v, want flag value 64", cfg.BlockBits)
		}
	})

	t.Run("bad duration", func(t *testing.T) {
		cfg := DefaultConfig()
		bad := FileConfig{WatchDebounce: "soon"}
		if err := ApplyFileConfig(&cfg, bad, map[string]bool{}); err == nil {
			t.Error("ApplyFileConfig accepted a malformed duration")
		}
	})
}
