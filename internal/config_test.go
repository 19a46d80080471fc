package internal

import "testing"

func TestDefaultConfigValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Data.Root == "" {
		t.Error("default data root missing")
	}
	if !cfg.Watch.Enabled {
		t.Error("watcher defaults to enabled")
	}
	if cfg.Watch.DebounceMS <= 0 {
		t.Error("watcher debounce window must default to a positive value")
	}
}

func TestEmptyDataRootFails(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Data.Root = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty data root should fail validation")
	}
}
