package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Serve.Addr != DefaultAddr {
		t.Errorf("Serve.Addr = %q, want %q", cfg.Serve.Addr, DefaultAddr)
	}
	if cfg.Loader.MaxDepth != DefaultMaxDepth {
		t.Errorf("Loader.MaxDepth = %d, want %d", cfg.Loader.MaxDepth, DefaultMaxDepth)
	}
	if cfg.Loader.Timeout != DefaultTimeout {
		t.Errorf("Loader.Timeout = %q, want %q", cfg.Loader.Timeout, DefaultTimeout)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// A missing config file yields defaults, not an error
	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load with missing config: %v", err)
	}
	if cfg.Serve.Addr != DefaultAddr {
		t.Errorf("Serve.Addr = %q, want default", cfg.Serve.Addr)
	}

	configPath := filepath.Join(tmpDir, ConfigFileName)
	configJSON := `{
  "base": "https://example.com/docs/",
  "serve": {
    "addr": ":9090"
  },
  "loader": {
    "maxDepth": 4,
    "timeout": "10s",
    "s3Region": "eu-west-1"
  }
}`
	if err := os.WriteFile(configPath, []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err = Load(tmpDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Base != "https://example.com/docs/" {
		t.Errorf("Base = %q", cfg.Base)
	}
	if cfg.Serve.Addr != ":9090" {
		t.Errorf("Serve.Addr = %q, want :9090", cfg.Serve.Addr)
	}
	if cfg.Loader.MaxDepth != 4 {
		t.Errorf("Loader.MaxDepth = %d, want 4", cfg.Loader.MaxDepth)
	}
	if cfg.Loader.S3Region != "eu-west-1" {
		t.Errorf("Loader.S3Region = %q, want eu-west-1", cfg.Loader.S3Region)
	}
	if got := cfg.LoadTimeout(); got != 10*time.Second {
		t.Errorf("LoadTimeout() = %v, want 10s", got)
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %q, want %q", cfg.Path(), configPath)
	}
}

func TestLoadAppliesDefaultsToPartialConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(`{"base": "https://example.com/"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Serve.Addr != DefaultAddr {
		t.Errorf("Serve.Addr = %q, want default", cfg.Serve.Addr)
	}
	if cfg.Loader.MaxDepth != DefaultMaxDepth {
		t.Errorf("Loader.MaxDepth = %d, want default", cfg.Loader.MaxDepth)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(tmpDir)
	if err == nil {
		t.Fatal("expected an error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "E062") {
		t.Errorf("error = %v, want code E062", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	cfg.Base = "https://example.com/"
	cfg.Loader.S3Region = "us-east-1"
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Base != cfg.Base {
		t.Errorf("Base = %q, want %q", loaded.Base, cfg.Base)
	}
	if loaded.Loader.S3Region != cfg.Loader.S3Region {
		t.Errorf("Loader.S3Region = %q, want %q", loaded.Loader.S3Region, cfg.Loader.S3Region)
	}

	// Save again through the remembered path
	loaded.Serve.Addr = ":7000"
	if err := loaded.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	again, err := LoadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if again.Serve.Addr != ":7000" {
		t.Errorf("Serve.Addr = %q, want :7000", again.Serve.Addr)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"absolute base", func(c *Config) { c.Base = "https://example.com/" }, false},
		{"relative base", func(c *Config) { c.Base = "styles/" }, true},
		{"negative depth", func(c *Config) { c.Loader.MaxDepth = -1 }, true},
		{"bad timeout", func(c *Config) { c.Loader.Timeout = "soon" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := New()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()
	if Exists(tmpDir) {
		t.Fatal("Exists = true for an empty directory")
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}
	if !Exists(tmpDir) {
		t.Fatal("Exists = false after writing the file")
	}
}
