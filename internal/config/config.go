package config

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/dwijnand/servo/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "servoload.json"

	// DefaultAddr is the default debug server listen address.
	DefaultAddr = ":8080"

	// DefaultMaxDepth is the default nested @import depth limit.
	DefaultMaxDepth = 8

	// DefaultTimeout is the default overall load timeout.
	DefaultTimeout = "30s"
)

// Config represents the complete servoload.json configuration.
type Config struct {
	// Base is the document base URL used to resolve hrefs.
	Base string `json:"base,omitempty"`

	// Serve contains debug server configuration.
	Serve ServeConfig `json:"serve,omitempty"`

	// Loader contains loader configuration.
	Loader LoaderConfig `json:"loader,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServeConfig contains debug server configuration.
type ServeConfig struct {
	// Addr is the address the debug server listens on.
	Addr string `json:"addr,omitempty"`
}

// LoaderConfig contains loader configuration.
type LoaderConfig struct {
	// MaxDepth is the nested @import depth limit.
	MaxDepth int `json:"maxDepth,omitempty"`

	// Timeout is the overall load timeout, as a Go duration string.
	Timeout string `json:"timeout,omitempty"`

	// S3Region enables s3:// hrefs against the given region.
	S3Region string `json:"s3Region,omitempty"`
}

// New returns a configuration populated with defaults.
func New() *Config {
	return &Config{
		Serve: ServeConfig{
			Addr: DefaultAddr,
		},
		Loader: LoaderConfig{
			MaxDepth: DefaultMaxDepth,
			Timeout:  DefaultTimeout,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for servoload.json in the directory. A missing file is not an
// error: defaults are returned.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return New(), nil
	}
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E062").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E062").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E062").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E062").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultAddr
	}
	if c.Loader.MaxDepth == 0 {
		c.Loader.MaxDepth = DefaultMaxDepth
	}
	if c.Loader.Timeout == "" {
		c.Loader.Timeout = DefaultTimeout
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Base != "" {
		u, err := url.Parse(c.Base)
		if err != nil || !u.IsAbs() {
			return errors.New("E060").
				WithDetail("base must be an absolute URL, got " + c.Base)
		}
	}
	if c.Loader.MaxDepth < 0 {
		return errors.New("E062").
			WithDetail("loader.maxDepth must not be negative")
	}
	if _, err := time.ParseDuration(c.Loader.Timeout); err != nil {
		return errors.New("E062").
			WithDetail("loader.timeout is not a valid duration: " + c.Loader.Timeout)
	}
	return nil
}

// LoadTimeout returns the parsed load timeout.
func (c *Config) LoadTimeout() time.Duration {
	d, err := time.ParseDuration(c.Loader.Timeout)
	if err != nil {
		d, _ = time.ParseDuration(DefaultTimeout)
	}
	return d
}

// Exists reports whether a servoload.json exists in the directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
