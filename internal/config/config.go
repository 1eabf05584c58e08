package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/makesite/internal/foundation/errors"
	"git.home.luguber.info/inful/makesite/internal/foundation/paths"
)

// DefaultConfigFile is the configuration file looked up when none is given.
const DefaultConfigFile = "makesite.yaml"

// Config represents the application configuration.
type Config struct {
	Paths   PathsConfig    `yaml:"paths"`
	Site    SiteConfig     `yaml:"site"`
	Params  map[string]any `yaml:"params,omitempty"` // Extra placeholders available to every template
	Logging LoggingConfig  `yaml:"logging"`
	Watch   WatchConfig    `yaml:"watch"`
}

// PathsConfig locates the build inputs and the output tree.
type PathsConfig struct {
	Content string `yaml:"content"`
	Layout  string `yaml:"layout"`
	Static  string `yaml:"static"`
	Output  string `yaml:"output"`
}

// SiteConfig holds the site-wide default parameters.
type SiteConfig struct {
	Title    string `yaml:"title"`
	BasePath string `yaml:"base_path"`
	SiteURL  string `yaml:"site_url"`
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
	Interval time.Duration `yaml:"interval"` // Zero disables periodic rebuilds
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Content: "content",
			Layout:  "layout",
			Static:  "static",
			Output:  "_site",
		},
		Site: SiteConfig{
			Title:   "Shobute",
			SiteURL: "http://localhost:8000",
		},
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
	}
}

// Load loads configuration from the specified file.
// A missing file is not an error: the defaults are returned instead.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "read config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "parse config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Paths.Content == "" {
		c.Paths.Content = def.Paths.Content
	}
	if c.Paths.Layout == "" {
		c.Paths.Layout = def.Paths.Layout
	}
	if c.Paths.Static == "" {
		c.Paths.Static = def.Paths.Static
	}
	if c.Paths.Output == "" {
		c.Paths.Output = def.Paths.Output
	}
	if c.Site.Title == "" {
		c.Site.Title = def.Site.Title
	}
	if c.Site.SiteURL == "" {
		c.Site.SiteURL = def.Site.SiteURL
	}
	c.Logging.Level = NormalizeLogLevel(string(c.Logging.Level))
	c.Logging.Format = NormalizeLogFormat(string(c.Logging.Format))
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = def.Watch.Debounce
	}
}

// Validate reports configuration values that cannot produce a build. The output
// directory is deleted on every build, so it must not overlap any input directory.
func (c *Config) Validate() error {
	if c.Watch.Debounce < 0 || c.Watch.Interval < 0 {
		return ferrors.ValidationError("watch durations must not be negative").Build()
	}

	output, err := filepath.Abs(c.Paths.Output)
	if err != nil {
		return ferrors.ValidationError("resolve output directory").
			WithCause(err).
			WithContext("path", c.Paths.Output).
			Build()
	}
	inputs := []struct{ name, dir string }{
		{"content", c.Paths.Content},
		{"layout", c.Paths.Layout},
		{"static", c.Paths.Static},
	}
	for _, in := range inputs {
		dir, err := filepath.Abs(in.dir)
		if err != nil {
			return ferrors.ValidationError("resolve " + in.name + " directory").
				WithCause(err).
				WithContext("path", in.dir).
				Build()
		}
		if paths.Overlap(output, dir) {
			return ferrors.ValidationError("output directory must not overlap the "+in.name+" directory").
				WithContext("path", c.Paths.Output).
				WithContext(in.name, in.dir).
				Build()
		}
	}
	return nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	example := Default()
	example.Params = map[string]any{
		"author": "Your Name",
	}

	data, err := yaml.Marshal(example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ferrors.FileAccessError("write config file").
			WithCause(err).
			WithContext("path", configPath).
			Build()
	}
	return nil
}
