// Package config loads wren.yml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/firebird-suite/wren/pkg/options"
	"github.com/simonhull/firebird-suite/wren/pkg/readme"
)

// FileName is the config file looked up in the working directory.
const FileName = "wren.yml"

// Config represents wren.yml
type Config struct {
	Source   SourceConfig   `yaml:"source" mapstructure:"source"`
	Manifest ManifestConfig `yaml:"manifest" mapstructure:"manifest"`
	Options  OptionsConfig  `yaml:"options" mapstructure:"options"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// SourceConfig says where the option table comes from
type SourceConfig struct {
	URL     string        `yaml:"url" mapstructure:"url"`
	File    string        `yaml:"file,omitempty" mapstructure:"file"`
	Heading string        `yaml:"heading" mapstructure:"heading"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ManifestConfig points at the package.json to patch
type ManifestConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// OptionsConfig controls identifier and descriptor synthesis
type OptionsConfig struct {
	SwitchPrefix string `yaml:"switch_prefix" mapstructure:"switch_prefix"`
	Namespace    string `yaml:"namespace" mapstructure:"namespace"`
	Scope        string `yaml:"scope" mapstructure:"scope"`
}

// LogConfig sets the diagnostic log level
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// Default returns the settings the tool was written against.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			URL:     readme.DefaultURL,
			Heading: readme.DefaultHeading,
		},
		Manifest: ManifestConfig{
			Path: "package.json",
		},
		Options: OptionsConfig{
			SwitchPrefix: options.DefaultSwitchPrefix,
			Namespace:    options.DefaultNamespace,
			Scope:        options.DefaultScope,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads wren.yml from dir (if present) and applies WREN_* environment
// overrides, e.g. WREN_SOURCE_URL or WREN_MANIFEST_PATH.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile is Load for an explicit path. A missing file yields defaults.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("WREN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, Default())

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it even when
// no config file exists.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("source.url", d.Source.URL)
	v.SetDefault("source.file", d.Source.File)
	v.SetDefault("source.heading", d.Source.Heading)
	v.SetDefault("source.timeout", d.Source.Timeout)
	v.SetDefault("manifest.path", d.Manifest.Path)
	v.SetDefault("options.switch_prefix", d.Options.SwitchPrefix)
	v.SetDefault("options.namespace", d.Options.Namespace)
	v.SetDefault("options.scope", d.Options.Scope)
	v.SetDefault("log.level", d.Log.Level)
}

// Validate checks the fields every run depends on
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Source),
		validation.Field(&c.Manifest),
		validation.Field(&c.Options),
	)
}

// Validate requires a URL unless a local file is configured.
func (s SourceConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.URL, validation.When(s.File == "", validation.Required.Error("source.url or source.file must be set"))),
		validation.Field(&s.Heading, validation.Required),
		validation.Field(&s.Timeout, validation.Min(time.Duration(0))),
	)
}

func (m ManifestConfig) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Path, validation.Required),
	)
}

func (o OptionsConfig) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Namespace, validation.Required),
	)
}

// Save writes cfg as YAML
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
