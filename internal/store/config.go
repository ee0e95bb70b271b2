package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const envPrefix = "DOCEXPLORER"

type Config struct {
	// Catalog is the catalog file; empty means the built-in catalog.
	Catalog  string `mapstructure:"catalog" json:"catalog,omitempty" yaml:"catalog,omitempty"`
	LogLevel string `mapstructure:"log_level" json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFile  string `mapstructure:"log_file" json:"log_file,omitempty" yaml:"log_file,omitempty"`

	TUI TUIConfig `mapstructure:"tui" json:"tui" yaml:"tui"`
	Web WebConfig `mapstructure:"web" json:"web" yaml:"web"`
	SSH SSHConfig `mapstructure:"ssh" json:"ssh" yaml:"ssh"`

	// path is the file the config was read from, if any.
	path string
}

type TUIConfig struct {
	// Glyphs selects the glyph set ("unicode" or "ascii").
	Glyphs string `mapstructure:"glyphs" json:"glyphs,omitempty" yaml:"glyphs,omitempty"`
	// Theme is "auto", "light" or "dark".
	Theme string `mapstructure:"theme" json:"theme,omitempty" yaml:"theme,omitempty"`
}

type WebConfig struct {
	Addr string `mapstructure:"addr" json:"addr,omitempty" yaml:"addr,omitempty"`
}

type SSHConfig struct {
	Addr    string `mapstructure:"addr" json:"addr,omitempty" yaml:"addr,omitempty"`
	HostKey string `mapstructure:"host_key" json:"host_key,omitempty" yaml:"host_key,omitempty"`
}

// Path returns the file the config was loaded from ("" when none was found).
func (c *Config) Path() string { return c.path }

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.LogLevel, validation.By(func(v interface{}) error {
			s, _ := v.(string)
			if strings.TrimSpace(s) == "" {
				return nil
			}
			if _, err := log.ParseLevel(s); err != nil {
				return errors.New("must be one of debug, info, warn, error, fatal")
			}
			return nil
		})),
		validation.Field(&c.TUI),
		validation.Field(&c.Web),
		validation.Field(&c.SSH),
	)
}

func (t TUIConfig) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Glyphs, validation.In("unicode", "ascii")),
		validation.Field(&t.Theme, validation.In("auto", "light", "dark")),
	)
}

func (w WebConfig) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Addr, validation.Required),
	)
}

func (s SSHConfig) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Addr, validation.Required),
	)
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.docexplorer).
	if v := strings.TrimSpace(os.Getenv(envPrefix + "_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".docexplorer"), nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("catalog", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_file", "")
	v.SetDefault("tui.glyphs", "unicode")
	v.SetDefault("tui.theme", "auto")
	v.SetDefault("web.addr", "127.0.0.1:8088")
	v.SetDefault("ssh.addr", "127.0.0.1:2323")
	v.SetDefault("ssh.host_key", filepath.Join(dir, "ssh_host_ed25519"))
}

// LoadConfig reads defaults, then the config file, then DOCEXPLORER_*
// environment variables. path selects an explicit file; otherwise
// config.{yaml,json,toml} is looked up in ConfigDir. A missing default file is
// not an error.
func LoadConfig(path string) (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path = strings.TrimSpace(path)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.path = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// SaveConfig writes cfg as YAML to path, or to config.yaml in ConfigDir.
func SaveConfig(cfg *Config, path string) (string, error) {
	if cfg == nil {
		return "", errors.New("nil config")
	}
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("invalid config: %w", err)
	}
	if strings.TrimSpace(path) == "" {
		dir, err := ConfigDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(dir, "config.yaml")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return path, atomicWriteFile(dir, "config.yaml.*.tmp", path, b, 0o600)
}
