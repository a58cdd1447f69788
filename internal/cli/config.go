package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/resumake/pkg/errors"
	pkgio "github.com/matzehuels/resumake/pkg/io"
	"github.com/matzehuels/resumake/pkg/render/styles"
	"github.com/matzehuels/resumake/pkg/template"
)

// Cache backends selectable in the config file.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// DefaultServerAddr is the listen address of "resumake serve".
const DefaultServerAddr = "127.0.0.1:8080"

// Config is the user configuration read from config.toml.
//
//	template = "two-column"
//	theme = "green"
//
//	[styles]
//	font_size = "16px"
//	font_family = "Georgia"
//
//	[cache]
//	backend = "redis"
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = "127.0.0.1:8080"
type Config struct {
	Template template.ID   `toml:"template"`
	Theme    string        `toml:"theme"`
	Styles   styles.Styles `toml:"styles"`
	Cache    CacheConfig   `toml:"cache"`
	Server   ServerConfig  `toml:"server"`
}

type CacheConfig struct {
	Backend string      `toml:"backend"`
	Redis   RedisConfig `toml:"redis"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Template: template.Default,
		Theme:    styles.DefaultTheme,
		Styles:   styles.Default(),
		Cache:    CacheConfig{Backend: CacheFile},
		Server:   ServerConfig{Addr: DefaultServerAddr},
	}
}

// defaultConfigPath returns $XDG_CONFIG_HOME/resumake/config.toml.
func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfig reads the config file at path. An empty path means the default
// location, where a missing file is not an error. Empty fields keep their
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	return cfg, cfg.normalize()
}

func (c *Config) normalize() error {
	if c.Template == "" {
		c.Template = template.Default
	}
	if !template.Valid(c.Template) {
		return errors.New(errors.ErrCodeInvalidTemplate, "config: unknown template %q", c.Template)
	}
	th, err := styles.LookupTheme(c.Theme)
	if err != nil {
		return err
	}
	c.Theme = th.Name
	c.Styles = c.Styles.Normalize()
	if err := c.Styles.Validate(); err != nil {
		return err
	}

	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	switch c.Cache.Backend {
	case "":
		c.Cache.Backend = CacheFile
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "config: unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	return nil
}

// newDocument returns an empty document carrying the configured defaults.
func (c Config) newDocument() pkgio.Document {
	doc := pkgio.New()
	doc.Template = c.Template
	doc.Theme = c.Theme
	doc.Styles = c.Styles
	return doc
}
