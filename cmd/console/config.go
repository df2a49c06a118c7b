package main

import (
	"os"

	"github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"
)

// Config is the console configuration, loaded from YAML.
type Config struct {
	Debug  bool `yaml:"debug"`
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Backend struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"backend"`
	Session struct {
		CookieName   string `yaml:"cookie_name"`
		MaxAge       int    `yaml:"max_age"`
		LoginPath    string `yaml:"login_path"`
		LandingPath  string `yaml:"landing_path"`
		PublicPrefix string `yaml:"public_prefix"`
	} `yaml:"session"`
	Views struct {
		Dir       string `yaml:"dir"`
		Extension string `yaml:"extension"`
	} `yaml:"views"`
}

// DefaultConfig returns the config the console runs with when no file or
// field overrides it.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Server.Address = ":8080"
	cfg.Backend.BaseURL = "http://localhost:8081"
	cfg.Session.CookieName = "auth.token"
	cfg.Session.MaxAge = 2592000
	cfg.Session.LoginPath = "/auth/login"
	cfg.Session.LandingPath = "/dashboard"
	cfg.Session.PublicPrefix = "/auth"
	cfg.Views.Dir = "./views"
	cfg.Views.Extension = ".html"
	return cfg
}

// LoadConfig reads path over the defaults. A missing file is not an error;
// the defaults stand.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, errors.CategoryOperation, "failed to read config file").
			WithMetadata(map[string]any{"path": path})
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "failed to parse config file").
			WithMetadata(map[string]any{"path": path})
	}

	return cfg, nil
}

// session.Config implementation

func (c *Config) GetBaseURL() string         { return c.Backend.BaseURL }
func (c *Config) GetTokenCookieName() string { return c.Session.CookieName }
func (c *Config) GetTokenMaxAge() int        { return c.Session.MaxAge }
func (c *Config) GetLoginPath() string       { return c.Session.LoginPath }
func (c *Config) GetLandingPath() string     { return c.Session.LandingPath }
func (c *Config) GetPublicPrefix() string    { return c.Session.PublicPrefix }
