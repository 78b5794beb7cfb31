package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"aurora-quiz/internal/app"
	"aurora-quiz/internal/domain"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Log struct {
		Env string `yaml:"env"`
	} `yaml:"log"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Bank struct {
		ID   string `yaml:"id"`
		Path string `yaml:"path"`
		TTL  string `yaml:"ttl"`
	} `yaml:"bank"`
	Session struct {
		MinDwell          string  `yaml:"min_dwell"`
		AutoAdvance       string  `yaml:"auto_advance"`
		QuestionTimeLimit string  `yaml:"question_time_limit"`
		TickRate          int     `yaml:"tick_rate"`
		TopTier           float64 `yaml:"top_tier"`
		MidTier           float64 `yaml:"mid_tier"`
	} `yaml:"session"`
	Viewport struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"viewport"`
}

// Load reads YAML config from path. A missing file yields the zero config, which resolves to defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Duration parses a duration string or returns the fallback if empty or malformed.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// SessionSettings resolves the session section over app.DefaultSettings and validates the result.
func (c Config) SessionSettings() (app.Settings, error) {
	s := app.DefaultSettings()
	s.MinDwell = Duration(c.Session.MinDwell, s.MinDwell)
	s.AutoAdvance = Duration(c.Session.AutoAdvance, s.AutoAdvance)
	s.QuestionTimeLimit = Duration(c.Session.QuestionTimeLimit, s.QuestionTimeLimit)
	if c.Session.TopTier > 0 {
		s.Tiers.Top = c.Session.TopTier
	}
	if c.Session.MidTier > 0 {
		s.Tiers.Mid = c.Session.MidTier
	}
	if c.Viewport.Width > 0 && c.Viewport.Height > 0 {
		s.Viewport = domain.Size{Width: c.Viewport.Width, Height: c.Viewport.Height}
	}
	if err := s.Validate(); err != nil {
		return app.Settings{}, err
	}
	return s, nil
}

// TickInterval is the host frame period derived from session.tick_rate (default 60 per second).
func (c Config) TickInterval() time.Duration {
	rate := c.Session.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// BankID returns the question set served when a client does not name one.
func (c Config) BankID() string {
	if c.Bank.ID == "" {
		return "sample"
	}
	return c.Bank.ID
}
