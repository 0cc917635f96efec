// Package config loads the YAML configuration of the profile-update command.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/on-the-ground/effect_ive_profile/effects/model"
	"github.com/on-the-ground/effect_ive_profile/profile"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Log      Log      `yaml:"log"`
	Effects  Effects  `yaml:"effects"`
	Workflow Workflow `yaml:"workflow"`
	Seed     []Seed   `yaml:"seed"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Handler sizes the worker pool of one effect handler.
type Handler struct {
	BufferSize int `yaml:"buffer_size"`
	NumWorkers int `yaml:"num_workers"`
}

// ScopeConfig converts h for the effect handlers.
func (h Handler) ScopeConfig() model.EffectScopeConfig {
	return model.NewEffectScopeConfig(h.BufferSize, h.NumWorkers)
}

type Effects struct {
	Log          Handler `yaml:"log"`
	Store        Handler `yaml:"store"`
	Notification Handler `yaml:"notification"`
}

type Workflow struct {
	ProgressLogging bool `yaml:"progress_logging"`
}

// Seed is a profile loaded into the store at startup.
type Seed struct {
	UserID       string `yaml:"user_id"`
	Name         string `yaml:"name"`
	EmailAddress string `yaml:"email_address"`
}

func (s Seed) Profile() profile.Profile {
	return profile.Profile{UserID: s.UserID, Name: s.Name, EmailAddress: s.EmailAddress}
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: Log{Level: "info"},
		Effects: Effects{
			Log:          Handler{BufferSize: 16, NumWorkers: 1},
			Store:        Handler{BufferSize: 16, NumWorkers: 4},
			Notification: Handler{BufferSize: 16, NumWorkers: 1},
		},
		Seed: []Seed{{UserID: "1234", Name: "MarcoPolo", EmailAddress: "marcopolo@mp.com"}},
	}
}

// Load reads and validates the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over Default and validates the result. Unknown keys are
// rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var err error
	if _, lerr := zapcore.ParseLevel(c.Log.Level); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("%w: %s: %w", ErrInvalid, KeyLogLevel, lerr))
	}
	for _, h := range []struct {
		prefix string
		Handler
	}{
		{KeyEffectsLog, c.Effects.Log},
		{KeyEffectsStore, c.Effects.Store},
		{KeyEffectsNotification, c.Effects.Notification},
	} {
		if h.BufferSize < 0 {
			err = multierr.Append(err, fmt.Errorf("%w: %s must not be negative", ErrInvalid, bufferSizeKey(h.prefix)))
		}
		if h.NumWorkers < 0 {
			err = multierr.Append(err, fmt.Errorf("%w: %s must not be negative", ErrInvalid, numWorkersKey(h.prefix)))
		}
	}
	seen := make(map[string]bool, len(c.Seed))
	for i, s := range c.Seed {
		switch {
		case s.UserID == "":
			err = multierr.Append(err, fmt.Errorf("%w: %s[%d].user_id is empty", ErrInvalid, KeySeed, i))
		case seen[s.UserID]:
			err = multierr.Append(err, fmt.Errorf("%w: %s[%d]: duplicate user_id %q", ErrInvalid, KeySeed, i, s.UserID))
		}
		seen[s.UserID] = true
	}
	return err
}

// ZapLevel is the parsed log level; invalid levels fall back to info.
func (c Config) ZapLevel() zapcore.Level {
	lvl, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// SeedProfiles returns the seed entries as profiles.
func (c Config) SeedProfiles() []profile.Profile {
	out := make([]profile.Profile, 0, len(c.Seed))
	for _, s := range c.Seed {
		out = append(out, s.Profile())
	}
	return out
}
