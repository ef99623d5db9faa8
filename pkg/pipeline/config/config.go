// Package config reads stage configurations from command line flags, YAML files
// and the environment.
package config

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"github.com/askiada/go-linkstack/pkg/pipeline/model"
)

// EnvPrefix is the prefix of environment variables overriding file values.
// A double underscore separates nested keys: LINKSTACK_LOG__LEVEL sets log.level.
const EnvPrefix = "LINKSTACK_"

type Config struct {
	Log    LogConfig    `koanf:"log"`
	Input  string       `koanf:"input"`
	Output string       `koanf:"output"`
	Graph  string       `koanf:"graph"`
	Strict bool         `koanf:"strict"`
	Stages []StageEntry `koanf:"stages"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// StageEntry is the file form of a model.StageConfig. Position accepts the same
// values as ParsePosition.
type StageEntry struct {
	Name      string            `koanf:"name"`
	Position  string            `koanf:"position"`
	Absolute  bool              `koanf:"absolute"`
	Arguments []string          `koanf:"arguments"`
	Options   map[string]string `koanf:"options"`
}

// Load reads the YAML file at path, if any, then applies environment overrides
// and defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		err := k.Load(file.Provider(path), yaml.Parser())
		if err != nil {
			return nil, errors.Wrapf(err, "unable to load %s", path)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load environment")
	}

	defaults := map[string]any{
		"log.level":  "info",
		"log.format": "text",
	}
	for key, value := range defaults {
		if !k.Exists(key) {
			err = k.Set(key, value)
			if err != nil {
				return nil, errors.Wrapf(err, "unable to set default %s", key)
			}
		}
	}

	var cfg Config
	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode configuration")
	}

	return &cfg, nil
}

// Entries converts the configured stages, in file order.
func (c *Config) Entries() ([]model.StageConfig, error) {
	entries := make([]model.StageConfig, 0, len(c.Stages))
	for i, stage := range c.Stages {
		pos, err := ParsePosition(stage.Position)
		if err != nil {
			return nil, errors.Wrapf(err, "stages[%d] %s", i, stage.Name)
		}
		entries = append(entries, model.StageConfig{
			Name:      stage.Name,
			Position:  pos,
			Absolute:  stage.Absolute,
			Arguments: stage.Arguments,
			Options:   stage.Options,
		})
	}

	return entries, nil
}
