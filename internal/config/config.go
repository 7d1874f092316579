package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAlgorithm  = "quick"
	DefaultSize       = 12
	DefaultSpeed      = 50
	DefaultMinDelayMs = 20
	DefaultMaxDelayMs = 2000
	DefaultValueMin   = 1
	DefaultValueMax   = 99
	DefaultDataDir    = ".algoviz"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Algorithm string `yaml:"algorithm" validate:"required"`
	// Input overrides generation when set: comma-separated numbers or a
	// YAML/JSON record list.
	Input      string    `yaml:"input,omitempty"`
	Size       int       `yaml:"size" validate:"gte=0,lte=500"`
	Seed       int64     `yaml:"seed"`
	Speed      int       `yaml:"speed" validate:"gte=1,lte=100"`
	MinDelayMs int       `yaml:"min_delay_ms" validate:"gt=0"`
	MaxDelayMs int       `yaml:"max_delay_ms" validate:"gtfield=MinDelayMs"`
	ValueMin   int       `yaml:"value_min"`
	ValueMax   int       `yaml:"value_max" validate:"gtefield=ValueMin"`
	Capacity   float64   `yaml:"capacity,omitempty" validate:"gte=0"`
	DataDir    string    `yaml:"data_dir"`
	Log        LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Dir   string `yaml:"dir,omitempty"`
	JSON  bool   `yaml:"json,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func DefaultConfig() *Config {
	return &Config{
		Algorithm:  DefaultAlgorithm,
		Size:       DefaultSize,
		Speed:      DefaultSpeed,
		MinDelayMs: DefaultMinDelayMs,
		MaxDelayMs: DefaultMaxDelayMs,
		ValueMin:   DefaultValueMin,
		ValueMax:   DefaultValueMax,
		DataDir:    DefaultDataDir,
		Log:        LogConfig{Level: "info"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q", ErrInvalidConfig, fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) MinDelay() time.Duration { return time.Duration(c.MinDelayMs) * time.Millisecond }
func (c *Config) MaxDelay() time.Duration { return time.Duration(c.MaxDelayMs) * time.Millisecond }
