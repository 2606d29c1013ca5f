package railwaycodes

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

type SourceConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"omitempty,url"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

type StoreConfig struct {
	DatabasePath string `yaml:"databasePath"`
}

type AppConfig struct {
	Server ServerConfig `yaml:"server"`
	Source SourceConfig `yaml:"source"`
	Store  StoreConfig  `yaml:"store"`
}

var Config AppConfig

// LoadAppConfig loads and validates config.yml. A missing file leaves
// the defaults in place; an unreadable or invalid one is an error.
func LoadAppConfig() error {
	var cfg AppConfig
	data, err := os.ReadFile("config.yml")
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8418
	}
	if cfg.Source.TimeoutMS == 0 {
		cfg.Source.TimeoutMS = 30000
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}
	Config = cfg
	return nil
}
