package internal

import (
	"fmt"

	"github.com/RaihanSardarUI/Twitter/internal/api"
	"github.com/RaihanSardarUI/Twitter/internal/cookies"
	"github.com/RaihanSardarUI/Twitter/internal/extract"
	"github.com/ilyakaznacheev/cleanenv"
	homedir "github.com/mitchellh/go-homedir"
)

// ServerConfig is the struct used to contain the various user config
// supplied by file or environment.
type ServerConfig struct {
	API       api.RestConfig `yaml:"api"`
	Extractor extract.Config `yaml:"extractor"`
	Cookies   cookies.Config `yaml:"cookies"`
}

// LoadFromFile loads a YAML configuration file into a ServerConfig,
// with environment variables taking precedence per field.
func (config *ServerConfig) LoadFromFile(configPath string) error {
	if err := cleanenv.ReadConfig(configPath, config); err != nil {
		return fmt.Errorf("failed to load configuration from %s - %s", configPath, err.Error())
	}

	return nil
}

// LoadFromEnv populates the config from environment variables and struct
// defaults only; used when no config file is present.
func (config *ServerConfig) LoadFromEnv() error {
	if err := cleanenv.ReadEnv(config); err != nil {
		return fmt.Errorf("failed to load configuration from environment - %s", err.Error())
	}

	return nil
}

// DefaultConfigPath returns the conventional location of the config file
// inside the user's home directory.
func DefaultConfigPath() string {
	path, err := homedir.Expand("~/.config/twitter-downloader/config.yaml")
	if err != nil {
		return "config.yaml"
	}

	return path
}
