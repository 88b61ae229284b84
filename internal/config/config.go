package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Employee EmployeeConfig `toml:"employee"`
	AI       AIConfig       `toml:"ai"`
	Email    EmailConfig    `toml:"email"`
	Export   ExportConfig   `toml:"export"`
}

type EmployeeConfig struct {
	Name  string `toml:"name"`
	Truck string `toml:"truck"`
}

type AIConfig struct {
	Provider string `toml:"provider"` // "openai" or "ollama"
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	Endpoint string `toml:"endpoint"` // ollama only
}

type EmailConfig struct {
	Recipient string `toml:"recipient"`
}

type ExportConfig struct {
	Dir string `toml:"dir"`
}

func DefaultConfig() Config {
	return Config{
		AI: AIConfig{
			Provider: "ollama",
			Endpoint: "http://localhost:11434",
			Model:    "llama3.2",
		},
		Export: ExportConfig{
			Dir: ".",
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "fieldsheet"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FIELDSHEET_EMPLOYEE"); v != "" {
		cfg.Employee.Name = v
	}
	if v := os.Getenv("FIELDSHEET_TRUCK"); v != "" {
		cfg.Employee.Truck = v
	}
	if v := os.Getenv("FIELDSHEET_AI_PROVIDER"); v != "" {
		cfg.AI.Provider = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("FIELDSHEET_OLLAMA_ENDPOINT"); v != "" {
		cfg.AI.Endpoint = v
	}
	if v := os.Getenv("FIELDSHEET_EMAIL_RECIPIENT"); v != "" {
		cfg.Email.Recipient = v
	}
}

func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
