package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type FilesConfig struct {
	RootDir   string `yaml:"root_dir"`
	PublicURL string `yaml:"public_url"`
}

type PinataConfig struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	DryRun    bool   `yaml:"dry_run"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	JWT struct {
		Secret string `yaml:"secret"`
	} `yaml:"jwt"`
	Company struct {
		Name string `yaml:"name"`
	} `yaml:"company"`
	Files  FilesConfig  `yaml:"files"`
	Pinata PinataConfig `yaml:"pinata"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	// Secrets can come from the environment (.env in development).
	overrideString(&cfg.Database.DSN, "DATABASE_URL")
	overrideString(&cfg.JWT.Secret, "JWT_SECRET")
	overrideString(&cfg.Email.SMTPUser, "SMTP_USER")
	overrideString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	overrideString(&cfg.Pinata.APIKey, "PINATA_API_KEY")
	overrideString(&cfg.Pinata.APISecret, "PINATA_API_SECRET")
	overrideString(&cfg.Files.PublicURL, "PUBLIC_URL")
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Files.RootDir == "" {
		cfg.Files.RootDir = "./storage"
	}
	if cfg.Files.PublicURL == "" {
		cfg.Files.PublicURL = "http://localhost:3000"
	}
	return &cfg
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
