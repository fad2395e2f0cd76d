package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duration decodes "1h30m"-style strings from yaml.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

type Config struct {
	App struct {
		Name string `yaml:"name"`
		Port string `yaml:"port"`
	} `yaml:"app"`

	Postgres PostgresConfig `yaml:"postgres"`

	Session struct {
		CookieName string   `yaml:"cookie_name"`
		TTL        Duration `yaml:"ttl"`
	} `yaml:"session"`
}

type PostgresConfig struct {
	Host            string   `yaml:"host"`
	Port            string   `yaml:"port"`
	User            string   `yaml:"user"`
	Password        string   `yaml:"password"`
	DBName          string   `yaml:"dbname"`
	SSLMode         string   `yaml:"sslmode"`
	MaxConns        int32    `yaml:"max_conns"`
	MinConns        int32    `yaml:"min_conns"`
	MaxConnLifetime Duration `yaml:"max_conn_lifetime"`
}

// Load reads the yaml config file (if present), then lets environment
// variables override individual values. A .env file next to the binary is
// honored the same way the env vars themselves are.
func Load(path string) (*Config, error) {
	// .env опционален: в контейнере значения приходят из окружения.
	_ = godotenv.Load()

	cfg := &Config{}

	if path != "" {
		file, err := os.Open(path)
		if err == nil {
			defer file.Close()
			if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
				return nil, fmt.Errorf("invalid config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to open config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if cfg.Postgres.Host == "" {
		return nil, fmt.Errorf("postgres host is required (set postgres.host or DB_HOST)")
	}
	if cfg.Postgres.User == "" {
		return nil, fmt.Errorf("postgres user is required (set postgres.user or DB_USER)")
	}
	if cfg.Postgres.DBName == "" {
		return nil, fmt.Errorf("postgres dbname is required (set postgres.dbname or DB_NAME)")
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setIfEnv(&cfg.App.Port, "APP_PORT")
	setIfEnv(&cfg.Postgres.Host, "DB_HOST")
	setIfEnv(&cfg.Postgres.Port, "DB_PORT")
	setIfEnv(&cfg.Postgres.User, "DB_USER")
	setIfEnv(&cfg.Postgres.Password, "DB_PASSWORD")
	setIfEnv(&cfg.Postgres.DBName, "DB_NAME")
	setIfEnv(&cfg.Postgres.SSLMode, "DB_SSLMODE")
	setIfEnv(&cfg.Session.CookieName, "SESSION_COOKIE_NAME")

	if v := os.Getenv("SESSION_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			cfg.Session.TTL = Duration(ttl)
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "shop-service"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Postgres.Port == "" {
		cfg.Postgres.Port = "5432"
	}
	if cfg.Postgres.SSLMode == "" {
		cfg.Postgres.SSLMode = "disable"
	}
	if cfg.Postgres.MaxConns == 0 {
		cfg.Postgres.MaxConns = 10
	}
	if cfg.Postgres.MinConns == 0 {
		cfg.Postgres.MinConns = 2
	}
	if cfg.Postgres.MaxConnLifetime == 0 {
		cfg.Postgres.MaxConnLifetime = Duration(time.Hour)
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "session_id"
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = Duration(24 * time.Hour)
	}
}

func setIfEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
