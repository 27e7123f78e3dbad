package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config — вся конфигурация сервиса.
type Config struct {
	AppPort   string `mapstructure:"APP_PORT"`
	Env       string `mapstructure:"ENV"`
	JWTSecret string `mapstructure:"JWT_SECRET"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`

	DB DBConfig `mapstructure:",squash"`
}

type DBConfig struct {
	Host            string `mapstructure:"DB_HOST"`
	Port            int    `mapstructure:"DB_PORT"`
	User            string `mapstructure:"DB_USER"`
	Password        string `mapstructure:"DB_PASSWORD"`
	Name            string `mapstructure:"DB_NAME"`
	SSLMode         string `mapstructure:"DB_SSLMODE"`
	TimeZone        string `mapstructure:"DB_TIMEZONE"`
	MaxOpenConns    int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifeTime int    `mapstructure:"DB_CONN_MAX_LIFETIME_MIN"` // минут
}

// Load читает config.yaml (если есть) и переменные окружения.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_HOST", "postgres")
	viper.SetDefault("DB_PORT", 5432)
	viper.SetDefault("DB_USER", "workspace")
	viper.SetDefault("DB_PASSWORD", "workspace")
	viper.SetDefault("DB_NAME", "workspace_db")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_MIN", 30)

	// Файл опционален: без него работаем только на env.
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, fmt.Errorf("invalid DB config: host/user/name must not be empty")
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
