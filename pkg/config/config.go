package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Stats     StatsConfig     `mapstructure:"stats"`
	Assistant AssistantConfig `mapstructure:"assistant"`
}

type ServerConfig struct {
	Port     int           `mapstructure:"port"`
	Mode     string        `mapstructure:"mode"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Timezone string        `mapstructure:"timezone"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret      string `mapstructure:"jwt_secret"`
	JWTExpiryHours int    `mapstructure:"jwt_expiry_hours"`
	JWTIssuer      string `mapstructure:"jwt_issuer"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StatsConfig controls the derived-metrics surface: which day opens the
// week, which task categories the time distribution reports on, and how
// the work/life split is partitioned.
type StatsConfig struct {
	WeekStart      string        `mapstructure:"week_start"`
	Categories     []string      `mapstructure:"categories"`
	WorkCategories []string      `mapstructure:"work_categories"`
	LifeCategories []string      `mapstructure:"life_categories"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	TopExpenses    int           `mapstructure:"top_expenses"`
}

type AssistantConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Persona string `mapstructure:"persona"`
}

func LoadConfig(configPath string) (*Config, error) {
	var config Config

	// If CONFIG_FILE environment variable is set, use it
	if envConfigFile := os.Getenv("CONFIG_FILE"); envConfigFile != "" {
		configPath = envConfigFile
	}

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		dir := filepath.Dir(configPath)
		file := filepath.Base(configPath)
		ext := filepath.Ext(file)
		name := strings.TrimSuffix(file, ext)

		v.AddConfigPath(dir)
		v.SetConfigName(name)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.SetConfigName("config")
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine, defaults plus env cover everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error loading config file: %v", err)
		}
	}

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envVars := map[string]string{
		"database.host":         "DB_HOST",
		"database.port":         "DB_PORT",
		"database.user":         "DB_USER",
		"database.password":     "DB_PASSWORD",
		"database.name":         "DB_NAME",
		"database.sslmode":      "DB_SSLMODE",
		"server.port":           "SERVER_PORT",
		"server.mode":           "SERVER_MODE",
		"server.timeout":        "SERVER_TIMEOUT",
		"server.timezone":       "SERVER_TIMEZONE",
		"redis.host":            "REDIS_HOST",
		"redis.port":            "REDIS_PORT",
		"redis.password":        "REDIS_PASSWORD",
		"redis.db":              "REDIS_DB",
		"auth.jwt_secret":       "JWT_SECRET",
		"auth.jwt_issuer":       "JWT_ISSUER",
		"auth.jwt_expiry_hours": "JWT_EXPIRY_HOURS",
		"stats.week_start":      "STATS_WEEK_START",
		"logging.level":         "LOG_LEVEL",
		"logging.format":        "LOG_FORMAT",
	}

	for configKey, envVar := range envVars {
		if value := os.Getenv(envVar); value != "" {
			switch envVar {
			case "DB_PORT", "REDIS_PORT", "REDIS_DB", "SERVER_PORT", "JWT_EXPIRY_HOURS":
				if intVal, err := strconv.Atoi(value); err == nil {
					v.Set(configKey, intVal)
				}
			case "SERVER_TIMEOUT":
				if d, err := time.ParseDuration(value); err == nil {
					v.Set(configKey, d)
				}
			default:
				v.Set(configKey, value)
			}
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "development")
	v.SetDefault("server.timeout", 30*time.Second)
	v.SetDefault("server.timezone", "UTC")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("auth.jwt_expiry_hours", 24)
	v.SetDefault("auth.jwt_issuer", "northstar")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("stats.week_start", "sunday")
	v.SetDefault("stats.categories", []string{"work", "personal", "health", "social", "learning"})
	v.SetDefault("stats.work_categories", []string{"work"})
	v.SetDefault("stats.life_categories", []string{"personal", "social", "health"})
	v.SetDefault("stats.cache_ttl", 5*time.Minute)
	v.SetDefault("stats.top_expenses", 5)
	v.SetDefault("assistant.enabled", true)
	v.SetDefault("assistant.persona", "concise")
}
