package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	Log    LogConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Intake IntakeConfig
	Gemini GeminiConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type LogConfig struct {
	Level string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	TimeZone string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

// IntakeConfig controls the intake sessions and the remote save call.
type IntakeConfig struct {
	SaveURL     string
	// SaveSecret authenticates calls to save_data; see INTAKE_SAVE_SECRET.
	SaveSecret  string
	SaveTimeout time.Duration
	SaveRetries int
	SessionIdle time.Duration
	// StateTTL expires stored intake state; zero keeps it forever.
	StateTTL time.Duration
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("INTAKE_SAVE_RETRIES", 2)
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")

	// A missing .env is fine; settings then come from the environment.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
			TimeZone: viper.GetString("DB_TIMEZONE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       viper.GetString("JWT_SECRET"),
			AccessExpiry: durationOr("JWT_ACCESS_EXPIRY", 15*time.Minute),
		},
		Intake: IntakeConfig{
			SaveURL:     viper.GetString("INTAKE_SAVE_URL"),
			SaveSecret:  viper.GetString("INTAKE_SAVE_SECRET"),
			SaveTimeout: durationOr("INTAKE_SAVE_TIMEOUT", 15*time.Second),
			SaveRetries: viper.GetInt("INTAKE_SAVE_RETRIES"),
			SessionIdle: durationOr("INTAKE_SESSION_IDLE", 30*time.Minute),
			StateTTL:    durationOr("INTAKE_STATE_TTL", 0),
		},
		Gemini: GeminiConfig{
			APIKey: viper.GetString("GEMINI_API_KEY"),
			Model:  viper.GetString("GEMINI_MODEL"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func durationOr(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil {
		return fallback
	}
	return d
}
