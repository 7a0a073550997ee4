package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB  int    `mapstructure:"REDIS_SESSION_DB"`
	RedisReminderDB int    `mapstructure:"REDIS_REMINDER_DB"`

	// Gemini API key for the extraction capability.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Weather forecast service.
	WeatherAPIKey  string  `mapstructure:"WEATHER_API_KEY"`
	WeatherBaseURL string  `mapstructure:"WEATHER_BASE_URL"`
	DefaultCity    string  `mapstructure:"DEFAULT_CITY"`
	DefaultLat     float64 `mapstructure:"DEFAULT_LAT"`
	DefaultLon     float64 `mapstructure:"DEFAULT_LON"`

	// Google Cloud credentials for speech-to-text.
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("REDIS_REMINDER_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("WEATHER_API_KEY", "")
	viper.SetDefault("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5")
	viper.SetDefault("DEFAULT_CITY", "London")
	viper.SetDefault("DEFAULT_LAT", 51.5072)
	viper.SetDefault("DEFAULT_LON", -0.1276)
	viper.SetDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
