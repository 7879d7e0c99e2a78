package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort    string `mapstructure:"SERVER_PORT"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	ClientOrigin  string `mapstructure:"CLIENT_ORIGIN"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	AWSRegion     string `mapstructure:"AWS_REGION"`
	EmailFrom     string `mapstructure:"EMAIL_FROM"`
	OrderAlertsTo string `mapstructure:"ORDER_ALERTS_TO"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env") // Name of config file (without extension)
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("DATABASE_URL", "postgres://postgres:password@db:5432/rueating")
	viper.SetDefault("CLIENT_ORIGIN", "*")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("EMAIL_FROM", "")
	viper.SetDefault("ORDER_ALERTS_TO", "")

	viper.AutomaticEnv() // Read in environment variables that match

	err := viper.ReadInConfig() // Find and read the config file
	if err != nil {
		// Handle errors reading the config file, but allow it if it's just "not found"
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No .env file found.")
		} else {
			return nil, err
		}
	}

	var cfg Config
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
