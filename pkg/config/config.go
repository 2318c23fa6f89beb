package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Port            string `mapstructure:"PORT"`
	DatabaseURL     string `mapstructure:"DATABASE_URL"`
	AdminKey        string `mapstructure:"ADMIN_KEY"`
	RateLimitWindow int    `mapstructure:"RATE_LIMIT_WINDOW"`
	RateLimitMax    int    `mapstructure:"RATE_LIMIT_MAX"`
	RabbitMQURL     string `mapstructure:"RABBITMQ_URL"`
	ServiceName     string `mapstructure:"SERVICE_NAME"`
	StaticDir       string `mapstructure:"STATIC_DIR"`
}

func Read() *AppConfig {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	bindEnvVariables()
	setDefaults()

	var appConfig AppConfig
	err := viper.Unmarshal(&appConfig)
	if err != nil {
		panic(fmt.Errorf("fatal error unmarshalling config: %w", err))
	}

	return &appConfig
}

func bindEnvVariables() {
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("ADMIN_KEY")
	_ = viper.BindEnv("RATE_LIMIT_WINDOW")
	_ = viper.BindEnv("RATE_LIMIT_MAX")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("SERVICE_NAME")
	_ = viper.BindEnv("STATIC_DIR")
}

func setDefaults() {
	viper.SetDefault("PORT", "8080")
	// DATABASE_URL without a postgres:// scheme is treated as a SQLite file path.
	viper.SetDefault("DATABASE_URL", "comments.db")
	viper.SetDefault("RATE_LIMIT_WINDOW", 60)
	viper.SetDefault("RATE_LIMIT_MAX", 5)
	viper.SetDefault("SERVICE_NAME", "guestbook")
	viper.SetDefault("STATIC_DIR", "./frontend")
}
