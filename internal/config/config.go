package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	AppPort       string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPass        string
	DBName        string
	JWTSecret     string
	UploadDir     string
	PublicBaseURL string
	RabbitMQURL   string
}

// Load builds Config from environment variables via Viper with sensible defaults.
func Load() *Config {
	viper.SetDefault("APP_PORT", ":4000")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASS", "postgres")
	viper.SetDefault("DB_DATABASE", "artisanhub")
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("PUBLIC_BASE_URL", "http://localhost:4000")
	viper.AutomaticEnv()

	return &Config{
		AppPort:       viper.GetString("APP_PORT"),
		DBHost:        viper.GetString("DB_HOST"),
		DBPort:        viper.GetString("DB_PORT"),
		DBUser:        viper.GetString("DB_USER"),
		DBPass:        viper.GetString("DB_PASS"),
		DBName:        viper.GetString("DB_DATABASE"),
		JWTSecret:     viper.GetString("JWT_SECRET"),
		UploadDir:     viper.GetString("UPLOAD_DIR"),
		PublicBaseURL: viper.GetString("PUBLIC_BASE_URL"),
		RabbitMQURL:   viper.GetString("RABBITMQ_URL"),
	}
}

// PostgresDSN assembles the connection string for the gorm postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName)
}
