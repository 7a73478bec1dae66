package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DBUrl     string `mapstructure:"DB_URL"`
	Port      string `mapstructure:"PORT"`
	JWTSecret string `mapstructure:"JWT_SECRET"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	EmailFrom    string `mapstructure:"EMAIL_FROM"`

	EmailTimeout time.Duration `mapstructure:"EMAIL_TIMEOUT"`
}

func LoadConfig() Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("EMAIL_TIMEOUT", 5*time.Second)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No .env file found, using env variables only")
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatal("config unmarshal error:", err)
	}

	if c.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	return c
}
