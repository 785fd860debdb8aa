package main

import (
	"strings"

	"github.com/spf13/viper"
)

// Config stores all configuration for the service. Values are read by viper
// from environment variables or a local .env file.
type Config struct {
	Host              string `mapstructure:"HOST"`
	Port              string `mapstructure:"PORT"`
	Env               string `mapstructure:"ENV"`
	BackendBaseURL    string `mapstructure:"BACKEND_BASE_URL"`
	StoreID           string `mapstructure:"STORE_ID"`
	Language          string `mapstructure:"LANGUAGE"`
	TargetGroup       string `mapstructure:"TARGET_GROUP"`
	RegistrationRoute string `mapstructure:"REGISTRATION_ROUTE"`
	TableName         string `mapstructure:"TABLE_NAME"`
	PlatformBaseURL   string `mapstructure:"PLATFORM_BASE_URL"`
	PlatformAPIKey    string `mapstructure:"PLATFORM_API_KEY"`
	TurnstileSecret   string `mapstructure:"TURNSTILE_SECRET"`
	FromAddress       string `mapstructure:"FROM_ADDRESS"`
	AllowedOrigins    string `mapstructure:"ALLOWED_ORIGINS"`
}

// AllowedOriginList splits the comma separated ALLOWED_ORIGINS value.
func (c Config) AllowedOriginList() []string {
	if c.AllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.AllowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}

// LoadConfig reads configuration from a .env file if one exists, with
// environment variables taking precedence.
func LoadConfig() (Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("HOST", "0.0.0.0")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "local")
	viper.SetDefault("LANGUAGE", "en")
	viper.SetDefault("TARGET_GROUP", "Wholesale")
	viper.SetDefault("REGISTRATION_ROUTE", "/wholesale-register")

	for _, key := range []string{
		"HOST", "PORT", "ENV",
		"BACKEND_BASE_URL", "STORE_ID", "LANGUAGE",
		"TARGET_GROUP", "REGISTRATION_ROUTE", "TABLE_NAME",
		"PLATFORM_BASE_URL", "PLATFORM_API_KEY", "TURNSTILE_SECRET",
		"FROM_ADDRESS", "ALLOWED_ORIGINS",
	} {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, err
	}

	return config, nil
}
