package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Dotenv string `mapstructure:"dotenv"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Repositories struct {
		Postgres struct {
			Host     string `mapstructure:"host"`
			Password string `mapstructure:"password"`
			Port     string `mapstructure:"port"`
			Username string `mapstructure:"username"`
			DB       string `mapstructure:"db"`
			SSLMode  string `mapstructure:"sslmode"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	// Planner overrides the engine's tuned defaults; zero values keep the
	// baseline profile. Meant for per-locale transit/time profiles.
	Planner struct {
		RegionRadiusKm            float64 `mapstructure:"regionRadiusKm"`
		MicroClusterTravelMinutes int     `mapstructure:"microClusterTravelMinutes"`
		DailyTimeBudgetMinutes    int     `mapstructure:"dailyTimeBudgetMinutes"`
		OverloadCeilingMinutes    int     `mapstructure:"overloadCeilingMinutes"`
		AverageSpeedKmh           float64 `mapstructure:"averageSpeedKmh"`
		TravelMinutesPerKm        float64 `mapstructure:"travelMinutesPerKm"`
	} `mapstructure:"planner"`
	Cache struct {
		TTL             time.Duration `mapstructure:"ttl"`
		CleanupInterval time.Duration `mapstructure:"cleanupInterval"`
	} `mapstructure:"cache"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config, falling back to the embedded copy.
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}
	return config, nil
}
