package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// Redis (calibration state persistence)
	RedisURL string `mapstructure:"REDIS_URL"`

	// Simulation
	ShotCap           int `mapstructure:"SHOT_CAP"`
	SimulationWorkers int `mapstructure:"SIMULATION_WORKERS"`

	// Calibration
	RoundsPerTier       int     `mapstructure:"ROUNDS_PER_TIER"`
	CalibrationAttempts int     `mapstructure:"CALIBRATION_ATTEMPTS"`
	CalibrationStep     float64 `mapstructure:"CALIBRATION_STEP"`
	CourseRating        float64 `mapstructure:"COURSE_RATING"`
	CourseSlope         float64 `mapstructure:"COURSE_SLOPE"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("SHOT_CAP", 0) // 0 means derive from par (3x par)
	viper.SetDefault("SIMULATION_WORKERS", 4)
	viper.SetDefault("ROUNDS_PER_TIER", 200)
	viper.SetDefault("CALIBRATION_ATTEMPTS", 25)
	viper.SetDefault("CALIBRATION_STEP", 0.05)
	viper.SetDefault("COURSE_RATING", 71.2)
	viper.SetDefault("COURSE_SLOPE", 125)

	// Read from environment
	viper.AutomaticEnv()

	// Read config file if exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
