// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Session  SessionConfig  `mapstructure:"session"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type ScheduleConfig struct {
	// Intervals is the forgetting schedule: nominal review interval in days
	// per stage.
	Intervals []int `mapstructure:"intervals" validate:"required,min=1,dive,gte=1"`
	// RequiredStreak is how many consecutive correct answers promote a
	// learning item into review.
	RequiredStreak int `mapstructure:"required_streak" validate:"gte=1"`
	// DailyLimit caps how many due items (learning and review combined) one
	// day may hold; the excess is postponed.
	DailyLimit int `mapstructure:"daily_limit" validate:"gte=1"`
	// DayCutoffHour is the wall-clock hour before which a run still belongs
	// to the previous study day.
	DayCutoffHour int `mapstructure:"day_cutoff_hour" validate:"gte=0,lte=23"`
}

type SessionConfig struct {
	// SpeakCommand is an external player command the correct answer is
	// passed to after each reveal. Empty disables speech playback.
	SpeakCommand string `mapstructure:"speak_command"`
	// ShowHistory enables the per-item answer history dump after a session.
	ShowHistory bool `mapstructure:"show_history"`
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/recall")
	}

	v.SetDefault("database.path", filepath.Join("data", "recall.db"))
	v.SetDefault("schedule.intervals", []int{1, 2, 3, 7, 15, 30, 60, 90, 120})
	v.SetDefault("schedule.required_streak", 3)
	v.SetDefault("schedule.daily_limit", 30)
	v.SetDefault("schedule.day_cutoff_hour", 3)
	v.SetDefault("session.speak_command", "")
	v.SetDefault("session.show_history", false)

	if err := v.BindEnv("database.path", "RECALL_DATABASE_PATH"); err != nil {
		return nil, fmt.Errorf("failed to bind RECALL_DATABASE_PATH environment variable: %w", err)
	}
	if err := v.BindEnv("session.speak_command", "RECALL_SPEAK_COMMAND"); err != nil {
		return nil, fmt.Errorf("failed to bind RECALL_SPEAK_COMMAND environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
