package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds the tunable analysis defaults. Values come from built-in
// defaults, then .critpath.yaml, then CRITPATH_* environment variables.
type Config struct {
	// WorkdayHours converts days-denominated durations to hours.
	WorkdayHours int `mapstructure:"workday_hours"`
	// BottleneckThreshold is the slack ceiling as a fraction of project
	// duration for bottleneck detection.
	BottleneckThreshold float64 `mapstructure:"bottleneck_threshold"`
	// MaxPaths bounds how many alternate paths are reported.
	MaxPaths int `mapstructure:"max_paths"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		WorkdayHours:        8,
		BottleneckThreshold: 0.2,
		MaxPaths:            5,
	}
}

// Load reads configuration from the given directory (current directory when
// empty). A missing config file is not an error — defaults apply.
func Load(dir string) (Config, error) {
	v := viper.New()

	def := Defaults()
	v.SetDefault("workday_hours", def.WorkdayHours)
	v.SetDefault("bottleneck_threshold", def.BottleneckThreshold)
	v.SetDefault("max_paths", def.MaxPaths)

	v.SetConfigName(".critpath")
	v.SetConfigType("yaml")
	if dir == "" {
		dir = "."
	}
	v.AddConfigPath(dir)

	v.SetEnvPrefix("CRITPATH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return def, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return def, err
	}
	return cfg, nil
}
