package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config holds the configuration for the reelstats engine and its
// presentation layers.
type Config struct {
	// Dataset is the path to the catalog CSV file.
	Dataset string `yaml:"dataset" mapstructure:"dataset"`
	// Listen is the address the HTTP export server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// LogLevel is the log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// CacheTTL is the report result cache TTL in seconds, used by the
	// HTTP export server.
	CacheTTL int `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	// Reports holds the parameter defaults for reports that take arguments.
	Reports *ReportsConfig `yaml:"reports" mapstructure:"reports"`
}

// ReportsConfig holds the default parameters of the report catalog.
type ReportsConfig struct {
	// TopCountries is the default N for the top-countries report.
	TopCountries int `yaml:"top_countries" mapstructure:"top_countries"`
	// TopActors is the default N for the top-actors-in-country report.
	TopActors int `yaml:"top_actors" mapstructure:"top_actors"`
	// RecentYears is the default window for the recent-content report.
	RecentYears int `yaml:"recent_years" mapstructure:"recent_years"`
	// ActorRecentYears is the default window for the actor-recent report.
	ActorRecentYears int `yaml:"actor_recent_years" mapstructure:"actor_recent_years"`
	// MinSeasons is the default threshold for the long-series report.
	MinSeasons int `yaml:"min_seasons" mapstructure:"min_seasons"`
	// ShareTopYears is the number of years kept by the india-year-share report.
	ShareTopYears int `yaml:"share_top_years" mapstructure:"share_top_years"`
}

// Load reads the configuration from the given file, falling back to a
// search in common locations and finally to defaults. Environment variables
// with a REELSTATS_ prefix override file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("REELSTATS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configFileFound bool
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.reelstats")
		v.AddConfigPath("/etc/reelstats")
	}

	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with REELSTATS_ prefix will override config file values")
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("dataset", "netflix_titles.csv")
	v.SetDefault("listen", "0.0.0.0:3003")
	v.SetDefault("log_level", "info")
	v.SetDefault("cache_ttl", 300)

	v.SetDefault("reports.top_countries", 5)
	v.SetDefault("reports.top_actors", 10)
	v.SetDefault("reports.recent_years", 5)
	v.SetDefault("reports.actor_recent_years", 10)
	v.SetDefault("reports.min_seasons", 5)
	v.SetDefault("reports.share_top_years", 5)
}

func validateConfig(c *Config) error {
	if c.Dataset == "" {
		return fmt.Errorf("dataset path is required")
	}
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative")
	}
	if c.Reports == nil {
		return fmt.Errorf("reports config is required")
	}
	for name, value := range map[string]int{
		"reports.top_countries":      c.Reports.TopCountries,
		"reports.top_actors":         c.Reports.TopActors,
		"reports.recent_years":       c.Reports.RecentYears,
		"reports.actor_recent_years": c.Reports.ActorRecentYears,
		"reports.min_seasons":        c.Reports.MinSeasons,
		"reports.share_top_years":    c.Reports.ShareTopYears,
	} {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}
