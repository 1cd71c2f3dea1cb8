// Package habits builds habit record pages for Notion habit tracker
// databases: it picks a configuration by page type, resolves the parent
// and analytics databases, and pre-populates an uncommitted record.
package habits

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownType indicates a page type with no configuration entry.
	ErrUnknownType = errors.New("unknown habit record type")
	// ErrConfig indicates missing required configuration (identifiers,
	// database names). Fatal, surfaced immediately, never retried.
	ErrConfig = errors.New("invalid habit configuration")
)

// TypeConfig describes one habit record type.
type TypeConfig struct {
	// DatabaseID is the parent database identifier. Takes precedence
	// over DatabaseName when both are set.
	DatabaseID string `yaml:"database_id,omitempty"`

	// DatabaseName resolves the parent database by exact title match
	// when no identifier is configured.
	DatabaseName string `yaml:"database_name,omitempty"`

	// TitlePrefix is prepended to the record title before today's date.
	TitlePrefix string `yaml:"title_prefix"`

	// CarryPrior copies the most recent record's identifier and "days"
	// value forward into the new record.
	CarryPrior bool `yaml:"carry_prior,omitempty"`
}

// Config is the immutable habit page configuration. It is loaded once and
// injected into the Builder rather than read from process-wide state.
type Config struct {
	// Types maps a page type ("daily", "weekly", ...) to its record
	// configuration.
	Types map[string]TypeConfig `yaml:"types"`

	// AnalyticsDatabase is the display name of the database holding the
	// analytics linking pages.
	AnalyticsDatabase string `yaml:"analytics_database,omitempty"`

	// SummaryPageID, when set, is used directly as the analytics page
	// instead of querying the analytics database.
	SummaryPageID string `yaml:"summary_page_id,omitempty"`
}

// DefaultConfig returns the built-in daily/weekly habit table.
func DefaultConfig() Config {
	return Config{
		Types: map[string]TypeConfig{
			"daily": {
				TitlePrefix: "Daily Habits:",
			},
			"weekly": {
				TitlePrefix: "Week:",
				CarryPrior:  true,
			},
		},
	}
}

// LoadConfig builds the effective configuration: defaults, overlaid with
// the YAML file at path (skipped when path is empty), overlaid with
// environment variables (<TYPE>_DATABASE_ID and SUMMARY_PAGE_ID).
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("%w: failed to read config file %s: %v", ErrConfig, path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: failed to parse config file %s: %v", ErrConfig, path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment variables onto the configuration.
func (c *Config) applyEnv() {
	for name, tc := range c.Types {
		envVar := strings.ToUpper(name) + "_DATABASE_ID"
		if id := os.Getenv(envVar); id != "" {
			tc.DatabaseID = id
			c.Types[name] = tc
		}
	}
	if id := os.Getenv("SUMMARY_PAGE_ID"); id != "" {
		c.SummaryPageID = id
	}
}

// TypeNames returns the configured page types in sorted order.
func (c Config) TypeNames() []string {
	names := make([]string, 0, len(c.Types))
	for name := range c.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
