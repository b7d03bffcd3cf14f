package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"mdsync/internal/preview"
)

// SyncConfig tunes scroll synchronization and preview layout. It is read
// from the YAML file named by SYNC_CONFIG_FILE; durations use Go syntax
// ("100ms").
type SyncConfig struct {
	ThrottleInterval time.Duration        `yaml:"throttle_interval"`
	Cooldown         time.Duration        `yaml:"cooldown"`
	ScrollMargin     float64              `yaml:"scroll_margin"`
	MatchThreshold   float64              `yaml:"match_threshold"`
	ScrollBehavior   string               `yaml:"scroll_behavior"`
	CodeScorer       string               `yaml:"code_scorer"`
	HighlightStyle   string               `yaml:"highlight_style"`
	Layout           preview.LayoutConfig `yaml:"layout"`
}

// DefaultSyncConfig returns the built-in tuning.
func DefaultSyncConfig() SyncConfig {
	return SyncConfig{
		ThrottleInterval: 100 * time.Millisecond,
		Cooldown:         100 * time.Millisecond,
		ScrollMargin:     50,
		MatchThreshold:   0.7,
		ScrollBehavior:   "smooth",
		CodeScorer:       "text",
		Layout:           preview.DefaultLayout(),
	}
}

// LoadSyncConfig reads a tuning file. Keys missing from the file keep their
// default values.
func LoadSyncConfig(path string) (SyncConfig, error) {
	cfg := DefaultSyncConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return SyncConfig{}, fmt.Errorf("failed to read sync config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SyncConfig{}, fmt.Errorf("failed to parse sync config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return SyncConfig{}, fmt.Errorf("invalid sync config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the tuning values.
func (c SyncConfig) Validate() error {
	var errs []error
	if c.ThrottleInterval < 0 {
		errs = append(errs, errors.New("throttle_interval must not be negative"))
	}
	if c.Cooldown < 0 {
		errs = append(errs, errors.New("cooldown must not be negative"))
	}
	if c.ScrollMargin < 0 {
		errs = append(errs, errors.New("scroll_margin must not be negative"))
	}
	if c.MatchThreshold <= 0 || c.MatchThreshold > 1 {
		errs = append(errs, errors.New("match_threshold must be in (0, 1]"))
	}
	if c.ScrollBehavior != "smooth" && c.ScrollBehavior != "instant" {
		errs = append(errs, fmt.Errorf("scroll_behavior must be smooth or instant, got %q", c.ScrollBehavior))
	}
	if c.CodeScorer != "text" && c.CodeScorer != "lines" {
		errs = append(errs, fmt.Errorf("code_scorer must be text or lines, got %q", c.CodeScorer))
	}
	if c.Layout.LineHeight <= 0 {
		errs = append(errs, errors.New("layout.line_height must be positive"))
	}
	if c.Layout.CharsPerLine <= 0 {
		errs = append(errs, errors.New("layout.chars_per_line must be positive"))
	}
	if c.Layout.BlockGap < 0 || c.Layout.ImageHeight < 0 {
		errs = append(errs, errors.New("layout gaps must not be negative"))
	}
	return errors.Join(errs...)
}
