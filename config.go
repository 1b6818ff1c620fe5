package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katistix/servicetrack/internal/catalog"
	"github.com/katistix/servicetrack/internal/logging"
	"github.com/katistix/servicetrack/internal/tracker"
)

// --- CONFIGURATION ---

const defaultConfigPath = "servicetrack.config.json"

// TrackerConfig defines the structure of the config file. Every field is optional.
type TrackerConfig struct {
	OrderNumber   string `json:"order_number" yaml:"order_number"`
	InitialStage  int    `json:"initial_stage" yaml:"initial_stage"`
	CelebrationMS int    `json:"celebration_ms" yaml:"celebration_ms"`
	ReviewDelayMS int    `json:"review_delay_ms" yaml:"review_delay_ms"`
	SupportPhone  string `json:"support_phone" yaml:"support_phone"`
	Catalog       string `json:"catalog" yaml:"catalog"` // path to an alternative stage list
	LogLevel      string `json:"log_level" yaml:"log_level"`
}

func defaultConfig() TrackerConfig {
	return TrackerConfig{
		OrderNumber:   "12345",
		InitialStage:  tracker.DefaultInitialStage,
		CelebrationMS: int(tracker.DefaultCelebrationDuration / time.Millisecond),
		ReviewDelayMS: int(tracker.DefaultReviewDelay / time.Millisecond),
		SupportPhone:  "1-800-555-0199",
		LogLevel:      logging.LevelInfo,
	}
}

// loadConfig reads path on top of the defaults. A missing file is only an error
// when the caller asked for it explicitly.
func loadConfig(path string, required bool) (TrackerConfig, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c TrackerConfig) validate() error {
	if c.InitialStage < 1 {
		return fmt.Errorf("initial_stage must be at least 1, got %d", c.InitialStage)
	}
	if c.CelebrationMS < 0 {
		return fmt.Errorf("celebration_ms must not be negative, got %d", c.CelebrationMS)
	}
	if c.ReviewDelayMS < 0 {
		return fmt.Errorf("review_delay_ms must not be negative, got %d", c.ReviewDelayMS)
	}
	return nil
}

// --- HELPER FUNCTIONS ---

// loadCatalog returns the configured stage list, or the built-in one.
func (c TrackerConfig) loadCatalog() (catalog.Catalog, error) {
	if c.Catalog == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(c.Catalog)
}

// trackerOptions maps the config onto tracker options.
func (c TrackerConfig) trackerOptions(logger *slog.Logger) []tracker.Option {
	return []tracker.Option{
		tracker.WithInitialStage(c.InitialStage),
		tracker.WithCelebrationDuration(time.Duration(c.CelebrationMS) * time.Millisecond),
		tracker.WithReviewDelay(time.Duration(c.ReviewDelayMS) * time.Millisecond),
		tracker.WithLogger(logger),
	}
}

// orderLabel formats the order number for the header.
func orderLabel(order string) string {
	order = strings.TrimSpace(order)
	if order == "" {
		return ""
	}
	return "Order #" + strings.TrimPrefix(order, "#")
}
