// Package config loads the editor's YAML configuration file and applies
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
	"github.com/dd0wney/cluso-grapheditor/pkg/grapheditor"
	"github.com/dd0wney/cluso-grapheditor/pkg/layout"
	"github.com/dd0wney/cluso-grapheditor/pkg/logging"
	"github.com/dd0wney/cluso-grapheditor/pkg/validation"
)

// Environment variables read by Load.
const (
	EnvConfigPath  = "GRAPHEDITOR_CONFIG"
	EnvLogLevel    = "GRAPHEDITOR_LOG_LEVEL"
	EnvMetricsAddr = "GRAPHEDITOR_METRICS_ADDR"
	// EnvFallbackLogLevel is the generic variable the logging package also honours.
	EnvFallbackLogLevel = "LOG_LEVEL"
)

// Config is the complete editor configuration.
type Config struct {
	Editor  EditorConfig  `yaml:"editor"`
	TUI     TUIConfig     `yaml:"tui"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// EditorConfig tunes the interaction core.
type EditorConfig struct {
	ZoomMin       float64   `yaml:"zoom_min" validate:"gt=0"`
	ZoomMax       float64   `yaml:"zoom_max" validate:"gt=0"`
	ZoomStep      float64   `yaml:"zoom_step"`
	ZoomEase      float64   `yaml:"zoom_ease"`
	PasteOffset   geom.Vec2 `yaml:"paste_offset"`
	FitMargin     geom.Vec2 `yaml:"fit_margin"`
	DragThreshold float64   `yaml:"drag_threshold" validate:"gte=0"`
	GridSpacing   float64   `yaml:"grid_spacing" validate:"gt=0"`
	FontSize      float64   `yaml:"font_size" validate:"gt=0"`
}

// TUIConfig configures the terminal shell.
type TUIConfig struct {
	// CellWidth and CellHeight are the pixel size one terminal cell stands for.
	CellWidth       float64       `yaml:"cell_width" validate:"gt=0"`
	CellHeight      float64       `yaml:"cell_height" validate:"gt=0"`
	FrameInterval   time.Duration `yaml:"frame_interval"`
	SystemClipboard bool          `yaml:"system_clipboard"`
	JournalSize     int           `yaml:"journal_size" validate:"gt=0"`
	Layout          string        `yaml:"layout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// File receives the JSON log; the terminal belongs to the UI.
	File string `yaml:"file"`
}

type MetricsConfig struct {
	// Addr is the listen address of the /metrics endpoint; empty disables it.
	Addr string `yaml:"addr"`
}

// Default returns the stock configuration.
func Default() *Config {
	ed := grapheditor.DefaultConfig()
	return &Config{
		Editor: EditorConfig{
			ZoomMin:       ed.ZoomMin,
			ZoomMax:       ed.ZoomMax,
			ZoomStep:      ed.ZoomStep,
			ZoomEase:      ed.ZoomEase,
			PasteOffset:   ed.PasteOffset,
			FitMargin:     ed.FitMargin,
			DragThreshold: ed.DragThreshold,
			GridSpacing:   ed.Style.GridSpacing,
			FontSize:      ed.Style.FontSize,
		},
		TUI: TUIConfig{
			CellWidth:     8,
			CellHeight:    16,
			FrameInterval: 33 * time.Millisecond,
			JournalSize:   256,
			Layout:        "hierarchical",
		},
		Log: LogConfig{
			Level: "info",
			File:  "grapheditor.log",
		},
	}
}

// Load reads the file at path over the defaults, applies environment
// overrides and validates the result. An empty path falls back to
// GRAPHEDITOR_CONFIG; with neither set only defaults and environment apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if err := cfg.decode(f); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Log.Level = level
	} else if level := os.Getenv(EnvFallbackLogLevel); level != "" {
		c.Log.Level = level
	}
	if addr, ok := os.LookupEnv(EnvMetricsAddr); ok {
		c.Metrics.Addr = addr
	}
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	errs := []error{validation.Struct(c)}

	ed := validation.NewConfigValidator("editor").
		LessOrEqual("zoom_min", c.Editor.ZoomMin, c.Editor.ZoomMax).
		RangeFloat("zoom_step", c.Editor.ZoomStep, 0.01, 0.9).
		RangeFloat("zoom_ease", c.Editor.ZoomEase, 0.01, 1)
	errs = append(errs, ed.Validate())

	tui := validation.NewConfigValidator("tui").
		RangeDuration("frame_interval", c.TUI.FrameInterval, 5*time.Millisecond, time.Second).
		OneOf("layout", c.TUI.Layout, layout.Names)
	errs = append(errs, tui.Validate())

	lg := validation.NewConfigValidator("log").
		OneOf("level", c.Log.Level, []string{"debug", "info", "warn", "warning", "error"})
	errs = append(errs, lg.Validate())

	m := validation.NewConfigValidator("metrics").
		When(c.Metrics.Addr != "", func(cv *validation.ConfigValidator) {
			cv.Custom("addr", func() error {
				_, _, err := net.SplitHostPort(c.Metrics.Addr)
				return err
			})
		})
	errs = append(errs, m.Validate())

	return errors.Join(errs...)
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Log.Level)
}

// EditorConfig converts the editor section for grapheditor.New.
func (c *Config) EditorConfig() grapheditor.Config {
	ed := grapheditor.DefaultConfig()
	ed.ZoomMin = c.Editor.ZoomMin
	ed.ZoomMax = c.Editor.ZoomMax
	ed.ZoomStep = c.Editor.ZoomStep
	ed.ZoomEase = c.Editor.ZoomEase
	ed.PasteOffset = c.Editor.PasteOffset
	ed.FitMargin = c.Editor.FitMargin
	ed.DragThreshold = c.Editor.DragThreshold
	ed.Style.GridSpacing = c.Editor.GridSpacing
	ed.Style.FontSize = c.Editor.FontSize
	return ed
}

// Encode writes c as YAML.
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
