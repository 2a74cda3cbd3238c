// Package config loads editor settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"

	"placer/internal/engine"
	"placer/internal/highlight"
	"placer/internal/placement"
)

// DefaultPath is where cmd/placer looks when no -config flag is given.
const DefaultPath = "config/placer.toml"

type Config struct {
	Window       Window       `toml:"window"`
	Colors       Colors       `toml:"colors"`
	Grid         Grid         `toml:"grid"`
	Placement    Placement    `toml:"placement"`
	Highlight    Highlight    `toml:"highlight"`
	Catalog      Catalog      `toml:"catalog"`
	Notification Notification `toml:"notification"`
}

type Window struct {
	Title        string `toml:"title"`
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	CatalogWidth int    `toml:"catalog_width"` // left panel, pixels
	TargetFPS    int    `toml:"target_fps"`
}

// Colors are color names ("red", "skyblue") or #rrggbb / #rrggbbaa.
type Colors struct {
	Hover   string `toml:"hover"`
	Valid   string `toml:"valid"`
	Invalid string `toml:"invalid"`
	Area    string `toml:"area"`
}

type Grid struct {
	Cell   float32 `toml:"cell"`
	Offset float32 `toml:"offset"`
}

type Placement struct {
	Policy       string     `toml:"policy"` // "intersects" or "contains"
	LockVertical bool       `toml:"lock_vertical"`
	AreaDepth    float32    `toml:"area_depth"`
	AreaOffset   [3]float32 `toml:"area_offset"`
	PlaneHeight  float32    `toml:"plane_height"`
}

type Highlight struct {
	Opacity     float32 `toml:"opacity"`
	RenderOrder int     `toml:"render_order"`
}

type Catalog struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
}

type Notification struct {
	Seconds float64 `toml:"seconds"`
}

func Default() Config {
	return Config{
		Window: Window{
			Title:        "placer",
			Width:        1280,
			Height:       720,
			CatalogWidth: 320,
			TargetFPS:    60,
		},
		Colors: Colors{
			Hover:   "#0000ff",
			Valid:   "#0000ff",
			Invalid: "#db5516",
			Area:    "#33e678",
		},
		Grid: Grid{Cell: 1, Offset: 0.5},
		Placement: Placement{
			Policy:       placement.PolicyIntersects.String(),
			LockVertical: true,
			AreaDepth:    3,
			AreaOffset:   [3]float32{0, -2, 0},
		},
		Highlight: Highlight{Opacity: 0.6, RenderOrder: 10},
		Catalog:   Catalog{Path: "assets/catalog.yaml", Watch: true},
		Notification: Notification{
			Seconds: 2,
		},
	}
}

// Load reads path on top of Default(). A missing file is not an error; the
// defaults are returned as they are.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports every problem in cfg at once.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.Palette(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.AreaColor(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Policy(); err != nil {
		errs = append(errs, err)
	}
	if c.Grid.Cell < 0 {
		errs = append(errs, fmt.Errorf("grid.cell must not be negative, got %v", c.Grid.Cell))
	}
	if c.Placement.AreaDepth <= 0 {
		errs = append(errs, fmt.Errorf("placement.area_depth must be positive, got %v", c.Placement.AreaDepth))
	}
	if c.Highlight.Opacity < 0 || c.Highlight.Opacity > 1 {
		errs = append(errs, fmt.Errorf("highlight.opacity must be in [0,1], got %v", c.Highlight.Opacity))
	}
	return errors.Join(errs...)
}

func parseColor(key, s string) (color.RGBA, error) {
	c, ok := engine.LookupColor(s)
	if !ok {
		return color.RGBA{}, fmt.Errorf("colors.%s: unknown color %q", key, s)
	}
	return c, nil
}

func (c Config) Palette() (highlight.Palette, error) {
	hover, err1 := parseColor("hover", c.Colors.Hover)
	valid, err2 := parseColor("valid", c.Colors.Valid)
	invalid, err3 := parseColor("invalid", c.Colors.Invalid)
	if err := errors.Join(err1, err2, err3); err != nil {
		return highlight.Palette{}, err
	}
	return highlight.Palette{Hover: hover, Valid: valid, Invalid: invalid}, nil
}

func (c Config) AreaColor() (color.RGBA, error) {
	return parseColor("area", c.Colors.Area)
}

func (c Config) Policy() (placement.Policy, error) {
	return placement.ParsePolicy(c.Placement.Policy)
}

func (c Config) GridSpec() placement.Grid {
	return placement.Grid{Cell: c.Grid.Cell, Offset: c.Grid.Offset}
}

func (c Config) VolumeOptions() placement.VolumeOptions {
	o := c.Placement.AreaOffset
	return placement.VolumeOptions{
		Depth:  c.Placement.AreaDepth,
		Offset: mgl32.Vec3{o[0], o[1], o[2]},
	}
}

func (c Config) NotificationDuration() time.Duration {
	return time.Duration(c.Notification.Seconds * float64(time.Second))
}
