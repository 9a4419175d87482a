// Package config holds the application settings. Values the user changes
// while drawing are remembered through the Fyne preferences store.
package config

import (
	"fmt"
	"os"

	"ArtistryCanvas/internal/state"
	"ArtistryCanvas/internal/stroke"

	"fyne.io/fyne/v2"
)

// Preference keys.
const (
	keyColor       = "canvas.color"
	keyStrokeWidth = "canvas.stroke_width"
	keyExportDir   = "canvas.export_dir"
)

// Config is the application configuration.
type Config struct {
	Title        string
	WindowWidth  float32
	WindowHeight float32
	Color        string
	StrokeWidth  float32
	ExportDir    string // default folder offered by the save dialogs
}

// Default returns the built-in configuration.
func Default() Config {
	dir, err := os.UserHomeDir()
	if err != nil {
		dir = "."
	}
	return Config{
		Title:        "Artistry Canvas Studio",
		WindowWidth:  1024,
		WindowHeight: 768,
		Color:        stroke.DefaultColor,
		StrokeWidth:  stroke.DefaultWidth,
		ExportDir:    dir,
	}
}

// Load returns the defaults overlaid with any remembered preferences.
func Load(p fyne.Preferences) Config {
	c := Default()
	if p == nil {
		return c
	}
	c.Color = p.StringWithFallback(keyColor, c.Color)
	c.StrokeWidth = float32(p.FloatWithFallback(keyStrokeWidth, float64(c.StrokeWidth)))
	c.ExportDir = p.StringWithFallback(keyExportDir, c.ExportDir)
	if err := c.Validate(); err != nil {
		fyne.LogError("Ignoring stored canvas preferences", err)
		return Default()
	}
	return c
}

// Save remembers the user-adjustable values.
func (c Config) Save(p fyne.Preferences) {
	if p == nil {
		return
	}
	p.SetString(keyColor, c.Color)
	p.SetFloat(keyStrokeWidth, float64(c.StrokeWidth))
	p.SetString(keyExportDir, c.ExportDir)
}

// Validate reports settings the application cannot start with. The color
// is not checked: any string is accepted as a selection.
func (c Config) Validate() error {
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("config: window size %vx%v must be positive", c.WindowWidth, c.WindowHeight)
	}
	if c.StrokeWidth <= 0 || c.StrokeWidth > MaxStrokeWidth {
		return fmt.Errorf("config: stroke width %v outside (0, %v]", c.StrokeWidth, MaxStrokeWidth)
	}
	return nil
}

// MaxStrokeWidth bounds the stroke size slider.
const MaxStrokeWidth float32 = 50

// Settings returns the drawing settings the board starts with.
func (c Config) Settings() state.Settings {
	return state.Settings{Color: c.Color, Width: c.StrokeWidth}
}
