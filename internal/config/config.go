package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gg"

	"LocalSketch/internal/state"
)

const configFile = "config.toml"

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Width        int
	Height       int
	Background   string
	StrokeColor  string
	StrokeWidth  float64
	HistoryLimit int
	Theme        string
	Text         string
}

func Default() Config {
	return Config{
		Width:        800,
		Height:       600,
		Background:   "#ffffff",
		StrokeColor:  "#000000",
		StrokeWidth:  3,
		HistoryLimit: state.DefaultHistoryLimit,
		Theme:        ThemeLight,
		Text:         "Your Text Here",
	}
}

// Dir is the per-user directory holding the config file.
func Dir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "localsketch")
	}
	return filepath.Join(os.TempDir(), "localsketch")
}

func Path() string {
	return filepath.Join(Dir(), configFile)
}

// Load reads path over the defaults. A missing file is created with the
// defaults.
func Load(path string) (Config, error) {
	conf := Default()
	_, err := toml.DecodeFile(path, &conf)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("initializing config", "path", path)
		if err := Save(path, conf); err != nil {
			return conf, err
		}
		return conf, nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read config %s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return conf, nil
}

func Save(path string, conf Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(conf); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.Width > state.MaxDimension || c.Height > state.MaxDimension {
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("%w: HistoryLimit must be positive, got %d", ErrInvalid, c.HistoryLimit)
	}
	if c.StrokeWidth < state.MinStrokeWidth || c.StrokeWidth > state.MaxStrokeWidth {
		return fmt.Errorf("%w: StrokeWidth %v outside [%v, %v]", ErrInvalid,
			c.StrokeWidth, state.MinStrokeWidth, state.MaxStrokeWidth)
	}
	for name, hex := range map[string]string{"Background": c.Background, "StrokeColor": c.StrokeColor} {
		if !validHex(hex) {
			return fmt.Errorf("%w: %s %q is not a hex color", ErrInvalid, name, hex)
		}
	}
	if a := gg.Hex(c.Background).A; a < 1 {
		return fmt.Errorf("%w: Background %q must be opaque", ErrInvalid, c.Background)
	}
	if c.Theme != ThemeLight && c.Theme != ThemeDark {
		return fmt.Errorf("%w: Theme %q", ErrInvalid, c.Theme)
	}
	return nil
}

func validHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

func (c Config) BackgroundColor() color.Color {
	return gg.Hex(c.Background).Color()
}

func (c Config) InkColor() color.Color {
	return gg.Hex(c.StrokeColor).Color()
}

// Tool is the initial tool state described by the config.
func (c Config) Tool() state.ToolState {
	return state.ToolState{
		Mode:  state.ModeFreehand,
		Color: c.InkColor(),
		Width: c.StrokeWidth,
		Text:  c.Text,
	}
}
