package state

import (
	"fmt"
	"image/color"
	"strings"
)

type Point struct{ X, Y float64 }

// Mode is the drawing tool applied by a gesture.
type Mode int

const (
	ModeFreehand Mode = iota
	ModeRectangle
	ModeCircle
	ModeLine
	ModeErase
	ModeText
)

const (
	MinStrokeWidth = 1.0
	MaxStrokeWidth = 20.0
)

var modeNames = [...]string{
	ModeFreehand:  "Freehand",
	ModeRectangle: "Rectangle",
	ModeCircle:    "Circle",
	ModeLine:      "Line",
	ModeErase:     "Erase",
	ModeText:      "Text",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// IsShape reports whether the mode commits geometry on release.
func (m Mode) IsShape() bool {
	return m == ModeRectangle || m == ModeCircle || m == ModeLine
}

// Modes lists the selectable modes in toolbar order.
func Modes() []Mode {
	return []Mode{ModeFreehand, ModeRectangle, ModeCircle, ModeLine, ModeErase, ModeText}
}

// ParseMode maps a mode name (case insensitive) back to its Mode.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return Mode(i), nil
		}
	}
	return ModeFreehand, fmt.Errorf("unknown drawing mode %q", s)
}

// ToolState is the style a gesture draws with.
type ToolState struct {
	Mode  Mode
	Color color.Color
	Width float64 // stroke width, always within [MinStrokeWidth, MaxStrokeWidth]
	Text  string  // stamped by ModeText
}

func clampWidth(w float64) float64 {
	if w < MinStrokeWidth {
		return MinStrokeWidth
	}
	if w > MaxStrokeWidth {
		return MaxStrokeWidth
	}
	return w
}

// gesture lives between a pointer-down and the matching pointer-up.
type gesture struct {
	active bool
	tool   ToolState
	start  Point
	last   Point
	end    Point
}
