// Package state is the toolkit independent drawing model: the live raster,
// tool and gesture state, and snapshot based undo/redo.
package state

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
)

// MaxDimension bounds each side of the raster.
const MaxDimension = 16384

// ErrInvalidDimension is returned for raster sizes outside (0, MaxDimension].
var ErrInvalidDimension = errors.New("invalid dimension")

// Presenter receives the raster after every mutation. The image aliases the
// live raster and is only valid until the next call.
type Presenter interface {
	Present(img image.Image)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(img image.Image)

func (f PresenterFunc) Present(img image.Image) { f(img) }

// Surface is the drawing surface controller: tool state, the live raster and
// its undo/redo history. It is not safe for concurrent use; all calls are
// expected on the UI event thread.
type Surface struct {
	raster    *Raster
	history   *History
	presenter Presenter
	log       *slog.Logger

	mode    Mode
	erasing bool
	color   color.Color
	width   float64
	text    string

	gesture gesture
}

type Option func(*Surface)

func WithPresenter(p Presenter) Option {
	return func(s *Surface) { s.presenter = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Surface) {
		if l != nil {
			s.log = l
		}
	}
}

// WithHistoryLimit caps each history stack; values <= 0 use DefaultHistoryLimit.
func WithHistoryLimit(n int) Option {
	return func(s *Surface) { s.history = NewHistory(n) }
}

// WithBackground sets the fill color. It should be opaque; erasing paints it
// back and exports assume every pixel is opaque.
func WithBackground(c color.Color) Option {
	return func(s *Surface) { s.raster.background = c }
}

func WithTool(t ToolState) Option {
	return func(s *Surface) {
		s.SetMode(t.Mode)
		if t.Color != nil {
			s.color = t.Color
		}
		if t.Width != 0 {
			s.width = clampWidth(t.Width)
		}
		s.text = t.Text
	}
}

// New creates a surface of the given size filled with the background
// (white unless WithBackground says otherwise).
func New(width, height int, opts ...Option) (*Surface, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	s := &Surface{
		raster:  &Raster{background: color.White},
		history: NewHistory(DefaultHistoryLimit),
		log:     slog.New(slog.DiscardHandler),
		mode:    ModeFreehand,
		color:   color.Black,
		width:   3,
		text:    "Your Text Here",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.raster = NewRaster(width, height, s.raster.background)
	s.log.Debug("surface created", "width", width, "height", height,
		"history_limit", s.history.Limit(), "session", SessionID())
	return s, nil
}

func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	return nil
}

// Tool returns the tool state the next gesture will draw with.
func (s *Surface) Tool() ToolState {
	mode := s.mode
	if s.erasing {
		mode = ModeErase
	}
	return ToolState{Mode: mode, Color: s.color, Width: s.width, Text: s.text}
}

// SetMode selects a tool. Any mode other than ModeErase turns the eraser off.
func (s *Surface) SetMode(m Mode) {
	if m == ModeErase {
		s.erasing = true
		return
	}
	s.mode = m
	s.erasing = false
}

func (s *Surface) SetErase(on bool) { s.erasing = on }

func (s *Surface) SetColor(c color.Color) {
	if c != nil {
		s.color = c
	}
}

// SetStrokeWidth clamps w to [MinStrokeWidth, MaxStrokeWidth].
func (s *Surface) SetStrokeWidth(w float64) { s.width = clampWidth(w) }

func (s *Surface) SetText(t string) { s.text = t }

func (s *Surface) Size() (int, int) { return s.raster.Size() }

// Image returns a copy of the live raster.
func (s *Surface) Image() *image.RGBA { return s.raster.Image() }

func (s *Surface) CanUndo() bool { return s.history.CanUndo() }
func (s *Surface) CanRedo() bool { return s.history.CanRedo() }

func (s *Surface) HistoryLen() (undo, redo int) { return s.history.Len() }

// Refresh pushes the current raster to the presenter.
func (s *Surface) Refresh() {
	if s.presenter != nil {
		s.presenter.Present(s.raster.view())
	}
}

func (s *Surface) archive() {
	snap := s.raster.Snapshot()
	s.history.Record(snap)
	s.log.Debug("archived", "snapshot", snap.ID)
}

// BeginGesture archives the raster and starts a gesture at p with the
// current tool state. Text mode with no text draws nothing, so it leaves
// the history alone.
func (s *Surface) BeginGesture(p Point) {
	tool := s.Tool()
	if tool.Mode == ModeText && tool.Text == "" {
		return
	}
	s.archive()
	s.gesture = gesture{active: true, tool: tool, start: p, last: p}
	if tool.Mode == ModeText {
		s.raster.DrawText(p, tool.Text, tool.Color)
		s.Refresh()
	}
}

// ContinueGesture applies freehand and erase strokes as the pointer moves.
// Shape modes only track the point until release.
func (s *Surface) ContinueGesture(p Point) {
	g := &s.gesture
	if !g.active {
		return
	}
	switch g.tool.Mode {
	case ModeFreehand:
		s.raster.StrokeLine(g.last, p, g.tool.Color, g.tool.Width)
		s.Refresh()
	case ModeErase:
		s.raster.ClearSquare(p, g.tool.Width)
		s.Refresh()
	}
	g.last = p
}

// EndGesture finishes the gesture at p, committing shapes.
func (s *Surface) EndGesture(p Point) {
	g := &s.gesture
	if !g.active {
		return
	}
	g.end = p
	t := g.tool
	switch t.Mode {
	case ModeRectangle:
		x, y := math.Min(g.start.X, p.X), math.Min(g.start.Y, p.Y)
		w, h := math.Abs(p.X-g.start.X), math.Abs(p.Y-g.start.Y)
		s.raster.StrokeRect(x, y, w, h, t.Color, t.Width)
	case ModeCircle:
		radius := math.Hypot(p.X-g.start.X, p.Y-g.start.Y)
		s.raster.StrokeCircle(g.start, radius, t.Color, t.Width)
	case ModeLine:
		s.raster.StrokeLine(g.start, p, t.Color, t.Width)
	}
	if t.Mode.IsShape() {
		s.log.Debug("shape committed", "mode", t.Mode, "start", g.start, "end", p)
		s.Refresh()
	}
	s.gesture = gesture{}
}

// Undo restores the previous state. It reports false when there is nothing
// to undo.
func (s *Surface) Undo() bool {
	if !s.history.CanUndo() {
		return false
	}
	prev, _ := s.history.Undo(s.raster.Snapshot())
	s.restore(prev)
	s.log.Debug("undo", "snapshot", prev.ID)
	return true
}

// Redo reapplies the last undone state. It reports false when there is
// nothing to redo.
func (s *Surface) Redo() bool {
	if !s.history.CanRedo() {
		return false
	}
	next, _ := s.history.Redo(s.raster.Snapshot())
	s.restore(next)
	s.log.Debug("redo", "snapshot", next.ID)
	return true
}

func (s *Surface) restore(snap Snapshot) {
	// snapshot dimensions were validated when the raster was allocated
	if err := s.raster.Restore(snap); err != nil {
		s.log.Error("restore snapshot", "snapshot", snap.ID, "err", err)
		return
	}
	s.gesture = gesture{}
	s.Refresh()
}

// Clear archives the raster and refills it with the background.
func (s *Surface) Clear() {
	s.archive()
	s.raster.fill()
	s.gesture = gesture{}
	s.Refresh()
}

// Resize archives the raster and reallocates it at width×height filled with
// the background. Existing content is not carried over; undo brings it back.
// Invalid sizes return ErrInvalidDimension and change nothing.
func (s *Surface) Resize(width, height int) error {
	if err := checkDimensions(width, height); err != nil {
		return err
	}
	s.archive()
	if err := s.raster.Reset(width, height); err != nil {
		return fmt.Errorf("resize raster: %w", err)
	}
	s.gesture = gesture{}
	s.log.Debug("resized", "width", width, "height", height)
	s.Refresh()
	return nil
}

// ExportRaster encodes the live raster as PNG.
func (s *Surface) ExportRaster() ([]byte, error) {
	data, err := s.raster.EncodePNG()
	if err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return data, nil
}
