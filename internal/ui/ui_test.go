package ui

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"log/slog"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LocalSketch/internal/config"
	"LocalSketch/internal/state"
)

func newTestSession(t *testing.T, confPath string) *session {
	t.Helper()
	a := test.NewTempApp(t)
	conf := config.Default()
	conf.Width, conf.Height = 120, 80
	s, err := newSession(a, conf, confPath, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return s
}

func press(b *BoardWidget, x, y float32, button desktop.MouseButton) {
	b.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     button,
	})
}

func release(b *BoardWidget, x, y float32) {
	b.MouseUp(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	})
}

func dragTo(b *BoardWidget, x, y float32) {
	b.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}})
}

func inked(img *image.RGBA, x, y int) bool {
	c := img.RGBAAt(x, y)
	return c.R < 60 && c.G < 60 && c.B < 60 && c.A > 200
}

func TestBoardRoutesGestures(t *testing.T) {
	s := newTestSession(t, "")
	b := s.board
	b.Surface().SetStrokeWidth(6)

	var changes int
	b.OnChange = func() { changes++ }

	press(b, 10, 40, desktop.MouseButtonPrimary)
	dragTo(b, 60, 40)
	dragTo(b, 110, 40)
	release(b, 110, 40)

	assert.True(t, inked(b.Surface().Image(), 60, 40))
	assert.True(t, b.Surface().CanUndo())
	assert.Equal(t, 2, changes)

	b.Undo()
	assert.False(t, inked(b.Surface().Image(), 60, 40))
	assert.Equal(t, "Undo", b.statusBar.Text)
	b.Redo()
	assert.True(t, inked(b.Surface().Image(), 60, 40))
}

func TestBoardIgnoresSecondaryButton(t *testing.T) {
	s := newTestSession(t, "")
	b := s.board
	press(b, 10, 10, desktop.MouseButtonSecondary)
	dragTo(b, 50, 50)
	release(b, 50, 50)
	assert.False(t, b.Surface().CanUndo())
}

func TestBoardDragEndFinishesShape(t *testing.T) {
	s := newTestSession(t, "")
	b := s.board
	b.Surface().SetMode(state.ModeLine)
	b.Surface().SetStrokeWidth(6)

	press(b, 10, 20, desktop.MouseButtonPrimary)
	dragTo(b, 100, 20)
	b.DragEnd()
	assert.True(t, inked(b.Surface().Image(), 55, 20))

	// the late MouseUp must not start or end another gesture
	release(b, 100, 60)
	undo, _ := b.Surface().HistoryLen()
	assert.Equal(t, 1, undo)
	assert.False(t, inked(b.Surface().Image(), 100, 50))
}

func TestBoardPresentsResizedRaster(t *testing.T) {
	s := newTestSession(t, "")
	b := s.board
	test.WidgetRenderer(b)

	require.NoError(t, b.ResizeCanvas(200, 50))
	assert.Equal(t, image.Rect(0, 0, 200, 50), b.raster.Image.Bounds())
	assert.Equal(t, fyne.NewSize(200, 50), b.MinSize())

	err := b.ResizeCanvas(0, 50)
	assert.ErrorIs(t, err, state.ErrInvalidDimension)
	assert.Contains(t, b.statusBar.Text, "Resize failed")
}

func TestBoardClear(t *testing.T) {
	s := newTestSession(t, "")
	b := s.board
	press(b, 10, 10, desktop.MouseButtonPrimary)
	dragTo(b, 100, 70)
	release(b, 100, 70)

	b.Clear()
	assert.Equal(t, "Canvas cleared", b.statusBar.Text)
	undo, _ := b.Surface().HistoryLen()
	assert.Equal(t, 2, undo)
}

type memWriter struct {
	bytes.Buffer
	uri    fyne.URI
	closed bool
}

func (w *memWriter) URI() fyne.URI { return w.uri }
func (w *memWriter) Close() error {
	w.closed = true
	return nil
}

func TestSaveToFile(t *testing.T) {
	s := newTestSession(t, "")
	b := s.board

	w := &memWriter{uri: storage.NewFileURI(filepath.Join(t.TempDir(), "drawing.png"))}
	require.NoError(t, b.SaveToFile(w))
	assert.True(t, w.closed)
	img, err := png.Decode(&w.Buffer)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 120, 80), img.Bounds())
	assert.Equal(t, "Saved drawing.png", b.statusBar.Text)

	w = &memWriter{uri: storage.NewFileURI(filepath.Join(t.TempDir(), "drawing.pdf"))}
	require.NoError(t, b.SaveToFile(w))
	assert.True(t, bytes.HasPrefix(w.Bytes(), []byte("%PDF-")))

	w = &memWriter{uri: storage.NewFileURI(filepath.Join(t.TempDir(), "drawing.gif"))}
	assert.Error(t, b.SaveToFile(w))
	assert.True(t, w.closed)
	assert.Zero(t, w.Len())
}

type failingWriter struct {
	memWriter
}

func (w *failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSaveToFileLogsThroughSessionLogger(t *testing.T) {
	var logs bytes.Buffer
	a := test.NewTempApp(t)
	conf := config.Default()
	conf.Width, conf.Height = 20, 20
	s, err := newSession(a, conf, "", slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, err)
	b := s.board

	ok := &memWriter{uri: storage.NewFileURI(filepath.Join(t.TempDir(), "ok.jpg"))}
	require.NoError(t, b.SaveToFile(ok))
	assert.Contains(t, logs.String(), "level=INFO msg=\"saved drawing\" file=ok.jpg format=jpeg")

	bad := &failingWriter{memWriter{uri: storage.NewFileURI(filepath.Join(t.TempDir(), "bad.png"))}}
	assert.Error(t, b.SaveToFile(bad))
	assert.True(t, bad.closed)
	assert.Contains(t, logs.String(), "level=ERROR msg=\"save drawing\" file=bad.png format=png err=\"disk full\"")
	assert.Equal(t, "Error writing file", b.statusBar.Text)
}

func TestResizeFromForm(t *testing.T) {
	s := newTestSession(t, "")

	assert.ErrorIs(t, s.resizeFromForm("wide", "10"), errNotNumber)
	assert.ErrorIs(t, s.resizeFromForm("10", ""), errNotNumber)
	assert.ErrorIs(t, s.resizeFromForm("0", "10"), state.ErrInvalidDimension)
	assert.False(t, s.board.Surface().CanUndo(), "rejected input leaves history alone")

	require.NoError(t, s.resizeFromForm(" 300 ", "150"))
	w, h := s.board.Surface().Size()
	assert.Equal(t, 300, w)
	assert.Equal(t, 150, h)
}

func TestValidateDimension(t *testing.T) {
	assert.NoError(t, validateDimension("640"))
	assert.NoError(t, validateDimension(" 1 "))
	assert.Error(t, validateDimension(""))
	assert.Error(t, validateDimension("12.5"))
	assert.Error(t, validateDimension("0"))
	assert.Error(t, validateDimension("-4"))
	assert.Error(t, validateDimension("99999"))
}

func TestToolbarControlsSurface(t *testing.T) {
	s := newTestSession(t, "")
	surface := s.board.Surface()
	c := s.tools
	require.NotNil(t, c)

	assert.NotContains(t, c.mode.Options, state.ModeErase.String())
	assert.Equal(t, state.ModeFreehand.String(), c.mode.Selected)

	c.mode.SetSelected(state.ModeRectangle.String())
	assert.Equal(t, state.ModeRectangle, surface.Tool().Mode)

	c.eraser.SetChecked(true)
	assert.Equal(t, state.ModeErase, surface.Tool().Mode)

	c.mode.SetSelected(state.ModeLine.String())
	assert.Equal(t, state.ModeLine, surface.Tool().Mode)
	assert.False(t, c.eraser.Checked, "choosing a tool turns the eraser off")

	c.stroke.OnChanged(12)
	assert.Equal(t, 12.0, surface.Tool().Width)

	c.text.OnChanged("hello")
	assert.Equal(t, "hello", surface.Tool().Text)
}

func TestToggleThemePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	s := newTestSession(t, path)

	s.toggleTheme()
	vt, ok := s.app.Settings().Theme().(*variantTheme)
	require.True(t, ok)
	assert.Equal(t, theme.VariantDark, vt.variant)
	assert.Equal(t, "Theme: dark", s.board.statusBar.Text)

	conf, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.ThemeDark, conf.Theme)

	s.toggleTheme()
	vt = s.app.Settings().Theme().(*variantTheme)
	assert.Equal(t, config.ThemeLight, vt.Name())
}

func TestVariantThemePinsColors(t *testing.T) {
	dark := newVariantTheme(config.ThemeDark)
	light := newVariantTheme(config.ThemeLight)
	base := theme.DefaultTheme()

	assert.Equal(t, base.Color(theme.ColorNameBackground, theme.VariantDark),
		dark.Color(theme.ColorNameBackground, theme.VariantLight))
	assert.Equal(t, base.Color(theme.ColorNameBackground, theme.VariantLight),
		light.Color(theme.ColorNameBackground, theme.VariantDark))
	assert.Equal(t, config.ThemeDark, otherTheme(config.ThemeLight))
	assert.Equal(t, config.ThemeLight, otherTheme(config.ThemeDark))
}
