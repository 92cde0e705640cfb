package ui

import (
	"fmt"
	"image"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"LocalSketch/internal/export"
	"LocalSketch/internal/state"
)

// BoardWidget shows the drawing surface and feeds it pointer gestures.
// One widget unit maps to one raster pixel.
type BoardWidget struct {
	widget.BaseWidget
	surface   *state.Surface
	raster    *canvas.Image
	size      image.Point
	drawing   bool
	last      fyne.Position
	OnChange  func()
	statusBar *widget.Label
	log       *slog.Logger
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ state.Presenter = (*BoardWidget)(nil)

func NewBoardWidget(width, height int, logger *slog.Logger, opts ...state.Option) (*BoardWidget, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := &BoardWidget{
		raster:    canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, width, height))),
		statusBar: widget.NewLabel("Ready"),
		log:       logger,
	}
	b.raster.FillMode = canvas.ImageFillOriginal
	b.raster.ScaleMode = canvas.ImageScalePixels
	b.ExtendBaseWidget(b)

	s, err := state.New(width, height, append(opts, state.WithLogger(logger), state.WithPresenter(b))...)
	if err != nil {
		return nil, err
	}
	b.surface = s
	s.Refresh()
	return b, nil
}

func (b *BoardWidget) Surface() *state.Surface { return b.surface }

// Present shows the latest raster. Called by the surface after every change.
func (b *BoardWidget) Present(img image.Image) {
	b.raster.Image = img
	if sz := img.Bounds().Size(); sz != b.size {
		b.size = sz
		b.Refresh()
		return
	}
	b.raster.Refresh()
}

func (b *BoardWidget) SetStatus(text string) {
	b.statusBar.SetText(text)
}

func (b *BoardWidget) changed() {
	if b.OnChange != nil {
		b.OnChange()
	}
}

func toPoint(p fyne.Position) state.Point {
	return state.Point{X: float64(p.X), Y: float64(p.Y)}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.drawing = true
	b.last = e.Position
	b.surface.BeginGesture(toPoint(e.Position))
	b.changed()
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if !b.drawing {
		return
	}
	b.last = e.Position
	b.surface.ContinueGesture(toPoint(e.Position))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary || !b.drawing {
		return
	}
	b.finish(e.Position)
}

// DragEnd may arrive before MouseUp; whichever comes first ends the gesture.
func (b *BoardWidget) DragEnd() {
	if b.drawing {
		b.finish(b.last)
	}
}

func (b *BoardWidget) finish(pos fyne.Position) {
	b.drawing = false
	b.surface.EndGesture(toPoint(pos))
	b.changed()
}

func (b *BoardWidget) Undo() {
	if b.surface.Undo() {
		b.SetStatus("Undo")
	} else {
		b.SetStatus("Nothing to undo")
	}
	b.changed()
}

func (b *BoardWidget) Redo() {
	if b.surface.Redo() {
		b.SetStatus("Redo")
	} else {
		b.SetStatus("Nothing to redo")
	}
	b.changed()
}

func (b *BoardWidget) Clear() {
	b.surface.Clear()
	b.SetStatus("Canvas cleared")
	b.changed()
}

func (b *BoardWidget) ResizeCanvas(width, height int) error {
	if err := b.surface.Resize(width, height); err != nil {
		b.SetStatus(fmt.Sprintf("Resize failed: %v", err))
		return err
	}
	b.SetStatus(fmt.Sprintf("Canvas resized to %dx%d", width, height))
	b.changed()
	return nil
}

// SaveToFile encodes the raster into writer using the format named by the
// target's extension, and closes the writer.
func (b *BoardWidget) SaveToFile(writer fyne.URIWriteCloser) error {
	defer func() {
		if err := writer.Close(); err != nil {
			b.log.Warn("close export writer", "uri", writer.URI(), "err", err)
		}
	}()

	name := writer.URI().Name()
	format, err := export.FormatFromPath(name)
	if err != nil {
		b.SetStatus("Cannot save: " + err.Error())
		return err
	}

	if format == export.PNG {
		var data []byte
		data, err = b.surface.ExportRaster()
		if err == nil {
			_, err = writer.Write(data)
		}
	} else {
		err = export.Encode(writer, b.surface.Image(), format)
	}
	if err != nil {
		b.log.Error("save drawing", "file", name, "format", format, "err", err)
		b.SetStatus("Error writing file")
		return fmt.Errorf("save %s: %w", name, err)
	}
	b.log.Info("saved drawing", "file", name, "format", format)
	b.SetStatus("Saved " + name)
	return nil
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return &boardWidgetRenderer{board: b}
}

type boardWidgetRenderer struct {
	board *BoardWidget
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.board.raster}
}

func (r *boardWidgetRenderer) rasterSize() fyne.Size {
	w, h := r.board.surface.Size()
	return fyne.NewSize(float32(w), float32(h))
}

func (r *boardWidgetRenderer) Layout(fyne.Size) {
	r.board.raster.Move(fyne.NewPos(0, 0))
	r.board.raster.Resize(r.rasterSize())
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return r.rasterSize()
}

func (r *boardWidgetRenderer) Refresh() {
	r.Layout(r.board.Size())
	r.board.raster.Refresh()
}

func (r *boardWidgetRenderer) Destroy() {}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseOut()                      {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}
