package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"LocalSketch/internal/state"
)

var palette = []color.Color{
	color.Black,
	color.NRGBA{R: 255, A: 255},         // Red
	color.NRGBA{G: 255, A: 255},         // Green
	color.NRGBA{B: 255, A: 255},         // Blue
	color.NRGBA{R: 255, G: 255, A: 255}, // Yellow
	color.White,
}

type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// toolControls are the toolbar widgets bound to the surface's tool state.
type toolControls struct {
	mode   *widget.Select
	eraser *widget.Check
	stroke *widget.Slider
	text   *widget.Entry
}

// drawingModes are offered in the mode selector; erasing has its own toggle.
func drawingModes() []string {
	var names []string
	for _, m := range state.Modes() {
		if m != state.ModeErase {
			names = append(names, m.String())
		}
	}
	return names
}

func NewToolbar(s *session) fyne.CanvasObject {
	surface := s.board.Surface()
	tool := surface.Tool()
	c := &toolControls{}
	s.tools = c

	c.eraser = widget.NewCheck("Eraser", func(on bool) {
		surface.SetErase(on)
	})

	c.mode = widget.NewSelect(drawingModes(), func(name string) {
		m, err := state.ParseMode(name)
		if err != nil {
			return
		}
		surface.SetMode(m)
		c.eraser.SetChecked(false)
	})
	c.mode.SetSelected(tool.Mode.String())

	onColorTapped := func(col color.Color) {
		surface.SetColor(col)
	}
	colorBox := container.NewHBox()
	for _, col := range palette {
		colorBox.Add(newColorSwatch(col, onColorTapped))
	}
	colorBox.Add(widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), s.showColorPicker))

	c.stroke = widget.NewSlider(state.MinStrokeWidth, state.MaxStrokeWidth)
	c.stroke.Step = 1
	c.stroke.SetValue(tool.Width)
	c.stroke.OnChanged = func(val float64) {
		surface.SetStrokeWidth(val)
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(140, 35)), c.stroke)

	c.text = widget.NewEntry()
	c.text.SetPlaceHolder("Enter text to draw")
	c.text.SetText(tool.Text)
	c.text.OnChanged = surface.SetText
	textContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(160, 35)), c.text)

	actions := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), s.board.Undo),
		widget.NewToolbarAction(theme.ContentRedoIcon(), s.board.Redo),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DeleteIcon(), s.board.Clear),
		widget.NewToolbarAction(theme.ViewFullScreenIcon(), s.showResizeDialog),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), s.showSaveDialog),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.VisibilityIcon(), s.toggleTheme),
	)

	return container.NewHBox(
		actions,
		widget.NewSeparator(),
		widget.NewLabel("Tool:"),
		c.mode,
		c.eraser,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		textContainer,
		layout.NewSpacer(),
	)
}
