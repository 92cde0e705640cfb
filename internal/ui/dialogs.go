package ui

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"LocalSketch/internal/export"
	"LocalSketch/internal/state"
)

var errNotNumber = errors.New("must be a whole number")

func validateDimension(text string) error {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return errNotNumber
	}
	if n <= 0 || n > state.MaxDimension {
		return fmt.Errorf("must be between 1 and %d", state.MaxDimension)
	}
	return nil
}

// parseSize turns the resize form fields into dimensions. Range checking is
// left to the surface.
func parseSize(width, height string) (int, int, error) {
	w, err := strconv.Atoi(strings.TrimSpace(width))
	if err != nil {
		return 0, 0, fmt.Errorf("width %q: %w", width, errNotNumber)
	}
	h, err := strconv.Atoi(strings.TrimSpace(height))
	if err != nil {
		return 0, 0, fmt.Errorf("height %q: %w", height, errNotNumber)
	}
	return w, h, nil
}

func (s *session) resizeFromForm(width, height string) error {
	w, h, err := parseSize(width, height)
	if err != nil {
		return err
	}
	return s.board.ResizeCanvas(w, h)
}

func (s *session) showResizeDialog() {
	cw, ch := s.board.Surface().Size()
	width := widget.NewEntry()
	width.SetText(strconv.Itoa(cw))
	width.Validator = validateDimension
	height := widget.NewEntry()
	height.SetText(strconv.Itoa(ch))
	height.Validator = validateDimension

	items := []*widget.FormItem{
		widget.NewFormItem("Width", width),
		widget.NewFormItem("Height", height),
	}
	dialog.ShowForm("Resize Canvas", "Resize", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		if err := s.resizeFromForm(width.Text, height.Text); err != nil {
			dialog.ShowError(err, s.win)
		}
	}, s.win)
}

func (s *session) showSaveDialog() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, s.win)
			return
		}
		if writer == nil {
			return
		}
		if err := s.board.SaveToFile(writer); err != nil {
			dialog.ShowError(err, s.win)
		}
	}, s.win)
	d.SetFilter(storage.NewExtensionFileFilter(export.Extensions()))
	d.SetFileName("sketch-" + state.SessionID()[:8] + ".png")
	d.Show()
}

func (s *session) showColorPicker() {
	picker := dialog.NewColorPicker("Stroke Color", "Choose the stroke color", func(c color.Color) {
		s.board.Surface().SetColor(c)
	}, s.win)
	picker.Advanced = true
	picker.Show()
}
