package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"

	"LocalSketch/internal/config"
	"LocalSketch/internal/state"
)

const appID = "io.localsketch.app"

// session ties one window to its board and the config it was started with.
type session struct {
	app      fyne.App
	win      fyne.Window
	board    *BoardWidget
	tools    *toolControls
	conf     config.Config
	confPath string
	log      *slog.Logger
}

func newSession(a fyne.App, conf config.Config, confPath string, logger *slog.Logger) (*session, error) {
	board, err := NewBoardWidget(conf.Width, conf.Height, logger,
		state.WithBackground(conf.BackgroundColor()),
		state.WithHistoryLimit(conf.HistoryLimit),
		state.WithTool(conf.Tool()),
	)
	if err != nil {
		return nil, err
	}
	s := &session{
		app:      a,
		win:      a.NewWindow("LocalSketch"),
		board:    board,
		conf:     conf,
		confPath: confPath,
		log:      logger,
	}
	a.Settings().SetTheme(newVariantTheme(conf.Theme))

	toolbar := NewToolbar(s)
	content := container.NewBorder(toolbar, board.statusBar, nil, nil, container.NewScroll(board))
	s.win.SetContent(content)
	s.win.Resize(fyne.NewSize(float32(conf.Width)+40, float32(conf.Height)+120))
	s.addShortcuts()
	return s, nil
}

func (s *session) addShortcuts() {
	c := s.win.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { s.board.Undo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { s.board.Redo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { s.showSaveDialog() })
}

// toggleTheme flips between the light and dark variants and remembers the
// choice in the config file.
func (s *session) toggleTheme() {
	s.conf.Theme = otherTheme(s.conf.Theme)
	s.app.Settings().SetTheme(newVariantTheme(s.conf.Theme))
	s.board.Refresh()
	s.board.SetStatus("Theme: " + s.conf.Theme)
	if s.confPath == "" {
		return
	}
	if err := config.Save(s.confPath, s.conf); err != nil {
		s.log.Warn("persist theme", "err", err)
	}
}

// RunApp opens the drawing window and blocks until it is closed.
func RunApp(conf config.Config, confPath string, logger *slog.Logger) error {
	s, err := newSession(app.NewWithID(appID), conf, confPath, logger)
	if err != nil {
		return err
	}
	s.win.ShowAndRun()
	return nil
}
