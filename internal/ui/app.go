package ui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/charmbracelet/log"

	"PollockBoard/internal/anim"
	"PollockBoard/internal/config"
	"PollockBoard/internal/input"
	"PollockBoard/internal/paint"
	"PollockBoard/internal/raster"
)

// NewBoard wires the paint pipeline described by cfg into a board widget.
// A nil timer schedules sequences with time.AfterFunc on the fyne goroutine.
func NewBoard(cfg config.Config, timer anim.Timer, logger *log.Logger) (*BoardWidget, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	brush, err := input.ParseBrush(cfg.Input.Brush)
	if err != nil {
		return nil, err
	}

	surface, err := raster.New(cfg.Canvas.Width, cfg.Canvas.Height, logger)
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}

	rnd := paint.DefaultRand
	if cfg.Seed != 0 {
		rnd = paint.NewSeededRand(cfg.Seed)
	}

	loop := anim.NewLoop(logger)
	painter := paint.NewPainter(surface, rnd, loop)
	ctl := input.NewController(paint.NewDispatcher(nil, painter, logger), brush, logger)

	if timer == nil {
		timer = anim.RealTimer{Post: fyne.Do}
	}
	seq := input.NewSequencer(cfg.Sequence.Delay, timer, logger)

	logger.Debug("board ready", "width", cfg.Canvas.Width, "height", cfg.Canvas.Height, "brush", brush, "seed", cfg.Seed)
	return newBoardWidget(surface, loop, ctl, seq, cfg.Frames.FPS, logger), nil
}

// RunApp shows the board until the window closes or ctx is done. A
// non-empty status replaces the status bar text.
func RunApp(ctx context.Context, title, status string, board *BoardWidget) {
	myApp := app.New()
	myWindow := myApp.NewWindow(title)
	if status != "" {
		board.StatusBar().SetText(status)
	}
	w, h := board.Surface().Size()
	myWindow.Resize(fyne.NewSize(float32(w), float32(h)))

	toolbar := NewToolbar(board)
	content := container.NewBorder(toolbar, board.StatusBar(), nil, nil, board)
	myWindow.SetContent(content)

	// keys reach the board even when it does not hold focus, as long as
	// no text field does
	cv := myWindow.Canvas()
	cv.SetOnTypedRune(board.TypedRune)
	if dc, ok := cv.(desktop.Canvas); ok {
		dc.SetOnKeyDown(board.KeyDown)
		dc.SetOnKeyUp(board.KeyUp)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	board.Animate(ctx)

	closed := make(chan struct{})
	defer close(closed)
	go func() {
		select {
		case <-ctx.Done():
			fyne.Do(myApp.Quit)
		case <-closed:
		}
	}()

	myWindow.ShowAndRun()
}
