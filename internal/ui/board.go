package ui

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"PollockBoard/internal/anim"
	"PollockBoard/internal/input"
	"PollockBoard/internal/paint"
	"PollockBoard/internal/raster"
	"PollockBoard/internal/state"
)

// BoardWidget shows the paint surface and turns pointer and key input into
// effects. All of its state is touched on the fyne goroutine only.
type BoardWidget struct {
	widget.BaseWidget

	surface    *raster.Canvas
	loop       *anim.Loop
	controller *input.Controller
	sequencer  *input.Sequencer
	fps        int
	logger     *log.Logger

	session state.DrawSession
	history *state.History

	// keysSeen is set once the driver reports key-down events, which is
	// what lets TypedRune tell auto-repeats from fresh presses.
	keysSeen bool
	armed    bool

	image     *canvas.Raster
	statusBar *widget.Label

	// OnInvocation is called after every painted effect.
	OnInvocation func(state.Invocation)
}

var (
	_ fyne.Widget       = (*BoardWidget)(nil)
	_ fyne.Draggable    = (*BoardWidget)(nil)
	_ fyne.Focusable    = (*BoardWidget)(nil)
	_ desktop.Mouseable = (*BoardWidget)(nil)
	_ desktop.Hoverable = (*BoardWidget)(nil)
	_ desktop.Keyable   = (*BoardWidget)(nil)
)

func newBoardWidget(surface *raster.Canvas, loop *anim.Loop, ctl *input.Controller, seq *input.Sequencer, fps int, logger *log.Logger) *BoardWidget {
	b := &BoardWidget{
		surface:    surface,
		loop:       loop,
		controller: ctl,
		sequencer:  seq,
		fps:        fps,
		logger:     logger,
		history:    state.NewHistory(state.DefaultHistory),
		statusBar:  widget.NewLabel("Ready"),
	}
	b.image = canvas.NewRaster(func(w, h int) image.Image {
		return b.surface.Image()
	})
	ctl.Observer = b.observe
	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) observe(inv state.Invocation) {
	b.history.Add(inv)
	if b.OnInvocation != nil {
		b.OnInvocation(inv)
	}
}

// Session returns the current drawing session.
func (b *BoardWidget) Session() state.DrawSession { return b.session }

// Painted returns how many effects have been painted since the last clear.
func (b *BoardWidget) Painted() int { return b.history.Total() }

// History returns the log of recent invocations.
func (b *BoardWidget) History() *state.History { return b.history }

// Surface returns the raster the board paints on.
func (b *BoardWidget) Surface() *raster.Canvas { return b.surface }

// Table returns the key bindings in use.
func (b *BoardWidget) Table() *paint.Table {
	return b.controller.Table()
}

// Animate steps in-flight effects at the configured frame rate until ctx
// is done. Frames run on the fyne goroutine.
func (b *BoardWidget) Animate(ctx context.Context) {
	go b.loop.Run(ctx, b.fps, func(frame func()) {
		fyne.Do(func() {
			frame()
			b.repaint()
		})
	})
}

// StatusBar returns the label SetStatus writes to.
func (b *BoardWidget) StatusBar() *widget.Label { return b.statusBar }

// ClearCanvas wipes the surface back to white.
func (b *BoardWidget) ClearCanvas() {
	b.controller.Clear()
	b.history.Reset()
	b.repaint()
}

// Fire paints the effect bound to r as if the key had been pressed.
func (b *BoardWidget) Fire(r rune) {
	b.key(input.KeyEvent{Rune: r})
}

// RunSequence replays seq one command per sequence delay and returns the
// number of commands scheduled.
func (b *BoardWidget) RunSequence(seq string) int {
	return b.play(seq, state.SourceSequence)
}

// RunRemote replays a sequence that arrived over the command feed.
func (b *BoardWidget) RunRemote(seq string) int {
	n := b.play(seq, state.SourceRemote)
	b.statusBar.SetText(fmt.Sprintf("Remote sequence: %d commands", n))
	return n
}

func (b *BoardWidget) play(seq string, src state.Source) int {
	n := b.sequencer.Play(seq, func(r rune) {
		b.key(input.KeyEvent{Rune: r, Source: src})
	})
	if n > 0 {
		b.logger.Info("playing sequence", "source", src, "commands", n)
	}
	return n
}

func (b *BoardWidget) key(ev input.KeyEvent) {
	b.session = b.controller.Key(b.session, ev)
	b.repaint()
}

func (b *BoardWidget) repaint() {
	b.image.Refresh()
}

func (b *BoardWidget) resizeSurface(size fyne.Size) {
	w, h := int(size.Width), int(size.Height)
	if w <= 0 || h <= 0 {
		return
	}
	if err := b.surface.Resize(w, h); err != nil {
		b.logger.Warn("resize failed", "width", w, "height", h, "err", err)
	}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	if c := fyne.CurrentApp().Driver().CanvasForObject(b); c != nil {
		c.Focus(b)
	}
	b.session = b.controller.Press(b.session, toPoint(e.Position))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.release()
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if !b.session.Active {
		return
	}
	b.session = b.controller.Move(b.session, toPoint(e.Position))
	b.repaint()
}

func (b *BoardWidget) DragEnd()  { b.release() }
func (b *BoardWidget) MouseOut() { b.release() }

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

func (b *BoardWidget) release() {
	b.session = b.controller.Release(b.session)
}

func (b *BoardWidget) KeyDown(*fyne.KeyEvent) {
	b.keysSeen = true
	b.armed = true
}

func (b *BoardWidget) KeyUp(*fyne.KeyEvent) {
	b.armed = false
}

// TypedRune paints the effect bound to r. Runes arriving without a fresh
// key-down are auto-repeats and are ignored.
func (b *BoardWidget) TypedRune(r rune) {
	repeat := b.keysSeen && !b.armed
	b.armed = false
	b.key(input.KeyEvent{Rune: r, Repeat: repeat})
}

func (b *BoardWidget) TypedKey(*fyne.KeyEvent) {}
func (b *BoardWidget) FocusGained()            {}
func (b *BoardWidget) FocusLost()              {}

func toPoint(p fyne.Position) paint.Point {
	return paint.Pt(float64(p.X), float64(p.Y))
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.board.image}
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.board.image.Resize(size)
	r.board.resizeSurface(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Refresh() {
	r.board.image.Refresh()
}

func (r *boardWidgetRenderer) Destroy() {}

func (b *BoardWidget) String() string {
	w, h := b.surface.Size()
	return fmt.Sprintf("board %dx%d, %d painted", w, h, b.history.Total())
}
