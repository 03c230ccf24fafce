package ui

import (
	"io"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PollockBoard/internal/anim"
	"PollockBoard/internal/config"
	"PollockBoard/internal/input"
	"PollockBoard/internal/paint"
	"PollockBoard/internal/state"
)

type boardFixture struct {
	board *BoardWidget
	timer *anim.ManualTimer
	seen  []state.Invocation
}

func newTestBoard(t *testing.T) *boardFixture {
	t.Helper()
	test.NewTempApp(t)

	cfg := config.Default()
	cfg.Canvas.Width, cfg.Canvas.Height = 320, 240
	cfg.Seed = 7

	f := &boardFixture{timer: &anim.ManualTimer{}}
	b, err := NewBoard(cfg, f.timer, log.New(io.Discard))
	require.NoError(t, err)
	b.OnInvocation = func(inv state.Invocation) { f.seen = append(f.seen, inv) }
	f.board = b

	w := test.NewWindow(b)
	t.Cleanup(w.Close)
	return f
}

func nonWhite(b *BoardWidget) int {
	img := b.Surface().Image()
	n := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 || img.Pix[i+1] != 255 || img.Pix[i+2] != 255 {
			n++
		}
	}
	return n
}

func press(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func drag(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Dragged:    fyne.NewDelta(1, 1),
	}
}

func TestNewBoardRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Canvas.Width = 0
	_, err := NewBoard(cfg, nil, log.New(io.Discard))
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestTypedRunePaints(t *testing.T) {
	f := newTestBoard(t)
	require.Zero(t, nonWhite(f.board))

	f.board.TypedRune('s')

	assert.Equal(t, 1, f.board.Painted())
	assert.Equal(t, paint.EffectSplash, f.board.Session().LastEffect)
	assert.Positive(t, nonWhite(f.board))
	require.Len(t, f.seen, 1)
	assert.Equal(t, state.SourceKey, f.seen[0].Source)
}

func TestAutoRepeatIgnored(t *testing.T) {
	f := newTestBoard(t)

	f.board.KeyDown(&fyne.KeyEvent{Name: fyne.KeyS})
	f.board.TypedRune('s')
	f.board.TypedRune('s')
	f.board.TypedRune('s')
	f.board.KeyUp(&fyne.KeyEvent{Name: fyne.KeyS})
	assert.Equal(t, 1, f.board.Painted())

	f.board.KeyDown(&fyne.KeyEvent{Name: fyne.KeyG})
	f.board.TypedRune('g')
	assert.Equal(t, 2, f.board.Painted())
	assert.Equal(t, paint.EffectDrip, f.board.Session().LastEffect)
}

func TestDragRepeatsLastEffect(t *testing.T) {
	f := newTestBoard(t)

	f.board.MouseDown(press(20, 20))
	require.True(t, f.board.Session().Active)
	assert.Zero(t, f.board.Painted())

	f.board.Dragged(drag(40, 40))
	f.board.Dragged(drag(60, 50))
	require.Len(t, f.seen, 2)
	assert.Equal(t, paint.EffectSplash, f.seen[0].Effect)
	assert.Equal(t, state.SourcePointer, f.seen[0].Source)
	assert.Equal(t, f.board.Session().ID, f.seen[1].Session)
	assert.Equal(t, paint.Pt(60, 50), f.seen[1].Origin)

	f.board.DragEnd()
	assert.False(t, f.board.Session().Active)
	f.board.Dragged(drag(80, 80))
	assert.Len(t, f.seen, 2)
}

func TestSecondaryButtonDoesNotDraw(t *testing.T) {
	f := newTestBoard(t)
	ev := press(10, 10)
	ev.Button = desktop.MouseButtonSecondary

	f.board.MouseDown(ev)
	f.board.Dragged(drag(20, 20))

	assert.False(t, f.board.Session().Active)
	assert.Zero(t, f.board.Painted())
}

func TestLeavingBoardEndsSession(t *testing.T) {
	f := newTestBoard(t)

	f.board.MouseDown(press(10, 10))
	f.board.MouseOut()
	assert.False(t, f.board.Session().Active)

	f.board.MouseDown(press(10, 10))
	f.board.MouseUp(press(10, 10))
	assert.False(t, f.board.Session().Active)
}

func TestRunSequence(t *testing.T) {
	f := newTestBoard(t)

	n := f.board.RunSequence("sg")
	require.Equal(t, 2, n)
	assert.Equal(t, []time.Duration{0, input.DefaultDelay}, f.timer.Pending())

	f.timer.Advance(input.DefaultDelay)
	require.Len(t, f.seen, 2)
	assert.Equal(t, paint.EffectSplash, f.seen[0].Effect)
	assert.Equal(t, paint.EffectDrip, f.seen[1].Effect)
	assert.Equal(t, state.SourceSequence, f.seen[1].Source)
	assert.NotEqual(t, f.seen[0].Origin, f.seen[1].Origin)
}

func TestRunRemote(t *testing.T) {
	f := newTestBoard(t)

	require.Equal(t, 1, f.board.RunRemote("e"))
	f.timer.Advance(0)

	require.Len(t, f.seen, 1)
	assert.Equal(t, state.SourceRemote, f.seen[0].Source)
	assert.Equal(t, paint.EffectExplosion, f.seen[0].Effect)
}

func TestSequenceEntry(t *testing.T) {
	f := newTestBoard(t)
	e := newSequenceEntry(f.board)

	e.SetText("sgx")
	e.OnSubmitted(e.Text)

	assert.Empty(t, e.Text)
	assert.Len(t, f.timer.Pending(), 3)

	e.SetText("")
	e.OnSubmitted(e.Text)
	assert.Len(t, f.timer.Pending(), 3)
}

func TestClearCanvas(t *testing.T) {
	f := newTestBoard(t)
	f.board.TypedRune('e')
	require.Positive(t, nonWhite(f.board))

	f.board.ClearCanvas()

	assert.Zero(t, nonWhite(f.board))
	assert.Zero(t, f.board.Painted())
}

func TestLegendFiresEffects(t *testing.T) {
	f := newTestBoard(t)
	chips := legend(f.board)
	require.Len(t, chips, f.board.Table().Len())

	chip, ok := chips[0].(*keyChip)
	require.True(t, ok)
	test.Tap(chip)

	require.Len(t, f.seen, 1)
	want, _ := f.board.Table().Lookup(chip.Entry.Key)
	assert.Equal(t, want, f.seen[0].Effect)
}

func TestLayoutResizesSurface(t *testing.T) {
	f := newTestBoard(t)
	r := test.WidgetRenderer(f.board)

	r.Layout(fyne.NewSize(400, 300))
	w, h := f.board.Surface().Size()
	assert.Equal(t, 400, w)
	assert.Equal(t, 300, h)

	r.Layout(fyne.NewSize(0, 0))
	w, h = f.board.Surface().Size()
	assert.Equal(t, 400, w, "empty layouts keep the surface")
	assert.Equal(t, 300, h)
}
