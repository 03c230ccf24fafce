package ui

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"PollockBoard/internal/paint"
)

// keyChip is a legend entry: the key on a swatch of paint. Tapping it
// fires the effect.
type keyChip struct {
	widget.BaseWidget
	Entry    paint.Entry
	Color    color.Color
	OnTapped func(rune)
}

func newKeyChip(e paint.Entry, c color.Color, tapped func(rune)) *keyChip {
	s := &keyChip{Entry: e, Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *keyChip) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	key := canvas.NewText(strings.ToUpper(string(s.Entry.Key)), color.White)
	key.TextStyle = fyne.TextStyle{Bold: true}
	key.Alignment = fyne.TextAlignCenter

	return widget.NewSimpleRenderer(container.NewStack(rect, border, container.NewCenter(key)))
}

func (s *keyChip) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Entry.Key)
	}
}

// NewToolbar builds the controls above the board: clear, the command
// sequence entry and the key legend.
func NewToolbar(board *BoardWidget) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DeleteIcon(), board.ClearCanvas),
	)

	seq := newSequenceEntry(board)
	run := widget.NewButtonWithIcon("Run", theme.MediaPlayIcon(), func() {
		seq.OnSubmitted(seq.Text)
	})
	seqBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(220, 36)), seq)

	return container.NewVBox(
		container.NewHBox(
			widget.NewLabel("Clear:"),
			tb,
			widget.NewSeparator(),
			widget.NewLabel("Sequence:"),
			seqBox,
			run,
			layout.NewSpacer(),
		),
		container.NewHBox(append([]fyne.CanvasObject{widget.NewLabel("Keys:")}, legend(board)...)...),
	)
}

// newSequenceEntry returns the entry that plays its text on submit and
// then empties itself.
func newSequenceEntry(board *BoardWidget) *widget.Entry {
	e := widget.NewEntry()
	e.SetPlaceHolder("e.g. sgexr")
	e.OnSubmitted = func(text string) {
		if board.RunSequence(text) > 0 {
			e.SetText("")
		}
	}
	return e
}

func legend(board *BoardWidget) []fyne.CanvasObject {
	entries := board.Table().Entries()
	chips := make([]fyne.CanvasObject, 0, len(entries))
	for i, e := range entries {
		// spread the swatches around the hue wheel
		c := paint.Color{H: float64(i) * 360 / float64(len(entries)), S: 70, L: 45}
		chip := newKeyChip(e, c.RGBA().Color(), board.Fire)
		chips = append(chips, chip)
	}
	return chips
}
