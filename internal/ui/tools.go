package ui

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/rectalogic/terp/internal/state"
)

var palette = []color.Color{
	color.NRGBA{R: 63, G: 127, B: 255, A: 255},
	color.White,
	color.NRGBA{R: 255, G: 64, B: 64, A: 255},
	color.NRGBA{R: 64, G: 220, B: 96, A: 255},
	color.NRGBA{R: 255, G: 220, B: 0, A: 255},
	color.NRGBA{R: 255, G: 255, B: 255, A: 96},
}

// Brushes holds one brush per side. The toolbar edits the selected one.
type Brushes struct {
	mu       sync.Mutex
	brushes  [2]state.Appearance
	selected state.Side
}

func NewBrushes(source, target state.Appearance) *Brushes {
	return &Brushes{brushes: [2]state.Appearance{state.Source: source, state.Target: target}}
}

func (b *Brushes) For(side state.Side) state.Appearance {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.brushes[side]
}

func (b *Brushes) Select(side state.Side) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = side
}

func (b *Brushes) Selected() state.Side {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selected
}

func (b *Brushes) SetColor(c color.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.brushes[b.selected].Color = state.FromColor(c)
}

func (b *Brushes) SetRadius(r float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.brushes[b.selected].Radius = r
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
	rect.SetMinSize(fyne.NewSquareSize(28))

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

// Actions are the editor commands the toolbar triggers.
type Actions struct {
	Undo    func()
	Clear   func()
	Animate func()
	Save    func()
}

// NewToolbar builds the editor toolbar. The side selector decides which
// brush the swatches and the radius slider edit.
func NewToolbar(brushes *Brushes, actions Actions) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.MediaPlayIcon(), actions.Animate),
		widget.NewToolbarAction(theme.ContentUndoIcon(), actions.Undo),
		widget.NewToolbarAction(theme.DeleteIcon(), actions.Clear),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), actions.Save),
	)

	radius := widget.NewSlider(1, 50)
	radius.SetValue(float64(brushes.For(brushes.Selected()).Radius))
	radius.OnChanged = func(v float64) {
		brushes.SetRadius(float32(v))
	}

	sides := widget.NewRadioGroup([]string{state.Source.String(), state.Target.String()}, func(s string) {
		side := state.Source
		if s == state.Target.String() {
			side = state.Target
		}
		brushes.Select(side)
		radius.SetValue(float64(brushes.For(side).Radius))
	})
	sides.Horizontal = true
	sides.Required = true
	sides.SetSelected(brushes.Selected().String())

	swatches := container.NewHBox()
	for _, c := range palette {
		swatches.Add(newColorSwatch(c, brushes.SetColor))
	}

	return container.NewHBox(
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Brush:"),
		sides,
		swatches,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), radius),
		layout.NewSpacer(),
	)
}
