package ui

import (
	"image/color"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/rectalogic/terp/internal/logging"
	"github.com/rectalogic/terp/internal/mesh"
	"github.com/rectalogic/terp/internal/state"
)

var background = color.NRGBA{R: 24, G: 24, B: 28, A: 255}

// Canvas shows the strokes of one side and routes mouse strokes into the
// session. A read only canvas only displays.
type Canvas struct {
	widget.BaseWidget
	side     state.Side
	session  *state.Session
	brush    func(state.Side) state.Appearance
	readOnly bool
	drawing  bool

	// OnChanged runs when the stroke set changes in a way other views
	// should see, such as a merge.
	OnChanged func()
}

var _ fyne.Widget = (*Canvas)(nil)
var _ fyne.Draggable = (*Canvas)(nil)
var _ desktop.Mouseable = (*Canvas)(nil)

// NewCanvas creates the view for side. brush is read when a stroke starts.
func NewCanvas(side state.Side, session *state.Session, brush func(state.Side) state.Appearance) *Canvas {
	c := &Canvas{side: side, session: session, brush: brush}
	c.ExtendBaseWidget(c)
	return c
}

// NewPlayerCanvas creates a read only view for side.
func NewPlayerCanvas(side state.Side, session *state.Session) *Canvas {
	c := &Canvas{side: side, session: session, readOnly: true}
	c.ExtendBaseWidget(c)
	return c
}

func toWorld(p fyne.Position) mesh.Vec2 {
	return mesh.Vec2{X: p.X, Y: p.Y}
}

func (c *Canvas) MouseDown(e *desktop.MouseEvent) {
	if c.readOnly || e.Button != desktop.MouseButtonPrimary {
		return
	}
	if _, err := c.session.Start(c.side, toWorld(e.Position), c.brush(c.side)); err != nil {
		logging.L().Warn("start stroke", "side", c.side, "err", err)
		return
	}
	c.drawing = true
	c.Refresh()
}

func (c *Canvas) Dragged(e *fyne.DragEvent) {
	if !c.drawing {
		return
	}
	if err := c.session.Point(toWorld(e.Position)); err != nil {
		// the stroke was undone while drawing
		c.drawing = false
		return
	}
	c.Refresh()
}

func (c *Canvas) DragEnd() {
	c.end()
}

func (c *Canvas) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		c.end()
	}
}

func (c *Canvas) end() {
	if !c.drawing {
		return
	}
	c.drawing = false
	pair, err := c.session.End()
	if err != nil {
		logging.L().Warn("end stroke", "side", c.side, "err", err)
	}
	c.Refresh()
	if pair != nil && c.OnChanged != nil {
		c.OnChanged()
	}
}

func (c *Canvas) MouseIn(*desktop.MouseEvent)    {}
func (c *Canvas) MouseOut()                      {}
func (c *Canvas) MouseMoved(*desktop.MouseEvent) {}

func (c *Canvas) CreateRenderer() fyne.WidgetRenderer {
	r := &canvasRenderer{canvas: c, background: canvas.NewRectangle(background)}
	r.Refresh()
	return r
}

type canvasRenderer struct {
	canvas     *Canvas
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

// views returns the strokes of the canvas side, lowest layer first.
func (r *canvasRenderer) views() []state.View {
	var views []state.View
	for _, v := range r.canvas.session.Snapshot() {
		if v.Side == r.canvas.side {
			views = append(views, v)
		}
	}
	slices.SortStableFunc(views, func(a, b state.View) int {
		switch {
		case a.Layer < b.Layer:
			return -1
		case a.Layer > b.Layer:
			return 1
		}
		return 0
	})
	return views
}

func (r *canvasRenderer) Refresh() {
	objects := []fyne.CanvasObject{r.background}
	for _, v := range r.views() {
		look := v.Blend.Current()
		fill := look.Color.NRGBA()
		positions := v.Positions()
		for i := 0; i < len(positions); i += mesh.Triple {
			p := positions[i]
			dot := canvas.NewCircle(fill)
			dot.Move(fyne.NewPos(p.X-look.Radius, p.Y-look.Radius))
			dot.Resize(fyne.NewSquareSize(2 * look.Radius))
			objects = append(objects, dot)
		}
	}
	r.objects = objects
	canvas.Refresh(r.canvas)
}

func (r *canvasRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *canvasRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *canvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *canvasRenderer) Destroy() {}
