package state

import (
	"github.com/chewxy/math32"

	"github.com/rectalogic/terp/internal/mesh"
)

// Rect is an axis aligned box in world space.
type Rect struct {
	Min, Max mesh.Vec2
}

func (r Rect) Width() float32  { return r.Max.X - r.Min.X }
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// Union grows r to cover o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: mesh.Vec2{X: math32.Min(r.Min.X, o.Min.X), Y: math32.Min(r.Min.Y, o.Min.Y)},
		Max: mesh.Vec2{X: math32.Max(r.Max.X, o.Max.X), Y: math32.Max(r.Max.Y, o.Max.Y)},
	}
}

// Inset grows r by pad on every side.
func (r Rect) Inset(pad float32) Rect {
	r.Min.X -= pad
	r.Min.Y -= pad
	r.Max.X += pad
	r.Max.Y += pad
	return r
}

// PointsBounds returns the box around points, false if there are none.
func PointsBounds(points []mesh.Vec3) (Rect, bool) {
	if len(points) == 0 {
		return Rect{}, false
	}
	r := Rect{Min: points[0].XY(), Max: points[0].XY()}
	for _, p := range points[1:] {
		r = r.Union(Rect{Min: p.XY(), Max: p.XY()})
	}
	return r, true
}

// Bounds returns the box covering both ends of every drawing, including
// the brush radius, so a morph stays inside it for any progress in [0,1].
func Bounds(drawings []Drawing) (Rect, bool) {
	var (
		out   Rect
		found bool
	)
	for _, d := range drawings {
		for _, end := range []struct {
			points mesh.Points
			radius float32
		}{
			{d.SourcePoints, d.SourceAppearance.Radius},
			{d.TargetPoints, d.TargetAppearance.Radius},
		} {
			r, ok := PointsBounds(end.points)
			if !ok {
				continue
			}
			r = r.Inset(end.radius)
			if found {
				out = out.Union(r)
			} else {
				out, found = r, true
			}
		}
	}
	return out, found
}
