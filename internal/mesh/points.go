// Package mesh turns freehand strokes into point-sprite vertex buffers and
// reconciles two such buffers into a paired, interpolatable mesh.
//
// Every logical point is stored as three identical vertices so the renderer
// can expand each triple into a triangle.
package mesh

import (
	"errors"
	"fmt"
)

// Triple is the number of vertices emitted for one logical point.
const Triple = 3

// ErrNotTriples reports a vertex buffer that does not hold whole points.
var ErrNotTriples = errors.New("vertex count is not a multiple of 3")

// Vec2 is a point in world space.
type Vec2 struct {
	X, Y float32
}

// Vec3 is a vertex position. Z carries the layer tag of the stroke.
type Vec3 struct {
	X, Y, Z float32
}

// Extend lifts a world point to a vertex on layer z.
func (v Vec2) Extend(z float32) Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: z}
}

// XY drops the layer tag.
func (v Vec3) XY() Vec2 {
	return Vec2{X: v.X, Y: v.Y}
}

// Lerp blends v towards o by t.
func (v Vec3) Lerp(o Vec3, t float32) Vec3 {
	return Vec3{
		X: v.X + (o.X-v.X)*t,
		Y: v.Y + (o.Y-v.Y)*t,
		Z: v.Z + (o.Z-v.Z)*t,
	}
}

// Points is a stroke in the order it was drawn.
type Points []Vec3

// Append adds p to the end of the stroke.
func (p *Points) Append(v Vec3) {
	*p = append(*p, v)
}

// Positions returns the vertex buffer for the stroke, three vertices per point.
func (p Points) Positions() []Vec3 {
	positions := make([]Vec3, 0, len(p)*Triple)
	for _, v := range p {
		positions = append(positions, v, v, v)
	}
	return positions
}

// PointsFromPositions recovers the logical points of a tripled vertex buffer.
func PointsFromPositions(positions []Vec3) (Points, error) {
	if len(positions)%Triple != 0 {
		return nil, fmt.Errorf("%d vertices: %w", len(positions), ErrNotTriples)
	}
	points := make(Points, 0, len(positions)/Triple)
	for i := 0; i < len(positions); i += Triple {
		points = append(points, positions[i])
	}
	return points, nil
}
