package state

import (
	"github.com/google/uuid"

	"github.com/rectalogic/terp/internal/mesh"
)

// Side selects the canvas a stroke was drawn on.
type Side int

const (
	Source Side = iota
	Target
)

// Opposite returns the side a stroke on s pairs with.
func (s Side) Opposite() Side {
	if s == Source {
		return Target
	}
	return Source
}

func (s Side) String() string {
	if s == Source {
		return "source"
	}
	return "target"
}

// Role tells which end of a merged pair a stroke is. The leading stroke is
// the source side and is the one the animation clock drives forward.
type Role int

const (
	Leading Role = iota
	Trailing
)

func (r Role) String() string {
	if r == Leading {
		return "leading"
	}
	return "trailing"
}

// Appearance is the brush a stroke is painted with.
type Appearance struct {
	Color  LinearRGBA
	Radius float32
}

// Lerp blends a towards o by t.
func (a Appearance) Lerp(o Appearance, t float32) Appearance {
	return Appearance{
		Color:  a.Color.Lerp(o.Color, t),
		Radius: a.Radius + (o.Radius-a.Radius)*t,
	}
}

// BlendSettings are the visual parameters of one side of a merged pair.
// Source and Target are fixed when the pair is merged; only T moves.
type BlendSettings struct {
	Source Appearance
	Target Appearance
	T      float32
}

// Evaluate returns the appearance at progress t. t is not clamped.
func (b BlendSettings) Evaluate(t float32) Appearance {
	return b.Source.Lerp(b.Target, t)
}

// Current is the appearance at the settings' own progress.
func (b BlendSettings) Current() Appearance {
	return b.Evaluate(b.T)
}

// strokeState is either pending or *merged.
type strokeState interface {
	isStrokeState()
}

type pending struct{}

type merged struct {
	counterpart uuid.UUID
	role        Role
	mesh        *mesh.PairedMesh // shared with the counterpart
	blend       BlendSettings
	layer       float32
}

func (pending) isStrokeState() {}
func (*merged) isStrokeState() {}

type stroke struct {
	id     uuid.UUID
	side   Side
	slot   int
	points mesh.Points
	brush  Appearance
	state  strokeState
}

func (s *stroke) merged() (*merged, bool) {
	m, ok := s.state.(*merged)
	return m, ok
}

// Pair identifies the two strokes joined by a merge.
type Pair struct {
	Source uuid.UUID
	Target uuid.UUID
	Slot   int
}

// Drawing is a merged pair in its persisted shape.
type Drawing struct {
	SourceAppearance Appearance
	TargetAppearance Appearance
	SourcePoints     mesh.Points
	TargetPoints     mesh.Points
	Layer            float32
}

// View is a read-only copy of one stroke handed to renderers.
// Pending strokes have a nil Paired buffer and Blend.Source == Blend.Target.
type View struct {
	ID          uuid.UUID
	Side        Side
	Slot        int
	Active      bool
	Merged      bool
	Role        Role
	Counterpart uuid.UUID
	Current     []mesh.Vec3
	Paired      []mesh.Vec3
	Blend       BlendSettings
	Layer       float32
}

// Positions returns the vertices to draw at the view's own progress.
func (v View) Positions() []mesh.Vec3 {
	if !v.Merged {
		return v.Current
	}
	m := mesh.PairedMesh{Current: v.Current, Paired: v.Paired}
	return m.Interpolate(v.Blend.T)
}
