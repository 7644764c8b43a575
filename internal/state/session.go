package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/rectalogic/terp/internal/logging"
	"github.com/rectalogic/terp/internal/mesh"
)

var (
	ErrAlreadyDrawing = errors.New("a stroke is already being drawn")
	ErrNotDrawing     = errors.New("no stroke is being drawn")
)

// Session owns every stroke of an open project: the slot counters, the
// undo stack and the stroke being drawn. Input, animation and renderers all
// go through it; renderers only ever see copies (see Snapshot).
type Session struct {
	strokes  map[uuid.UUID]*stroke
	undo     []uuid.UUID // creation order
	slots    slotCounter
	active   uuid.UUID
	progress float32
	mu       sync.RWMutex
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{
		strokes: make(map[uuid.UUID]*stroke),
	}
}

// Start begins a stroke on side at the given point using brush.
func (s *Session) Start(side Side, at mesh.Vec2, brush Appearance) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != uuid.Nil {
		return uuid.Nil, ErrAlreadyDrawing
	}
	slot := s.slots.next(side)
	st := &stroke{
		id:     uuid.New(),
		side:   side,
		slot:   slot,
		points: mesh.Points{at.Extend(float32(slot))},
		brush:  brush,
		state:  pending{},
	}
	s.strokes[st.id] = st
	s.undo = append(s.undo, st.id)
	s.active = st.id

	logging.L().Debug("stroke started", "side", side, "slot", slot)
	return st.id, nil
}

// Point extends the stroke being drawn.
func (s *Session) Point(at mesh.Vec2) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.strokes[s.active]
	if !ok {
		return ErrNotDrawing
	}
	st.points.Append(at.Extend(float32(st.slot)))
	return nil
}

// End finishes the stroke being drawn and merges it with the pending stroke
// of the opposite side holding the same slot. A nil Pair means no
// counterpart exists yet; the stroke waits for one.
func (s *Session) End() (*Pair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.strokes[s.active]
	if !ok {
		return nil, ErrNotDrawing
	}
	s.active = uuid.Nil

	other := s.counterpart(st)
	if other == nil {
		logging.L().Debug("stroke pending", "side", st.side, "slot", st.slot, "points", len(st.points))
		return nil, nil
	}

	source, target := st, other
	if st.side == Target {
		source, target = other, st
	}
	pm, err := mesh.NewPairedMesh(source.points.Positions(), target.points.Positions())
	if err != nil {
		return nil, fmt.Errorf("merge slot %d: %w", st.slot, err)
	}
	blend := BlendSettings{Source: source.brush, Target: target.brush}
	layer := float32(st.slot)

	source.state = &merged{counterpart: target.id, role: Leading, mesh: pm, blend: blend, layer: layer}
	blend.T = 1
	target.state = &merged{counterpart: source.id, role: Trailing, mesh: pm, blend: blend, layer: layer}

	logging.L().Info("stroke merged", "slot", st.slot, "vertices", pm.Len())
	return &Pair{Source: source.id, Target: target.id, Slot: st.slot}, nil
}

// counterpart finds the oldest pending stroke that pairs with st.
func (s *Session) counterpart(st *stroke) *stroke {
	for _, id := range s.undo {
		c := s.strokes[id]
		if c == st || c.side != st.side.Opposite() || c.slot != st.slot {
			continue
		}
		if _, ok := c.state.(pending); ok {
			return c
		}
	}
	return nil
}

// Undo removes the most recently created stroke. If it was merged its
// counterpart is kept but falls back to a pending, unpaired stroke.
// It reports whether anything was undone.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.undo)
	if n == 0 {
		return false
	}
	id := s.undo[n-1]
	s.undo = s.undo[:n-1]
	st := s.strokes[id]

	if m, ok := st.merged(); ok {
		if c, ok := s.strokes[m.counterpart]; ok {
			c.state = pending{}
		}
	}
	if s.active == id {
		s.active = uuid.Nil
	}
	delete(s.strokes, id)
	s.slots.rewind(st.side, st.slot-1)

	logging.L().Debug("stroke undone", "side", st.side, "slot", st.slot)
	return true
}

// Clear drops every stroke and resets the slot counters.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Session) reset() {
	s.strokes = make(map[uuid.UUID]*stroke)
	s.undo = nil
	s.slots.reset()
	s.active = uuid.Nil
	s.progress = 0
}

// SetProgress moves every merged pair to progress t: leading strokes get t
// and trailing strokes 1-t, so the two halves always sum to one.
func (s *Session) SetProgress(t float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress = t
	for _, st := range s.strokes {
		m, ok := st.merged()
		if !ok {
			continue
		}
		if m.role == Leading {
			m.blend.T = t
		} else {
			m.blend.T = 1 - t
		}
	}
}

// Progress returns the last value passed to SetProgress.
func (s *Session) Progress() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress
}

// Drawing reports the side being drawn on, if any.
func (s *Session) Drawing() (Side, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.strokes[s.active]; ok {
		return st.side, true
	}
	return Source, false
}

// Slot returns the highest slot claimed on side.
func (s *Session) Slot(side Side) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slots.current(side)
}

// Len returns the number of strokes.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.strokes)
}

// Drawings returns every merged pair in creation order.
func (s *Session) Drawings() ([]Drawing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var drawings []Drawing
	for _, id := range s.undo {
		m, ok := s.strokes[id].merged()
		if !ok || m.role != Leading {
			continue
		}
		src, tgt, err := m.mesh.Points()
		if err != nil {
			return nil, fmt.Errorf("stroke %s: %w", id, err)
		}
		drawings = append(drawings, Drawing{
			SourceAppearance: m.blend.Source,
			TargetAppearance: m.blend.Target,
			SourcePoints:     src,
			TargetPoints:     tgt,
			Layer:            m.layer,
		})
	}
	return drawings, nil
}

// Load replaces the session contents with drawings, each registered as an
// already merged pair. Nothing changes if any drawing is invalid.
func (s *Session) Load(drawings []Drawing) error {
	meshes := make([]*mesh.PairedMesh, len(drawings))
	for i, d := range drawings {
		pm, err := mesh.BuildInterpolated(d.SourcePoints.Positions(), d.TargetPoints.Positions())
		if err != nil {
			return fmt.Errorf("drawing %d: %w", i, err)
		}
		meshes[i] = pm
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	for i, d := range drawings {
		source := &stroke{
			id:     uuid.New(),
			side:   Source,
			slot:   s.slots.next(Source),
			points: append(mesh.Points(nil), d.SourcePoints...),
			brush:  d.SourceAppearance,
		}
		target := &stroke{
			id:     uuid.New(),
			side:   Target,
			slot:   s.slots.next(Target),
			points: append(mesh.Points(nil), d.TargetPoints...),
			brush:  d.TargetAppearance,
		}
		blend := BlendSettings{Source: d.SourceAppearance, Target: d.TargetAppearance}
		source.state = &merged{counterpart: target.id, role: Leading, mesh: meshes[i], blend: blend, layer: d.Layer}
		blend.T = 1
		target.state = &merged{counterpart: source.id, role: Trailing, mesh: meshes[i], blend: blend, layer: d.Layer}

		s.strokes[source.id] = source
		s.strokes[target.id] = target
		s.undo = append(s.undo, source.id, target.id)
	}

	logging.L().Info("project loaded", "drawings", len(drawings))
	return nil
}

// Snapshot returns deep copies of every stroke in creation order. The
// copies stay valid however the session changes afterwards.
func (s *Session) Snapshot() []View {
	s.mu.RLock()
	views := make([]View, 0, len(s.undo))
	for _, id := range s.undo {
		views = append(views, s.view(s.strokes[id]))
	}
	s.mu.RUnlock()

	var out []View
	if err := copier.CopyWithOption(&out, &views, copier.Option{DeepCopy: true}); err != nil {
		logging.L().Error("snapshot copy failed", "err", err)
		return nil
	}
	return out
}

// Stroke returns a copy of the stroke with the given id.
func (s *Session) Stroke(id uuid.UUID) (View, bool) {
	for _, v := range s.Snapshot() {
		if v.ID == id {
			return v, true
		}
	}
	return View{}, false
}

func (s *Session) view(st *stroke) View {
	v := View{
		ID:     st.id,
		Side:   st.side,
		Slot:   st.slot,
		Active: st.id == s.active,
		Layer:  float32(st.slot),
	}
	if m, ok := st.merged(); ok {
		v.Merged = true
		v.Role = m.role
		v.Counterpart = m.counterpart
		v.Current = m.mesh.Current
		v.Paired = m.mesh.Paired
		v.Blend = m.blend
		v.Layer = m.layer
		return v
	}
	v.Current = st.points.Positions()
	v.Blend = BlendSettings{Source: st.brush, Target: st.brush}
	return v
}
