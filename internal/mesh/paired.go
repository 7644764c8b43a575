package mesh

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty reports a stroke with no vertices.
	ErrEmpty = errors.New("empty vertex buffer")
	// ErrLengthMismatch reports stored buffers that were never padded to
	// a common length.
	ErrLengthMismatch = errors.New("source and target vertex counts differ")
)

// Merge pads the shorter of the two buffers up to the length of the longer.
// The longer buffer is returned as given.
func Merge(source, target []Vec3) (paddedSource, paddedTarget []Vec3) {
	switch {
	case len(source) > len(target):
		return source, Pad(target, len(source))
	case len(source) < len(target):
		return Pad(source, len(target)), target
	default:
		return source, target
	}
}

// PairedMesh holds a shape and the counterpart shape it morphs into.
// Current and Paired always have the same, non-zero, tripled length.
type PairedMesh struct {
	Current []Vec3
	Paired  []Vec3
}

// NewPairedMesh merges two stroke buffers of any length.
func NewPairedMesh(source, target []Vec3) (*PairedMesh, error) {
	if len(source) == 0 || len(target) == 0 {
		return nil, ErrEmpty
	}
	if len(source)%Triple != 0 || len(target)%Triple != 0 {
		return nil, ErrNotTriples
	}
	current, paired := Merge(source, target)
	return &PairedMesh{Current: current, Paired: paired}, nil
}

// BuildInterpolated pairs two buffers that are already reconciled, such as
// the ones read back from a saved project. It never pads.
func BuildInterpolated(source, target []Vec3) (*PairedMesh, error) {
	if len(source) != len(target) {
		return nil, fmt.Errorf("%d != %d: %w", len(source), len(target), ErrLengthMismatch)
	}
	if len(source) == 0 {
		return nil, ErrEmpty
	}
	if len(source)%Triple != 0 {
		return nil, ErrNotTriples
	}
	return &PairedMesh{Current: source, Paired: target}, nil
}

// Len returns the vertex count of either buffer.
func (m *PairedMesh) Len() int {
	return len(m.Current)
}

// Points returns the logical points of both buffers.
func (m *PairedMesh) Points() (source, target Points, err error) {
	if source, err = PointsFromPositions(m.Current); err != nil {
		return nil, nil, fmt.Errorf("current positions: %w", err)
	}
	if target, err = PointsFromPositions(m.Paired); err != nil {
		return nil, nil, fmt.Errorf("paired positions: %w", err)
	}
	return source, target, nil
}

// Interpolate blends every vertex of Current towards Paired by t.
func (m *PairedMesh) Interpolate(t float32) []Vec3 {
	out := make([]Vec3, len(m.Current))
	for i, v := range m.Current {
		out[i] = v.Lerp(m.Paired[i], t)
	}
	return out
}
