// Package project reads and writes terp project files: the merged stroke
// pairs of a session encoded as CBOR.
package project

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/rectalogic/terp/internal/mesh"
	"github.com/rectalogic/terp/internal/state"
)

// Version is written into every project and is the only version Decode accepts.
const Version = 1

// ErrDecode wraps every failure to decode project bytes.
var ErrDecode = errors.New("invalid project data")

// Point is one logical point, encoded as a three element array.
type Point struct {
	_       struct{} `cbor:",toarray"`
	X, Y, Z float32
}

// Color is linear RGBA, encoded as a four element array.
type Color struct {
	_          struct{} `cbor:",toarray"`
	R, G, B, A float32
}

// Appearance is a brush on the wire.
type Appearance struct {
	Color  Color   `cbor:"1,keyasint"`
	Radius float32 `cbor:"2,keyasint"`
}

// Drawing is one merged pair. SourcePoints and TargetPoints have the same
// length because they were reconciled when the pair was merged.
type Drawing struct {
	SourceAppearance Appearance `cbor:"1,keyasint"`
	TargetAppearance Appearance `cbor:"2,keyasint"`
	SourcePoints     []Point    `cbor:"3,keyasint"`
	TargetPoints     []Point    `cbor:"4,keyasint"`
	Layer            float32    `cbor:"5,keyasint"`
}

// Project is the root of a project file.
type Project struct {
	Version  uint      `cbor:"1,keyasint"`
	Drawings []Drawing `cbor:"2,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		MaxNestedLevels:   16,
		MaxArrayElements:  1 << 24,
		MaxMapPairs:       64,
		IndefLength:       cbor.IndefLengthForbidden,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Encode serializes p. The output is deterministic.
func Encode(p Project) ([]byte, error) {
	p.Version = Version
	return encMode.Marshal(p)
}

// Decode parses project bytes. Any malformed, truncated or unknown input
// yields an error wrapping ErrDecode.
func Decode(data []byte) (Project, error) {
	var p Project
	if err := decMode.Unmarshal(data, &p); err != nil {
		return Project{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if p.Version != Version {
		return Project{}, fmt.Errorf("%w: unsupported version %d", ErrDecode, p.Version)
	}
	return p, nil
}

func appearanceToWire(a state.Appearance) Appearance {
	return Appearance{
		Color:  Color{R: a.Color.R, G: a.Color.G, B: a.Color.B, A: a.Color.A},
		Radius: a.Radius,
	}
}

func (a Appearance) state() state.Appearance {
	return state.Appearance{
		Color:  state.LinearRGBA{R: a.Color.R, G: a.Color.G, B: a.Color.B, A: a.Color.A},
		Radius: a.Radius,
	}
}

func pointsToWire(points mesh.Points) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{X: p.X, Y: p.Y, Z: p.Z}
	}
	return out
}

func pointsFromWire(points []Point) mesh.Points {
	out := make(mesh.Points, len(points))
	for i, p := range points {
		out[i] = mesh.Vec3{X: p.X, Y: p.Y, Z: p.Z}
	}
	return out
}

// FromDrawings converts session drawings to their wire form.
func FromDrawings(drawings []state.Drawing) Project {
	p := Project{Version: Version, Drawings: make([]Drawing, 0, len(drawings))}
	for _, d := range drawings {
		p.Drawings = append(p.Drawings, Drawing{
			SourceAppearance: appearanceToWire(d.SourceAppearance),
			TargetAppearance: appearanceToWire(d.TargetAppearance),
			SourcePoints:     pointsToWire(d.SourcePoints),
			TargetPoints:     pointsToWire(d.TargetPoints),
			Layer:            d.Layer,
		})
	}
	return p
}

// StateDrawings converts p back to session drawings.
func (p Project) StateDrawings() []state.Drawing {
	out := make([]state.Drawing, 0, len(p.Drawings))
	for _, d := range p.Drawings {
		out = append(out, state.Drawing{
			SourceAppearance: d.SourceAppearance.state(),
			TargetAppearance: d.TargetAppearance.state(),
			SourcePoints:     pointsFromWire(d.SourcePoints),
			TargetPoints:     pointsFromWire(d.TargetPoints),
			Layer:            d.Layer,
		})
	}
	return out
}

// FromSession captures every merged pair of s.
func FromSession(s *state.Session) (Project, error) {
	drawings, err := s.Drawings()
	if err != nil {
		return Project{}, err
	}
	return FromDrawings(drawings), nil
}

// Apply replaces the contents of s with p. A drawing whose two point lists
// differ in length fails the whole load and s is left as it was.
func Apply(s *state.Session, p Project) error {
	return s.Load(p.StateDrawings())
}
