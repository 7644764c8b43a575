package project

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rectalogic/terp/internal/mesh"
	"github.com/rectalogic/terp/internal/state"
)

func pt(x, y, z float32) Point {
	return Point{X: x, Y: y, Z: z}
}

func rgba(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

func sample() Project {
	return Project{
		Version: Version,
		Drawings: []Drawing{
			{
				SourceAppearance: Appearance{Color: rgba(0.25, 0.5, 1, 1), Radius: 20},
				TargetAppearance: Appearance{Color: rgba(1, 1, 1, 0.5), Radius: 5},
				SourcePoints:     []Point{pt(0, 0, 1), pt(1.5, -2.25, 1), pt(3, 3, 1)},
				TargetPoints:     []Point{pt(5, 5, 1), pt(6, 6, 1), pt(6, 6, 1)},
				Layer:            1,
			},
			{
				SourceAppearance: Appearance{Color: rgba(0.1, 0.2, 0.3, 1), Radius: 12.75},
				TargetAppearance: Appearance{Color: rgba(0.3, 0.2, 0.1, 1), Radius: 0.001},
				SourcePoints:     []Point{pt(-100.125, 3.3, 2)},
				TargetPoints:     []Point{pt(42, 1e-7, 2)},
				Layer:            2,
			},
		},
	}
}

// rawProject encodes one drawing with the given source points and source
// color, bypassing the wire types.
func rawProject(t *testing.T, points []any, color []any) []byte {
	t.Helper()
	look := map[int]any{1: []any{1, 1, 1, 1}, 2: 5}
	drawing := map[int]any{
		1: map[int]any{1: color, 2: 5},
		2: look,
		3: points,
		4: []any{[]any{3, 4, 5}},
		5: 1,
	}
	data, err := cbor.Marshal(map[int]any{1: Version, 2: []any{drawing}})
	require.NoError(t, err)
	return data
}

func TestRoundTrip(t *testing.T) {
	p := sample()
	data, err := Encode(p)
	require.NoError(t, err)
	back, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, p, back)

	again, err := Encode(back)
	require.NoError(t, err)
	assert.Equal(t, data, again, "encoding is deterministic")
}

func TestRoundTripEmpty(t *testing.T) {
	data, err := Encode(Project{})
	require.NoError(t, err)
	back, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, Project{Version: Version}, back)
}

func TestDecodeErrors(t *testing.T) {
	good, err := Encode(sample())
	require.NoError(t, err)

	unknown, err := cbor.Marshal(map[int]any{1: Version, 2: []any{}, 9: "extra"})
	require.NoError(t, err)
	future, err := cbor.Marshal(map[int]any{1: Version + 1, 2: []any{}})
	require.NoError(t, err)
	wrongType, err := cbor.Marshal(map[int]any{1: Version, 2: "drawings"})
	require.NoError(t, err)
	color := []any{1, 1, 1, 1}
	point := []any{[]any{1, 2, 3}}

	for name, data := range map[string][]byte{
		"empty":       {},
		"garbage":     []byte("not a project"),
		"truncated":   good[:len(good)/2],
		"trailing":    append(append([]byte{}, good...), 0x00),
		"unknown":     unknown,
		"version":     future,
		"wrong type":  wrongType,
		"short point": rawProject(t, []any{[]any{1, 2}}, color),
		"long point":  rawProject(t, []any{[]any{3, 4, 5, 6, 7}}, color),
		"short color": rawProject(t, point, []any{1, 1, 1}),
		"long color":  rawProject(t, point, []any{1, 1, 1, 1, 1}),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(data)
			assert.ErrorIs(t, err, ErrDecode)
		})
	}
}

func TestDecodeRawProject(t *testing.T) {
	p, err := Decode(rawProject(t, []any{[]any{1, 2, 3}}, []any{0.5, 0.25, 1, 1}))
	require.NoError(t, err)
	require.Len(t, p.Drawings, 1)
	d := p.Drawings[0]
	assert.Equal(t, []Point{pt(1, 2, 3)}, d.SourcePoints)
	assert.Equal(t, rgba(0.5, 0.25, 1, 1), d.SourceAppearance.Color)
}

func FuzzDecode(f *testing.F) {
	good, err := Encode(sample())
	require.NoError(f, err)
	f.Add(good)
	f.Add(good[:len(good)/2])
	f.Add([]byte{})
	f.Add([]byte{0xa2, 0x01, 0x01, 0x02, 0x80})

	f.Fuzz(func(t *testing.T, data []byte) {
		p, err := Decode(data)
		if err != nil {
			assert.ErrorIs(t, err, ErrDecode)
			return
		}
		_, err = Encode(p)
		assert.NoError(t, err)
	})
}

func TestSessionRoundTrip(t *testing.T) {
	brush := state.Appearance{Color: state.LinearRGBA{R: 1, A: 1}, Radius: 20}
	s := state.NewSession()
	_, err := s.Start(state.Source, mesh.Vec2{X: 0, Y: 0}, brush)
	require.NoError(t, err)
	require.NoError(t, s.Point(mesh.Vec2{X: 1, Y: 1}))
	_, err = s.Start(state.Target, mesh.Vec2{}, brush)
	assert.ErrorIs(t, err, state.ErrAlreadyDrawing)
	_, err = s.End()
	require.NoError(t, err)

	_, err = s.Start(state.Target, mesh.Vec2{X: 5, Y: 5}, brush)
	require.NoError(t, err)
	require.NoError(t, s.Point(mesh.Vec2{X: 6, Y: 6}))
	pair, err := s.End()
	require.NoError(t, err)
	require.NotNil(t, pair)

	views := s.Snapshot()
	require.Len(t, views, 2)
	assert.Len(t, views[0].Current, 6)
	assert.Len(t, views[0].Paired, 6)

	data, err := Bytes(s)
	require.NoError(t, err)

	loaded := state.NewSession()
	require.NoError(t, LoadBytes(loaded, data))
	drawings, err := loaded.Drawings()
	require.NoError(t, err)
	require.Len(t, drawings, 1)
	assert.Equal(t, mesh.Points{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}}, drawings[0].SourcePoints)
	assert.Equal(t, mesh.Points{{X: 5, Y: 5, Z: 1}, {X: 6, Y: 6, Z: 1}}, drawings[0].TargetPoints)
}

func TestApplyRejectsMismatch(t *testing.T) {
	p := sample()
	p.Drawings[1].TargetPoints = append(p.Drawings[1].TargetPoints, Point{})
	data, err := Encode(p)
	require.NoError(t, err)

	s := state.NewSession()
	err = LoadBytes(s, data)
	assert.ErrorIs(t, err, mesh.ErrLengthMismatch)
	assert.Equal(t, 0, s.Len())
}
