package state

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rectalogic/terp/internal/mesh"
)

func TestEvaluate(t *testing.T) {
	b := BlendSettings{
		Source: Appearance{Color: LinearRGBA{R: 1, A: 1}, Radius: 10},
		Target: Appearance{Color: LinearRGBA{B: 1, A: 0}, Radius: 30},
	}
	assert.Equal(t, b.Source, b.Evaluate(0))
	assert.Equal(t, b.Target, b.Evaluate(1))
	mid := b.Evaluate(0.5)
	assert.Equal(t, LinearRGBA{R: 0.5, B: 0.5, A: 0.5}, mid.Color)
	assert.Equal(t, float32(20), mid.Radius)
	assert.Equal(t, float32(40), b.Evaluate(1.5).Radius, "t is not clamped")
}

func TestSideAndRole(t *testing.T) {
	assert.Equal(t, Target, Source.Opposite())
	assert.Equal(t, Source, Target.Opposite())
	assert.Equal(t, "source", Source.String())
	assert.Equal(t, "trailing", Trailing.String())
}

func TestColors(t *testing.T) {
	c, err := ColorFromHex("#ff0000")
	require.NoError(t, err)
	assert.InDelta(t, 1, c.R, 1e-6)
	assert.InDelta(t, 0, c.G, 1e-6)
	assert.Equal(t, float32(1), c.A)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, c.NRGBA())

	_, err = ColorFromHex("nope")
	assert.Error(t, err)

	white := FromColor(color.White)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, white.NRGBA())
	assert.Equal(t, LinearRGBA{}, FromColor(color.Transparent))
}

func TestBounds(t *testing.T) {
	_, ok := Bounds(nil)
	assert.False(t, ok)

	r, ok := Bounds([]Drawing{{
		SourceAppearance: Appearance{Radius: 1},
		TargetAppearance: Appearance{Radius: 2},
		SourcePoints:     mesh.Points{{X: 0, Y: 0}, {X: 10, Y: 5}},
		TargetPoints:     mesh.Points{{X: 20, Y: -5}, {X: 30, Y: 0}},
	}})
	require.True(t, ok)
	assert.Equal(t, Rect{Min: mesh.Vec2{X: -1, Y: -7}, Max: mesh.Vec2{X: 32, Y: 6}}, r)
	assert.Equal(t, float32(33), r.Width())
	assert.Equal(t, float32(13), r.Height())
}
