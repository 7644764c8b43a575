package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPad(t *testing.T) {
	in := []int{1, 1, 1, 2, 2, 2, 3, 3, 3, 4, 4, 4}
	assert.Equal(t,
		[]int{1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2, 3, 3, 3, 3, 3, 3, 4, 4, 4},
		Pad(in, 7*3))
	assert.Equal(t,
		[]int{
			1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 3, 3, 3, 3, 3, 3, 3,
			3, 3, 3, 3, 3, 4, 4, 4, 4, 4, 4, 4, 4, 4,
		},
		Pad(in, 14*3))
}

func TestPadEqualLength(t *testing.T) {
	in := []int{1, 1, 1, 2, 2, 2}
	out := Pad(in, len(in))
	assert.Equal(t, in, out)
	out[0] = 9
	assert.Equal(t, 1, in[0], "equal length pad must not alias its input")
}

func TestPadLength(t *testing.T) {
	in := []Vec3{{1, 2, 0}, {1, 2, 0}, {1, 2, 0}, {5, 6, 0}, {5, 6, 0}, {5, 6, 0}}
	for _, n := range []int{9, 12, 15, 33, 300} {
		out := Pad(in, n)
		assert.Len(t, out, n)
		for i := 0; i < n; i += Triple {
			assert.Equal(t, out[i], out[i+1])
			assert.Equal(t, out[i], out[i+2])
			assert.Contains(t, in, out[i])
		}
		assert.Equal(t, in[0], out[0])
		assert.Equal(t, in[len(in)-1], out[n-1])
	}
}

func TestPadDeterministic(t *testing.T) {
	in := []int{1, 1, 1, 2, 2, 2, 3, 3, 3}
	assert.Equal(t, Pad(in, 24), Pad(in, 24))
}

func TestPadPanics(t *testing.T) {
	assert.Panics(t, func() { Pad([]int{}, 3) })
	assert.Panics(t, func() { Pad([]int{1, 1, 1}, 0) })
	assert.Panics(t, func() { Pad([]int{1, 1, 1, 2, 2, 2}, 3) })
	assert.Panics(t, func() { Pad([]int{1, 1}, 6) })
	assert.Panics(t, func() { Pad([]int{1, 1, 1}, 7) })
}
