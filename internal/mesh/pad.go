package mesh

import "github.com/chewxy/math32"

// Pad stretches positions to targetLen by repeating whole triples, choosing
// for every output point the nearest preceding input point. No new values
// are introduced; blending happens later between the two padded buffers.
//
// Both lengths must be positive multiples of Triple and positions must not
// be longer than targetLen. Violations are programming errors and panic.
// Equal lengths yield a copy of positions.
func Pad[T any](positions []T, targetLen int) []T {
	if len(positions) == 0 || targetLen == 0 || len(positions) > targetLen {
		panic("mesh: positions empty or longer than target")
	}
	if len(positions)%Triple != 0 || targetLen%Triple != 0 {
		panic("mesh: positions must be triples")
	}

	result := make([]T, 0, targetLen)
	if len(positions) == targetLen {
		return append(result, positions...)
	}

	ratio := float32(targetLen) / float32(len(positions))
	last := len(positions)/Triple - 1
	for i := 0; i < targetLen/Triple; i++ {
		src := min(int(math32.Floor(float32(i)/ratio)), last) * Triple
		result = append(result, positions[src:src+Triple]...)
	}
	return result
}
