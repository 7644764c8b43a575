package state

// slotCounter numbers the strokes of each side. The number is only a join
// key: a source stroke pairs with the target stroke holding the same slot.
type slotCounter struct {
	source int
	target int
}

func (c *slotCounter) side(s Side) *int {
	if s == Source {
		return &c.source
	}
	return &c.target
}

// next claims the next slot on s.
func (c *slotCounter) next(s Side) int {
	n := c.side(s)
	*n++
	return *n
}

// rewind makes slot the highest claimed slot on s.
func (c *slotCounter) rewind(s Side, slot int) {
	*c.side(s) = max(slot, 0)
}

func (c *slotCounter) current(s Side) int {
	return *c.side(s)
}

func (c *slotCounter) reset() {
	c.source, c.target = 0, 0
}
