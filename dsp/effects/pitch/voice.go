package pitch

// cursor walks a looping modulation buffer. It stays silent for wait
// samples before its first pass, like a buffer source scheduled later.
type cursor struct {
	length int
	pos    int
	wait   int
	start  int
}

func newCursor(length, wait int) cursor {
	return cursor{length: length, wait: wait, start: wait}
}

// next returns the index to read for the current sample and whether the
// cursor has started.
func (c *cursor) next() (int, bool) {
	if c.wait > 0 {
		c.wait--
		return 0, false
	}

	p := c.pos

	c.pos++
	if c.pos >= c.length {
		c.pos = 0
	}

	return p, true
}

func (c *cursor) reset() {
	c.pos = 0
	c.wait = c.start
}
