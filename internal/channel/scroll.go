package channel

import "math"

// ScrollAll is a scroll magnitude large enough to reach the oldest line
// (positive) or the live tail (negative) in one step.
const ScrollAll = math.MaxInt

// ScrollOffset tracks where a channel view is anchored. Disabled means the
// view follows the live tail and Offset is ignored; enabled pins the view to
// the line at Offset.
type ScrollOffset struct {
	Enabled bool
	Offset  int
}

// Up scrolls toward older lines by delta. From the tail it first seeds the
// offset at length.
func (s *ScrollOffset) Up(delta, length int) bool {
	if delta <= 0 {
		return false
	}
	before := *s
	if !s.Enabled {
		s.Enabled = true
		s.Offset = length
	}
	if delta >= s.Offset {
		s.Offset = 0
	} else {
		s.Offset -= delta
	}
	return *s != before
}

// Down scrolls toward newer lines by delta. Reaching length re-attaches the
// view to the live tail. Scrolling down while already following is a no-op.
func (s *ScrollOffset) Down(delta, length int) bool {
	if delta <= 0 || !s.Enabled {
		return false
	}
	if delta >= length-s.Offset {
		*s = ScrollOffset{}
		return true
	}
	s.Offset += delta
	return true
}

// Value returns the offset to select: the pinned offset, or length when
// following the tail.
func (s ScrollOffset) Value(length int) int {
	if !s.Enabled {
		return length
	}
	return s.Offset
}
