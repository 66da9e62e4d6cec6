// Package timeslot provides a discretized booking calendar used to detect
// overlapping schedules.
package timeslot

import "time"

// SlotSize is the booking granularity.
const SlotSize = 15 * time.Minute

// Calendar tracks booked slots over a fixed horizon [origin, origin+span).
// Instants outside the horizon, or not on the slot grid, count as booked.
type Calendar struct {
	origin time.Time
	booked []bool
}

// New creates a calendar covering [start, end). A partial trailing slot is dropped.
func New(start, end time.Time) *Calendar {
	n := 0
	if end.After(start) {
		n = int(end.Sub(start) / SlotSize)
	}
	return &Calendar{
		origin: start,
		booked: make([]bool, n),
	}
}

// Origin returns the first instant of the horizon.
func (c *Calendar) Origin() time.Time {
	return c.origin
}

// HorizonEnd returns the instant right after the last slot.
func (c *Calendar) HorizonEnd() time.Time {
	return c.origin.Add(time.Duration(len(c.booked)) * SlotSize)
}

// IsBooked reports whether any slot boundary in [start, end) is booked or
// outside the horizon. Zero start or end never conflicts, and neither does
// an empty or inverted interval.
func (c *Calendar) IsBooked(start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	for t := start; t.Before(end); t = t.Add(SlotSize) {
		i, ok := c.index(t)
		if !ok || c.booked[i] {
			return true
		}
	}
	return false
}

// Overlaps reports whether any slot in [start, end) that lies inside the
// horizon is already booked. Boundaries outside the horizon or off the grid
// are ignored, so stored schedules from another horizon never conflict.
func (c *Calendar) Overlaps(start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	for t := start; t.Before(end); t = t.Add(SlotSize) {
		if i, ok := c.index(t); ok && c.booked[i] {
			return true
		}
	}
	return false
}

// Book marks every slot in [start, end) as booked. Callers check IsBooked
// first; boundaries outside the horizon are skipped.
func (c *Calendar) Book(start, end time.Time) {
	c.mark(start, end, true)
}

// Free marks every slot in [start, end) as free.
func (c *Calendar) Free(start, end time.Time) {
	c.mark(start, end, false)
}

// BookedSlots returns the number of booked slots.
func (c *Calendar) BookedSlots() int {
	n := 0
	for _, b := range c.booked {
		if b {
			n++
		}
	}
	return n
}

func (c *Calendar) mark(start, end time.Time, booked bool) {
	if start.IsZero() || end.IsZero() {
		return
	}
	for t := start; t.Before(end); t = t.Add(SlotSize) {
		if i, ok := c.index(t); ok {
			c.booked[i] = booked
		}
	}
}

// index maps t to its slot, reporting false for instants off the grid or
// outside the horizon.
func (c *Calendar) index(t time.Time) (int, bool) {
	if t.Before(c.origin) {
		return 0, false
	}
	offset := t.Sub(c.origin)
	if offset%SlotSize != 0 {
		return 0, false
	}
	i := int(offset / SlotSize)
	if i >= len(c.booked) {
		return 0, false
	}
	return i, true
}
