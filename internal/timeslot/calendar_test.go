package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var origin = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return time.Date(2024, time.March, 4, h, m, 0, 0, time.UTC)
}

func newYearCalendar() *Calendar {
	return New(origin, origin.AddDate(1, 0, 0))
}

func TestNew_SlotCount(t *testing.T) {
	c := newYearCalendar()
	assert.Equal(t, origin, c.Origin())
	assert.Equal(t, origin.AddDate(1, 0, 0), c.HorizonEnd())
	assert.Len(t, c.booked, 366*24*4) // 2024 is a leap year

	empty := New(origin, origin)
	assert.True(t, empty.IsBooked(origin, origin.Add(SlotSize)))
}

func TestCalendar_BookAndIsBooked(t *testing.T) {
	c := newYearCalendar()

	assert.False(t, c.IsBooked(at(9, 0), at(9, 30)))
	c.Book(at(9, 0), at(9, 30))
	assert.Equal(t, 2, c.BookedSlots())

	tests := []struct {
		name   string
		start  time.Time
		end    time.Time
		booked bool
	}{
		{"same interval", at(9, 0), at(9, 30), true},
		{"overlaps tail", at(9, 15), at(9, 45), true},
		{"overlaps head", at(8, 45), at(9, 15), true},
		{"contains", at(8, 0), at(10, 0), true},
		{"adjacent after", at(9, 30), at(10, 0), false},
		{"adjacent before", at(8, 30), at(9, 0), false},
		{"empty interval", at(9, 0), at(9, 0), false},
		{"inverted interval", at(9, 30), at(9, 0), false},
		{"zero start", time.Time{}, at(9, 30), false},
		{"zero end", at(9, 0), time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.booked, c.IsBooked(tt.start, tt.end))
		})
	}
}

func TestCalendar_PartialSlotRoundsUp(t *testing.T) {
	c := newYearCalendar()

	// 16 minutes occupies two slots
	c.Book(at(9, 0), at(9, 16))
	assert.Equal(t, 2, c.BookedSlots())
	assert.True(t, c.IsBooked(at(9, 15), at(9, 30)))
	assert.False(t, c.IsBooked(at(9, 30), at(9, 45)))
}

func TestCalendar_OutsideHorizonIsBooked(t *testing.T) {
	c := newYearCalendar()

	before := origin.Add(-SlotSize)
	assert.True(t, c.IsBooked(before, origin))
	assert.True(t, c.IsBooked(c.HorizonEnd(), c.HorizonEnd().Add(SlotSize)))
	// Last slot is inside, running past the end is not
	last := c.HorizonEnd().Add(-SlotSize)
	assert.False(t, c.IsBooked(last, c.HorizonEnd()))
	assert.True(t, c.IsBooked(last, c.HorizonEnd().Add(time.Minute)))
}

func TestCalendar_UnalignedStartIsBooked(t *testing.T) {
	c := newYearCalendar()
	assert.True(t, c.IsBooked(at(9, 7), at(9, 37)))
}

func TestCalendar_Free(t *testing.T) {
	c := newYearCalendar()
	c.Book(at(9, 0), at(10, 0))
	c.Free(at(9, 0), at(9, 30))

	assert.False(t, c.IsBooked(at(9, 0), at(9, 30)))
	assert.True(t, c.IsBooked(at(9, 30), at(10, 0)))
	assert.Equal(t, 2, c.BookedSlots())

	// No-ops
	c.Free(time.Time{}, at(10, 0))
	c.Free(at(10, 0), at(9, 0))
	assert.Equal(t, 2, c.BookedSlots())
}

func TestCalendar_BookIsIdempotent(t *testing.T) {
	c := newYearCalendar()
	c.Book(at(9, 0), at(9, 30))
	c.Book(at(9, 0), at(9, 30))
	assert.Equal(t, 2, c.BookedSlots())

	// Out-of-horizon boundaries are skipped
	c.Book(origin.Add(-time.Hour), origin.Add(SlotSize))
	assert.Equal(t, 3, c.BookedSlots())
}

func TestCalendar_Overlaps(t *testing.T) {
	c := newYearCalendar()
	c.Book(at(9, 0), at(9, 30))
	c.Book(origin, origin.Add(SlotSize))

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		overlap bool
	}{
		{"same interval", at(9, 0), at(9, 30), true},
		{"overlaps tail", at(9, 15), at(9, 45), true},
		{"adjacent after", at(9, 30), at(10, 0), false},
		{"before horizon", origin.Add(-time.Hour), origin, false},
		{"straddles origin", origin.Add(-SlotSize), origin.Add(SlotSize), true},
		{"after horizon", c.HorizonEnd(), c.HorizonEnd().Add(time.Hour), false},
		{"off grid", at(9, 7), at(9, 37), false},
		{"zero start", time.Time{}, at(9, 30), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlap, c.Overlaps(tt.start, tt.end))
		})
	}
}
