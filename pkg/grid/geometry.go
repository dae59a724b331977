package grid

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// SlotMinutes is the grid resolution.
	SlotMinutes = 15
	// MinutesPerDay is the length of a day column.
	MinutesPerDay = 24 * 60
	// SlotsPerDay is 96 quarter hours.
	SlotsPerDay = MinutesPerDay / SlotMinutes
	// MinDurationMinutes is the shortest interval a gesture can produce.
	MinDurationMinutes = 2 * SlotMinutes
	// DaysPerWeek is the width of the grid in day columns.
	DaysPerWeek = 7
)

// MinutesFromMidnight parses an HH:MM clock. "24:00" is accepted as the end of
// the day. Malformed input yields 0 and false.
func MinutesFromMidnight(s string) (int, bool) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(m) != 2 || len(h) == 0 || len(h) > 2 {
		return 0, false
	}
	hh, err := strconv.Atoi(h)
	if err != nil || hh < 0 || hh > 24 {
		return 0, false
	}
	mm, err := strconv.Atoi(m)
	if err != nil || mm < 0 || mm > 59 {
		return 0, false
	}
	total := hh*60 + mm
	if total > MinutesPerDay {
		return 0, false
	}
	return total, true
}

// FormatClock renders minutes from midnight as HH:MM, clamped to the day.
func FormatClock(minutes int) string {
	minutes = clampInt(minutes, 0, MinutesPerDay)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Snap rounds minutes to the nearest slot boundary.
func Snap(minutes int) int {
	return int(math.Round(float64(minutes)/SlotMinutes)) * SlotMinutes
}

// Scale maps minutes to vertical distance. It is linear with a fixed height
// per slot.
type Scale struct {
	SlotHeight float64
}

// DefaultScale is one unit per slot, which is one terminal row.
func DefaultScale() Scale {
	return Scale{SlotHeight: 1}
}

func (s Scale) slot() float64 {
	if s.SlotHeight <= 0 {
		return 1
	}
	return s.SlotHeight
}

// ToOffset converts minutes from midnight to a distance from the top of the
// day column.
func (s Scale) ToOffset(minutes int) float64 {
	return float64(minutes) / SlotMinutes * s.slot()
}

// ToMinutes converts a distance back to minutes, rounded to the nearest slot.
func (s Scale) ToMinutes(offset float64) int {
	return int(math.Round(offset/s.slot())) * SlotMinutes
}

// exactMinutes converts a distance to whole minutes without snapping.
func (s Scale) exactMinutes(offset float64) int {
	return int(math.Round(offset / s.slot() * SlotMinutes))
}

// SnapOffset rounds a distance to the nearest slot boundary.
func (s Scale) SnapOffset(offset float64) float64 {
	return s.ToOffset(s.ToMinutes(offset))
}

// Height is the distance covered by [start, end).
func (s Scale) Height(start, end int) float64 {
	return s.ToOffset(end) - s.ToOffset(start)
}

// DayHeight is the height of a full day column.
func (s Scale) DayHeight() float64 {
	return s.ToOffset(MinutesPerDay)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
