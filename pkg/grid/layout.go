package grid

import "sort"

// LayoutOptions controls horizontal geometry inside a day column. All values
// are percentages or fractions of the column width.
type LayoutOptions struct {
	// PaddingPercent is reserved on both edges of the column.
	PaddingPercent float64
	// StaggerWidth is the fraction of the interior width an occurrence keeps
	// when it shares its time with others.
	StaggerWidth float64
}

// DefaultLayoutOptions returns 2% padding and 80% stagger width.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{PaddingPercent: 2, StaggerWidth: 0.8}
}

func (o LayoutOptions) normalized() LayoutOptions {
	def := DefaultLayoutOptions()
	if o.PaddingPercent < 0 || o.PaddingPercent >= 50 {
		o.PaddingPercent = def.PaddingPercent
	}
	if o.StaggerWidth <= 0 || o.StaggerWidth > 1 {
		o.StaggerWidth = def.StaggerWidth
	}
	return o
}

// Entry is the laid out form of an occurrence.
type Entry struct {
	Occurrence

	Column       int
	TotalColumns int
	WidthPercent float64
	LeftPercent  float64
	// ZOrder grows with start time so later items draw above earlier ones.
	ZOrder int

	Completed bool
}

// LayoutDay assigns columns to one day's occurrences so overlapping ones sit
// side by side. The result is sorted by start then end time.
func LayoutDay(occs []Occurrence, opts LayoutOptions) []Entry {
	opts = opts.normalized()

	sorted := make([]Occurrence, len(occs))
	copy(sorted, occs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	entries := make([]Entry, len(sorted))
	// lastEnd[c] is the end of the occurrence most recently placed in column c.
	var lastEnd []int
	for i, o := range sorted {
		col := -1
		for c, end := range lastEnd {
			if end <= o.Start {
				col = c
				break
			}
		}
		if col < 0 {
			col = len(lastEnd)
			lastEnd = append(lastEnd, o.End)
		} else {
			lastEnd[col] = o.End
		}
		entries[i] = Entry{Occurrence: o, Column: col, ZOrder: o.Start}
	}

	for i := range entries {
		peak := entries[i].Column
		for j := range entries {
			if i != j && entries[i].Overlaps(entries[j].Occurrence) && entries[j].Column > peak {
				peak = entries[j].Column
			}
		}
		entries[i].TotalColumns = peak + 1
	}

	interior := 100 - 2*opts.PaddingPercent
	for i := range entries {
		e := &entries[i]
		if e.TotalColumns == 1 {
			e.WidthPercent = interior
			e.LeftPercent = opts.PaddingPercent
			continue
		}
		e.WidthPercent = interior * opts.StaggerWidth
		step := (interior - e.WidthPercent) / float64(e.TotalColumns-1)
		e.LeftPercent = opts.PaddingPercent + float64(e.Column)*step
	}
	return entries
}
