// Package weekgrid renders a laid out week as a seven column terminal grid,
// one row per quarter hour, and maps terminal cells back to grid positions.
package weekgrid

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/weekplan/pkg/grid"
	"tableflip.dev/weekplan/pkg/task"
)

const (
	// GutterWidth is the width of the hour labels left of the first day.
	GutterWidth = 6
	// HeaderRows is the number of rows above the first time slot.
	HeaderRows = 1
	// MinColumnWidth keeps labels legible on narrow terminals.
	MinColumnWidth = 6
)

// Selection is a highlighted range of one day, in minutes.
type Selection struct {
	Day      int
	From, To int
}

// State is the interaction state drawn over the week.
type State struct {
	// Editing is the id of the occurrence in edit mode.
	Editing   string
	Selection *Selection
	// Preview replaces the occurrence it names while a drag runs.
	Preview *grid.Preview
	Now     time.Time
}

// Grid is the viewport of the week: which slots are visible and how wide a
// day column is.
type Grid struct {
	ColumnWidth int
	// TopSlot is the first visible quarter hour.
	TopSlot int
	// Rows is the number of visible slots.
	Rows   int
	Scale  grid.Scale
	Styles Styles
}

// New returns a grid sized for a width by height area.
func New(width, height int) *Grid {
	g := &Grid{Scale: grid.DefaultScale(), Styles: DefaultStyles(), TopSlot: 7 * 4}
	g.Resize(width, height)
	return g
}

// Resize fits the grid into width by height cells.
func (g *Grid) Resize(width, height int) {
	g.ColumnWidth = (width - GutterWidth - grid.DaysPerWeek) / grid.DaysPerWeek
	if g.ColumnWidth < MinColumnWidth {
		g.ColumnWidth = MinColumnWidth
	}
	g.Rows = height - HeaderRows
	if g.Rows < 1 {
		g.Rows = 1
	}
	if g.Rows > grid.SlotsPerDay {
		g.Rows = grid.SlotsPerDay
	}
	g.Scroll(0)
}

// Scroll moves the viewport by delta slots, keeping it inside the day.
func (g *Grid) Scroll(delta int) {
	g.TopSlot += delta
	if last := grid.SlotsPerDay - g.Rows; g.TopSlot > last {
		g.TopSlot = last
	}
	if g.TopSlot < 0 {
		g.TopSlot = 0
	}
}

// DayWidth is the horizontal distance between two day columns, separator
// included.
func (g *Grid) DayWidth() int {
	return g.ColumnWidth + 1
}

// Point converts a terminal cell into controller coordinates.
func (g *Grid) Point(x, y int) grid.Point {
	slot := g.TopSlot + y - HeaderRows
	return grid.Point{
		X: float64(x - GutterWidth),
		Y: g.Scale.ToOffset(slot * grid.SlotMinutes),
	}
}

// CellAt returns the grid cell under the terminal cell x, y.
func (g *Grid) CellAt(x, y int) (grid.Cell, bool) {
	day, _, ok := g.column(x)
	if !ok || y < HeaderRows || y >= HeaderRows+g.Rows {
		return grid.Cell{}, false
	}
	slot := g.TopSlot + y - HeaderRows
	return grid.CellAt(day, slot*grid.SlotMinutes), true
}

// EntryAt returns the top-most entry drawn at x, y.
func (g *Grid) EntryAt(w grid.Week, x, y int) (grid.Entry, int, bool) {
	cell, ok := g.CellAt(x, y)
	if !ok {
		return grid.Entry{}, 0, false
	}
	_, cx, _ := g.column(x)
	slot := cell.Minutes() / grid.SlotMinutes
	entries := w.Days[cell.Day].Entries
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		from, to := slots(e.Start, e.End)
		left, width := g.span(e)
		if slot >= from && slot < to && cx >= left && cx < left+width {
			return e, cell.Day, true
		}
	}
	return grid.Entry{}, 0, false
}

// column splits x into a day index and the offset inside that day's column.
func (g *Grid) column(x int) (day, offset int, ok bool) {
	x -= GutterWidth
	if x < 0 {
		return 0, 0, false
	}
	day, offset = x/g.DayWidth(), x%g.DayWidth()
	if day >= grid.DaysPerWeek || offset >= g.ColumnWidth {
		return 0, 0, false
	}
	return day, offset, true
}

func (g *Grid) span(e grid.Entry) (left, width int) {
	left = int(e.LeftPercent / 100 * float64(g.ColumnWidth))
	width = int(e.WidthPercent/100*float64(g.ColumnWidth) + 0.5)
	if width < 1 {
		width = 1
	}
	if left+width > g.ColumnWidth {
		width = g.ColumnWidth - left
	}
	return left, width
}

func slots(start, end int) (from, to int) {
	from = start / grid.SlotMinutes
	to = (end + grid.SlotMinutes - 1) / grid.SlotMinutes
	if to <= from {
		to = from + 1
	}
	return from, to
}

type cell struct {
	ch    rune
	style int
}

// canvas is one day column, cells[row][col], with styles referenced by index.
// Style 0 is unstyled.
type canvas struct {
	cells  [][]cell
	styles []lipgloss.Style
}

func newCanvas(rows, cols int) *canvas {
	c := &canvas{styles: []lipgloss.Style{lipgloss.NewStyle()}}
	c.cells = make([][]cell, rows)
	for r := range c.cells {
		c.cells[r] = make([]cell, cols)
		for i := range c.cells[r] {
			c.cells[r][i] = cell{ch: ' '}
		}
	}
	return c
}

func (c *canvas) style(s lipgloss.Style) int {
	c.styles = append(c.styles, s)
	return len(c.styles) - 1
}

func (c *canvas) fill(row, left, width, style int) {
	if row < 0 || row >= len(c.cells) {
		return
	}
	for i := left; i < left+width && i < len(c.cells[row]); i++ {
		c.cells[row][i] = cell{ch: ' ', style: style}
	}
}

func (c *canvas) text(row, left, width int, s string) {
	if row < 0 || row >= len(c.cells) || width <= 0 {
		return
	}
	s = truncate.String(s, uint(width))
	i := left
	for _, r := range s {
		if i >= left+width || i >= len(c.cells[row]) {
			break
		}
		c.cells[row][i].ch = r
		i++
	}
}

func (c *canvas) line(row int) string {
	var b strings.Builder
	cells := c.cells[row]
	for i := 0; i < len(cells); {
		j := i
		var run []rune
		for j < len(cells) && cells[j].style == cells[i].style {
			run = append(run, cells[j].ch)
			j++
		}
		if cells[i].style == 0 {
			b.WriteString(string(run))
		} else {
			b.WriteString(c.styles[cells[i].style].Render(string(run)))
		}
		i = j
	}
	return b.String()
}

// Render draws the week with st layered on top.
func (g *Grid) Render(w grid.Week, st State) string {
	today := -1
	nowSlot := -1
	if !st.Now.IsZero() {
		today = w.DayIndex(task.DateOf(st.Now))
		nowSlot = (st.Now.Hour()*60 + st.Now.Minute()) / grid.SlotMinutes
	}

	cols := make([]*canvas, grid.DaysPerWeek)
	for d := range cols {
		cols[d] = g.drawDay(w, d, st, d == today, nowSlot)
	}

	rule := g.Styles.Rule.Render("│")
	var b strings.Builder

	b.WriteString(strings.Repeat(" ", GutterWidth))
	for d, day := range w.Days {
		title := day.Date.Time().Format("Mon 02")
		title = truncate.String(title, uint(g.ColumnWidth))
		title += strings.Repeat(" ", g.ColumnWidth-lipgloss.Width(title))
		if d == today {
			b.WriteString(g.Styles.Today.Render(title))
		} else {
			b.WriteString(g.Styles.Header.Render(title))
		}
		if d < grid.DaysPerWeek-1 {
			b.WriteString(" ")
		}
	}

	for r := 0; r < g.Rows; r++ {
		b.WriteString("\n")
		slot := g.TopSlot + r
		switch {
		case slot == nowSlot && today >= 0:
			b.WriteString(g.Styles.Now.Render(padRight(grid.FormatClock(st.Now.Hour()*60+st.Now.Minute()), GutterWidth)))
		case slot%4 == 0:
			b.WriteString(g.Styles.Gutter.Render(padRight(grid.FormatClock(slot*grid.SlotMinutes), GutterWidth)))
		default:
			b.WriteString(strings.Repeat(" ", GutterWidth))
		}
		for d := range cols {
			b.WriteString(cols[d].line(r))
			if d < grid.DaysPerWeek-1 {
				b.WriteString(rule)
			}
		}
	}
	return b.String()
}

func (g *Grid) drawDay(w grid.Week, d int, st State, isToday bool, nowSlot int) *canvas {
	c := newCanvas(g.Rows, g.ColumnWidth)

	if isToday && nowSlot >= g.TopSlot && nowSlot < g.TopSlot+g.Rows {
		row := nowSlot - g.TopSlot
		ns := c.style(g.Styles.Now)
		for i := range c.cells[row] {
			c.cells[row][i] = cell{ch: '─', style: ns}
		}
	}

	if sel := st.Selection; sel != nil && sel.Day == d {
		from, to := slots(sel.From, sel.To)
		ss := c.style(g.Styles.Selection)
		for s := from; s < to; s++ {
			c.fill(s-g.TopSlot, 0, g.ColumnWidth, ss)
		}
		c.text(from-g.TopSlot, 0, g.ColumnWidth, grid.FormatClock(sel.From)+"-"+grid.FormatClock(sel.To))
	}

	for _, e := range w.Days[d].Entries {
		if pv := st.Preview; pv != nil && pv.ID == e.Task.ID && pv.From == d {
			continue
		}
		left, width := g.span(e)
		style := g.Styles.entryStyle(taskColor(e.Task.ID, e.Task.Color), e.Completed, st.Editing == e.Task.ID, false)
		g.block(c, e.Task, e.Start, e.End, left, width, style, st.Editing == e.Task.ID)
	}

	if pv := st.Preview; pv != nil && pv.Day == d {
		start := g.Scale.ToMinutes(pv.Top)
		end := g.Scale.ToMinutes(pv.Top + pv.Height)
		var t *task.Task
		color := ""
		if e, ok := findAny(w, pv.ID); ok {
			t = e.Task
			color = e.Task.Color
		}
		style := g.Styles.entryStyle(taskColor(pv.ID, color), false, true, true)
		if t == nil {
			t = &task.Task{ID: pv.ID}
		}
		g.block(c, t, start, end, 0, g.ColumnWidth, style, true)
	}
	return c
}

// block draws one occurrence: the name on its first row and its times on the
// second. Edited blocks mark their resize edges.
func (g *Grid) block(c *canvas, t *task.Task, start, end, left, width int, style lipgloss.Style, editing bool) {
	from, to := slots(start, end)
	idx := c.style(style)
	for s := from; s < to; s++ {
		c.fill(s-g.TopSlot, left, width, idx)
	}
	name := t.Name
	if t.HighPriority {
		name = "!" + name
	}
	c.text(from-g.TopSlot, left, width, name)
	if to-from > 1 {
		c.text(from+1-g.TopSlot, left, width, grid.FormatClock(start)+"-"+grid.FormatClock(end))
	}
	if editing && to-from > 2 {
		edge := strings.Repeat("┄", width)
		c.text(to-1-g.TopSlot, left, width, edge)
	}
}

func findAny(w grid.Week, id string) (grid.Entry, bool) {
	for d := range w.Days {
		if e, ok := w.Find(d, id); ok {
			return e, true
		}
	}
	return grid.Entry{}, false
}

func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
