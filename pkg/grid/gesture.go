package grid

import (
	"errors"
	"math"

	"tableflip.dev/weekplan/pkg/task"
)

var (
	// ErrCrossDay rejects a selection whose ends fall on different days.
	ErrCrossDay = errors.New("grid: select a range within a single day")
	// ErrTooShort rejects a selection shorter than MinDurationMinutes.
	ErrTooShort = errors.New("grid: selection must span at least 30 minutes")
	// ErrNotSelecting is returned when a selection step arrives with no
	// selection in progress.
	ErrNotSelecting = errors.New("grid: no selection in progress")
	// ErrNotEditing is returned when a drag starts on an occurrence that is
	// not in edit mode.
	ErrNotEditing = errors.New("grid: occurrence is not in edit mode")
	// ErrNotDragging is returned when a drag step arrives with no session.
	ErrNotDragging = errors.New("grid: no drag in progress")
	// ErrBusy is returned when a gesture starts while another is running.
	ErrBusy = errors.New("grid: another gesture is in progress")
)

// Mode names the controller state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeSelecting
	ModeEditing
	ModeDragging
)

func (m Mode) String() string {
	switch m {
	case ModeSelecting:
		return "selecting"
	case ModeEditing:
		return "editing"
	case ModeDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Kind is the drag interaction.
type Kind int

const (
	KindMove Kind = iota
	KindResizeTop
	KindResizeBottom
)

func (k Kind) String() string {
	switch k {
	case KindResizeTop:
		return "resize-top"
	case KindResizeBottom:
		return "resize-bottom"
	default:
		return "move"
	}
}

// Cell addresses one quarter hour of the grid.
type Cell struct {
	Day     int
	Hour    int
	Quarter int
}

// CellAt returns the cell containing minutes on day.
func CellAt(day, minutes int) Cell {
	minutes = clampInt(minutes, 0, MinutesPerDay-1)
	return Cell{Day: day, Hour: minutes / 60, Quarter: (minutes % 60) / SlotMinutes}
}

// Minutes is the start of the cell.
func (c Cell) Minutes() int {
	return c.Hour*60 + c.Quarter*SlotMinutes
}

// Point is a pointer position in grid distance units.
type Point struct {
	X, Y float64
}

// Listeners attaches the pointer listeners a drag needs for its lifetime.
// Attach is called once when a drag begins; the returned func is called once
// when it ends, however it ends.
type Listeners interface {
	Attach() (release func())
}

// ListenerFunc adapts a function to Listeners.
type ListenerFunc func() func()

func (f ListenerFunc) Attach() func() { return f() }

// Session is the state of one drag gesture.
type Session struct {
	ID            string
	Kind          Kind
	Origin        Point
	InitialTop    float64
	InitialHeight float64
	InitialDay    int

	release func()
}

func (s *Session) close() {
	if s.release != nil {
		r := s.release
		s.release = nil
		r()
	}
}

// Preview is where a dragged occurrence currently renders. The original is
// hidden while a preview exists.
type Preview struct {
	ID   string
	Kind Kind
	// From is the day column of the hidden original.
	From   int
	Day    int
	Top    float64
	Height float64
}

// CreateRequest asks the store to create a task for the selected interval.
type CreateRequest struct {
	Date  task.Date
	Start string
	End   string
}

// Draft turns the request into a task draft named name.
func (r CreateRequest) Draft(name string) task.Draft {
	return task.Draft{Name: name, Date: r.Date, Start: r.Start, End: r.End}
}

// UpdateRequest asks the store to move or resize a task. From is the date of
// the dragged occurrence; Date is where it was dropped. From is zero when the
// request did not come from a drag.
type UpdateRequest struct {
	ID    string
	From  task.Date
	Date  task.Date
	Start string
	End   string
}

// Patch turns the request into a partial task update.
func (r UpdateRequest) Patch() task.Patch {
	date, start, end := r.Date, r.Start, r.End
	return task.Patch{Date: &date, Start: &start, End: &end}
}

// state is exactly one of the concrete states below. Dragging carries the
// edited id, so a drag without edit mode cannot be expressed.
type state interface {
	mode() Mode
}

type idleState struct{}

type selectingState struct {
	start, end Cell
}

type editingState struct {
	id string
}

type draggingState struct {
	editingState
	session Session
	preview Preview
}

func (idleState) mode() Mode      { return ModeIdle }
func (selectingState) mode() Mode { return ModeSelecting }
func (editingState) mode() Mode   { return ModeEditing }
func (draggingState) mode() Mode  { return ModeDragging }

// Controller turns pointer input over the week grid into create and update
// requests. It is not safe for concurrent use; drive it from the UI loop.
type Controller struct {
	WeekStart task.Date
	Scale     Scale
	// DayWidth is the horizontal distance of one day column, used to detect
	// a move crossing into another day.
	DayWidth  float64
	Listeners Listeners

	st state
}

// NewController returns an idle controller for the week at weekStart.
func NewController(weekStart task.Date, scale Scale, dayWidth float64, l Listeners) *Controller {
	return &Controller{WeekStart: weekStart, Scale: scale, DayWidth: dayWidth, Listeners: l}
}

func (c *Controller) state() state {
	if c.st == nil {
		return idleState{}
	}
	return c.st
}

// Mode reports the current state.
func (c *Controller) Mode() Mode {
	return c.state().mode()
}

// Editing returns the occurrence in edit mode, including during a drag.
func (c *Controller) Editing() (string, bool) {
	switch s := c.state().(type) {
	case editingState:
		return s.id, true
	case draggingState:
		return s.id, true
	}
	return "", false
}

// BeginSelection starts the create flow at cell. Edit mode is dropped.
func (c *Controller) BeginSelection(cell Cell) error {
	switch c.state().(type) {
	case draggingState, selectingState:
		return ErrBusy
	}
	c.st = selectingState{start: cell, end: cell}
	return nil
}

// ExtendSelection moves the selection's end to cell.
func (c *Controller) ExtendSelection(cell Cell) error {
	s, ok := c.state().(selectingState)
	if !ok {
		return ErrNotSelecting
	}
	s.end = cell
	c.st = s
	return nil
}

// Highlight returns the day and the [from, to) minutes to highlight. Nothing
// is highlighted while the selection spans days.
func (c *Controller) Highlight() (day, from, to int, ok bool) {
	s, isSel := c.state().(selectingState)
	if !isSel || s.start.Day != s.end.Day {
		return 0, 0, 0, false
	}
	lo, hi := s.start.Minutes(), s.end.Minutes()
	if lo > hi {
		lo, hi = hi, lo
	}
	return s.start.Day, lo, hi + SlotMinutes, true
}

// EndSelection finishes the create flow. The controller returns to idle
// whether or not the selection was valid.
func (c *Controller) EndSelection() (CreateRequest, error) {
	s, ok := c.state().(selectingState)
	if !ok {
		return CreateRequest{}, ErrNotSelecting
	}
	c.st = idleState{}

	if s.start.Day != s.end.Day {
		return CreateRequest{}, ErrCrossDay
	}
	lo, hi := s.start.Minutes(), s.end.Minutes()
	if lo > hi {
		lo, hi = hi, lo
	}
	if hi-lo < MinDurationMinutes {
		return CreateRequest{}, ErrTooShort
	}
	return CreateRequest{
		Date:  c.WeekStart.AddDays(clampInt(s.start.Day, 0, DaysPerWeek-1)),
		Start: FormatClock(lo),
		End:   FormatClock(hi + SlotMinutes),
	}, nil
}

// ToggleEdit puts id in edit mode, or leaves edit mode when id is already
// being edited. It does nothing during a drag or selection.
func (c *Controller) ToggleEdit(id string) {
	switch s := c.state().(type) {
	case idleState:
		c.st = editingState{id: id}
	case editingState:
		if s.id == id {
			c.st = idleState{}
			return
		}
		c.st = editingState{id: id}
	}
}

// BeginDrag starts a move or resize of the edited occurrence whose current
// geometry is top/height in day column day.
func (c *Controller) BeginDrag(id string, kind Kind, at Point, top, height float64, day int) error {
	ed, ok := c.state().(editingState)
	if !ok {
		if _, dragging := c.state().(draggingState); dragging {
			return ErrBusy
		}
		return ErrNotEditing
	}
	if ed.id != id {
		return ErrNotEditing
	}

	sess := Session{
		ID:            id,
		Kind:          kind,
		Origin:        at,
		InitialTop:    top,
		InitialHeight: height,
		InitialDay:    clampInt(day, 0, DaysPerWeek-1),
	}
	if c.Listeners != nil {
		sess.release = c.Listeners.Attach()
	}
	c.st = draggingState{
		editingState: ed,
		session:      sess,
		preview:      Preview{ID: id, Kind: kind, From: sess.InitialDay, Day: sess.InitialDay, Top: top, Height: height},
	}
	return nil
}

// Drag updates the preview for a pointer at p.
func (c *Controller) Drag(p Point) (Preview, error) {
	d, ok := c.state().(draggingState)
	if !ok {
		return Preview{}, ErrNotDragging
	}
	d.preview = c.project(d.session, p)
	c.st = d
	return d.preview, nil
}

func (c *Controller) project(s Session, p Point) Preview {
	dy := p.Y - s.Origin.Y
	dayHeight := c.Scale.DayHeight()
	floor := c.Scale.ToOffset(MinDurationMinutes)
	pv := Preview{ID: s.ID, Kind: s.Kind, From: s.InitialDay, Day: s.InitialDay, Top: s.InitialTop, Height: s.InitialHeight}

	switch s.Kind {
	case KindMove:
		top := c.Scale.SnapOffset(math.Round(s.InitialTop + dy))
		pv.Top = clampFloat(top, 0, math.Max(0, dayHeight-s.InitialHeight))
		if c.DayWidth > 0 {
			shift := int(math.Round((p.X - s.Origin.X) / c.DayWidth))
			pv.Day = clampInt(s.InitialDay+shift, 0, DaysPerWeek-1)
		}
	case KindResizeTop:
		bottom := s.InitialTop + s.InitialHeight
		top := math.Max(0, c.Scale.SnapOffset(s.InitialTop+dy))
		if bottom-top < floor {
			top = bottom - floor
		}
		pv.Top = top
		pv.Height = bottom - top
	case KindResizeBottom:
		bottom := math.Min(dayHeight, c.Scale.SnapOffset(s.InitialTop+s.InitialHeight+dy))
		pv.Height = math.Max(floor, bottom-s.InitialTop)
	}
	return pv
}

// Preview returns the transient overlay of the running drag.
func (c *Controller) Preview() (Preview, bool) {
	d, ok := c.state().(draggingState)
	return d.preview, ok
}

// Hidden reports whether the occurrence of id in day column day is replaced
// by a preview. Other occurrences of the same task stay visible.
func (c *Controller) Hidden(id string, day int) bool {
	d, ok := c.state().(draggingState)
	return ok && d.session.ID == id && d.session.InitialDay == day
}

// EndDrag commits the drag. Listeners are released and edit mode is cleared
// on every path. A drag with no net movement still yields a request carrying
// the unchanged values.
func (c *Controller) EndDrag() (UpdateRequest, error) {
	d, ok := c.state().(draggingState)
	if !ok {
		return UpdateRequest{}, ErrNotDragging
	}
	defer d.session.close()
	c.st = idleState{}

	s, pv := d.session, d.preview
	start := c.Scale.ToMinutes(pv.Top)
	end := c.Scale.ToMinutes(pv.Top + pv.Height)
	switch {
	case pv.Top == s.InitialTop && pv.Height == s.InitialHeight:
		// Unchanged geometry keeps the exact clocks, even off the grid.
		start = c.Scale.exactMinutes(s.InitialTop)
		end = c.Scale.exactMinutes(s.InitialTop + s.InitialHeight)
	case s.Kind == KindMove:
		// A move keeps the length of the block, short or not.
		end = start + c.Scale.exactMinutes(pv.Height)
		if end > MinutesPerDay {
			start -= end - MinutesPerDay
			end = MinutesPerDay
		}
	case end-start < MinDurationMinutes:
		end = start + MinDurationMinutes
	}
	return UpdateRequest{
		ID:    s.ID,
		From:  c.WeekStart.AddDays(s.InitialDay),
		Date:  c.WeekStart.AddDays(pv.Day),
		Start: FormatClock(start),
		End:   FormatClock(end),
	}, nil
}

// Abort drops any gesture in progress without emitting a request, for
// example when the window loses focus. A running drag releases its listeners.
func (c *Controller) Abort() {
	if d, ok := c.state().(draggingState); ok {
		d.session.close()
	}
	c.st = idleState{}
}

// EntryGeometry returns the top and height of e under the controller's scale.
func (c *Controller) EntryGeometry(e Entry) (top, height float64) {
	return c.Scale.ToOffset(e.Start), c.Scale.Height(e.Start, e.End)
}

// HitTest classifies a pointer-down at y on an occurrence spanning
// [top, top+height). The edge zones are edge deep; occurrences too short to
// hold a body between two edges are only movable.
func HitTest(top, height, y, edge float64) Kind {
	if height <= 2*edge {
		return KindMove
	}
	switch {
	case y < top+edge:
		return KindResizeTop
	case y >= top+height-edge:
		return KindResizeBottom
	default:
		return KindMove
	}
}
