// Package teaui hosts the Bubble Tea program for the weekplan week grid.
package teaui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/weekplan/pkg/app"
	"tableflip.dev/weekplan/pkg/grid"
	"tableflip.dev/weekplan/pkg/store"
	"tableflip.dev/weekplan/pkg/task"
	"tableflip.dev/weekplan/pkg/tui/theme"
	"tableflip.dev/weekplan/pkg/tui/weekgrid"
)

type mode int

const (
	modeNormal mode = iota
	// modeNaming collects the name of a task after a selection.
	modeNaming
)

// Rows above and below the grid.
const (
	titleRows  = 1
	footerRows = 1
)

// Model is the root Bubble Tea model of the week grid.
type Model struct {
	svc *app.Service
	ctx context.Context
	now func() time.Time

	mode   mode
	keys   keyMap
	theme  theme.Theme
	input  textinput.Model
	status string

	width, height int

	weekStart task.Date
	week      grid.Week
	view      *weekgrid.Grid
	ctl       *grid.Controller
	capture   *pointerCapture
	// editDay is the day column of the occurrence in edit mode.
	editDay int
	pending *grid.CreateRequest

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New constructs the model for the week containing today.
func New(svc *app.Service) *Model {
	ti := textinput.New()
	ti.Placeholder = "Task name"
	ti.CharLimit = 256
	ti.Prompt = "name: "
	th := theme.Default()
	ti.Styles.Cursor.Color = th.Input.Cursor

	m := &Model{
		theme:   th,
		svc:     svc,
		ctx:     context.Background(),
		now:     time.Now,
		keys:    defaultKeys(),
		input:   ti,
		capture: &pointerCapture{},
		view:    weekgrid.New(80, 24),
		status:  "drag on empty time to add, click a task to edit, drag its edges to resize",
	}
	start := task.DateOf(m.now())
	if svc != nil {
		start = svc.WeekOf(start)
	} else {
		start = start.StartOfWeek(time.Monday)
	}
	m.weekStart = start
	m.week = grid.Week{Start: start}
	m.ctl = grid.NewController(start, m.view.Scale, float64(m.view.DayWidth()), m.capture)
	return m
}

// Run launches the Bubble Tea program.
func Run(svc *app.Service) error {
	p := tea.NewProgram(New(svc),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}

type weekLoadedMsg struct {
	start task.Date
	week  grid.Week
	err   error
}

type savedMsg struct {
	status string
	err    error
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadWeek(m.weekStart), startWatchCmd(m.ctx, m.svc))
}

func (m *Model) loadWeek(start task.Date) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		w, err := svc.Week(ctx, start)
		return weekLoadedMsg{start: start, week: w, err: err}
	}
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		m.view.Resize(v.Width, v.Height-titleRows-footerRows)
		m.ctl.DayWidth = float64(m.view.DayWidth())
	case weekLoadedMsg:
		if v.err != nil {
			m.status = "load failed: " + v.err.Error()
			break
		}
		// A late load for a week we navigated away from is dropped.
		if v.start == m.weekStart {
			m.week = v.week
		}
	case savedMsg:
		if v.err != nil {
			m.status = v.err.Error()
		} else if v.status != "" {
			m.status = v.status
		}
		cmds = append(cmds, m.loadWeek(m.weekStart))
	case watchStartedMsg:
		if v.err != nil {
			m.status = "watch unavailable: " + v.err.Error()
			break
		}
		m.watchCh = v.ch
		m.watchCancel = v.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		cmds = append(cmds, m.loadWeek(m.weekStart))
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
	case tea.BlurMsg:
		if m.ctl.Mode() == grid.ModeDragging || m.ctl.Mode() == grid.ModeSelecting {
			m.status = "gesture cancelled"
		}
		m.ctl.Abort()
	case tea.MouseClickMsg:
		m.handlePointerDown(v.Mouse())
	case tea.MouseMotionMsg:
		m.handlePointerMove(v.Mouse())
	case tea.MouseReleaseMsg:
		if cmd := m.handlePointerUp(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case tea.MouseWheelMsg:
		if !m.capture.active() {
			switch v.Mouse().Button {
			case tea.MouseWheelUp:
				m.view.Scroll(-1)
			case tea.MouseWheelDown:
				m.view.Scroll(1)
			}
		}
	case tea.KeyPressMsg:
		if m.mode == modeNaming {
			if cmd := m.handleNamingKey(v); cmd != nil {
				cmds = append(cmds, cmd)
			}
			break
		}
		cmd, quit := m.handleKey(v)
		if quit {
			return m, tea.Quit
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

// gridPos converts terminal coordinates into the grid's own frame.
func (m *Model) gridPos(ms tea.Mouse) (int, int) {
	return ms.X, ms.Y - titleRows
}

func (m *Model) handlePointerDown(ms tea.Mouse) {
	if m.mode != modeNormal || ms.Button != tea.MouseLeft {
		return
	}
	x, y := m.gridPos(ms)

	if e, day, ok := m.view.EntryAt(m.week, x, y); ok {
		id, editing := m.ctl.Editing()
		if editing && id == e.Task.ID && day != m.editDay {
			// Another occurrence of the same recurring task.
			m.editDay = day
			return
		}
		if editing && id == e.Task.ID {
			top, height := m.ctl.EntryGeometry(e)
			p := m.view.Point(x, y)
			kind := grid.HitTest(top, height, p.Y, m.view.Scale.ToOffset(grid.SlotMinutes))
			if err := m.ctl.BeginDrag(e.Task.ID, kind, p, top, height, day); err != nil {
				m.status = err.Error()
			}
			return
		}
		m.ctl.ToggleEdit(e.Task.ID)
		m.editDay = day
		if _, editing := m.ctl.Editing(); editing {
			m.status = fmt.Sprintf("editing %s: drag to move, drag the top or bottom row to resize", e.Task.Name)
		}
		return
	}

	cell, ok := m.view.CellAt(x, y)
	if !ok {
		return
	}
	if err := m.ctl.BeginSelection(cell); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) handlePointerMove(ms tea.Mouse) {
	x, y := m.gridPos(ms)
	switch m.ctl.Mode() {
	case grid.ModeDragging:
		_, _ = m.ctl.Drag(m.view.Point(x, y))
	case grid.ModeSelecting:
		if cell, ok := m.view.CellAt(x, y); ok {
			_ = m.ctl.ExtendSelection(cell)
		}
	}
}

func (m *Model) handlePointerUp() tea.Cmd {
	switch m.ctl.Mode() {
	case grid.ModeDragging:
		req, err := m.ctl.EndDrag()
		if err != nil {
			m.status = err.Error()
			return nil
		}
		return m.apply(req)
	case grid.ModeSelecting:
		req, err := m.ctl.EndSelection()
		switch {
		case errors.Is(err, grid.ErrCrossDay):
			m.status = "a new task must start and end on the same day"
			return nil
		case errors.Is(err, grid.ErrTooShort):
			m.status = fmt.Sprintf("select at least %d minutes", grid.MinDurationMinutes)
			return nil
		case err != nil:
			m.status = err.Error()
			return nil
		}
		m.pending = &req
		m.mode = modeNaming
		m.input.Reset()
		m.status = fmt.Sprintf("new task %s %s-%s", req.Date, req.Start, req.End)
		return m.input.Focus()
	}
	return nil
}

func (m *Model) apply(req grid.UpdateRequest) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		t, err := svc.Apply(ctx, req)
		if err != nil {
			return savedMsg{err: err}
		}
		return savedMsg{status: fmt.Sprintf("moved %s to %s %s-%s", t.Name, req.Date, req.Start, req.End)}
	}
}

func (m *Model) handleNamingKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.pending = nil
		m.input.Blur()
		m.status = "cancelled"
		return nil
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			m.status = "a task needs a name"
			return nil
		}
		req := *m.pending
		m.mode = modeNormal
		m.pending = nil
		m.input.Blur()
		svc, ctx := m.svc, m.ctx
		if svc == nil {
			return nil
		}
		return func() tea.Msg {
			t, err := svc.CreateTask(ctx, req.Draft(name))
			if err != nil {
				return savedMsg{err: err}
			}
			return savedMsg{status: "added " + t.Name}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctl.Abort()
		m.stopWatch()
		return nil, true
	case key.Matches(msg, m.keys.Cancel):
		m.ctl.Abort()
		m.status = "ready"
	case key.Matches(msg, m.keys.PrevWeek):
		return m.gotoWeek(m.weekStart.AddDays(-grid.DaysPerWeek)), false
	case key.Matches(msg, m.keys.NextWeek):
		return m.gotoWeek(m.weekStart.AddDays(grid.DaysPerWeek)), false
	case key.Matches(msg, m.keys.Today):
		today := task.DateOf(m.now())
		start := today.StartOfWeek(time.Monday)
		if m.svc != nil {
			start = m.svc.WeekOf(today)
		}
		return m.gotoWeek(start), false
	case key.Matches(msg, m.keys.Up):
		m.view.Scroll(-4)
	case key.Matches(msg, m.keys.Down):
		m.view.Scroll(4)
	case key.Matches(msg, m.keys.Complete):
		return m.onEdited(func(ctx context.Context, e grid.Entry) savedMsg {
			done, err := m.svc.ToggleComplete(ctx, e.Task.ID, e.Date)
			if err != nil {
				return savedMsg{err: err}
			}
			if done {
				return savedMsg{status: "completed " + e.Task.Name}
			}
			return savedMsg{status: "reopened " + e.Task.Name}
		}), false
	case key.Matches(msg, m.keys.Skip):
		return m.onEdited(func(ctx context.Context, e grid.Entry) savedMsg {
			if _, err := m.svc.Skip(ctx, e.Task.ID, e.Date); err != nil {
				return savedMsg{err: err}
			}
			return savedMsg{status: fmt.Sprintf("skipped %s on %s", e.Task.Name, e.Date)}
		}), false
	case key.Matches(msg, m.keys.Delete):
		return m.onEdited(func(ctx context.Context, e grid.Entry) savedMsg {
			if err := m.svc.Delete(ctx, e.Task.ID); err != nil {
				return savedMsg{err: err}
			}
			return savedMsg{status: "deleted " + e.Task.Name}
		}), false
	}
	return nil, false
}

// onEdited runs fn against the occurrence in edit mode and leaves edit mode.
func (m *Model) onEdited(fn func(context.Context, grid.Entry) savedMsg) tea.Cmd {
	id, ok := m.ctl.Editing()
	if !ok || m.ctl.Mode() != grid.ModeEditing {
		m.status = "click a task first"
		return nil
	}
	e, found := m.week.Find(m.editDay, id)
	m.ctl.ToggleEdit(id)
	if !found || m.svc == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg { return fn(ctx, e) }
}

func (m *Model) gotoWeek(start task.Date) tea.Cmd {
	m.ctl.Abort()
	m.weekStart = start
	m.ctl.WeekStart = start
	m.week = grid.Week{Start: start}
	for i := range m.week.Days {
		m.week.Days[i].Date = start.AddDays(i)
	}
	return m.loadWeek(start)
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	end := m.weekStart.AddDays(grid.DaysPerWeek - 1)
	b.WriteString(m.theme.Title.Render(fmt.Sprintf("weekplan  %s - %s",
		m.weekStart.Time().Format("Mon 02 Jan"), end.Time().Format("Mon 02 Jan 2006"))))
	b.WriteString("\n")
	b.WriteString(m.view.Render(m.week, m.gridState()))
	b.WriteString("\n")

	if m.mode == modeNaming {
		b.WriteString(m.input.View())
		return b.String()
	}
	var help []string
	for _, k := range m.keys.help() {
		h := k.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(m.theme.Footer.Status.Render(m.status))
	b.WriteString("  ")
	b.WriteString(m.theme.Footer.Help.Render(strings.Join(help, m.theme.Footer.Separator)))
	return b.String()
}

func (m *Model) gridState() weekgrid.State {
	st := weekgrid.State{Now: m.now()}
	if id, ok := m.ctl.Editing(); ok {
		st.Editing = id
	}
	if day, from, to, ok := m.ctl.Highlight(); ok {
		st.Selection = &weekgrid.Selection{Day: day, From: from, To: to}
	}
	if m.pending != nil {
		if day := m.week.DayIndex(m.pending.Date); day >= 0 {
			from, _ := grid.MinutesFromMidnight(m.pending.Start)
			to, _ := grid.MinutesFromMidnight(m.pending.End)
			st.Selection = &weekgrid.Selection{Day: day, From: from, To: to}
		}
	}
	if pv, ok := m.ctl.Preview(); ok {
		st.Preview = &pv
	}
	return st
}

// pointerCapture tracks the pointer listeners of the running drag. While
// attached, motion belongs to the drag and the wheel does not scroll.
type pointerCapture struct {
	attached int
	released int
}

func (p *pointerCapture) Attach() func() {
	p.attached++
	return func() { p.released++ }
}

func (p *pointerCapture) active() bool {
	return p.attached > p.released
}
