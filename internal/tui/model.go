// Package tui renders the interactive availability calendar: a month grid
// with per-day activity indicators next to a panel listing the focused day's
// occurrences, plus modal forms for creating and deleting records.
package tui

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"

	"github.com/ZeeshanAK/my-availability-app/internal/app"
	"github.com/ZeeshanAK/my-availability-app/internal/domain"
	"github.com/ZeeshanAK/my-availability-app/internal/schedule"
)

// Service is the slice of the application layer the calendar consumes.
type Service interface {
	ListActivities(ctx context.Context, ownerID string) ([]domain.Activity, error)
	CreateActivity(ctx context.Context, ownerID, name, color string) (domain.Activity, error)
	DeleteActivity(ctx context.Context, ownerID, activityID string) error
	CreateEntry(ctx context.Context, in app.CreateEntryInput) (domain.ScheduleEntry, error)
	DeleteEntry(ctx context.Context, ownerID, entryID string) error
	DaySchedule(ctx context.Context, ownerID string, day domain.Date) (schedule.DaySchedule, error)
	MonthView(ctx context.Context, ownerID string, month domain.YearMonth) (schedule.MonthIndicators, error)
}

const defaultShareBase = "http://127.0.0.1:8390"

// mode represents mode data used by this package.
type mode int

const (
	modeNone mode = iota
	modeAddEntry
	modeAddActivity
	modeConfirmDelete
	modeDeleteActivity
)

// Entry form field order; activity and repeat are cycled rather than typed.
const (
	entryFieldActivity = iota
	entryFieldStart
	entryFieldEnd
	entryFieldRepeat
	entryFieldWeekdays
	entryFieldUntil
)

// entryFormFields stores a package-level helper value.
var entryFormFields = []string{"activity", "start", "end", "repeat", "weekdays", "until"}

// activityFormFields stores a package-level helper value.
var activityFormFields = []string{"name", "color"}

// repeatOptions stores a package-level helper value.
var repeatOptions = []domain.RecurrenceKind{
	domain.RecurrenceNone,
	domain.RecurrenceDaily,
	domain.RecurrenceWeekly,
}

// loadedMsg carries a fresh snapshot of everything the calendar shows.
type loadedMsg struct {
	activities []domain.Activity
	day        schedule.DaySchedule
	indicators schedule.MonthIndicators
	err        error
}

// actionMsg reports the outcome of a mutation. Errors land in the status
// line rather than the fatal error view; the calendar itself is still fine.
type actionMsg struct {
	status string
	err    error
	reload bool
}

// feedMsg signals that the owner's data changed somewhere else.
type feedMsg struct{ event app.Event }

// Model is the bubbletea model for the availability calendar.
type Model struct {
	svc   Service
	owner domain.Owner
	keys  keyMap
	help  help.Model

	width  int
	height int
	ready  bool
	err    error

	loc    *time.Location
	locErr error

	today     domain.Date
	focused   domain.Date
	month     domain.YearMonth
	weekStart time.Weekday
	shareBase string

	activities []domain.Activity
	day        schedule.DaySchedule
	indicators schedule.MonthIndicators

	selectedOcc int

	mode            mode
	formInputs      []textinput.Model
	formFocus       int
	formActivityIdx int
	formRepeatIdx   int

	pendingDelete     domain.Occurrence
	confirmChoice     int
	activityPickerIdx int

	events     <-chan app.Event
	cancelFeed func()

	status string
}

// NewModel constructs the calendar model for one owner.
func NewModel(svc Service, owner domain.Owner, opts ...Option) Model {
	m := Model{
		svc:       svc,
		owner:     owner,
		keys:      newKeyMap(),
		help:      help.New(),
		loc:       time.UTC,
		weekStart: time.Sunday,
		shareBase: defaultShareBase,
	}
	if loc, err := owner.Location(); err == nil {
		m.loc = loc
	} else {
		m.locErr = err
	}
	m.setFocus(domain.DateOf(time.Now().In(m.loc)))
	m.today = m.focused
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// setFocus moves the focused day and follows it into its month.
func (m *Model) setFocus(day domain.Date) {
	m.focused = day
	m.month = domain.MonthOf(day)
	m.selectedOcc = 0
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadData, m.waitFeed())
}

// waitFeed blocks on the next change event. Nil when no feed is wired.
func (m Model) waitFeed() tea.Cmd {
	if m.events == nil {
		return nil
	}
	ch := m.events
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return feedMsg{event: ev}
	}
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.activities = msg.activities
		m.day = msg.day
		m.indicators = msg.indicators
		m.selectedOcc = clamp(m.selectedOcc, 0, max(0, len(m.day.Occurrences)-1))
		if m.status == "" || m.status == "loading..." {
			m.status = "ready"
		}
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		if msg.status != "" {
			m.status = msg.status
		}
		if msg.reload {
			return m, m.loadData
		}
		return m, nil

	case feedMsg:
		return m, tea.Batch(m.loadData, m.waitFeed())

	case tea.KeyPressMsg:
		if m.mode != modeNone {
			return m.handleInputModeKey(msg)
		}
		return m.handleNormalModeKey(msg)

	case tea.MouseWheelMsg:
		if m.mode != modeNone || m.err != nil {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseWheelUp:
			return m.moveFocus(-7)
		case tea.MouseWheelDown:
			return m.moveFocus(7)
		}
		return m, nil

	default:
		return m, nil
	}
}

// handleNormalModeKey dispatches keys outside of any modal.
func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		if m.cancelFeed != nil {
			m.cancelFeed()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.reload):
		m.status = "loading..."
		return m, m.loadData
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if m.err != nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.prevDay):
		return m.moveFocus(-1)
	case key.Matches(msg, m.keys.nextDay):
		return m.moveFocus(1)
	case key.Matches(msg, m.keys.prevWeek):
		return m.moveFocus(-7)
	case key.Matches(msg, m.keys.nextWeek):
		return m.moveFocus(7)
	case key.Matches(msg, m.keys.prevMonth):
		return m.moveMonth(-1)
	case key.Matches(msg, m.keys.nextMonth):
		return m.moveMonth(1)
	case key.Matches(msg, m.keys.today):
		m.status = ""
		m.setFocus(m.today)
		return m, m.loadData
	case key.Matches(msg, m.keys.nextBlock):
		if n := len(m.day.Occurrences); n > 0 {
			m.selectedOcc = (m.selectedOcc + 1) % n
		}
		return m, nil
	case key.Matches(msg, m.keys.addEntry):
		return m.startEntryForm()
	case key.Matches(msg, m.keys.addActivity):
		return m.startActivityForm()
	case key.Matches(msg, m.keys.deleteEntry):
		occ, ok := m.selectedOccurrence()
		if !ok {
			m.status = "nothing scheduled to delete"
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.pendingDelete = occ
		m.confirmChoice = 0
		return m, nil
	case key.Matches(msg, m.keys.deleteActivity):
		if len(m.activities) == 0 {
			m.status = "no activities yet"
			return m, nil
		}
		m.mode = modeDeleteActivity
		m.activityPickerIdx = 0
		return m, nil
	case key.Matches(msg, m.keys.copyShare):
		return m.copyShareLink()
	}
	return m, nil
}

// moveFocus shifts the focused day and reloads the snapshot.
func (m Model) moveFocus(days int) (tea.Model, tea.Cmd) {
	m.status = ""
	m.setFocus(m.focused.AddDays(days))
	return m, m.loadData
}

// moveMonth jumps a whole month, keeping the day-of-month where possible.
func (m Model) moveMonth(delta int) (tea.Model, tea.Cmd) {
	month := m.month
	if delta < 0 {
		month = month.Prev()
	} else {
		month = month.Next()
	}
	day := clamp(m.focused.Day, 1, month.Days())
	m.status = ""
	m.setFocus(domain.NewDate(month.Year, month.Month, day))
	return m, m.loadData
}

// copyShareLink puts the focused day's share URL on the system clipboard.
// Headless environments still get the URL in the status line.
func (m Model) copyShareLink() (tea.Model, tea.Cmd) {
	ref := app.ShareRef{OwnerID: m.owner.ID, Date: m.focused}
	url := app.ShareURL(m.shareBase, ref)
	return m, func() tea.Msg {
		if err := clipboard.WriteAll(url); err != nil {
			return actionMsg{status: "share link (clipboard unavailable): " + url}
		}
		return actionMsg{status: "share link copied: " + url}
	}
}

// selectedOccurrence returns the highlighted block on the focused day.
func (m Model) selectedOccurrence() (domain.Occurrence, bool) {
	if len(m.day.Occurrences) == 0 {
		return domain.Occurrence{}, false
	}
	return m.day.Occurrences[clamp(m.selectedOcc, 0, len(m.day.Occurrences)-1)], true
}

// startEntryForm opens the new-entry modal anchored on the focused day.
func (m Model) startEntryForm() (tea.Model, tea.Cmd) {
	if len(m.activities) == 0 {
		m.status = "create an activity first (A)"
		return m, nil
	}
	m.mode = modeAddEntry
	m.formActivityIdx = 0
	m.formRepeatIdx = 0
	m.formInputs = []textinput.Model{
		entryFieldActivity: newModalInput("", "activity", m.activities[0].Name, 64),
		entryFieldStart:    newModalInput("", "HH:MM", "", 5),
		entryFieldEnd:      newModalInput("", "HH:MM", "", 5),
		entryFieldRepeat:   newModalInput("", "none|daily|weekly", string(domain.RecurrenceNone), 8),
		entryFieldWeekdays: newModalInput("", "mon,wed,fri", "", 64),
		entryFieldUntil:    newModalInput("", "YYYY-MM-DD (blank = open)", "", 10),
	}
	m.status = "add entry on " + m.focused.String()
	return m, m.focusFormField(entryFieldStart)
}

// startActivityForm opens the new-activity modal.
func (m Model) startActivityForm() (tea.Model, tea.Cmd) {
	m.mode = modeAddActivity
	m.formInputs = []textinput.Model{
		newModalInput("", "name", "", 64),
		newModalInput("", "#RRGGBB (blank = default)", "", 7),
	}
	m.status = "add activity"
	return m, m.focusFormField(0)
}

func newModalInput(prompt, placeholder, value string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	in.CharLimit = limit
	if value != "" {
		in.SetValue(value)
	}
	return in
}

// focusFormField blurs everything and focuses the wrapped target index.
func (m *Model) focusFormField(target int) tea.Cmd {
	if len(m.formInputs) == 0 {
		return nil
	}
	if target < 0 {
		target = len(m.formInputs) - 1
	}
	if target >= len(m.formInputs) {
		target = 0
	}
	for i := range m.formInputs {
		m.formInputs[i].Blur()
	}
	m.formFocus = target
	return m.formInputs[target].Focus()
}

// cycleActivity rotates the activity picker and writes the choice through to
// the backing input so submit reads one code path.
func (m *Model) cycleActivity(delta int) {
	if len(m.activities) == 0 {
		return
	}
	m.formActivityIdx += delta
	if m.formActivityIdx < 0 {
		m.formActivityIdx = len(m.activities) - 1
	}
	if m.formActivityIdx >= len(m.activities) {
		m.formActivityIdx = 0
	}
	if len(m.formInputs) > entryFieldActivity {
		m.formInputs[entryFieldActivity].SetValue(m.activities[m.formActivityIdx].Name)
	}
}

// cycleRepeat rotates the repeat-kind picker.
func (m *Model) cycleRepeat(delta int) {
	m.formRepeatIdx += delta
	if m.formRepeatIdx < 0 {
		m.formRepeatIdx = len(repeatOptions) - 1
	}
	if m.formRepeatIdx >= len(repeatOptions) {
		m.formRepeatIdx = 0
	}
	if len(m.formInputs) > entryFieldRepeat {
		m.formInputs[entryFieldRepeat].SetValue(string(repeatOptions[m.formRepeatIdx]))
	}
}

// handleInputModeKey dispatches keys while a modal is open.
func (m Model) handleInputModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeConfirmDelete:
		switch msg.String() {
		case "esc", "n":
			m.mode = modeNone
			m.status = "cancelled"
			return m, nil
		case "h", "left", "l", "right":
			m.confirmChoice = 1 - m.confirmChoice
			return m, nil
		case "y":
			return m.applyConfirmDelete()
		case "enter":
			if m.confirmChoice == 0 {
				return m.applyConfirmDelete()
			}
			m.mode = modeNone
			m.status = "cancelled"
			return m, nil
		}
		return m, nil

	case modeDeleteActivity:
		switch msg.String() {
		case "esc":
			m.mode = modeNone
			m.status = "cancelled"
			return m, nil
		case "j", "down":
			m.activityPickerIdx = clamp(m.activityPickerIdx+1, 0, len(m.activities)-1)
			return m, nil
		case "k", "up":
			m.activityPickerIdx = clamp(m.activityPickerIdx-1, 0, len(m.activities)-1)
			return m, nil
		case "enter":
			return m.applyDeleteActivity()
		}
		return m, nil

	case modeAddEntry, modeAddActivity:
		switch {
		case msg.Code == tea.KeyEscape || msg.String() == "esc":
			m.mode = modeNone
			m.formInputs = nil
			m.formFocus = 0
			m.status = "cancelled"
			return m, nil
		case msg.Code == tea.KeyTab || msg.String() == "tab" || msg.String() == "down":
			return m, m.focusFormField(m.formFocus + 1)
		case msg.String() == "shift+tab" || msg.String() == "backtab" || msg.String() == "up":
			return m, m.focusFormField(m.formFocus - 1)
		case msg.Code == tea.KeyEnter || msg.String() == "enter":
			if m.mode == modeAddEntry {
				return m.submitEntryForm()
			}
			return m.submitActivityForm()
		default:
			if m.mode == modeAddEntry && m.formFocus == entryFieldActivity {
				switch msg.String() {
				case "h", "left":
					m.cycleActivity(-1)
				case "l", "right":
					m.cycleActivity(1)
				}
				return m, nil
			}
			if m.mode == modeAddEntry && m.formFocus == entryFieldRepeat {
				switch msg.String() {
				case "h", "left":
					m.cycleRepeat(-1)
				case "l", "right":
					m.cycleRepeat(1)
				}
				return m, nil
			}
			if len(m.formInputs) == 0 {
				return m, nil
			}
			var cmd tea.Cmd
			m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// applyConfirmDelete deletes the pending entry. All of a recurring entry's
// occurrences go with it; entries have no partial delete.
func (m Model) applyConfirmDelete() (tea.Model, tea.Cmd) {
	entryID := m.pendingDelete.EntryID
	m.mode = modeNone
	m.pendingDelete = domain.Occurrence{}
	return m, func() tea.Msg {
		if err := m.svc.DeleteEntry(context.Background(), m.owner.ID, entryID); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "entry deleted", reload: true}
	}
}

// applyDeleteActivity deletes the picked activity. Entries keep their
// name/color snapshot, so nothing disappears from the calendar.
func (m Model) applyDeleteActivity() (tea.Model, tea.Cmd) {
	if len(m.activities) == 0 {
		m.mode = modeNone
		return m, nil
	}
	activity := m.activities[clamp(m.activityPickerIdx, 0, len(m.activities)-1)]
	m.mode = modeNone
	return m, func() tea.Msg {
		if err := m.svc.DeleteActivity(context.Background(), m.owner.ID, activity.ID); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "activity deleted (entries keep their snapshot)", reload: true}
	}
}

// formValues reads the trimmed inputs keyed by field name.
func (m Model) formValues(fields []string) map[string]string {
	out := map[string]string{}
	for i, key := range fields {
		if i >= len(m.formInputs) {
			break
		}
		out[key] = strings.TrimSpace(m.formInputs[i].Value())
	}
	return out
}

// submitEntryForm validates the entry form and hands it to the service. The
// service re-validates; anything it rejects lands in the status line.
func (m Model) submitEntryForm() (tea.Model, tea.Cmd) {
	vals := m.formValues(entryFormFields)

	activity, ok := m.activityByName(vals["activity"])
	if !ok {
		m.status = fmt.Sprintf("unknown activity %q", vals["activity"])
		return m, nil
	}
	if vals["start"] == "" || vals["end"] == "" {
		m.status = "start and end times required (HH:MM)"
		return m, nil
	}

	kind := domain.RecurrenceKind(strings.ToLower(vals["repeat"]))
	if kind == "" {
		kind = domain.RecurrenceNone
	}
	switch kind {
	case domain.RecurrenceNone, domain.RecurrenceDaily, domain.RecurrenceWeekly:
	default:
		m.status = "repeat must be none|daily|weekly"
		return m, nil
	}

	rec := domain.Recurrence{Kind: kind}
	if kind != domain.RecurrenceNone {
		rec.WindowStart = m.focused
		days, err := parseWeekdaysInput(vals["weekdays"])
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		rec.Weekdays = days
		if kind == domain.RecurrenceWeekly && len(days) == 0 {
			m.status = "weekly entries need weekdays (mon,wed,...)"
			return m, nil
		}
		if vals["until"] != "" {
			end, err := domain.ParseDate(vals["until"])
			if err != nil {
				m.status = "until must be YYYY-MM-DD"
				return m, nil
			}
			rec.WindowEnd = end
		}
	}

	in := app.CreateEntryInput{
		OwnerID:    m.owner.ID,
		ActivityID: activity.ID,
		Date:       m.focused,
		Start:      vals["start"],
		End:        vals["end"],
		Recurrence: rec,
	}
	m.mode = modeNone
	m.formInputs = nil
	m.formFocus = 0
	return m, func() tea.Msg {
		if _, err := m.svc.CreateEntry(context.Background(), in); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "entry added", reload: true}
	}
}

// submitActivityForm validates the activity form and hands it to the service.
func (m Model) submitActivityForm() (tea.Model, tea.Cmd) {
	vals := m.formValues(activityFormFields)
	if vals["name"] == "" {
		m.status = "name required"
		return m, nil
	}
	name, color := vals["name"], vals["color"]
	m.mode = modeNone
	m.formInputs = nil
	m.formFocus = 0
	return m, func() tea.Msg {
		if _, err := m.svc.CreateActivity(context.Background(), m.owner.ID, name, color); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{status: "activity added", reload: true}
	}
}

// activityByName resolves the picker value back to an activity record.
func (m Model) activityByName(name string) (domain.Activity, bool) {
	for _, a := range m.activities {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return domain.Activity{}, false
}

// parseWeekdaysInput parses a comma separated weekday list. Full names and
// three-letter prefixes both work; blank means none.
func parseWeekdaysInput(s string) ([]time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]time.Weekday, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, ok := parseWeekdayName(p)
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", p)
		}
		out = append(out, d)
	}
	return out, nil
}

func parseWeekdayName(s string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, true
		}
	}
	return 0, false
}

// loadData loads the snapshot backing the current view.
func (m Model) loadData() tea.Msg {
	if m.locErr != nil {
		return loadedMsg{err: m.locErr}
	}
	activities, err := m.svc.ListActivities(context.Background(), m.owner.ID)
	if err != nil {
		return loadedMsg{err: err}
	}
	day, err := m.svc.DaySchedule(context.Background(), m.owner.ID, m.focused)
	if err != nil {
		return loadedMsg{err: err}
	}
	indicators, err := m.svc.MonthView(context.Background(), m.owner.ID, m.month)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{activities: activities, day: day, indicators: indicators}
}

// View handles view.
func (m Model) View() tea.View {
	if m.err != nil {
		v := tea.NewView("error: " + m.err.Error() + "\n\npress r to retry • q quit\n")
		v.MouseMode = tea.MouseModeCellMotion
		v.AltScreen = true
		return v
	}
	if !m.ready {
		v := tea.NewView("loading...")
		v.MouseMode = tea.MouseModeCellMotion
		v.AltScreen = true
		return v
	}

	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusStyle := lipgloss.NewStyle().Foreground(dim)

	header := titleStyle.Render("avail") + "  " + m.owner.DisplayName
	header += statusStyle.Render("  [" + m.modeLabel() + "]")
	header += statusStyle.Render("  " + m.owner.Timezone)

	grid := m.renderMonthGrid(accent, muted, dim)
	panel := m.renderDayPanel(accent, muted, dim)
	body := lipgloss.JoinHorizontal(lipgloss.Top, grid, panel)

	sections := []string{header, "", body}
	if strings.TrimSpace(m.status) != "" && m.status != "ready" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	content := strings.Join(sections, "\n")

	helpBubble := m.help
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(muted).
		BorderTop(true).
		BorderForeground(dim).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))

	if m.height > 0 {
		helpHeight := lipgloss.Height(helpLine)
		content = fitLines(content, max(0, m.height-helpHeight))
	}

	fullContent := content + "\n" + helpLine
	if overlay := m.renderModeOverlay(accent, muted, max(24, m.width-8)); overlay != "" {
		overlayHeight := lipgloss.Height(fullContent)
		if m.height > 0 {
			overlayHeight = m.height
		}
		fullContent = overlayOnContent(fullContent, overlay, max(1, m.width), max(1, overlayHeight))
	}

	view := tea.NewView(fullContent)
	view.MouseMode = tea.MouseModeCellMotion
	view.AltScreen = true
	return view
}

// renderMonthGrid renders the calendar month with indicator dots.
func (m Model) renderMonthGrid(accent, muted, dim color.Color) string {
	const cellWidth = 3

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	headStyle := lipgloss.NewStyle().Foreground(muted)
	dayStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	todayStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	focusStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("237"))

	title := m.month.First().In(time.UTC).Format("January 2006")

	heads := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		wd := time.Weekday((int(m.weekStart) + i) % 7)
		heads = append(heads, fmt.Sprintf("%-*s", cellWidth, wd.String()[:2]))
	}

	rows := []string{titleStyle.Render(title), headStyle.Render(strings.Join(heads, " "))}
	for _, week := range monthWeeks(m.month, m.weekStart) {
		cells := make([]string, 0, 7)
		for _, dayNum := range week {
			if dayNum == 0 {
				cells = append(cells, strings.Repeat(" ", cellWidth))
				continue
			}
			day := domain.NewDate(m.month.Year, m.month.Month, dayNum)
			num := fmt.Sprintf("%2d", dayNum)
			switch {
			case day == m.focused:
				num = focusStyle.Render(num)
			case day == m.today:
				num = todayStyle.Render(num)
			default:
				num = dayStyle.Render(num)
			}
			dot := " "
			if c, ok := m.indicators.Colors[day]; ok {
				dot = lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("•")
			}
			cells = append(cells, num+dot)
		}
		rows = append(rows, strings.Join(cells, " "))
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dim).
		Padding(1, 2).
		MarginRight(1)
	return boxStyle.Render(strings.Join(rows, "\n"))
}

// renderDayPanel renders the focused day's occurrence list.
func (m Model) renderDayPanel(accent, muted, dim color.Color) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	mutedStyle := lipgloss.NewStyle().Foreground(muted)
	dimStyle := lipgloss.NewStyle().Foreground(dim)
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

	width := clamp(m.width-37, 28, 64)

	title := m.focused.Weekday().String() + " " + m.focused.String()
	lines := []string{titleStyle.Render(title)}

	if len(m.day.Occurrences) == 0 {
		lines = append(lines, "", mutedStyle.Render("free all day"))
	} else {
		lines = append(lines, "")
		for i, occ := range m.day.Occurrences {
			bar := lipgloss.NewStyle().Foreground(lipgloss.Color(occ.Color)).Render("▌")
			text := schedule.ClockRange(occ.StartUTC, occ.EndUTC, m.loc) + "  " + occ.ActivityName
			text = truncate(text, max(1, width-2))
			if i == m.selectedOcc {
				text = selectedStyle.Render(text)
			}
			lines = append(lines, bar+" "+text)
		}
	}
	if n := len(m.day.Skipped); n > 0 {
		lines = append(lines, "", dimStyle.Render(fmt.Sprintf("%d malformed entries skipped", n)))
	}
	if len(m.activities) > 0 {
		names := make([]string, 0, len(m.activities))
		for _, a := range m.activities {
			names = append(names, a.Name)
		}
		lines = append(lines, "", dimStyle.Render(truncate("activities: "+strings.Join(names, ", "), max(1, width))))
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dim).
		Padding(1, 2).
		Width(width)
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// renderModeOverlay renders the active modal, if any.
func (m Model) renderModeOverlay(accent, muted color.Color, maxWidth int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle := lipgloss.NewStyle().Foreground(muted)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
	if maxWidth > 0 {
		boxStyle = boxStyle.Width(clamp(maxWidth, 30, 72))
	}

	switch m.mode {
	case modeAddEntry, modeAddActivity:
		title := "New Activity"
		fields := activityFormFields
		if m.mode == modeAddEntry {
			title = "New Entry • " + m.focused.String()
			fields = entryFormFields
		}
		lines := []string{titleStyle.Render(title)}
		fieldWidth := max(18, clamp(maxWidth, 30, 72)-20)
		for i := range m.formInputs {
			label := fields[i]
			labelStyle := lipgloss.NewStyle().Foreground(muted)
			if i == m.formFocus {
				labelStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
			}
			rendered := fmt.Sprintf("%-10s", label+":")
			if m.mode == modeAddEntry && i == entryFieldActivity {
				lines = append(lines, labelStyle.Render(rendered)+" "+m.renderActivityPicker(accent, muted))
				continue
			}
			if m.mode == modeAddEntry && i == entryFieldRepeat {
				lines = append(lines, labelStyle.Render(rendered)+" "+m.renderRepeatPicker(accent, muted))
				continue
			}
			in := m.formInputs[i]
			in.SetWidth(fieldWidth)
			lines = append(lines, labelStyle.Render(rendered)+" "+in.View())
		}
		if m.mode == modeAddEntry {
			if repeatOptions[clamp(m.formRepeatIdx, 0, len(repeatOptions)-1)] != domain.RecurrenceNone {
				lines = append(lines, hintStyle.Render("window starts "+m.focused.String()))
			}
			if m.formFocus == entryFieldWeekdays {
				lines = append(lines, hintStyle.Render("weekly only: comma separated, e.g. mon,wed or monday"))
			}
			if m.formFocus == entryFieldUntil {
				lines = append(lines, hintStyle.Render("blank keeps the window open"))
			}
		}
		lines = append(lines, hintStyle.Render("enter save • esc cancel • tab next field"))
		return boxStyle.Render(strings.Join(lines, "\n"))

	case modeConfirmDelete:
		confirmStyle := lipgloss.NewStyle().Foreground(muted)
		cancelStyle := lipgloss.NewStyle().Foreground(muted)
		if m.confirmChoice == 0 {
			confirmStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
		} else {
			cancelStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
		}
		occ := m.pendingDelete
		lines := []string{
			titleStyle.Render("Delete Entry"),
			fmt.Sprintf("%s  %s", schedule.ClockRange(occ.StartUTC, occ.EndUTC, m.loc), occ.ActivityName),
			hintStyle.Render("a recurring entry loses every occurrence"),
			confirmStyle.Render("[confirm]") + "  " + cancelStyle.Render("[cancel]"),
			hintStyle.Render("enter apply • esc cancel • h/l switch • y confirm • n cancel"),
		}
		return boxStyle.Render(strings.Join(lines, "\n"))

	case modeDeleteActivity:
		lines := []string{titleStyle.Render("Delete Activity")}
		activeStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
		for i, a := range m.activities {
			cursor := "  "
			label := a.Name
			if i == m.activityPickerIdx {
				cursor = "> "
				label = activeStyle.Render(label)
			}
			lines = append(lines, cursor+label)
		}
		lines = append(lines, hintStyle.Render("entries keep their name/color snapshot"))
		lines = append(lines, hintStyle.Render("j/k navigate • enter delete • esc cancel"))
		return boxStyle.Render(strings.Join(lines, "\n"))

	default:
		return ""
	}
}

// renderActivityPicker renders output for the current model state.
func (m Model) renderActivityPicker(accent, muted color.Color) string {
	if len(m.activities) == 0 {
		return ""
	}
	idx := clamp(m.formActivityIdx, 0, len(m.activities)-1)
	a := m.activities[idx]
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(a.Color)).Render("•")
	name := lipgloss.NewStyle().Bold(true).Foreground(accent).Render(a.Name)
	count := lipgloss.NewStyle().Foreground(muted).Render(fmt.Sprintf("  ‹%d/%d› h/l", idx+1, len(m.activities)))
	return dot + " " + name + count
}

// renderRepeatPicker renders output for the current model state.
func (m Model) renderRepeatPicker(accent, muted color.Color) string {
	parts := make([]string, 0, len(repeatOptions))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	baseStyle := lipgloss.NewStyle().Foreground(muted)
	idx := clamp(m.formRepeatIdx, 0, len(repeatOptions)-1)
	for i, k := range repeatOptions {
		label := string(k)
		if i == idx {
			label = activeStyle.Render("[" + label + "]")
		} else {
			label = baseStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

// modeLabel names the active mode for the header.
func (m Model) modeLabel() string {
	switch m.mode {
	case modeAddEntry:
		return "add entry"
	case modeAddActivity:
		return "add activity"
	case modeConfirmDelete:
		return "confirm delete"
	case modeDeleteActivity:
		return "delete activity"
	default:
		return "normal"
	}
}

// monthWeeks lays the month's day numbers out in week rows; zero cells pad
// the partial first and last weeks.
func monthWeeks(month domain.YearMonth, weekStart time.Weekday) [][7]int {
	first := month.First()
	col := (int(first.Weekday()) - int(weekStart) + 7) % 7
	weeks := make([][7]int, 0, 6)
	var week [7]int
	for day := 1; day <= month.Days(); day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// fitLines fits lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		padding := make([]string, maxLines-len(lines))
		lines = append(lines, padding...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent overlays on content.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	baseLayer := lipgloss.NewLayer(base).X(0).Y(0).Z(0)
	centeredOverlay := lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlay,
	)
	overlayLayer := lipgloss.NewLayer(centeredOverlay).X(0).Y(0).Z(10)

	canvas.Compose(baseLayer)
	canvas.Compose(overlayLayer)
	return canvas.Render()
}

// truncate truncates the requested operation.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	if max <= 1 {
		return string(rs[:max])
	}
	return string(rs[:max-1]) + "…"
}
