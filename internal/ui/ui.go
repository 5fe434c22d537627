package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/agenda/internal/book"
)

const minTableHeight = 5

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	ctrl   *book.Controller
	queue  *book.Queue
	width  int
	height int

	focus   focusStop
	inputs  []textinput.Model
	edit    textinput.Model
	table   table.Model
	rowIDs  []string
	spinner spinner.Model
	loading bool

	notice    *book.Notification
	noticeSeq int

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model around ctrl.
//
// queue must be the controller's notifier; it is drained after every operation.
func NewModel(ctx context.Context, ctrl *book.Controller, queue *book.Queue) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.focused

	t := table.New(table.WithColumns(tableColumns()), table.WithHeight(minTableHeight))
	t.SetStyles(styles.tableStyles())

	m := &Model{
		ctx:     ctx,
		ctrl:    ctrl,
		queue:   queue,
		inputs:  newInputs(),
		edit:    newEditInput(),
		table:   t,
		spinner: s,
		help:    help.New(),
		keys:    newKeyMap(),
	}
	m.setFocus(focusUsername)
	m.refreshTable()
	return m
}

// Init starts the cursor blink and shows any notification raised while loading.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.flushNotifications())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(minTableHeight, msg.Height-20))
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.forceQuit) {
			return m, tea.Quit
		}
		if _, editing := m.ctrl.Editing(); editing {
			return m.handleEditKeys(msg)
		}
		return m.handleKeys(msg)
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case Msg:
		return m.handleMsg(msg)
	}

	if _, editing := m.ctrl.Editing(); editing {
		var cmd tea.Cmd
		m.edit, cmd = m.edit.Update(msg)
		return m, cmd
	}
	return m.updateFocused(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgLookupDone:
		res := msg.data.(lookupResult)
		m.loading = false
		m.ctrl.CompleteAdd(res.input, res.location, res.err)
		m.syncForm()
		m.refreshTable()
		return m, m.flushNotifications()
	case MsgNotificationExpired:
		if seq := msg.data.(int); seq == m.noticeSeq {
			m.notice = nil
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.next):
		return m, m.setFocus(m.focus.move(1))
	case key.Matches(msg, m.keys.prev):
		return m, m.setFocus(m.focus.move(-1))
	case key.Matches(msg, m.keys.back) && m.focus != focusTable:
		return m, m.setFocus(focusTable)
	}

	switch m.focus {
	case focusTable:
		return m.handleTableKeys(msg)
	case focusCity, focusState:
		return m.handleSelectorKeys(msg)
	}

	if key.Matches(msg, m.keys.enter) && m.focus.inForm() {
		return m, m.submit()
	}
	if m.focus == focusSubmit {
		return m, nil
	}
	return m.updateFocused(msg)
}

func (m *Model) handleTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.edit):
		id, ok := m.selectedID()
		if !ok {
			return m, nil
		}
		if err := m.ctrl.BeginEdit(id); err != nil {
			return m, nil
		}
		addr, _ := m.ctrl.Editing()
		m.edit.SetValue(addr.DisplayName)
		m.edit.CursorEnd()
		return m, m.edit.Focus()
	case key.Matches(msg, m.keys.remove):
		id, ok := m.selectedID()
		if !ok {
			return m, nil
		}
		m.ctrl.Delete(id)
		m.refreshTable()
		return m, m.flushNotifications()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) handleSelectorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	delta := 0
	switch {
	case key.Matches(msg, m.keys.right), key.Matches(msg, m.keys.enter):
		delta = 1
	case key.Matches(msg, m.keys.left):
		delta = -1
	default:
		return m, nil
	}

	f := m.ctrl.Filter()
	if m.focus == focusCity {
		m.ctrl.SetCity(cycleOption(m.ctrl.Cities(), f.City, delta))
	} else {
		m.ctrl.SetState(cycleOption(m.ctrl.States(), f.State, delta))
	}
	m.refreshTable()
	return m, nil
}

func (m *Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.ctrl.CancelEdit()
		m.edit.Blur()
		return m, nil
	case key.Matches(msg, m.keys.enter):
		m.ctrl.SetEditDisplayName(m.edit.Value())
		if err := m.ctrl.SaveEdit(); err == nil {
			m.edit.Blur()
		}
		m.refreshTable()
		return m, m.flushNotifications()
	}

	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	m.ctrl.SetEditDisplayName(m.edit.Value())
	return m, cmd
}

// updateFocused forwards msg to the focused text input and syncs the controller.
func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	i, ok := m.focus.input()
	if !ok {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[i], cmd = m.inputs[i].Update(msg)

	if i == inputSearch {
		if v := m.inputs[i].Value(); v != m.ctrl.Filter().Search {
			m.ctrl.SetSearch(v)
			m.refreshTable()
		}
	} else {
		m.ctrl.SetInput(formInput(m.inputs))
	}
	return m, cmd
}

// submit starts an asynchronous lookup for the current form input.
func (m *Model) submit() tea.Cmd {
	if m.loading {
		return nil
	}

	in := formInput(m.inputs)
	m.ctrl.SetInput(in)
	m.loading = true

	ctx, ctrl := m.ctx, m.ctrl
	lookup := func() tea.Msg {
		loc, err := ctrl.Resolve(ctx, in.CEP)
		return lookupDoneMsg(in, loc, err)
	}
	return tea.Batch(m.spinner.Tick, lookup)
}

func (m *Model) setFocus(f focusStop) tea.Cmd {
	m.focus = f

	var cmd tea.Cmd
	for i := range m.inputs {
		if idx, ok := f.input(); ok && idx == i {
			cmd = m.inputs[i].Focus()
			m.inputs[i].PromptStyle = styles.focused
			m.inputs[i].TextStyle = styles.focused
			continue
		}
		m.inputs[i].Blur()
		m.inputs[i].PromptStyle = styles.blurred
		m.inputs[i].TextStyle = lipgloss.NewStyle()
	}

	if f == focusTable {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
	return cmd
}

// syncForm copies the controller's input back into the form, which clears it after a successful add.
func (m *Model) syncForm() {
	in := m.ctrl.Input()
	m.inputs[inputUsername].SetValue(in.Username)
	m.inputs[inputDisplayName].SetValue(in.DisplayName)
	m.inputs[inputCEP].SetValue(in.CEP)
}

func (m *Model) refreshTable() {
	rows, ids := tableRows(m.ctrl.Filtered())
	m.rowIDs = ids
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *Model) selectedID() (string, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.rowIDs) {
		return "", false
	}
	return m.rowIDs[c], true
}

// flushNotifications shows the newest queued notification and schedules its expiry.
func (m *Model) flushNotifications() tea.Cmd {
	notes := m.queue.Drain()
	if len(notes) == 0 {
		return nil
	}

	n := notes[len(notes)-1]
	m.notice = &n
	m.noticeSeq++
	seq := m.noticeSeq

	d := n.Duration
	if d <= 0 {
		d = book.DefaultDuration
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return notificationExpiredMsg(seq) })
}

// View renders the address book, or the edit modal while an edit is open.
func (m *Model) View() string {
	if addr, editing := m.ctrl.Editing(); editing {
		return m.renderEdit(addr.CEP, addr.City, addr.State)
	}

	sections := []string{
		styles.title.Render("Address Book"),
		m.renderForm(),
		m.renderFilters(),
		m.table.View(),
		m.renderNotification(),
		m.help.ShortHelpView(m.keys.helpFor(m.focus, false)),
	}
	return strings.Join(sections, "\n\n")
}

func (m *Model) renderForm() string {
	var b strings.Builder
	labels := []string{"Username", "Display name", "CEP"}
	for i, label := range labels {
		fmt.Fprintf(&b, "%s %s\n", styles.label.Render(label), m.inputs[i].View())
	}

	if m.loading {
		fmt.Fprintf(&b, "%s %s Looking up %s...", styles.label.Render(""), m.spinner.View(), formInput(m.inputs).CEP)
	} else {
		fmt.Fprintf(&b, "%s %s", styles.label.Render(""), styles.button("Add", m.focus == focusSubmit))
	}
	return b.String()
}

func (m *Model) renderFilters() string {
	f := m.ctrl.Filter()
	selector := func(value string, focused bool) string {
		label := fmt.Sprintf("‹ %s ›", optionLabel(value))
		if focused {
			return styles.focused.Render(label)
		}
		return styles.blurred.Render(label)
	}

	search := fmt.Sprintf("%s %s", styles.label.Render("Search"), m.inputs[inputSearch].View())
	selectors := fmt.Sprintf("%s %s   %s %s",
		styles.label.Render("City"), selector(f.City, m.focus == focusCity),
		styles.label.UnsetWidth().Render("State"), selector(f.State, m.focus == focusState),
	)
	count := styles.help.Render(fmt.Sprintf("%d of %d addresses", len(m.rowIDs), len(m.ctrl.Addresses())))
	return lipgloss.JoinVertical(lipgloss.Left, search, selectors, count)
}

func (m *Model) renderNotification() string {
	if m.notice == nil {
		return ""
	}
	return styles.notification(*m.notice)
}

func (m *Model) renderEdit(cep, city, state string) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.title.Render("Edit display name"),
		styles.help.Render(fmt.Sprintf("%s • %s/%s", cep, city, state)),
		"",
		m.edit.View(),
		"",
		m.help.ShortHelpView(m.keys.helpFor(m.focus, true)),
	)
	box := styles.modal.Render(content)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
