package ui

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/agenda/internal/book"
	"github.com/desertthunder/agenda/internal/models"
	tu "github.com/desertthunder/agenda/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	se   = models.Location{CEP: "01001-000", Street: "Praça da Sé", Neighborhood: "Sé", City: "São Paulo", State: "SP"}
	copa = models.Location{CEP: "22070-002", Street: "Avenida Atlântica", Neighborhood: "Copacabana", City: "Rio de Janeiro", State: "RJ"}
)

type harness struct {
	m     *Model
	store *tu.MemoryStore
	ctrl  *book.Controller
}

func newHarness(t *testing.T, saved ...models.Address) *harness {
	t.Helper()

	store := tu.NewMemoryStore(saved...)
	queue := &book.Queue{}
	ctrl := book.NewController(book.ControllerOpts{
		Lookup:   tu.NewStubLookup(map[string]models.Location{"01001000": se, "22070002": copa}),
		Store:    store,
		Notifier: queue,
		Logger:   log.New(io.Discard),
	})
	return &harness{m: NewModel(context.Background(), ctrl, queue), store: store, ctrl: ctrl}
}

func (h *harness) send(msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = h.m.Update(msg)
	}
	return cmd
}

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// messages runs cmd and any batched commands, returning the messages they produce.
func messages(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, messages(c)...)
	}
	return out
}

func lookupMsg(t *testing.T, cmd tea.Cmd) Msg {
	t.Helper()
	for _, msg := range messages(cmd) {
		if m, ok := msg.(Msg); ok && m.kind == MsgLookupDone {
			return m
		}
	}
	t.Fatal("no lookup message produced")
	return Msg{}
}

var (
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	right = tea.KeyMsg{Type: tea.KeyRight}
	left  = tea.KeyMsg{Type: tea.KeyLeft}
)

func TestModel(t *testing.T) {
	t.Run("typing fills the controller input", func(t *testing.T) {
		h := newHarness(t)

		h.typeText("maria")
		h.send(tab)
		h.typeText("Casa")
		h.send(tab)
		h.typeText("01001000")

		assert.Equal(t, book.Input{Username: "maria", DisplayName: "Casa", CEP: "01001000"}, h.ctrl.Input())
	})

	t.Run("CEP input takes padded values whole", func(t *testing.T) {
		h := newHarness(t)
		h.send(tab, tab)

		h.typeText("  01001-000  ")

		assert.Equal(t, "  01001-000  ", h.ctrl.Input().CEP)
	})

	t.Run("q is text while an input is focused", func(t *testing.T) {
		h := newHarness(t)

		h.typeText("q")

		assert.Equal(t, "q", h.ctrl.Input().Username)
	})

	t.Run("submit adds the address asynchronously", func(t *testing.T) {
		h := newHarness(t)
		h.typeText("maria")
		h.send(tab)
		h.typeText("Casa")
		h.send(tab)
		h.typeText("01001000")

		cmd := h.send(enter)
		require.True(t, h.m.loading)
		assert.Zero(t, h.store.Writes)

		h.send(lookupMsg(t, cmd))

		assert.False(t, h.m.loading)
		require.Len(t, h.ctrl.Addresses(), 1)
		assert.Equal(t, "São Paulo", h.ctrl.Addresses()[0].City)
		assert.Len(t, h.m.rowIDs, 1)
		assert.True(t, h.ctrl.Input().Empty())
		assert.Empty(t, h.m.inputs[inputCEP].Value())
		require.NotNil(t, h.m.notice)
		assert.Equal(t, book.StatusSuccess, h.m.notice.Status)
	})

	t.Run("second submit is ignored while loading", func(t *testing.T) {
		h := newHarness(t)
		h.m.setFocus(focusCEP)
		h.typeText("01001000")

		require.NotNil(t, h.send(enter))
		assert.Nil(t, h.send(enter))
	})

	t.Run("unknown CEP keeps the form", func(t *testing.T) {
		h := newHarness(t)
		h.m.setFocus(focusCEP)
		h.typeText("99999999")

		h.send(lookupMsg(t, h.send(enter)))

		assert.Empty(t, h.ctrl.Addresses())
		assert.Equal(t, "99999999", h.m.inputs[inputCEP].Value())
		require.NotNil(t, h.m.notice)
		assert.Equal(t, book.StatusError, h.m.notice.Status)
	})

	t.Run("notification expires", func(t *testing.T) {
		h := newHarness(t)
		h.m.setFocus(focusCEP)
		h.typeText("99999999")
		h.send(lookupMsg(t, h.send(enter)))
		require.NotNil(t, h.m.notice)

		h.send(notificationExpiredMsg(h.m.noticeSeq - 1))
		assert.NotNil(t, h.m.notice)

		h.send(notificationExpiredMsg(h.m.noticeSeq))
		assert.Nil(t, h.m.notice)
	})

	t.Run("delete removes the selected row", func(t *testing.T) {
		h := newHarness(t,
			models.NewAddress("a", "maria", "Casa", se),
			models.NewAddress("b", "maria", "Praia", copa),
		)
		h.send(esc)
		require.Equal(t, focusTable, h.m.focus)

		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})

		list, err := h.store.List()
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "b", list[0].ID)
		assert.Equal(t, []string{"b"}, h.m.rowIDs)
	})

	t.Run("edit saves the display name", func(t *testing.T) {
		h := newHarness(t, models.NewAddress("a", "maria", "Casa", se))
		h.send(esc)

		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
		_, editing := h.ctrl.Editing()
		require.True(t, editing)
		assert.Contains(t, h.m.View(), "Edit display name")

		h.typeText(" da Vó")
		h.send(enter)

		_, editing = h.ctrl.Editing()
		assert.False(t, editing)
		addr, ok := h.ctrl.Find("a")
		require.True(t, ok)
		assert.Equal(t, "Casa da Vó", addr.DisplayName)
	})

	t.Run("edit keeps long display names", func(t *testing.T) {
		long := strings.Repeat("Apartamento da família ", 4)
		h := newHarness(t, models.NewAddress("a", "maria", long, se))
		h.send(esc)

		h.send(enter)
		_, editing := h.ctrl.Editing()
		require.True(t, editing)
		assert.Equal(t, long, h.m.edit.Value())

		h.send(enter)

		_, editing = h.ctrl.Editing()
		assert.False(t, editing)
		addr, ok := h.ctrl.Find("a")
		require.True(t, ok)
		assert.Equal(t, long, addr.DisplayName)
	})

	t.Run("edit cancel persists nothing", func(t *testing.T) {
		h := newHarness(t, models.NewAddress("a", "maria", "Casa", se))
		h.send(esc)
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})

		h.typeText("!!!")
		h.send(esc)

		_, editing := h.ctrl.Editing()
		assert.False(t, editing)
		addr, _ := h.ctrl.Find("a")
		assert.Equal(t, "Casa", addr.DisplayName)
		assert.Zero(t, h.store.Writes)
	})

	t.Run("selectors cycle through options", func(t *testing.T) {
		h := newHarness(t,
			models.NewAddress("a", "maria", "Casa", se),
			models.NewAddress("b", "maria", "Praia", copa),
		)
		h.m.setFocus(focusCity)

		h.send(right)
		assert.Equal(t, "Rio de Janeiro", h.ctrl.Filter().City)
		assert.Equal(t, []string{"b"}, h.m.rowIDs)

		h.send(right)
		assert.Equal(t, "São Paulo", h.ctrl.Filter().City)

		h.send(right)
		assert.Empty(t, h.ctrl.Filter().City)
		assert.Len(t, h.m.rowIDs, 2)

		h.send(left)
		assert.Equal(t, "São Paulo", h.ctrl.Filter().City)

		h.m.setFocus(focusState)
		h.send(right)
		assert.Equal(t, "RJ", h.ctrl.Filter().State)
		assert.Empty(t, h.m.rowIDs)
	})

	t.Run("search filters the table", func(t *testing.T) {
		h := newHarness(t,
			models.NewAddress("a", "maria", "Casa", se),
			models.NewAddress("b", "maria", "Praia", copa),
		)
		h.m.setFocus(focusSearch)

		h.typeText("PRA")

		assert.Equal(t, "PRA", h.ctrl.Filter().Search)
		assert.Equal(t, []string{"b"}, h.m.rowIDs)
	})

	t.Run("View", func(t *testing.T) {
		h := newHarness(t, models.NewAddress("a", "maria", "Casa", se))

		view := h.m.View()

		assert.Contains(t, view, "Address Book")
		assert.Contains(t, view, "Praça da Sé")
		assert.Contains(t, view, "1 of 1 addresses")
	})
}

func TestHelpers(t *testing.T) {
	t.Run("cycleOption", func(t *testing.T) {
		opts := []string{"RJ", "SP"}

		assert.Equal(t, "RJ", cycleOption(opts, "", 1))
		assert.Equal(t, "SP", cycleOption(opts, "", -1))
		assert.Equal(t, "", cycleOption(opts, "SP", 1))
		assert.Equal(t, "RJ", cycleOption(opts, "MG", 1))
		assert.Equal(t, "", cycleOption(nil, "", 1))
	})

	t.Run("focusStop.move wraps", func(t *testing.T) {
		assert.Equal(t, focusTable, focusUsername.move(-1))
		assert.Equal(t, focusUsername, focusTable.move(1))
		assert.Equal(t, focusSearch, focusSubmit.move(1))
	})

	t.Run("tableRows", func(t *testing.T) {
		rows, ids := tableRows([]models.Address{models.NewAddress("a", "maria", "Casa", se)})

		require.Len(t, rows, 1)
		assert.Equal(t, []string{"a"}, ids)
		assert.Equal(t, "Casa", rows[0][1])
		assert.Equal(t, "SP", rows[0][6])
	})
}
