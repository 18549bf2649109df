package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/shoplist/internal/controller"
	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/store"
	"github.com/idilsaglam/shoplist/internal/ui"
)

func keys(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace}
)

// seeded returns a controller over a store holding names (last is newest).
func seeded(t *testing.T, names ...string) *controller.Controller {
	t.Helper()
	s := store.NewMemoryStore()
	for _, n := range names {
		_, err := s.Insert(context.Background(), model.NewItem(n))
		require.NoError(t, err)
	}
	c := controller.New(s, nil)
	t.Cleanup(func() { _ = c.Close() })
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.Refresh().Wait(ctx))
	return c
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

// settle runs the op command, then loads the newest snapshot.
func settle(t *testing.T, m Model, cmd tea.Cmd, c *controller.Controller) Model {
	t.Helper()
	require.NotNil(t, cmd)
	done, ok := cmd().(opDoneMsg)
	require.True(t, ok, "expected an operation result")
	m, _ = send(t, m, done)
	m, _ = send(t, m, itemsMsg(c.Items()))
	return m
}

func started(t *testing.T, c *controller.Controller) Model {
	t.Helper()
	m := New(c)
	t.Cleanup(m.cancel)
	msg := m.Init()()
	m, _ = send(t, m, msg)
	return m
}

func TestInitialRenderShowsItemsAndCounts(t *testing.T) {
	ui.SetTheme("mono", false)
	t.Cleanup(func() { ui.SetTheme("classic", false) })

	c := seeded(t, "Bread", "Eggs")
	m := started(t, c)

	require.Len(t, m.items, 2)
	assert.Equal(t, "Eggs", m.items[0].Name)

	view := m.View()
	assert.Contains(t, view, "Bought 0 of 2")
	assert.Contains(t, view, "[ ] Eggs")
	assert.Contains(t, view, "[ ] Bread")
}

func TestAddFlow(t *testing.T) {
	c := seeded(t)
	m := started(t, c)

	m, _ = send(t, m, keys("a"))
	assert.Equal(t, adding, m.mode)

	m, _ = send(t, m, keys("Milk"))
	m, cmd := send(t, m, enter)
	assert.Equal(t, browsing, m.mode)
	assert.Empty(t, m.ti.Value(), "input resets after submit")

	m = settle(t, m, cmd, c)
	require.Len(t, m.items, 1)
	assert.Equal(t, "Milk", m.items[0].Name)
	assert.False(t, m.items[0].IsBought)
	assert.Empty(t, m.status)
}

func TestBlankInputIsRejectedLocally(t *testing.T) {
	c := seeded(t, "Tea")
	m := started(t, c)

	m, _ = send(t, m, keys("a"))
	m, _ = send(t, m, keys("   "))
	m, cmd := send(t, m, enter)
	assert.Nil(t, cmd)
	assert.Equal(t, adding, m.mode)
	assert.Equal(t, "Name cannot be empty", m.inputErr)

	m, _ = send(t, m, esc)
	assert.Equal(t, browsing, m.mode)
	assert.Empty(t, m.inputErr)
	assert.Len(t, c.Items(), 1)
}

func TestToggleSelected(t *testing.T) {
	ui.SetTheme("mono", false)
	t.Cleanup(func() { ui.SetTheme("classic", false) })

	c := seeded(t, "Bread", "Eggs")
	m := started(t, c)

	m, cmd := send(t, m, space)
	m = settle(t, m, cmd, c)

	assert.True(t, m.items[0].IsBought)
	assert.False(t, m.items[1].IsBought)
	assert.Contains(t, m.View(), "Bought 1 of 2")
	assert.Contains(t, m.View(), "[x] Eggs")
}

func TestEditFlowPrefillsName(t *testing.T) {
	c := seeded(t, "Flour")
	m := started(t, c)

	m, _ = send(t, m, keys("e"))
	require.Equal(t, editing, m.mode)
	assert.Equal(t, "Flour", m.ti.Value())

	m, _ = send(t, m, keys(" (rye)"))
	m, cmd := send(t, m, enter)
	m = settle(t, m, cmd, c)

	assert.Equal(t, "Flour (rye)", m.items[0].Name)
}

func TestEscCancelsEditWithoutWriting(t *testing.T) {
	c := seeded(t, "Oil")
	m := started(t, c)

	m, _ = send(t, m, keys("e"))
	m, _ = send(t, m, keys("XYZ"))
	m, cmd := send(t, m, esc)
	assert.Nil(t, cmd)
	assert.Equal(t, browsing, m.mode)
	assert.Equal(t, "Oil", c.Items()[0].Name)
}

func TestDeleteSelected(t *testing.T) {
	c := seeded(t, "Bread", "Eggs")
	m := started(t, c)

	m, cmd := send(t, m, keys("d"))
	m = settle(t, m, cmd, c)

	require.Len(t, m.items, 1)
	assert.Equal(t, "Bread", m.items[0].Name)
}

func TestIntentsOnEmptyListAreIgnored(t *testing.T) {
	c := seeded(t)
	m := started(t, c)

	for _, k := range []tea.KeyMsg{space, keys("d"), keys("e")} {
		var cmd tea.Cmd
		m, cmd = send(t, m, k)
		assert.Nil(t, cmd)
		assert.Equal(t, browsing, m.mode)
	}
}

func TestFailedOperationShowsStatus(t *testing.T) {
	ui.SetTheme("mono", false)
	t.Cleanup(func() { ui.SetTheme("classic", false) })

	c := seeded(t)
	m := started(t, c)

	m, _ = send(t, m, opDoneMsg{op: "add", err: errors.New("disk full")})
	assert.Contains(t, m.View(), "add: disk full")

	m, _ = send(t, m, opDoneMsg{op: "refresh"})
	assert.Empty(t, m.status)
}

func TestQuitKeys(t *testing.T) {
	c := seeded(t)
	m := started(t, c)

	_, cmd := send(t, m, keys("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWindowSizeResizesList(t *testing.T) {
	c := seeded(t)
	m := started(t, c)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 116, m.list.Width())
	assert.Equal(t, 35, m.list.Height())
}
