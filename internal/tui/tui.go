package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/shoplist/internal/controller"
	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/ui"
)

// Controller is the part of *controller.Controller the screen drives.
type Controller interface {
	Refresh() *controller.Pending
	Add(name string) *controller.Pending
	ToggleBought(id int64) *controller.Pending
	Delete(item model.ShoppingItem) *controller.Pending
	Edit(item model.ShoppingItem, newName string) *controller.Pending
	Subscribe() (<-chan []model.ShoppingItem, func())
}

// listItem adapts model.ShoppingItem to bubbles/list.Item
type listItem struct {
	model.ShoppingItem
}

func (i listItem) Title() string       { return i.Name }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Name }

// itemsMsg carries a fresh snapshot from the controller.
type itemsMsg []model.ShoppingItem

// opDoneMsg reports the outcome of an intent once the store call finished.
type opDoneMsg struct {
	op  string
	err error
}

type mode int

const (
	browsing mode = iota
	adding
	editing
)

// Model is the single shopping-list screen.
type Model struct {
	ctl     Controller
	updates <-chan []model.ShoppingItem
	cancel  func()

	list  list.Model
	items []model.ShoppingItem

	// Inline add/edit; never persisted, reset on submit or cancel.
	mode     mode
	ti       textinput.Model
	editItem model.ShoppingItem
	inputErr string

	status string // last failed operation

	width, height int
}

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()

	box := t.Muted.Render(t.BoxUnchecked)
	text := it.Name
	if it.IsBought {
		box = t.Success.Render(t.BoxChecked)
		text = t.Done.Render(it.Name)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+box+" "+text)
}

var (
	addBind     = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind    = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	toggleBind  = key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "bought"))
	deleteBind  = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	refreshBind = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh"))
)

// New builds the screen and subscribes it to ctl.
func New(ctl Controller) Model {
	t := ui.Current()

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.HelpStyle = t.Help
	l.Styles.PaginationStyle = t.Help
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{toggleBind, addBind, editBind, deleteBind}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{toggleBind, addBind, editBind, deleteBind, refreshBind}
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	updates, cancel := ctl.Subscribe()
	m := Model{
		ctl:     ctl,
		updates: updates,
		cancel:  cancel,
		list:    l,
		ti:      ti,
	}
	m.resize(80, 24)
	return m
}

// Run starts the Bubble Tea program on the alternate screen and blocks
// until the user quits.
func Run(ctl Controller, opts ...tea.ProgramOption) error {
	m := New(ctl)
	defer m.cancel()

	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func waitForItems(ch <-chan []model.ShoppingItem) tea.Cmd {
	return func() tea.Msg {
		items, ok := <-ch
		if !ok {
			return nil
		}
		return itemsMsg(items)
	}
}

func await(op string, p *controller.Pending) tea.Cmd {
	return func() tea.Msg {
		<-p.Done()
		return opDoneMsg{op: op, err: p.Err()}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return waitForItems(m.updates) }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case itemsMsg:
		m.items = msg
		li := make([]list.Item, len(msg))
		for i, it := range msg {
			li[i] = listItem{it}
		}
		cmd := m.list.SetItems(li)
		return m, tea.Batch(cmd, waitForItems(m.updates))

	case opDoneMsg:
		m.status = ""
		if msg.err != nil {
			m.status = msg.op + ": " + msg.err.Error()
		}
		m.resize(m.width, m.height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.mode != browsing {
			return m.updateInput(msg)
		}
		// While the filter prompt is open every key belongs to it.
		if m.list.FilterState() != list.Filtering {
			if next, cmd, handled := m.handleKey(msg); handled {
				return next, cmd
			}
		}
	}

	if m.mode != browsing {
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case " ", "enter":
		it, ok := m.selected()
		if !ok {
			return m, nil, true
		}
		return m, await("toggle", m.ctl.ToggleBought(it.ID)), true
	case "d":
		it, ok := m.selected()
		if !ok {
			return m, nil, true
		}
		return m, await("delete", m.ctl.Delete(it)), true
	case "r":
		return m, await("refresh", m.ctl.Refresh()), true
	case "a":
		m.mode = adding
		m.ti.SetValue("")
		m.ti.Placeholder = "New item name..."
		m.inputErr = ""
		m.resize(m.width, m.height)
		cmd := m.ti.Focus()
		return m, cmd, true
	case "e":
		it, ok := m.selected()
		if !ok {
			return m, nil, true
		}
		m.mode = editing
		m.editItem = it
		m.ti.SetValue(it.Name)
		m.ti.CursorEnd()
		m.ti.Placeholder = "Edit item name..."
		m.inputErr = ""
		m.resize(m.width, m.height)
		cmd := m.ti.Focus()
		return m, cmd, true
	}
	return m, nil, false
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := m.ti.Value()
		if model.IsBlank(value) {
			m.inputErr = "Name cannot be empty"
			return m, nil
		}
		var cmd tea.Cmd
		if m.mode == adding {
			cmd = await("add", m.ctl.Add(value))
		} else {
			cmd = await("edit", m.ctl.Edit(m.editItem, value))
		}
		m.closeInput()
		return m, cmd
	case "esc":
		m.closeInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = browsing
	m.editItem = model.ShoppingItem{}
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize(m.width, m.height)
}

func (m Model) selected() (model.ShoppingItem, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it.ShoppingItem, ok
}

// resize fits the list into the space left by the header, input box and
// status line.
func (m *Model) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	m.width, m.height = w, h
	listHeight := h - 2 /* frame */ - 3 /* header */
	if m.mode != browsing {
		listHeight -= 4
	}
	if m.status != "" {
		listHeight--
	}
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(w-4, listHeight)
}

func (m Model) header() string {
	t := ui.Current()
	bought, total := model.Stats(m.items)
	title := fmt.Sprintf("%s   %s", t.Title.Render("Shopping list"), ui.Counts(bought, total))
	bar := t.Muted.Render(fmt.Sprintf("Bought %d of %d  %s", bought, total, ui.ProgressBar(bought, total, 20)))
	return title + "\n" + bar + "\n"
}

// View implements tea.Model.
func (m Model) View() string {
	t := ui.Current()
	var b strings.Builder

	b.WriteString(m.header())
	if len(m.items) == 0 {
		b.WriteString(t.Muted.Render("Nothing on the list yet. Press a to add an item."))
		b.WriteString("\n")
	}
	b.WriteString(m.list.View())

	if m.mode != browsing {
		title := "Add item"
		if m.mode == editing {
			title = "Edit item"
		}
		if m.inputErr != "" {
			title += "  " + t.Error.Render(m.inputErr)
		}
		box := lipgloss.NewStyle().
			Border(t.Border).
			BorderForeground(t.BorderColor).
			Padding(0, 1)
		b.WriteString("\n")
		b.WriteString(box.Render(title + "\n" + m.ti.View()))
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(t.Error.Render(t.SymFail + " " + m.status))
	}
	return ui.Panel([]string{b.String()})
}
