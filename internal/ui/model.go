// Package ui implements the interactive terminal browser for the
// animation library: a filterable catalog list with a rendered detail
// preview for the selected animation.
package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mizuki/animlib/internal/clipboard"
	"github.com/mizuki/animlib/internal/models"
	"github.com/mizuki/animlib/internal/renderer"
	"github.com/mizuki/animlib/internal/service"
)

// newGlamourRenderer picks a glamour style matching the terminal
// background, honoring the same override the lipgloss styles use.
func newGlamourRenderer(wordWrap int) (*glamour.TermRenderer, error) {
	if theme := os.Getenv("ANIMLIB_THEME"); theme == "light" || theme == "dark" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(theme),
			glamour.WithWordWrap(wordWrap),
		)
	}

	profile := termenv.ColorProfile()
	var styleOption glamour.TermRendererOption
	if profile == termenv.TrueColor || profile == termenv.ANSI256 {
		if lipgloss.HasDarkBackground() {
			styleOption = glamour.WithStandardStyle("dark")
		} else {
			styleOption = glamour.WithStandardStyle("light")
		}
	} else {
		styleOption = glamour.WithAutoStyle()
	}

	return glamour.NewTermRenderer(
		styleOption,
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(wordWrap),
	)
}

// ViewMode represents the current view in the TUI
type ViewMode int

const (
	ViewLibrary ViewMode = iota
	ViewDetail
)

// KeyMap defines the key bindings for the TUI
type KeyMap struct {
	Open    key.Binding
	Back    key.Binding
	Refresh key.Binding
	Delete  key.Binding
	Copy    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() KeyMap {
	return KeyMap{
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy json")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp satisfies help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Refresh, k.Delete, k.Copy, k.Quit}
}

// FullHelp satisfies help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Open, k.Back}, {k.Refresh, k.Delete, k.Copy, k.Quit}}
}

// Model represents the TUI application state
type Model struct {
	service  *service.Service
	viewMode ViewMode

	list     list.Model
	viewport viewport.Model
	help     help.Model
	keys     KeyMap

	selected models.CatalogEntry
	status   string
	statusIsError bool

	width  int
	height int
}

// NewModel creates the TUI model over an initialized service.
func NewModel(svc *service.Service) Model {
	initializeStyles()

	delegate := list.NewDefaultDelegate()
	l := list.New(catalogItems(svc.List()), delegate, 0, 0)
	l.Title = "Animation Library"
	l.Styles.Title = titleStyle
	l.SetShowHelp(false)

	return Model{
		service: svc,
		list:    l,
		help:    help.New(),
		keys:    defaultKeyMap(),
	}
}

// catalogItem adapts a CatalogEntry to the bubbles list.Item interface.
type catalogItem struct {
	models.CatalogEntry
}

func (i catalogItem) FilterValue() string { return i.Name + " " + i.FileName }
func (i catalogItem) Title() string       { return i.Name }
func (i catalogItem) Description() string { return i.Summary() }

func catalogItems(entries []models.CatalogEntry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, entry := range entries {
		items[i] = catalogItem{entry}
	}
	return items
}

// Init satisfies tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update satisfies tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		m.viewport = viewport.New(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		// Never intercept keys while the list filter input is active.
		if m.viewMode == ViewLibrary && m.list.FilterState() == list.Filtering {
			break
		}
		switch m.viewMode {
		case ViewLibrary:
			return m.updateLibrary(msg)
		case ViewDetail:
			return m.updateDetail(msg)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateLibrary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	m.statusIsError = false

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		m.service.Refresh()
		m.list.SetItems(catalogItems(m.service.List()))
		m.status = fmt.Sprintf("Refreshed: %d animations", len(m.service.List()))
		return m, nil

	case key.Matches(msg, m.keys.Open):
		entry, ok := m.list.SelectedItem().(catalogItem)
		if !ok {
			return m, nil
		}
		doc, err := m.service.Load(entry.FileName)
		if err != nil {
			m.status = err.Error()
			m.statusIsError = true
			return m, nil
		}
		m.selected = entry.CatalogEntry
		m.viewport.SetContent(m.renderDetail(entry.FileName, doc))
		m.viewport.GotoTop()
		m.viewMode = ViewDetail
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		entry, ok := m.list.SelectedItem().(catalogItem)
		if !ok {
			return m, nil
		}
		if err := m.service.Delete(entry.FileName); err != nil {
			m.status = err.Error()
			m.statusIsError = true
			return m, nil
		}
		m.list.SetItems(catalogItems(m.service.List()))
		m.status = fmt.Sprintf("Deleted %s", entry.FileName)
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		entry, ok := m.list.SelectedItem().(catalogItem)
		if !ok {
			return m, nil
		}
		m.status, m.statusIsError = m.copyToClipboard(entry.FileName)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.viewMode = ViewLibrary
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		m.status, m.statusIsError = m.copyToClipboard(m.selected.FileName)
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) copyToClipboard(fileName string) (string, bool) {
	doc, err := m.service.Load(fileName)
	if err != nil {
		return err.Error(), true
	}
	text, renderErr := renderer.JSON(doc)
	if renderErr != nil {
		return renderErr.Error(), true
	}
	if err := clipboard.Copy(text); err != nil {
		return err.Error(), true
	}
	return fmt.Sprintf("Copied %s to clipboard", fileName), false
}

// renderDetail produces the glamour-rendered markdown preview, falling
// back to the raw markdown when rendering fails.
func (m Model) renderDetail(fileName string, doc *models.Document) string {
	markdown := renderer.Markdown(fileName, doc)

	wrap := m.width - 8
	if wrap < 40 {
		wrap = 40
	}
	r, err := newGlamourRenderer(wrap)
	if err != nil {
		return markdown
	}
	rendered, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}

// View satisfies tea.Model
func (m Model) View() string {
	var body string
	switch m.viewMode {
	case ViewDetail:
		body = detailStyle.Render(m.viewport.View())
	default:
		body = m.list.View()
	}

	statusLine := ""
	if m.status != "" {
		if m.statusIsError {
			statusLine = errorStyle.Render(m.status)
		} else {
			statusLine = statusStyle.Render(m.status)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		statusLine,
		helpStyle.Render(m.help.View(m.keys)),
	)
}
