// Package tui implements the interactive dashboard explorer.
package tui

import (
	"github.com/Veraticus/superstore-dash/internal/model"
	"github.com/Veraticus/superstore-dash/internal/pipeline"
	"github.com/Veraticus/superstore-dash/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const sidebarWidth = 30

// filterItem is one row of the filter sidebar.
type filterItem struct {
	dimension model.Dimension
	value     string
}

// Model holds the explorer state.
type Model struct {
	theme      themes.Theme
	help       help.Model
	dash       model.DashboardView
	sel        model.FilterSelection
	options    model.FilterOptions
	source     string
	records    []model.Record
	items      []filterItem
	keymap     KeyMap
	viewport   viewport.Model
	rowLimit   int
	generation int
	cursor     int
	viewIndex  int
	width      int
	height     int
	computing  bool
	quitting   bool
}

// newModel creates a model with the dashboard for the initial selection
// already computed.
func newModel(cfg Config) Model {
	options := model.OptionsFor(cfg.Records)
	sel := options.SelectAll()
	if cfg.Selection != nil {
		sel = *cfg.Selection
	}

	var items []filterItem
	for _, d := range model.Dimensions {
		for _, v := range options.Values(d) {
			items = append(items, filterItem{dimension: d, value: v})
		}
	}

	m := Model{
		theme:    cfg.Theme,
		help:     help.New(),
		keymap:   DefaultKeyMap(),
		records:  cfg.Records,
		source:   cfg.Source,
		options:  options,
		items:    items,
		sel:      sel,
		dash:     pipeline.Aggregate(cfg.Records, sel),
		rowLimit: cfg.RowLimit,
		viewport: viewport.New(0, 0),
	}
	m.resize(cfg.Width, cfg.Height)
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case dashboardMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		m.dash = msg.dash
		m.computing = false
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keymap.Toggle):
		if item, ok := m.current(); ok {
			m.sel = m.sel.Toggle(item.dimension, item.value)
			return m, m.recompute()
		}

	case key.Matches(msg, m.keymap.All):
		if item, ok := m.current(); ok {
			m.sel = m.sel.With(item.dimension, model.NewValueSet(m.options.Values(item.dimension)...))
			return m, m.recompute()
		}

	case key.Matches(msg, m.keymap.None):
		if item, ok := m.current(); ok {
			m.sel = m.sel.With(item.dimension, model.ValueSet{})
			return m, m.recompute()
		}

	case key.Matches(msg, m.keymap.NextView):
		m.viewIndex = (m.viewIndex + 1) % len(model.ViewCatalog)
		m.refresh()
		m.viewport.GotoTop()

	case key.Matches(msg, m.keymap.PrevView):
		m.viewIndex = (m.viewIndex + len(model.ViewCatalog) - 1) % len(model.ViewCatalog)
		m.refresh()
		m.viewport.GotoTop()

	case key.Matches(msg, m.keymap.PageDown):
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)

	case key.Matches(msg, m.keymap.PageUp):
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize(m.width, m.height)
	}

	return m, nil
}

func (m Model) current() (filterItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return filterItem{}, false
	}
	return m.items[m.cursor], true
}

// recompute schedules an aggregation for the current selection.
func (m *Model) recompute() tea.Cmd {
	m.generation++
	m.computing = true
	return aggregate(m.records, m.sel, m.generation)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	helpLines := 1
	if m.help.ShowAll {
		helpLines = 5
	}
	m.viewport.Width = max(width-sidebarWidth-4, 20)
	m.viewport.Height = max(height-helpLines-5, 5)
	m.refresh()
}

// refresh redraws the viewport content for the current view.
func (m *Model) refresh() {
	m.viewport.SetContent(m.content())
}

// Selection returns the active filter selection.
func (m Model) Selection() model.FilterSelection {
	return m.sel
}

// Dashboard returns the dashboard currently displayed.
func (m Model) Dashboard() model.DashboardView {
	return m.dash
}

// Computing reports whether an aggregation for the selection is in flight.
func (m Model) Computing() bool {
	return m.computing
}

// Result returns the dashboard for the current selection, aggregating it
// directly when the explorer quit before an in-flight result arrived.
func (m Model) Result() model.DashboardView {
	if m.computing {
		return pipeline.Aggregate(m.records, m.sel)
	}
	return m.dash
}

// CurrentView returns the descriptor of the displayed view.
func (m Model) CurrentView() model.ViewDescriptor {
	return model.ViewCatalog[m.viewIndex]
}
