package tui

import (
	"testing"

	"github.com/Veraticus/superstore-dash/internal/model"
	"github.com/Veraticus/superstore-dash/internal/testutil"
	"github.com/Veraticus/superstore-dash/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, opts ...Option) Model {
	t.Helper()
	return newModel(NewConfig("test.csv", testutil.MixedRecords(t), opts...))
}

// press sends a key and applies the resulting dashboard, if any.
func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m
	}
	if out, ok := cmd().(dashboardMsg); ok {
		next, _ = m.Update(out)
		m = next.(Model)
	}
	return m
}

func TestNewModel_StartsWithEverything(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, 6, m.Dashboard().FilteredRecords)
	assert.InDelta(t, 895.0, m.Dashboard().Summary.TotalSales, 1e-9)
	assert.Len(t, m.items, 10)
	assert.Equal(t, model.ViewMonthlySales, m.CurrentView().Name)
}

func TestNewModel_InitialSelection(t *testing.T) {
	sel := model.NewFilterSelection([]string{"Corporate"}, []string{"Furniture", "Technology"}, []string{"Central"})
	m := newTestModel(t, WithSelection(sel))

	assert.Equal(t, 2, m.Dashboard().FilteredRecords)
	assert.InDelta(t, 480.0, m.Dashboard().Summary.TotalSales, 1e-9)
}

func TestModel_ToggleRecomputes(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	assert.False(t, m.Selection().Segments.Has("Consumer"))
	assert.Equal(t, 3, m.Dashboard().FilteredRecords)
	assert.InDelta(t, 730.0, m.Dashboard().Summary.TotalSales, 1e-9)
	assert.False(t, m.computing)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.Selection().Segments.Has("Consumer"))
	assert.Equal(t, 6, m.Dashboard().FilteredRecords)
}

func TestModel_StaleResultsAreDropped(t *testing.T) {
	m := newTestModel(t)

	next, first := m.Update(runes("x"))
	m = next.(Model)
	next, second := m.Update(runes("x"))
	m = next.(Model)
	require.NotNil(t, first)
	require.NotNil(t, second)

	next, _ = m.Update(first())
	m = next.(Model)
	assert.True(t, m.computing, "older generation is ignored")
	assert.Equal(t, 6, m.Dashboard().FilteredRecords)

	next, _ = m.Update(second())
	m = next.(Model)
	assert.False(t, m.computing)
	assert.Equal(t, 6, m.Dashboard().FilteredRecords)
}

func TestModel_AllAndNoneApplyToCursorDimension(t *testing.T) {
	m := newTestModel(t)

	// Move onto the category block.
	for i := 0; i < 3; i++ {
		m = press(t, m, runes("j"))
	}
	require.Equal(t, model.DimensionCategory, m.items[m.cursor].dimension)

	m = press(t, m, runes("n"))
	assert.Empty(t, m.Selection().Categories)
	assert.Len(t, m.Selection().Segments, 3, "other dimensions are untouched")
	assert.True(t, m.Dashboard().IsEmpty())
	assert.Contains(t, m.View(), "No records match the current filters.")

	m = press(t, m, runes("a"))
	assert.Len(t, m.Selection().Categories, 3)
	assert.Equal(t, 6, m.Dashboard().FilteredRecords)
}

func TestModel_CursorStaysInBounds(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runes("k"))
	assert.Equal(t, 0, m.cursor)

	for i := 0; i < 20; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, len(m.items)-1, m.cursor)
	assert.Equal(t, model.DimensionRegion, m.items[m.cursor].dimension)
}

func TestModel_ViewCycling(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, model.ViewSegmentSales, m.CurrentView().Name)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, model.ViewMonthlySales, m.CurrentView().Name)

	m = press(t, m, runes("l"))
	assert.Equal(t, model.ViewCategoryPerformance, m.CurrentView().Name)
	assert.Contains(t, m.content(), "Technology")
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.(Model).View())
}

func TestModel_WindowResize(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	m = next.(Model)

	assert.Equal(t, 160-sidebarWidth-4, m.viewport.Width)
	assert.Equal(t, 160, m.width)
}

func TestModel_ViewRendersSidebar(t *testing.T) {
	m := newTestModel(t, WithTheme(themes.CatppuccinMocha))

	out := m.View()
	assert.Contains(t, out, "Global Superstore")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "SEGMENT (3/3)")
	assert.Contains(t, out, "Home Office")
}

func TestThemesByName(t *testing.T) {
	assert.Equal(t, themes.CatppuccinMocha.Primary, themes.ByName("catppuccin").Primary)
	assert.Equal(t, themes.Default.Primary, themes.ByName("solarized").Primary)
}

func TestModel_ResultAfterQuitMidCompute(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = next.(Model)
	require.NotNil(t, cmd)
	next, _ = m.Update(runes("q"))
	m = next.(Model)

	assert.True(t, m.Computing())
	assert.Equal(t, 6, m.Dashboard().FilteredRecords, "displayed dashboard predates the toggle")
	assert.Equal(t, 3, m.Result().FilteredRecords)
	assert.InDelta(t, 730.0, m.Result().Summary.TotalSales, 1e-9)
}

func TestModel_ResultWhenSettled(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	assert.False(t, m.Computing())
	assert.Equal(t, m.Dashboard().Summary, m.Result().Summary)
	assert.Equal(t, 3, m.Result().FilteredRecords)
}
