package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/superstore-dash/internal/cli"
	"github.com/Veraticus/superstore-dash/internal/model"
	"github.com/Veraticus/superstore-dash/internal/report"
	"github.com/charmbracelet/lipgloss"
)

// View renders the explorer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(),
		m.theme.Content.Render(m.viewport.View()),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderTabs(),
		body,
		m.help.View(m.keymap),
	)
}

func (m Model) renderHeader() string {
	status := fmt.Sprintf("%s of %s records",
		cli.FormatCount(m.dash.FilteredRecords), cli.FormatCount(len(m.records)))
	if m.computing {
		status += " · updating…"
	}
	return m.theme.Title.Render(cli.StoreIcon+" Global Superstore") + "  " +
		m.theme.StatusBar.Render(m.source+" · "+status)
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(model.ViewCatalog))
	for i, desc := range model.ViewCatalog {
		label := fmt.Sprintf("%d %s", i+1, desc.Title)
		if i == m.viewIndex {
			tabs[i] = m.theme.ActiveTab.Render(label)
		} else {
			tabs[i] = m.theme.Tab.Render(fmt.Sprintf("%d", i+1))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderSidebar() string {
	var b strings.Builder
	var last model.Dimension
	for i, item := range m.items {
		if item.dimension != last {
			set := m.sel.Set(item.dimension)
			heading := fmt.Sprintf("%s (%d/%d)", strings.ToUpper(string(item.dimension)), len(set), len(m.options.Values(item.dimension)))
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(m.theme.Title.Render(heading))
			b.WriteString("\n")
			last = item.dimension
		}

		box := m.theme.Unchecked.Render("[ ]")
		if m.sel.Set(item.dimension).Has(item.value) {
			box = m.theme.Checked.Render("[x]")
		}

		pointer := "  "
		label := m.theme.Normal.Render(item.value)
		if i == m.cursor {
			pointer = m.theme.Cursor.Render("> ")
			label = m.theme.Cursor.Render(item.value)
		}
		b.WriteString(pointer + box + " " + label + "\n")
	}

	return m.theme.Sidebar.Width(sidebarWidth).Render(strings.TrimRight(b.String(), "\n"))
}

// content renders the summary and the current view's tables.
func (m Model) content() string {
	var b strings.Builder
	b.WriteString(cli.RenderSummary(m.dash.Summary))
	b.WriteString("\n\n")

	if m.dash.IsEmpty() {
		b.WriteString(m.theme.Warning.Render("No records match the current filters."))
		b.WriteString("\n\n")
	}

	v, ok := m.dash.View(m.CurrentView().Name)
	if !ok {
		return b.String()
	}
	for _, sheet := range report.Sheets(v) {
		b.WriteString(cli.RenderSheet(sheet, m.rowLimit))
		b.WriteString("\n")
	}
	return b.String()
}
