package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/superstore-dash/internal/model"
	"github.com/Veraticus/superstore-dash/internal/report"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatMoney renders an amount as whole dollars with thousands separators.
func FormatMoney(v float64) string {
	v = math.Round(v)
	if v == 0 {
		return "$0"
	}
	if v < 0 {
		return printer.Sprintf("-$%.0f", -v)
	}
	return printer.Sprintf("$%.0f", v)
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatCell renders one sheet cell for the terminal.
func FormatCell(sheet report.Sheet, col int, v any) string {
	switch val := v.(type) {
	case float64:
		if sheet.IsMoney(col) {
			return FormatMoney(val)
		}
		return printer.Sprintf("%.2f", val)
	case int:
		return FormatCount(val)
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// RenderSummary renders the headline metrics as a row of cards.
func RenderSummary(s model.Summary) string {
	profit := FormatMoney(s.TotalProfit)
	if s.TotalProfit < 0 {
		profit = ErrorStyle.Render(profit)
	} else {
		profit = SuccessStyle.Render(profit)
	}

	cards := []string{
		metricCard("Total Sales", FormatMoney(s.TotalSales)),
		metricCard("Total Profit", profit),
		metricCard("Orders", FormatCount(s.Orders)),
		metricCard("Customers", FormatCount(s.Customers)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value string) string {
	return MetricStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		SubtleStyle.Render(label),
		lipgloss.NewStyle().Bold(true).Render(value)))
}

// RenderSheet renders a sheet as a titled table. At most limit rows are
// shown when limit is positive.
func RenderSheet(sheet report.Sheet, limit int) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(ChartIcon + " " + sheet.Title))
	b.WriteString("\n")

	if len(sheet.Rows) == 0 {
		b.WriteString(SubtleStyle.Render("No data for the current filters."))
		b.WriteString("\n")
		return b.String()
	}

	rows := sheet.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers(sheet.Headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})
	for _, row := range rows {
		cells := make([]string, len(row))
		for col, v := range row {
			cells[col] = FormatCell(sheet, col, v)
		}
		t.Row(cells...)
	}

	b.WriteString(t.String())
	b.WriteString("\n")
	if hidden := len(sheet.Rows) - len(rows); hidden > 0 {
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("… %s more rows", FormatCount(hidden))))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderFilters lists the available filter values per dimension.
func RenderFilters(opts model.FilterOptions) string {
	var b strings.Builder
	for _, d := range model.Dimensions {
		values := opts.Values(d)
		b.WriteString(BoldLabel(string(d)))
		b.WriteString(SubtleStyle.Render(fmt.Sprintf(" (%d)", len(values))))
		b.WriteString("\n")
		for _, v := range values {
			b.WriteString("  • " + v + "\n")
		}
	}
	return b.String()
}

// RenderSelection describes the active filters in a box. Dimensions with
// every option selected are shown as "all".
func RenderSelection(sel model.FilterSelection, opts model.FilterOptions) string {
	lines := make([]string, 0, len(model.Dimensions))
	for _, d := range model.Dimensions {
		set := sel.Set(d)
		available := opts.Values(d)

		var desc string
		switch {
		case len(set) == 0:
			desc = WarningStyle.Render("none")
		case len(set) >= len(available) && allIn(set, available):
			desc = fmt.Sprintf("all (%d)", len(available))
		default:
			desc = strings.Join(set.Sorted(), ", ")
		}
		lines = append(lines, BoldLabel(fmt.Sprintf("%-9s", d))+" "+desc)
	}
	return RenderBox("Filters", strings.Join(lines, "\n"))
}

func allIn(set model.ValueSet, values []string) bool {
	for _, v := range values {
		if !set.Has(v) {
			return false
		}
	}
	return true
}

// BoldLabel renders a label in the primary color.
func BoldLabel(s string) string {
	return TableHeaderStyle.UnsetPaddingRight().Render(s)
}
