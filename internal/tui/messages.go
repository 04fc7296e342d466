package tui

import "github.com/Veraticus/superstore-dash/internal/model"

// dashboardMsg carries a recomputed dashboard. Results from older
// generations are dropped.
type dashboardMsg struct {
	dash       model.DashboardView
	generation int
}
