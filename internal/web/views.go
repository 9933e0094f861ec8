package web

import "greenpoints-backend/internal/model"

// Template names.
const (
	PageIndex         = "index"
	PageDashboard     = "dashboard"
	FragmentActionRow = "action_row"
	FragmentBoard     = "leaderboard"
	FragmentError     = "error_inline"
)

// RowView renders one action row, read-only or as an edit form.
type RowView struct {
	Action   *model.Action
	EditMode bool
}

// NewRowView builds a RowView from an action value.
func NewRowView(a model.Action, edit bool) RowView {
	return RowView{Action: &a, EditMode: edit}
}

// IndexView feeds the landing page.
type IndexView struct {
	Dorms []model.Dorm
}

// DashboardView feeds the signed-in dashboard.
type DashboardView struct {
	User        *model.User
	ActionTypes []model.ActionType
	Actions     []model.Action
	Dorms       []model.Dorm
}
