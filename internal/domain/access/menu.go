package access

import "github.com/BruksfildServices01/daycare-manager/internal/models"

type MenuItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
	Icon  string `json:"icon"`
}

var (
	itemDashboard     = MenuItem{"dashboard", "Dashboard", "/dashboard", "home"}
	itemMyDay         = MenuItem{"babysitter-dashboard", "My Day", "/babysitter-dashboard", "home"}
	itemChildren      = MenuItem{"children", "Children", "/children", "child"}
	itemBabysitters   = MenuItem{"babysitters", "Babysitters", "/babysitters", "user-nurse"}
	itemSchedules     = MenuItem{"schedules", "Schedules", "/schedules", "calendar"}
	itemAttendance    = MenuItem{"attendance", "Attendance", "/attendance", "calendar-check"}
	itemFinance       = MenuItem{"finance", "Finance", "/finance", "money-bill"}
	itemReports       = MenuItem{"reports", "Reports", "/reports", "chart-bar"}
	itemNotifications = MenuItem{"notifications", "Notifications", "/notifications", "bell"}
	itemSettings      = MenuItem{"settings", "Settings", "/settings", "cog"}
)

var menus = map[models.Role][]MenuItem{
	models.RoleAdmin: {
		itemDashboard, itemBabysitters, itemChildren, itemSchedules, itemAttendance,
		itemFinance, itemReports, itemNotifications, itemSettings,
	},
	models.RoleBabysitter: {
		itemMyDay, itemSchedules, itemAttendance, itemFinance, itemNotifications, itemSettings,
	},
	models.RoleParent: {
		itemDashboard, itemChildren, itemBabysitters, itemSchedules, itemAttendance,
		itemFinance, itemNotifications, itemSettings,
	},
}

// Menu returns the navigation entries for a role. Unknown roles get the
// parent menu.
func Menu(r models.Role) []MenuItem {
	items, ok := menus[r]
	if !ok {
		items = menus[models.RoleParent]
	}
	out := make([]MenuItem, len(items))
	copy(out, items)
	return out
}
