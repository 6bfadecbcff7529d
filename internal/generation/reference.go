package generation

import "github.com/alexanderramin/execview/internal/domain"

// DefaultUsers returns the demo accounts seeded on first run.
func DefaultUsers() []domain.User {
	return []domain.User{
		{ID: "admin", Email: "admin@execview.com", Name: "Admin User", Role: domain.RoleAdmin, Department: "Executive"},
		{ID: "executive", Email: "exec@execview.com", Name: "Jane Executive", Role: domain.RoleExecutive, Department: "C-Suite"},
		{ID: "manager", Email: "manager@execview.com", Name: "Mark Manager", Role: domain.RoleManager, Department: "Sales"},
		{ID: "viewer", Email: "viewer@execview.com", Name: "Vicky Viewer", Role: domain.RoleViewer, Department: "Marketing"},
	}
}

// DefaultSettings returns the initial settings for a user.
func DefaultSettings(userID string) domain.Settings {
	return domain.Settings{
		ID:                   userID,
		Theme:                domain.ThemeLight,
		DashboardLayout:      "{}",
		DefaultTimePeriod:    domain.Monthly,
		NotificationsEnabled: true,
	}
}
