package domain

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleExecutive UserRole = "executive"
	RoleManager   UserRole = "manager"
	RoleViewer    UserRole = "viewer"
)

type User struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       UserRole `json:"role"`
	Avatar     string   `json:"avatar,omitempty"`
	Department string   `json:"department,omitempty"`
}

func (u User) RecordID() string { return u.ID }

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark"; anything else falls back to light.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), true
	}
	return ThemeLight, false
}

// Settings holds per-user dashboard preferences. ID equals the user ID.
type Settings struct {
	ID                   string      `json:"id"`
	Theme                Theme       `json:"theme"`
	DashboardLayout      string      `json:"dashboardLayout"`
	DefaultTimePeriod    Granularity `json:"defaultTimePeriod"`
	NotificationsEnabled bool        `json:"notificationsEnabled"`
}

func (s Settings) RecordID() string { return s.ID }
