package models

// Role gates which views and actions are available in a session.
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleLeader  Role = "leader"
)

// Badge is an achievement shown on a user's profile.
type Badge struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// User is a session participant. Users are not persisted across restarts.
type User struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Avatar    string  `json:"avatar"`
	Points    int     `json:"points"`
	Badges    []Badge `json:"badges"`
	District  string  `json:"district"`
	Panchayat string  `json:"panchayat,omitempty"`
	Village   string  `json:"village,omitempty"`
	Street    string  `json:"street,omitempty"`
	Role      Role    `json:"role"`
	Email     string  `json:"email,omitempty"`
}
