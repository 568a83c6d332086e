package models

// Role controls what a roster entry may do: admins manage the roster and see
// every pending item, regular users see items scoped to their units.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User is a roster entry. Usernames are case-insensitive and always stored
// lower-cased; at most one live record exists per normalized username.
//
// The secret is stored and compared in clear text. That mirrors the system
// this replaces and is tracked as an open issue, not silently changed here.
type User struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	Role            Role   `json:"role"`
	UnitOrigin      string `json:"unitOrigin"`
	UnitDestination string `json:"unitDestination"`
}
