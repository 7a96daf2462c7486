package models

type Role string

const (
	RoleUser     Role = "user"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

// Principal is the authenticated caller as vouched for by the identity service.
type Principal struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}
