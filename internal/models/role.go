package models

// Role identifies which of the three account types an actor holds.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployer Role = "employer"
	RoleUser     Role = "user"
)

// Valid reports whether the role is one of the known account types.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployer, RoleUser:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
