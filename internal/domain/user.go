package domain

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleSeller UserRole = "SELLER"
	RoleUser   UserRole = "USER"
)

// ParseUserRole maps a case-insensitive string to a known role. The second
// return value is false for unknown values so filters can ignore them.
func ParseUserRole(s string) (UserRole, bool) {
	switch UserRole(normalizeEnum(s)) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleSeller:
		return RoleSeller, true
	case RoleUser:
		return RoleUser, true
	}
	return "", false
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
