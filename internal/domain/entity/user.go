package entity

import "time"

// Roles válidos para User (enum cerrado).
const (
	RoleCompanyAdmin = "COMPANY_ADMIN"
	RoleManager      = "MANAGER"
	RoleStaff        = "STAFF"
)

// IsValidRole indica si el rol pertenece al enum.
func IsValidRole(role string) bool {
	switch role {
	case RoleCompanyAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string // único global: el login sólo recibe email + password
	PasswordHash string // bcrypt
	FullName     string
	Role         string
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
