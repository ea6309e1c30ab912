package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User representa un usuario del sistema. Solo se referencia como actor de un movimiento.
type User struct {
	ID           string
	Username     string // único
	PasswordHash string // bcrypt hash
	Role         string // admin, staff
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
