package entity

import "time"

// Roles con acceso al panel de estadísticas.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// User usuario del panel administrativo.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, manager
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
