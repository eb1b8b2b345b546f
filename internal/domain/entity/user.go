package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleEnfermeria = "enfermeria"
	RoleBodega     = "bodega"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, enfermeria, bodega
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
