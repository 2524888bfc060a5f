package entity

import "time"

// Roles de usuario de la aplicación.
const (
	RolAdmin      = "admin"
	RolTecnico    = "tecnico"
	RolReportante = "reportante"
)

// User usuario de la aplicación (personal del hospital).
type User struct {
	ID           string
	Email        string
	Nombre       string
	Rol          string // admin | tecnico | reportante
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
