package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// Estados de User.
const (
	UserStatusActive    = "active"
	UserStatusInvited   = "invited"
	UserStatusSuspended = "suspended"
)

// User representa un usuario (perfil) del sistema; pertenece a una Company y opcionalmente a un Site.
type User struct {
	ID           string
	CompanyID    string
	SiteID       *string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, manager, staff
	Status       string // active, invited, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanLogin informa si el usuario puede autenticarse. Un invitado con contraseña ya fijada también puede.
func (u *User) CanLogin() bool {
	return u.Status == UserStatusActive || u.Status == UserStatusInvited
}
