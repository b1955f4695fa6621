package dto

import "time"

// CreateUserRequest entrada de POST /api/users/create. Password vacío = se genera una temporal
// y el usuario queda invitado.
type CreateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"omitempty,min=8"`
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	Role     string  `json:"role" validate:"required,oneof=admin manager staff"`
	SiteID   *string `json:"site_id" validate:"omitempty,uuid"`
}

// CreateUserResponse usuario creado e indicador de envío de la invitación (best-effort).
type CreateUserResponse struct {
	User       UserResponse `json:"user"`
	InviteSent bool         `json:"invite_sent"`
}

// RegisterRequest entrada para registro (auth): email, password, company_id.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	CompanyID string `json:"company_id" validate:"required,uuid"`
	Name      string `json:"name" validate:"omitempty,max=200"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	SiteID    *string   `json:"site_id,omitempty"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
