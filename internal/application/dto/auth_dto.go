package dto

import "time"

// RegisterRequest alta de una empresa nueva con su usuario administrador.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	FullName    string `json:"full_name" validate:"required,max=200"`
	CompanyName string `json:"company_name" validate:"required,max=200"`
}

// RegisterResponse token del administrador recién creado.
type RegisterResponse struct {
	Token     string `json:"token"`
	CompanyID string `json:"companyId"`
	UserID    string `json:"userId"`
}

// LoginRequest credenciales.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token e identidad del usuario.
type LoginResponse struct {
	Token     string `json:"token"`
	CompanyID string `json:"companyId"`
	UserID    string `json:"userId"`
	Role      string `json:"role"`
	Email     string `json:"email"`
}

// CreateUserRequest un administrador crea usuarios en su empresa.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"required,max=200"`
	Role     string `json:"role" validate:"required,oneof=COMPANY_ADMIN MANAGER STAFF"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string     `json:"id"`
	CompanyID   string     `json:"company_id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CompanyResponse empresa del usuario autenticado.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
