package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserResponse saída de um usuário (sem senha).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// CommissionPercent só no cadastro de vendedor com comissão própria.
	CommissionPercent *decimal.Decimal `json:"commission_percent,omitempty"`
}

// LoginRequest entrada do login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT e dados do usuário.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest cadastro de usuário da equipe pelo admin. CommissionPercent (0 a 100)
// só vale para vendedor; vazio usa a comissão padrão.
type CreateUserRequest struct {
	Name              string           `json:"name" validate:"required"`
	Email             string           `json:"email" validate:"required,email"`
	Password          string           `json:"password" validate:"required,min=8"`
	Role              string           `json:"role" validate:"required"`
	CommissionPercent *decimal.Decimal `json:"commission_percent,omitempty"`
}
