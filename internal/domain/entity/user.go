package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleVendedor   = "vendedor"
	RoleFinanceiro = "financeiro"
)

// User representa um usuário do sistema (pertence a uma Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
