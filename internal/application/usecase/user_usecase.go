package usecase

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/application/auth"
	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

const minPasswordLen = 8

// UserTxRunner grava usuário e vendedor na mesma transação.
type UserTxRunner interface {
	RunUser(ctx context.Context, fn func(users repository.UserRepository, salespeople repository.SalespersonRepository) error) error
}

// UserUseCase equipe da empresa (cadastro e listagem de usuários).
type UserUseCase struct {
	repo repository.UserRepository
	tx   UserTxRunner
	now  func() time.Time
}

// NewUserUseCase constrói o caso de uso com a porta de persistência.
func NewUserUseCase(repo repository.UserRepository, tx UserTxRunner) *UserUseCase {
	return &UserUseCase{repo: repo, tx: tx, now: time.Now}
}

// Create cadastra um usuário na empresa do admin. Email já usado devolve domain.ErrDuplicate.
// Role vendedor cria também o vendedor com o mesmo id; CommissionPercent vazio usa o padrão.
func (uc *UserUseCase) Create(ctx context.Context, companyID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)
	if name == "" || len(in.Password) < minPasswordLen || !validRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.CommissionPercent != nil {
		p := *in.CommissionPercent
		if in.Role != entity.RoleVendedor || p.IsNegative() || p.GreaterThan(decimal.NewFromInt(100)) {
			return nil, domain.ErrInvalidInput
		}
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	u := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         in.Role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.RunUser(ctx, func(users repository.UserRepository, salespeople repository.SalespersonRepository) error {
		if err := users.Create(ctx, u); err != nil {
			return err
		}
		if u.Role != entity.RoleVendedor {
			return nil
		}
		return salespeople.Save(ctx, &entity.Salesperson{
			ID:                u.ID,
			CompanyID:         companyID,
			Name:              name,
			CommissionPercent: in.CommissionPercent,
		})
	})
	if err != nil {
		return nil, err
	}
	out := entityToUserResponse(u)
	out.CommissionPercent = in.CommissionPercent
	return out, nil
}

// List usuários da empresa.
func (uc *UserUseCase) List(ctx context.Context, companyID string) ([]dto.UserResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *entityToUserResponse(u))
	}
	return out, nil
}

func validRole(r string) bool {
	switch r {
	case entity.RoleAdmin, entity.RoleVendedor, entity.RoleFinanceiro:
		return true
	}
	return false
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
