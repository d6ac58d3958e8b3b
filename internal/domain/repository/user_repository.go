package repository

import (
	"context"

	"github.com/jhoicas/decora-api/internal/domain/entity"
)

// UserRepository define a porta de persistência de User.
// Métodos Get devolvem (nil, nil) quando o registro não existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.User, error)
}
