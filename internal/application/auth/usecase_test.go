package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/decora-api/internal/application/auth"
	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/pkg/jwt"
)

type memUsers map[string]*entity.User

func (m memUsers) Create(_ context.Context, u *entity.User) error {
	m[u.Email] = u
	return nil
}

func (m memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range m {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return m[email], nil
}

func (m memUsers) ListByCompany(_ context.Context, companyID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m {
		if u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

func newUsers(t *testing.T) memUsers {
	t.Helper()
	hash, err := auth.HashPassword("segredo123")
	require.NoError(t, err)
	return memUsers{
		"ana@decora.com.br": {ID: "u1", CompanyID: "e1", Email: "ana@decora.com.br", PasswordHash: hash, Name: "Ana", Role: entity.RoleVendedor, Status: "active"},
		"rui@decora.com.br": {ID: "u2", CompanyID: "e1", Email: "rui@decora.com.br", PasswordHash: hash, Name: "Rui", Role: entity.RoleAdmin, Status: "inactive"},
	}
}

var cfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "decora-test"}

func TestLogin_GeraTokenComIdentidade(t *testing.T) {
	uc := auth.NewAuthUseCase(newUsers(t), cfg)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: " Ana@Decora.com.br ", Password: "segredo123"})
	require.NoError(t, err)
	assert.Equal(t, "u1", out.User.ID)

	id, err := jwt.Parse(cfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, jwt.Identity{UserID: "u1", CompanyID: "e1", Role: entity.RoleVendedor}, id)
}

func TestLogin_CredenciaisInvalidas(t *testing.T) {
	uc := auth.NewAuthUseCase(newUsers(t), cfg)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@decora.com.br", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ninguem@decora.com.br", Password: "segredo123"})
	assert.ErrorIs(t, err, domain.ErrInvalidPassword, "mesmo erro para usuário inexistente")

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_UsuarioInativo(t *testing.T) {
	uc := auth.NewAuthUseCase(newUsers(t), cfg)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "rui@decora.com.br", Password: "segredo123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
