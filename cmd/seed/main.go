// seed cria uma empresa de demonstração com usuário admin, um vendedor (vendas@ no domínio
// do admin, mesma senha) e um catálogo inicial.
//
// Uso: go run ./cmd/seed <email-admin> <senha>
// Rodar duas vezes não duplica a empresa; o usuário repetido é ignorado.
package main

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/application/auth"
	"github.com/jhoicas/decora-api/internal/application/catalog"
	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/application/usecase"
	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/infrastructure/postgres"
	"github.com/jhoicas/decora-api/pkg/config"
	"github.com/jhoicas/decora-api/pkg/logger"
)

// demoCompanyID fixo para o seed ser idempotente.
const demoCompanyID = "7f1c2a4e-0000-4000-8000-000000000001"

func main() {
	if len(os.Args) < 3 {
		os.Stderr.WriteString("uso: seed <email-admin> <senha>\n")
		os.Exit(2)
	}
	email, password := os.Args[1], os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	tag, err := pool.Exec(ctx, `
		INSERT INTO companies (id, name, cnpj, email)
		VALUES ($1, 'Decora Demo', '00.000.000/0001-00', $2)
		ON CONFLICT (id) DO NOTHING`, demoCompanyID, email)
	if err != nil {
		log.Fatal().Err(err).Msg("criar empresa")
	}
	if tag.RowsAffected() == 0 {
		log.Info().Str("company_id", demoCompanyID).Msg("empresa já existe, catálogo não recriado")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("hash da senha")
	}
	now := time.Now()
	err = postgres.NewUserRepository(pool).Create(ctx, &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    demoCompanyID,
		Email:        email,
		PasswordHash: hash,
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		log.Info().Str("email", email).Msg("usuário já existe")
	case err != nil:
		log.Fatal().Err(err).Msg("criar usuário")
	}

	if tag.RowsAffected() == 0 {
		return
	}
	if err := seedSalesperson(ctx, pool, email, password, log); err != nil {
		log.Fatal().Err(err).Msg("vendedor de demonstração")
	}
	if err := seedCatalog(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("catálogo inicial")
	}
	log.Info().Str("company_id", demoCompanyID).Msg("seed concluído")
}

func seedSalesperson(ctx context.Context, pool *pgxpool.Pool, adminEmail, password string, log *logger.Logger) error {
	domainPart := adminEmail[strings.LastIndex(adminEmail, "@")+1:]
	users := usecase.NewUserUseCase(postgres.NewUserRepository(pool), postgres.NewTxRunner(pool))
	out, err := users.Create(ctx, demoCompanyID, dto.CreateUserRequest{
		Name:     "Vendedor Demo",
		Email:    "vendas@" + domainPart,
		Password: password,
		Role:     entity.RoleVendedor,
	})
	if errors.Is(err, domain.ErrDuplicate) {
		log.Info().Str("email", "vendas@"+domainPart).Msg("vendedor já existe")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Str("user_id", out.ID).Str("email", out.Email).Msg("vendedor criado")
	return nil
}

func seedCatalog(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	materials := catalog.NewMaterialUseCase(postgres.NewMaterialRepository(pool), postgres.NewTxRunner(pool), nil, log)
	services := catalog.NewSewingServiceUseCase(postgres.NewSewingServiceRepository(pool))

	d := decimal.RequireFromString
	for _, m := range []dto.CreateMaterialRequest{
		{Code: "TEC-001", Name: "Linho rústico", Category: entity.MaterialFabric, UnitCost: d("48.90"), RollWidth: d("2.80")},
		{Code: "FOR-001", Name: "Forro blecaute", Category: entity.MaterialLining, UnitCost: d("32.00"), RollWidth: d("2.80")},
		{Code: "TRI-001", Name: "Trilho suíço", Category: entity.MaterialRail, UnitCost: d("27.50")},
		{Code: "PAP-001", Name: "Papel vinílico", Category: entity.MaterialWallpaper, UnitCost: d("89.90"), RollWidth: d("0.53"), RollLength: d("10")},
	} {
		if _, err := materials.Create(ctx, demoCompanyID, m); err != nil {
			return err
		}
	}
	for _, s := range []dto.CreateSewingServiceRequest{
		{Name: "Costura wave", UnitCost: d("15"), CurtainTypes: []string{"wave"}},
		{Name: "Costura prega americana", UnitCost: d("18"), CurtainTypes: []string{"prega_americana"}},
		{Name: "Acabamento do forro", UnitCost: d("5"), LiningFinish: true},
	} {
		if _, err := services.Create(ctx, demoCompanyID, s); err != nil {
			return err
		}
	}
	return nil
}
