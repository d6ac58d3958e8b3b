package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/domain/entity"
)

// MaterialFilter filtros da listagem do catálogo.
type MaterialFilter struct {
	Category        string
	Search          string
	IncludeInactive bool
	Limit           int
	Offset          int
}

// MaterialRepository porta do catálogo de materiais.
// GetByID e List devolvem o material com o preço ativo em UnitCost.
type MaterialRepository interface {
	Create(ctx context.Context, m *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	List(ctx context.Context, companyID string, f MaterialFilter) ([]*entity.Material, error)
	SetActive(ctx context.Context, id string, active bool, at time.Time) error
	// ArchiveActivePrice marca o preço vigente como arquivado em at.
	ArchiveActivePrice(ctx context.Context, materialID string, at time.Time) error
	InsertPrice(ctx context.Context, materialID string, unitCost decimal.Decimal, at time.Time) (*entity.MaterialPrice, error)
	PriceHistory(ctx context.Context, materialID string) ([]*entity.MaterialPrice, error)
}

// SewingServiceRepository porta dos serviços de costura.
type SewingServiceRepository interface {
	Create(ctx context.Context, s *entity.SewingService) error
	List(ctx context.Context, companyID string) ([]*entity.SewingService, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.SewingService, error)
	// ListForCurtainType serviços configurados para o tipo de cortina (tabela curtain_type_services).
	ListForCurtainType(ctx context.Context, companyID, curtainType string) ([]*entity.SewingService, error)
	// GetLiningFinish acabamento de forro ativo da empresa; (nil, nil) se não houver.
	GetLiningFinish(ctx context.Context, companyID string) (*entity.SewingService, error)
	LinkCurtainType(ctx context.Context, companyID, curtainType, serviceID string) error
}
