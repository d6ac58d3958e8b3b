package repository

import (
	"context"

	"github.com/jhoicas/decora-api/internal/domain/entity"
)

// CompanyRepository define a porta de persistência de Company.
// A implementação vive em infrastructure.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// GetPricingSettings devolve os parâmetros comerciais; (nil, nil) se a empresa não configurou nenhum.
	GetPricingSettings(ctx context.Context, companyID string) (*entity.PricingSettings, error)
	// SavePricingSettings grava (insere ou substitui) os parâmetros comerciais.
	SavePricingSettings(ctx context.Context, s *entity.PricingSettings) error
}
