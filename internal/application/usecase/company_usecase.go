package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/application/quoting"
	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/pricing"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

// CompanyUseCase dados da empresa e parâmetros comerciais.
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	defaults quoting.Defaults
}

// NewCompanyUseCase constrói o caso de uso. defaults são os valores usados quando a empresa não configurou os seus.
func NewCompanyUseCase(repo repository.CompanyRepository, defaults quoting.Defaults) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, defaults: defaults}
}

// Get devolve a empresa do tenant.
func (uc *CompanyUseCase) Get(ctx context.Context, companyID string) (*dto.CompanyResponse, error) {
	c, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(c), nil
}

// PricingSettings valores configurados e efetivos.
func (uc *CompanyUseCase) PricingSettings(ctx context.Context, companyID string) (*dto.PricingSettingsResponse, error) {
	s, err := uc.repo.GetPricingSettings(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &entity.PricingSettings{CompanyID: companyID}
	}
	return uc.toSettingsResponse(s), nil
}

// UpdatePricingSettings substitui os parâmetros da empresa.
// Margens fora de [0, 200] devolvem ErrInvalidMargin; valor de ponto negativo, ErrInvalidInput.
func (uc *CompanyUseCase) UpdatePricingSettings(ctx context.Context, companyID string, in dto.PricingSettingsRequest) (*dto.PricingSettingsResponse, error) {
	if in.InstallationPointPrice != nil && in.InstallationPointPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	for _, m := range []*decimal.Decimal{in.MarginLow, in.MarginStandard, in.MarginPremium} {
		if m != nil && !pricing.ValidMargin(*m) {
			return nil, domain.ErrInvalidMargin
		}
	}
	s := &entity.PricingSettings{
		CompanyID:              companyID,
		InstallationPointPrice: in.InstallationPointPrice,
		MarginLow:              in.MarginLow,
		MarginStandard:         in.MarginStandard,
		MarginPremium:          in.MarginPremium,
	}
	if err := uc.repo.SavePricingSettings(ctx, s); err != nil {
		return nil, err
	}
	return uc.toSettingsResponse(s), nil
}

func (uc *CompanyUseCase) toSettingsResponse(s *entity.PricingSettings) *dto.PricingSettingsResponse {
	pick := func(v *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
		if v != nil {
			return *v
		}
		return def
	}
	return &dto.PricingSettingsResponse{
		Configured: dto.PricingSettingsRequest{
			InstallationPointPrice: s.InstallationPointPrice,
			MarginLow:              s.MarginLow,
			MarginStandard:         s.MarginStandard,
			MarginPremium:          s.MarginPremium,
		},
		Effective: dto.EffectivePricing{
			InstallationPointPrice: pick(s.InstallationPointPrice, uc.defaults.InstallationPointPrice),
			MarginLow:              pick(s.MarginLow, uc.defaults.Presets.Low),
			MarginStandard:         pick(s.MarginStandard, uc.defaults.Presets.Standard),
			MarginPremium:          pick(s.MarginPremium, uc.defaults.Presets.Premium),
		},
	}
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		CNPJ:      c.CNPJ,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
