package quoting

import (
	"context"

	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/pricing"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

// PricingUseCase cálculos avulsos para a tela de orçamento: nada é gravado.
type PricingUseCase struct {
	resolver *costResolver
}

// NewPricingUseCase constrói o caso de uso.
func NewPricingUseCase(
	materials repository.MaterialRepository,
	services repository.SewingServiceRepository,
	companies repository.CompanyRepository,
	defaults Defaults,
) *PricingUseCase {
	return &PricingUseCase{resolver: &costResolver{
		materials: materials,
		services:  services,
		companies: companies,
		defaults:  defaults,
	}}
}

// PreviewItem custos do item e preço de venda com a margem informada.
func (uc *PricingUseCase) PreviewItem(ctx context.Context, companyID string, in dto.PreviewItemRequest) (*dto.PreviewItemResponse, error) {
	cp, err := uc.resolver.settings(ctx, companyID)
	if err != nil {
		return nil, err
	}
	margin, err := pricing.ResolveMargin(in.MarginType, in.MarginPercent, cp.presets)
	if err != nil {
		return nil, err
	}
	resolved, err := uc.resolver.resolve(ctx, companyID, toLineItem(in.LineItemRequest), in.WastePercent, cp)
	if err != nil {
		return nil, err
	}
	return &dto.PreviewItemResponse{
		Costs:         toCostResponse(resolved.costs),
		MarginPercent: margin,
		SalePrice:     pricing.SalePrice(resolved.costs.Total, margin),
		Warning:       toWarningResponse(resolved.warning),
	}, nil
}

// Markup preço de venda de um custo avulso.
func (uc *PricingUseCase) Markup(ctx context.Context, companyID string, in dto.MarkupRequest) (*dto.MarkupResponse, error) {
	if in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	cp, err := uc.resolver.settings(ctx, companyID)
	if err != nil {
		return nil, err
	}
	margin, err := pricing.ResolveMargin(in.MarginType, in.MarginPercent, cp.presets)
	if err != nil {
		return nil, err
	}
	return &dto.MarkupResponse{Cost: in.Cost, MarginPercent: margin, SalePrice: pricing.SalePrice(in.Cost, margin)}, nil
}

// Wallpaper rolos sugeridos para a parede. Com MaterialID a cobertura vem do rolo cadastrado.
func (uc *PricingUseCase) Wallpaper(ctx context.Context, companyID string, in dto.WallpaperRequest) (*dto.WallpaperResponse, error) {
	coverage := in.CoveragePerRoll
	if in.MaterialID != "" {
		m, err := uc.resolver.material(ctx, companyID, in.MaterialID)
		if err != nil {
			return nil, err
		}
		if m.Category != entity.MaterialWallpaper {
			return nil, domain.ErrInvalidInput
		}
		coverage = m.RollCoverage()
	}
	if !coverage.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	rolls := pricing.WallpaperRolls(in.Width, in.Height, coverage, in.WastePercent)
	out := &dto.WallpaperResponse{Rolls: rolls, CoveragePerRoll: coverage}
	if in.EnteredRolls != nil && rolls > 0 {
		out.Warning = toWarningResponse(pricing.CheckWallpaperQuantity(*in.EnteredRolls, rolls))
	}
	return out, nil
}
