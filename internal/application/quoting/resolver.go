package quoting

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/pricing"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

// Defaults parâmetros comerciais usados quando a empresa não configurou os seus.
type Defaults struct {
	InstallationPointPrice decimal.Decimal
	Presets                pricing.MarginPresets
}

// companyPricing parâmetros efetivos de uma empresa.
type companyPricing struct {
	pointPrice decimal.Decimal
	presets    pricing.MarginPresets
}

// costResolver carrega materiais e serviços do catálogo e delega o cálculo ao pacote pricing.
type costResolver struct {
	materials repository.MaterialRepository
	services  repository.SewingServiceRepository
	companies repository.CompanyRepository
	defaults  Defaults
}

func (r *costResolver) settings(ctx context.Context, companyID string) (companyPricing, error) {
	out := companyPricing{pointPrice: r.defaults.InstallationPointPrice, presets: r.defaults.Presets}
	s, err := r.companies.GetPricingSettings(ctx, companyID)
	if err != nil {
		return out, fmt.Errorf("parâmetros comerciais: %w", err)
	}
	if s == nil {
		return out, nil
	}
	override := func(dst *decimal.Decimal, v *decimal.Decimal) {
		if v != nil {
			*dst = *v
		}
	}
	override(&out.pointPrice, s.InstallationPointPrice)
	override(&out.presets.Low, s.MarginLow)
	override(&out.presets.Standard, s.MarginStandard)
	override(&out.presets.Premium, s.MarginPremium)
	return out, nil
}

// resolvedItem custo calculado e, para papel de parede, o aviso de quantidade.
type resolvedItem struct {
	costs   entity.CostBreakdown
	warning *pricing.QuantityWarning
}

// resolve calcula o custo do item com os preços ativos do catálogo.
func (r *costResolver) resolve(ctx context.Context, companyID string, item *entity.LineItem, waste decimal.Decimal, cp companyPricing) (*resolvedItem, error) {
	item.CurtainType = strings.TrimSpace(strings.ToLower(item.CurtainType))

	in := pricing.CostInput{Item: item, InstallationPointPrice: cp.pointPrice}
	var err error
	if in.Fabric, err = r.material(ctx, companyID, item.FabricID); err != nil {
		return nil, err
	}
	if in.Lining, err = r.material(ctx, companyID, item.LiningID); err != nil {
		return nil, err
	}
	if in.Rail, err = r.material(ctx, companyID, item.RailID); err != nil {
		return nil, err
	}
	if in.Accessory, err = r.material(ctx, companyID, item.AccessoryID); err != nil {
		return nil, err
	}

	if item.ProductType == entity.ProductCurtain {
		if in.CurtainServices, err = r.services.ListForCurtainType(ctx, companyID, item.CurtainType); err != nil {
			return nil, fmt.Errorf("serviços do tipo de cortina: %w", err)
		}
		if len(item.ExtraServiceIDs) > 0 {
			if in.ExtraServices, err = r.services.GetByIDs(ctx, item.ExtraServiceIDs); err != nil {
				return nil, fmt.Errorf("serviços opcionais: %w", err)
			}
			for _, s := range in.ExtraServices {
				if s.CompanyID != companyID {
					return nil, domain.ErrForbidden
				}
			}
		}
		if in.Lining != nil {
			if in.LiningFinish, err = r.services.GetLiningFinish(ctx, companyID); err != nil {
				return nil, fmt.Errorf("acabamento de forro: %w", err)
			}
		}
	}

	costs, err := pricing.ResolveCost(in)
	if err != nil {
		return nil, err
	}
	out := &resolvedItem{costs: costs}
	if item.ProductType == entity.ProductWallpaper && in.Fabric != nil {
		suggested := pricing.WallpaperRolls(item.Width, item.Height, in.Fabric.RollCoverage(), waste)
		if suggested > 0 {
			out.warning = pricing.CheckWallpaperQuantity(item.Quantity, suggested)
		}
	}
	return out, nil
}

func (r *costResolver) material(ctx context.Context, companyID, id string) (*entity.Material, error) {
	if id == "" {
		return nil, nil
	}
	m, err := r.materials.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("material %s: %w", id, err)
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if m.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return m, nil
}
