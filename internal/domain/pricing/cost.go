// Package pricing reúne os cálculos puros de orçamento: custo por item,
// margem, quantidade de rolos de papel de parede e totais do orçamento.
// Nenhuma função aqui faz I/O; os materiais chegam já resolvidos.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
)

// SeamAllowance folga de costura somada à largura (metros).
var SeamAllowance = decimal.RequireFromString("0.10")

// CostInput item mais os materiais e serviços já carregados do catálogo.
// CurtainServices são os serviços configurados para Item.CurtainType.
type CostInput struct {
	Item                   *entity.LineItem
	Fabric                 *entity.Material
	Lining                 *entity.Material
	Rail                   *entity.Material
	Accessory              *entity.Material
	CurtainServices        []*entity.SewingService
	ExtraServices          []*entity.SewingService
	LiningFinish           *entity.SewingService
	InstallationPointPrice decimal.Decimal
}

// ResolveCost calcula o custo interno de um item por componente.
// Mesma entrada, mesma saída: não há estado acumulado.
func ResolveCost(in CostInput) (entity.CostBreakdown, error) {
	item := in.Item
	if item == nil || !entity.ValidProductType(item.ProductType) {
		return entity.CostBreakdown{}, domain.ErrInvalidInput
	}
	if !item.Quantity.GreaterThan(decimal.Zero) {
		return entity.CostBreakdown{}, domain.ErrInvalidInput
	}
	for _, m := range []*entity.Material{in.Fabric, in.Lining, in.Rail, in.Accessory} {
		if m != nil && !m.Active {
			return entity.CostBreakdown{}, domain.ErrMaterialInactive
		}
	}

	var c entity.CostBreakdown
	var err error
	switch item.ProductType {
	case entity.ProductCurtain:
		c, err = curtainCost(in)
	case entity.ProductBlind:
		c, err = blindCost(in)
	case entity.ProductWallpaper:
		c, err = wallpaperCost(in)
	default:
		c = unitCost(in)
	}
	if err != nil {
		return entity.CostBreakdown{}, err
	}

	c.Installation = installationCost(item, in.InstallationPointPrice)
	return finalize(c), nil
}

func curtainCost(in CostInput) (entity.CostBreakdown, error) {
	item := in.Item
	if !item.Width.GreaterThan(decimal.Zero) {
		return entity.CostBreakdown{}, domain.ErrInvalidInput
	}
	if in.Fabric == nil && in.Lining == nil {
		return entity.CostBreakdown{}, domain.ErrMissingMaterial
	}

	services := sewingServices(in)
	if len(services) == 0 {
		return entity.CostBreakdown{}, domain.ErrNoSewingService
	}

	consumption := item.Width.Add(SeamAllowance)
	var c entity.CostBreakdown
	if in.Fabric != nil {
		c.Fabric = consumption.Mul(item.Quantity).Mul(in.Fabric.UnitCost)
	}
	if in.Lining != nil {
		c.Lining = consumption.Mul(item.Quantity).Mul(in.Lining.UnitCost)
	}
	if in.Rail != nil {
		c.Rail = item.Width.Mul(item.Quantity).Mul(in.Rail.UnitCost)
	}
	if in.Accessory != nil {
		c.Accessory = item.Quantity.Mul(in.Accessory.UnitCost)
	}

	// sem trilho a costura é cobrada sobre a largura exata
	sewingBasis := item.Width
	if in.Rail != nil {
		sewingBasis = consumption
	}
	length := sewingBasis.Mul(item.Quantity)
	for _, s := range services {
		c.Sewing = c.Sewing.Add(length.Mul(s.UnitCost))
	}
	return c, nil
}

// sewingServices une serviços do tipo de cortina, opcionais do item e o acabamento de forro, sem repetir IDs.
// Devolve vazio se nenhum serviço ativo do tipo de cortina existir.
func sewingServices(in CostInput) []*entity.SewingService {
	seen := make(map[string]bool)
	var out []*entity.SewingService
	add := func(s *entity.SewingService) bool {
		if s == nil || !s.Active || seen[s.ID] {
			return false
		}
		seen[s.ID] = true
		out = append(out, s)
		return true
	}

	base := 0
	for _, s := range in.CurtainServices {
		if add(s) {
			base++
		}
	}
	if base == 0 {
		return nil
	}
	for _, s := range in.ExtraServices {
		add(s)
	}
	if in.Lining != nil {
		add(in.LiningFinish)
	}
	return out
}

func blindCost(in CostInput) (entity.CostBreakdown, error) {
	item := in.Item
	if !item.Width.GreaterThan(decimal.Zero) || !item.Height.GreaterThan(decimal.Zero) {
		return entity.CostBreakdown{}, domain.ErrInvalidInput
	}
	if in.Fabric == nil {
		return entity.CostBreakdown{}, domain.ErrMissingMaterial
	}
	area := item.Width.Mul(item.Height.Add(item.HemAllowance))
	if area.LessThan(in.Fabric.MinimumArea) {
		area = in.Fabric.MinimumArea
	}
	var c entity.CostBreakdown
	c.Fabric = area.Mul(item.Quantity).Mul(in.Fabric.UnitCost)
	if in.Accessory != nil {
		c.Accessory = item.Quantity.Mul(in.Accessory.UnitCost)
	}
	return c, nil
}

// wallpaperCost a quantidade do item é o número de rolos.
func wallpaperCost(in CostInput) (entity.CostBreakdown, error) {
	if in.Fabric == nil {
		return entity.CostBreakdown{}, domain.ErrMissingMaterial
	}
	return entity.CostBreakdown{Fabric: in.Item.Quantity.Mul(in.Fabric.UnitCost)}, nil
}

func unitCost(in CostInput) entity.CostBreakdown {
	var c entity.CostBreakdown
	if in.Accessory != nil {
		c.Accessory = in.Item.Quantity.Mul(in.Accessory.UnitCost)
	}
	return c
}

func installationCost(item *entity.LineItem, pointPrice decimal.Decimal) decimal.Decimal {
	if !item.NeedsInstallation {
		return decimal.Zero
	}
	if entity.IsMeasured(item.ProductType) {
		if item.InstallationPoints <= 0 {
			return decimal.Zero
		}
		return pointPrice.Mul(decimal.NewFromInt(int64(item.InstallationPoints)))
	}
	if item.InstallationValue.IsNegative() {
		return decimal.Zero
	}
	return item.InstallationValue
}

// finalize arredonda cada componente a centavos e fecha o total pela soma dos arredondados.
func finalize(c entity.CostBreakdown) entity.CostBreakdown {
	c.Fabric = c.Fabric.Round(2)
	c.Lining = c.Lining.Round(2)
	c.Rail = c.Rail.Round(2)
	c.Accessory = c.Accessory.Round(2)
	c.Sewing = c.Sewing.Round(2)
	c.Installation = c.Installation.Round(2)
	c.Total = c.Fabric.Add(c.Lining).Add(c.Rail).Add(c.Accessory).Add(c.Sewing).Add(c.Installation)
	return c
}
