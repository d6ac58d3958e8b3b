package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de produto de um item de orçamento.
const (
	ProductCurtain   = "cortina"
	ProductBlind     = "persiana"
	ProductWallpaper = "papel_parede"
	ProductAccessory = "acessorio"
	ProductMotorized = "motorizado"
	ProductOther     = "outro"
)

// ValidProductType indica se o tipo de produto é conhecido.
func ValidProductType(t string) bool {
	switch t {
	case ProductCurtain, ProductBlind, ProductWallpaper, ProductAccessory, ProductMotorized, ProductOther:
		return true
	}
	return false
}

// IsMeasured tipos cuja instalação é cobrada por ponto.
func IsMeasured(t string) bool {
	return t == ProductCurtain || t == ProductBlind || t == ProductWallpaper
}

// CostBreakdown custos internos de um item. Total = soma das partes.
type CostBreakdown struct {
	Fabric       decimal.Decimal
	Lining       decimal.Decimal
	Rail         decimal.Decimal
	Accessory    decimal.Decimal
	Sewing       decimal.Decimal
	Installation decimal.Decimal
	Total        decimal.Decimal
}

// Materials soma dos componentes de material (tecido, forro, trilho, acessório).
func (c CostBreakdown) Materials() decimal.Decimal {
	return c.Fabric.Add(c.Lining).Add(c.Rail).Add(c.Accessory)
}

// LineItem produto orçado. Custos e preço de venda são recalculados a cada salvamento.
type LineItem struct {
	ID                 string
	QuoteID            string
	Position           int
	ProductType        string
	CurtainType        string // wave, prega_americana, ilhos...; só para cortinas
	Description        string
	Width              decimal.Decimal
	Height             decimal.Decimal
	Quantity           decimal.Decimal
	FabricID           string
	LiningID           string
	RailID             string
	AccessoryID        string
	HemAllowance       decimal.Decimal // barra, somada à altura em persianas
	NeedsInstallation  bool
	InstallationPoints int
	InstallationValue  decimal.Decimal // valor fixo para tipos não medidos
	ExtraServiceIDs    []string
	Costs              CostBreakdown
	SalePrice          decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
