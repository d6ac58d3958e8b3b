package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorias de material.
const (
	MaterialFabric    = "tecido"
	MaterialLining    = "forro"
	MaterialRail      = "trilho"
	MaterialAccessory = "acessorio"
	MaterialWallpaper = "papel_parede"
	MaterialBlind     = "persiana"
	MaterialMotor     = "motor"
)

// ValidMaterialCategory indica se a categoria é conhecida.
func ValidMaterialCategory(c string) bool {
	switch c {
	case MaterialFabric, MaterialLining, MaterialRail, MaterialAccessory,
		MaterialWallpaper, MaterialBlind, MaterialMotor:
		return true
	}
	return false
}

// Material item do catálogo. UnitCost é sempre o preço ativo (não arquivado) em material_prices.
type Material struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	PriceID     string          `json:"price_id"`
	RollWidth   decimal.Decimal `json:"roll_width"`   // metros
	RollLength  decimal.Decimal `json:"roll_length"`  // metros (papel de parede)
	MinimumArea decimal.Decimal `json:"minimum_area"` // m² mínimo cobrado (persianas)
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// RollCoverage m² cobertos por um rolo (largura × comprimento).
func (m *Material) RollCoverage() decimal.Decimal {
	return m.RollWidth.Mul(m.RollLength)
}

// MaterialPrice versão de preço; só uma por material tem ArchivedAt nil.
type MaterialPrice struct {
	ID         string
	MaterialID string
	UnitCost   decimal.Decimal
	ValidFrom  time.Time
	ArchivedAt *time.Time
}
