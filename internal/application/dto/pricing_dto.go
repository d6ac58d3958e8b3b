package dto

import "github.com/shopspring/decimal"

// LineItemRequest dados de um item de orçamento.
type LineItemRequest struct {
	ProductType        string          `json:"product_type" validate:"required"`
	CurtainType        string          `json:"curtain_type"`
	Description        string          `json:"description"`
	Width              decimal.Decimal `json:"width"`
	Height             decimal.Decimal `json:"height"`
	Quantity           decimal.Decimal `json:"quantity"`
	HemAllowance       decimal.Decimal `json:"hem_allowance"`
	FabricID           string          `json:"fabric_id"`
	LiningID           string          `json:"lining_id"`
	RailID             string          `json:"rail_id"`
	AccessoryID        string          `json:"accessory_id"`
	NeedsInstallation  bool            `json:"needs_installation"`
	InstallationPoints int             `json:"installation_points"`
	InstallationValue  decimal.Decimal `json:"installation_value"`
	ExtraServiceIDs    []string        `json:"extra_service_ids"`
	// WastePercent perda usada para sugerir rolos de papel de parede.
	WastePercent decimal.Decimal `json:"waste_percent"`
}

// CostBreakdownResponse custos internos por componente.
type CostBreakdownResponse struct {
	Fabric       decimal.Decimal `json:"fabric"`
	Lining       decimal.Decimal `json:"lining"`
	Rail         decimal.Decimal `json:"rail"`
	Accessory    decimal.Decimal `json:"accessory"`
	Sewing       decimal.Decimal `json:"sewing"`
	Installation decimal.Decimal `json:"installation"`
	Total        decimal.Decimal `json:"total"`
}

// QuantityWarningResponse aviso não bloqueante de quantidade.
type QuantityWarningResponse struct {
	Entered   decimal.Decimal `json:"entered"`
	Suggested int64           `json:"suggested"`
	Message   string          `json:"message"`
}

// PreviewItemRequest cálculo de um item sem persistir.
type PreviewItemRequest struct {
	LineItemRequest
	MarginType    string          `json:"margin_type"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// PreviewItemResponse custos e preço de venda calculados.
type PreviewItemResponse struct {
	Costs         CostBreakdownResponse    `json:"costs"`
	MarginPercent decimal.Decimal          `json:"margin_percent"`
	SalePrice     decimal.Decimal          `json:"sale_price"`
	Warning       *QuantityWarningResponse `json:"warning,omitempty"`
}

// MarkupRequest aplica uma margem sobre um custo.
type MarkupRequest struct {
	Cost          decimal.Decimal `json:"cost"`
	MarginType    string          `json:"margin_type"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// MarkupResponse resultado do markup.
type MarkupResponse struct {
	Cost          decimal.Decimal `json:"cost"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
	SalePrice     decimal.Decimal `json:"sale_price"`
}

// WallpaperRequest sugestão de rolos. Sem MaterialID, CoveragePerRoll é obrigatório.
type WallpaperRequest struct {
	Width           decimal.Decimal  `json:"width"`
	Height          decimal.Decimal  `json:"height"`
	MaterialID      string           `json:"material_id"`
	CoveragePerRoll decimal.Decimal  `json:"coverage_per_roll"`
	WastePercent    decimal.Decimal  `json:"waste_percent"`
	EnteredRolls    *decimal.Decimal `json:"entered_rolls"`
}

// WallpaperResponse rolos sugeridos.
type WallpaperResponse struct {
	Rolls           int64                    `json:"rolls"`
	CoveragePerRoll decimal.Decimal          `json:"coverage_per_roll"`
	Warning         *QuantityWarningResponse `json:"warning,omitempty"`
}
