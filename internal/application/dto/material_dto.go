package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest entrada para cadastrar um material com o preço inicial.
type CreateMaterialRequest struct {
	Code        string          `json:"code"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Category    string          `json:"category" validate:"required"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	RollWidth   decimal.Decimal `json:"roll_width"`
	RollLength  decimal.Decimal `json:"roll_length"`
	MinimumArea decimal.Decimal `json:"minimum_area"`
}

// UpdatePriceRequest novo custo unitário; o preço vigente é arquivado.
type UpdatePriceRequest struct {
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// MaterialResponse saída de um material.
type MaterialResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	RollWidth   decimal.Decimal `json:"roll_width"`
	RollLength  decimal.Decimal `json:"roll_length"`
	MinimumArea decimal.Decimal `json:"minimum_area"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MaterialListResponse lista paginada de materiais.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MaterialPriceResponse versão de preço.
type MaterialPriceResponse struct {
	ID         string          `json:"id"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	ValidFrom  time.Time       `json:"valid_from"`
	ArchivedAt *time.Time      `json:"archived_at,omitempty"`
}

// CreateSewingServiceRequest cadastro de serviço de costura cobrado por metro.
type CreateSewingServiceRequest struct {
	Name         string          `json:"name" validate:"required"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	LiningFinish bool            `json:"lining_finish"`
	CurtainTypes []string        `json:"curtain_types"`
}

// LinkCurtainTypeRequest associa um serviço a um tipo de cortina.
type LinkCurtainTypeRequest struct {
	CurtainType string `json:"curtain_type" validate:"required"`
}

// SewingServiceResponse serviço de costura.
type SewingServiceResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	LiningFinish bool            `json:"lining_finish"`
	Active       bool            `json:"active"`
}
