package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateQuoteRequest entrada para abrir um orçamento em rascunho.
type CreateQuoteRequest struct {
	ClientName    string          `json:"client_name" validate:"required"`
	ClientPhone   string          `json:"client_phone"`
	ClientEmail   string          `json:"client_email"`
	Address       string          `json:"address"`
	SalespersonID string          `json:"salesperson_id"`
	MarginType    string          `json:"margin_type"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// ChangeMarginRequest troca a margem do orçamento.
type ChangeMarginRequest struct {
	MarginType    string          `json:"margin_type" validate:"required"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// ChangeStatusRequest muda o status do orçamento. Os demais campos valem só na aprovação:
// Installments (padrão 1), FirstDueDate no formato 2006-01-02 (padrão hoje) e
// DiscountedTotal, o valor negociado quando menor que o total do orçamento.
type ChangeStatusRequest struct {
	Status          string           `json:"status" validate:"required"`
	Installments    int              `json:"installments,omitempty"`
	FirstDueDate    string           `json:"first_due_date,omitempty"`
	DiscountedTotal *decimal.Decimal `json:"discounted_total,omitempty"`
}

// LineItemResponse item do orçamento com custos e preço.
type LineItemResponse struct {
	ID                 string                `json:"id"`
	Position           int                   `json:"position"`
	ProductType        string                `json:"product_type"`
	CurtainType        string                `json:"curtain_type,omitempty"`
	Description        string                `json:"description"`
	Width              decimal.Decimal       `json:"width"`
	Height             decimal.Decimal       `json:"height"`
	Quantity           decimal.Decimal       `json:"quantity"`
	FabricID           string                `json:"fabric_id,omitempty"`
	LiningID           string                `json:"lining_id,omitempty"`
	RailID             string                `json:"rail_id,omitempty"`
	AccessoryID        string                `json:"accessory_id,omitempty"`
	NeedsInstallation  bool                  `json:"needs_installation"`
	InstallationPoints int                   `json:"installation_points"`
	ExtraServiceIDs    []string              `json:"extra_service_ids,omitempty"`
	Costs              CostBreakdownResponse `json:"costs"`
	SalePrice          decimal.Decimal       `json:"sale_price"`
}

// QuoteResponse orçamento com totais e itens.
type QuoteResponse struct {
	ID                   string             `json:"id"`
	Number               string             `json:"number"`
	ClientName           string             `json:"client_name"`
	ClientPhone          string             `json:"client_phone,omitempty"`
	ClientEmail          string             `json:"client_email,omitempty"`
	Address              string             `json:"address,omitempty"`
	SalespersonID        string             `json:"salesperson_id,omitempty"`
	MarginType           string             `json:"margin_type"`
	MarginPercent        decimal.Decimal    `json:"margin_percent"`
	Status               string             `json:"status"`
	SubtotalMaterials    decimal.Decimal    `json:"subtotal_materials"`
	SubtotalSewing       decimal.Decimal    `json:"subtotal_sewing"`
	SubtotalInstallation decimal.Decimal    `json:"subtotal_installation"`
	CostTotal            decimal.Decimal    `json:"cost_total"`
	GrandTotal           decimal.Decimal    `json:"grand_total"`
	OrderID              string             `json:"order_id,omitempty"`
	AccountID            string             `json:"account_id,omitempty"`
	Items                []LineItemResponse `json:"items"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

// QuoteListResponse lista paginada de orçamentos (sem itens).
type QuoteListResponse struct {
	Items []QuoteResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// SaveLineItemResponse item salvo, orçamento reagregado e aviso de quantidade, se houver.
type SaveLineItemResponse struct {
	Item    LineItemResponse         `json:"item"`
	Quote   QuoteResponse            `json:"quote"`
	Warning *QuantityWarningResponse `json:"warning,omitempty"`
}
