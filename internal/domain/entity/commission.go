package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status da comissão.
const (
	CommissionPending = "pendente"
	CommissionPaid    = "paga"
)

// Commission comissão sobre uma parcela recebida. Única por (OrderID, InstallmentNumber).
type Commission struct {
	ID                string
	CompanyID         string
	OrderID           string
	SalespersonID     string
	InstallmentNumber int
	Percent           decimal.Decimal
	BaseValue         decimal.Decimal
	Value             decimal.Decimal
	Status            string
	CreatedAt         time.Time
}
