package entity

import "github.com/shopspring/decimal"

// SewingService serviço de confecção cobrado por metro linear.
// LiningFinish marca o acabamento aplicado quando o item leva forro.
type SewingService struct {
	ID           string
	CompanyID    string
	Name         string
	UnitCost     decimal.Decimal
	LiningFinish bool
	Active       bool
}
