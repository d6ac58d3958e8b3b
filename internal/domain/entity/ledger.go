package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de lançamento financeiro.
const (
	LedgerIncome  = "receita"
	LedgerExpense = "despesa"
)

// LedgerEntry lançamento no fluxo de caixa.
type LedgerEntry struct {
	ID              string
	CompanyID       string
	Kind            string
	Amount          decimal.Decimal
	Date            time.Time
	PaymentMethodID string
	AccountID       string
	InstallmentID   string
	Description     string
	ReceiptKey      string
	CreatedBy       string
	CreatedAt       time.Time
}
