package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status da conta a receber.
const (
	AccountPending = "pendente"
	AccountPartial = "parcial"
	AccountOverdue = "atrasado"
	AccountPaid    = "pago"
)

// Status da parcela.
const (
	InstallmentPending = "pendente"
	InstallmentPaid    = "pago"
)

// AccountReceivable conta a receber, opcionalmente vinculada a um pedido.
type AccountReceivable struct {
	ID           string
	CompanyID    string
	OrderID      string
	ClientName   string
	Description  string
	Total        decimal.Decimal
	PaidAmount   decimal.Decimal
	Status       string
	Installments []*Installment
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Installment parcela. Passa de pendente para pago uma única vez.
type Installment struct {
	ID              string
	AccountID       string
	Number          int
	DueDate         time.Time
	Amount          decimal.Decimal
	Status          string
	PaidAt          *time.Time
	PaymentMethodID string
}

// IsPaid indica se a parcela já foi quitada.
func (i *Installment) IsPaid() bool {
	return i.Status == InstallmentPaid
}
