package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentResponse parcela.
type InstallmentResponse struct {
	ID              string          `json:"id"`
	Number          int             `json:"number"`
	DueDate         time.Time       `json:"due_date"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	PaymentMethodID string          `json:"payment_method_id,omitempty"`
}

// ReceivableResponse conta a receber; Status já considera parcelas vencidas.
type ReceivableResponse struct {
	ID           string                `json:"id"`
	OrderID      string                `json:"order_id,omitempty"`
	ClientName   string                `json:"client_name"`
	Description  string                `json:"description"`
	Total        decimal.Decimal       `json:"total"`
	PaidAmount   decimal.Decimal       `json:"paid_amount"`
	Status       string                `json:"status"`
	Installments []InstallmentResponse `json:"installments,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

// ReceivableListResponse lista paginada de contas a receber.
type ReceivableListResponse struct {
	Items []ReceivableResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// ReceiptUpload arquivo de comprovante enviado junto com o recebimento.
type ReceiptUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// RegisterReceiptRequest baixa de uma parcela.
type RegisterReceiptRequest struct {
	InstallmentID   string         `json:"-"`
	PaidAt          time.Time      `json:"paid_at"`
	PaymentMethodID string         `json:"payment_method_id"`
	Receipt         *ReceiptUpload `json:"-"`
}

// StepFailureResponse passo auxiliar que falhou sem desfazer o recebimento.
type StepFailureResponse struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// RegisterReceiptResponse resultado do recebimento.
type RegisterReceiptResponse struct {
	AccountID     string                `json:"account_id"`
	InstallmentID string                `json:"installment_id"`
	AccountStatus string                `json:"account_status"`
	PaidAmount    decimal.Decimal       `json:"paid_amount"`
	Milestones    []int                 `json:"milestones"`
	LedgerEntryID string                `json:"ledger_entry_id,omitempty"`
	CommissionID  string                `json:"commission_id,omitempty"`
	ReceiptKey    string                `json:"receipt_key,omitempty"`
	Failures      []StepFailureResponse `json:"failures,omitempty"`
}

// CommissionResponse comissão de uma parcela.
type CommissionResponse struct {
	ID                string          `json:"id"`
	InstallmentNumber int             `json:"installment_number"`
	Percent           decimal.Decimal `json:"percent"`
	BaseValue         decimal.Decimal `json:"base_value"`
	Value             decimal.Decimal `json:"value"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
}

// OrderCommissionsResponse comissões do pedido e a soma.
type OrderCommissionsResponse struct {
	OrderID       string               `json:"order_id"`
	OrderNumber   string               `json:"order_number"`
	SalespersonID string               `json:"salesperson_id,omitempty"`
	Items         []CommissionResponse `json:"items"`
	Total         decimal.Decimal      `json:"total"`
}
