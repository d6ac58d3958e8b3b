package entity

import "time"

// ReceiptFile comprovante de pagamento armazenado por chave gerada.
type ReceiptFile struct {
	Key         string
	CompanyID   string
	FileName    string
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}
