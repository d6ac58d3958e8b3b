package entity

import "time"

// Tipos de notificação.
const (
	NotificationPaymentMilestone = "marco_pagamento"
)

// Notification alerta exibido ao usuário.
type Notification struct {
	ID        string
	CompanyID string
	Kind      string
	Title     string
	Message   string
	Reference string
	CreatedAt time.Time
}
