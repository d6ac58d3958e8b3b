package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo notificações. (kind, reference) é único: um marco nunca é notificado duas vezes.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository constrói o adaptador.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste a notificação.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO notifications (id, company_id, kind, title, message, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.CompanyID, n.Kind, n.Title, n.Message, n.Reference, n.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListByCompany notificações mais recentes da empresa.
func (r *NotificationRepo) ListByCompany(ctx context.Context, companyID string, limit int) ([]*entity.Notification, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, kind, title, message, reference, created_at
		FROM notifications WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2`, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.CompanyID, &n.Kind, &n.Title, &n.Message, &n.Reference, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}
