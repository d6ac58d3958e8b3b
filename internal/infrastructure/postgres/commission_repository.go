package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

var _ repository.CommissionRepository = (*CommissionRepo)(nil)

// CommissionRepo comissões por parcela. A constraint única (order_id, installment_number)
// impede a segunda comissão mesmo entre registros concorrentes.
type CommissionRepo struct {
	q Querier
}

// NewCommissionRepository constrói o adaptador.
func NewCommissionRepository(q Querier) *CommissionRepo {
	return &CommissionRepo{q: q}
}

// ExistsFor indica se já há comissão para (pedido, parcela).
func (r *CommissionRepo) ExistsFor(ctx context.Context, orderID string, installmentNumber int) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM commissions WHERE order_id = $1 AND installment_number = $2)`,
		orderID, installmentNumber,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check commission: %w", err)
	}
	return exists, nil
}

// Create persiste a comissão.
func (r *CommissionRepo) Create(ctx context.Context, c *entity.Commission) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO commissions (id, company_id, order_id, salesperson_id, installment_number, percent, base_value, value, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.CompanyID, c.OrderID, c.SalespersonID, c.InstallmentNumber, c.Percent, c.BaseValue, c.Value,
		c.Status, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert commission: %w", err)
	}
	return nil
}

// ListByOrder comissões do pedido por parcela.
func (r *CommissionRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Commission, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, order_id, salesperson_id, installment_number, percent, base_value, value, status, created_at
		FROM commissions WHERE order_id = $1 ORDER BY installment_number`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list commissions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Commission
	for rows.Next() {
		var c entity.Commission
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.OrderID, &c.SalespersonID, &c.InstallmentNumber,
			&c.Percent, &c.BaseValue, &c.Value, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan commission: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
