package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository       = (*OrderRepo)(nil)
	_ repository.SalespersonRepository = (*SalespersonRepo)(nil)
)

// OrderRepo pedidos.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository constrói o adaptador.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// GetByID obtém o pedido. discounted_total NULL vira zero.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	var quoteID, salesperson *string
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, quote_id, number, total, COALESCE(discounted_total, 0), salesperson_id
		FROM orders WHERE id = $1`, id).Scan(
		&o.ID, &o.CompanyID, &quoteID, &o.Number, &o.Total, &o.DiscountedTotal, &salesperson,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	o.QuoteID, o.SalespersonID = deref(quoteID), deref(salesperson)
	return &o, nil
}

// Create insere o pedido. Um segundo pedido para o mesmo orçamento devolve domain.ErrDuplicate.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	var discounted any
	if o.DiscountedTotal.IsPositive() {
		discounted = o.DiscountedTotal
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (id, company_id, quote_id, number, total, discounted_total, salesperson_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		o.ID, o.CompanyID, nullIfEmpty(o.QuoteID), o.Number, o.Total, discounted, nullIfEmpty(o.SalespersonID),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// SalespersonRepo vendedores.
type SalespersonRepo struct {
	q Querier
}

// NewSalespersonRepository constrói o adaptador.
func NewSalespersonRepository(q Querier) *SalespersonRepo {
	return &SalespersonRepo{q: q}
}

// GetByID obtém o vendedor.
func (r *SalespersonRepo) GetByID(ctx context.Context, id string) (*entity.Salesperson, error) {
	var s entity.Salesperson
	err := r.q.QueryRow(ctx, `SELECT id, company_id, name, commission_percent FROM salespeople WHERE id = $1`, id).
		Scan(&s.ID, &s.CompanyID, &s.Name, &s.CommissionPercent)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get salesperson: %w", err)
	}
	return &s, nil
}

// Save grava o vendedor; id repetido atualiza nome e comissão.
func (r *SalespersonRepo) Save(ctx context.Context, s *entity.Salesperson) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO salespeople (id, company_id, name, commission_percent)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, commission_percent = EXCLUDED.commission_percent`,
		s.ID, s.CompanyID, s.Name, s.CommissionPercent,
	)
	if err != nil {
		return fmt.Errorf("save salesperson: %w", err)
	}
	return nil
}
