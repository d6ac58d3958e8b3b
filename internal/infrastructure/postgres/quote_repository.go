package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo cabeçalho e totais dos orçamentos.
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository constrói o adaptador. Aceita pool ou tx.
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

const quoteColumns = `id, company_id, number, client_name, client_phone, client_email, address, salesperson_id,
	margin_type, margin_percent, status, subtotal_materials, subtotal_sewing, subtotal_installation,
	cost_total, grand_total, created_at, updated_at`

func scanQuote(row pgx.Row) (*entity.Quote, error) {
	var q entity.Quote
	var salesperson *string
	err := row.Scan(&q.ID, &q.CompanyID, &q.Number, &q.ClientName, &q.ClientPhone, &q.ClientEmail, &q.Address, &salesperson,
		&q.MarginType, &q.MarginPercent, &q.Status, &q.SubtotalMaterials, &q.SubtotalSewing, &q.SubtotalInstallation,
		&q.CostTotal, &q.GrandTotal, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	q.SalespersonID = deref(salesperson)
	return &q, nil
}

// Create persiste o orçamento.
func (r *QuoteRepo) Create(ctx context.Context, q *entity.Quote) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO quotes (`+quoteColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		q.ID, q.CompanyID, q.Number, q.ClientName, q.ClientPhone, q.ClientEmail, q.Address, nullIfEmpty(q.SalespersonID),
		q.MarginType, q.MarginPercent, q.Status, q.SubtotalMaterials, q.SubtotalSewing, q.SubtotalInstallation,
		q.CostTotal, q.GrandTotal, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// GetByID obtém o orçamento sem itens.
func (r *QuoteRepo) GetByID(ctx context.Context, id string) (*entity.Quote, error) {
	q, err := scanQuote(r.q.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return q, nil
}

// List orçamentos da empresa, mais recentes primeiro.
func (r *QuoteRepo) List(ctx context.Context, companyID string, f repository.QuoteFilter) ([]*entity.Quote, error) {
	where := []string{"company_id = $1"}
	args := []any{companyID}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.SalespersonID != "" {
		args = append(args, f.SalespersonID)
		where = append(where, fmt.Sprintf("salesperson_id = $%d", len(args)))
	}
	args = append(args, f.Limit, f.Offset)
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE ` + strings.Join(where, " AND ") +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// UpdatePricing grava margem e totais.
func (r *QuoteRepo) UpdatePricing(ctx context.Context, q *entity.Quote) error {
	_, err := r.q.Exec(ctx, `
		UPDATE quotes SET margin_type = $2, margin_percent = $3, subtotal_materials = $4, subtotal_sewing = $5,
			subtotal_installation = $6, cost_total = $7, grand_total = $8, updated_at = $9
		WHERE id = $1`,
		q.ID, q.MarginType, q.MarginPercent, q.SubtotalMaterials, q.SubtotalSewing,
		q.SubtotalInstallation, q.CostTotal, q.GrandTotal, q.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quote pricing: %w", err)
	}
	return nil
}

// UpdateStatus grava o novo status.
func (r *QuoteRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE quotes SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		return fmt.Errorf("update quote status: %w", err)
	}
	return nil
}

// Delete remove o orçamento; os itens saem em cascata.
func (r *QuoteRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}
	return nil
}

// NextNumber incrementa o contador da empresa. Dentro de uma tx a linha fica travada até o commit.
func (r *QuoteRepo) NextNumber(ctx context.Context, companyID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO quote_counters (company_id, last_value) VALUES ($1, 1)
		ON CONFLICT (company_id) DO UPDATE SET last_value = quote_counters.last_value + 1
		RETURNING last_value`, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next quote number: %w", err)
	}
	return n, nil
}
