package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo lançamentos do fluxo de caixa.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository constrói o adaptador.
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Create persiste o lançamento.
func (r *LedgerRepo) Create(ctx context.Context, e *entity.LedgerEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO ledger_entries (id, company_id, kind, amount, entry_date, payment_method_id, account_id,
			installment_id, description, receipt_key, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		e.ID, e.CompanyID, e.Kind, e.Amount, e.Date, nullIfEmpty(e.PaymentMethodID), nullIfEmpty(e.AccountID),
		nullIfEmpty(e.InstallmentID), e.Description, nullIfEmpty(e.ReceiptKey), nullIfEmpty(e.CreatedBy), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// AttachReceipt vincula o comprovante ao lançamento.
func (r *LedgerRepo) AttachReceipt(ctx context.Context, entryID, receiptKey string) error {
	_, err := r.q.Exec(ctx, `UPDATE ledger_entries SET receipt_key = $2 WHERE id = $1`, entryID, receiptKey)
	if err != nil {
		return fmt.Errorf("attach receipt: %w", err)
	}
	return nil
}
