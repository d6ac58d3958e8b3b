package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

var _ repository.ReceivableRepository = (*ReceivableRepo)(nil)

// ReceivableRepo contas a receber e parcelas.
type ReceivableRepo struct {
	q Querier
}

// NewReceivableRepository constrói o adaptador. Aceita pool ou tx.
func NewReceivableRepository(q Querier) *ReceivableRepo {
	return &ReceivableRepo{q: q}
}

const (
	accountColumns     = `id, company_id, order_id, client_name, description, total, paid_amount, status, created_at, updated_at`
	installmentColumns = `id, account_id, number, due_date, amount, status, paid_at, payment_method_id`
)

func scanAccount(row pgx.Row) (*entity.AccountReceivable, error) {
	var a entity.AccountReceivable
	var orderID *string
	err := row.Scan(&a.ID, &a.CompanyID, &orderID, &a.ClientName, &a.Description, &a.Total, &a.PaidAmount,
		&a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.OrderID = deref(orderID)
	return &a, nil
}

func scanInstallment(row pgx.Row) (*entity.Installment, error) {
	var in entity.Installment
	var method *string
	err := row.Scan(&in.ID, &in.AccountID, &in.Number, &in.DueDate, &in.Amount, &in.Status, &in.PaidAt, &method)
	if err != nil {
		return nil, err
	}
	in.PaymentMethodID = deref(method)
	return &in, nil
}

// GetByID conta com as parcelas ordenadas por número.
func (r *ReceivableRepo) GetByID(ctx context.Context, id string) (*entity.AccountReceivable, error) {
	a, err := scanAccount(r.q.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts_receivable WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account receivable: %w", err)
	}
	if a.Installments, err = r.ListInstallments(ctx, a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

// overdueCondition conta não paga com parcela pendente vencida antes da data em $5.
const overdueCondition = `(a.status <> 'pago' AND EXISTS (
		SELECT 1 FROM installments i
		WHERE i.account_id = a.id AND i.status = 'pendente' AND i.due_date < $5))`

// List contas da empresa com as parcelas. O filtro segue o status derivado: atrasado é
// calculado aqui, antes de LIMIT/OFFSET, e contas atrasadas não aparecem nos outros status.
func (r *ReceivableRepo) List(ctx context.Context, companyID string, f repository.ReceivableFilter) ([]*entity.AccountReceivable, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts_receivable a
		WHERE a.company_id = $1 AND (
			$2 = ''
			OR ($2 = 'atrasado' AND ` + overdueCondition + `)
			OR ($2 <> 'atrasado' AND a.status = $2 AND NOT ` + overdueCondition + `)
		)
		ORDER BY a.created_at DESC LIMIT $3 OFFSET $4`
	today := f.Today
	if today.IsZero() {
		today = time.Now()
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	rows, err := r.q.Query(ctx, query, companyID, f.Status, f.Limit, f.Offset, day)
	if err != nil {
		return nil, fmt.Errorf("list accounts receivable: %w", err)
	}
	var list []*entity.AccountReceivable
	byID := make(map[string]*entity.AccountReceivable)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan account receivable: %w", err)
		}
		list = append(list, a)
		byID[a.ID] = a
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]string, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
	}
	irows, err := r.q.Query(ctx, `SELECT `+installmentColumns+` FROM installments
		WHERE account_id = ANY($1::uuid[]) ORDER BY account_id, number`, ids)
	if err != nil {
		return nil, fmt.Errorf("list installments: %w", err)
	}
	defer irows.Close()
	for irows.Next() {
		in, err := scanInstallment(irows)
		if err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}
		if a := byID[in.AccountID]; a != nil {
			a.Installments = append(a.Installments, in)
		}
	}
	return list, irows.Err()
}

// GetInstallment obtém uma parcela.
func (r *ReceivableRepo) GetInstallment(ctx context.Context, id string) (*entity.Installment, error) {
	in, err := scanInstallment(r.q.QueryRow(ctx, `SELECT `+installmentColumns+` FROM installments WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get installment: %w", err)
	}
	return in, nil
}

// ListInstallments parcelas da conta por número.
func (r *ReceivableRepo) ListInstallments(ctx context.Context, accountID string) ([]*entity.Installment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+installmentColumns+` FROM installments WHERE account_id = $1 ORDER BY number`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list installments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Installment
	for rows.Next() {
		in, err := scanInstallment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}
		list = append(list, in)
	}
	return list, rows.Err()
}

// MarkInstallmentPaid só altera parcelas pendentes. Dois registros concorrentes da mesma parcela:
// o segundo vê zero linhas afetadas.
func (r *ReceivableRepo) MarkInstallmentPaid(ctx context.Context, id string, paidAt time.Time, paymentMethodID string) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE installments SET status = $2, paid_at = $3, payment_method_id = $4
		WHERE id = $1 AND status = $5`,
		id, entity.InstallmentPaid, paidAt, nullIfEmpty(paymentMethodID), entity.InstallmentPending,
	)
	if err != nil {
		return false, fmt.Errorf("mark installment paid: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateAccountStatus grava valor pago e status da conta.
func (r *ReceivableRepo) UpdateAccountStatus(ctx context.Context, accountID string, paid decimal.Decimal, status string, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE accounts_receivable SET paid_amount = $2, status = $3, updated_at = $4 WHERE id = $1`,
		accountID, paid, status, at,
	)
	if err != nil {
		return fmt.Errorf("update account status: %w", err)
	}
	return nil
}

// CreateAccount insere a conta e as parcelas. Usar dentro de transação.
func (r *ReceivableRepo) CreateAccount(ctx context.Context, a *entity.AccountReceivable) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO accounts_receivable (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.CompanyID, nullIfEmpty(a.OrderID), a.ClientName, a.Description, a.Total, a.PaidAmount,
		a.Status, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account receivable: %w", err)
	}
	for _, in := range a.Installments {
		_, err := r.q.Exec(ctx, `
			INSERT INTO installments (id, account_id, number, due_date, amount, status)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			in.ID, a.ID, in.Number, in.DueDate, in.Amount, in.Status,
		)
		if err != nil {
			return fmt.Errorf("insert installment %d: %w", in.Number, err)
		}
	}
	return nil
}
