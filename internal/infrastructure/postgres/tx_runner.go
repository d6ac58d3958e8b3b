package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/decora-api/internal/application/catalog"
	"github.com/jhoicas/decora-api/internal/application/finance"
	"github.com/jhoicas/decora-api/internal/application/quoting"
	"github.com/jhoicas/decora-api/internal/application/usecase"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

var (
	_ catalog.TxRunner     = (*TxRunner)(nil)
	_ quoting.TxRunner     = (*TxRunner)(nil)
	_ finance.TxRunner     = (*TxRunner)(nil)
	_ usecase.UserTxRunner = (*TxRunner)(nil)
)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// run abre a transação, executa fn e faz Commit; qualquer erro desfaz tudo.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCatalog troca de preço de material (arquiva o vigente e insere o novo).
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(materials repository.MaterialRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewMaterialRepository(tx))
	})
}

// RunQuote gravação de itens e totais do orçamento.
func (r *TxRunner) RunQuote(ctx context.Context, fn func(quotes repository.QuoteRepository, items repository.LineItemRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewQuoteRepository(tx), NewLineItemRepository(tx))
	})
}

// RunApproval status do orçamento, pedido e conta a receber.
func (r *TxRunner) RunApproval(ctx context.Context, fn func(quotes repository.QuoteRepository, orders quoting.OrderWriter, accounts quoting.AccountWriter) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewQuoteRepository(tx), NewOrderRepository(tx), NewReceivableRepository(tx))
	})
}

// RunUser usuário e, para vendedores, o cadastro de vendedor.
func (r *TxRunner) RunUser(ctx context.Context, fn func(users repository.UserRepository, salespeople repository.SalespersonRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewUserRepository(tx), NewSalespersonRepository(tx))
	})
}

// RunReceivables passos críticos do registro de recebimento.
func (r *TxRunner) RunReceivables(ctx context.Context, fn func(receivables repository.ReceivableRepository) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewReceivableRepository(tx))
	})
}
