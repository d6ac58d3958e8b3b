package quoting

import (
	"context"

	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

// TxRunner executa fn numa transação com os repositórios de orçamento atados a ela.
type TxRunner interface {
	RunQuote(ctx context.Context, fn func(quotes repository.QuoteRepository, items repository.LineItemRepository) error) error
	// RunApproval aprovação: status, pedido e conta a receber na mesma transação.
	RunApproval(ctx context.Context, fn func(quotes repository.QuoteRepository, orders OrderWriter, accounts AccountWriter) error) error
}

// OrderWriter grava o pedido do orçamento aprovado.
type OrderWriter interface {
	// Create devolve domain.ErrDuplicate se o orçamento já tem pedido.
	Create(ctx context.Context, o *entity.Order) error
}

// AccountWriter grava a conta a receber com as parcelas.
type AccountWriter interface {
	CreateAccount(ctx context.Context, a *entity.AccountReceivable) error
}

// QuotePDFGenerator gera a proposta comercial em PDF.
type QuotePDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, quote *entity.Quote, company *entity.Company) ([]byte, error)
}
