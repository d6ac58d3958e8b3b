package finance

import (
	"context"

	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

// TxRunner executa fn numa transação com o repositório de contas a receber atado a ela.
type TxRunner interface {
	RunReceivables(ctx context.Context, fn func(receivables repository.ReceivableRepository) error) error
}

// InstallmentSheetWriter gera a planilha de parcelas de uma conta.
type InstallmentSheetWriter interface {
	WriteInstallments(acc *entity.AccountReceivable, derivedStatus string) ([]byte, error)
}
