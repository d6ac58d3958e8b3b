package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/domain/entity"
)

// ReceivableFilter filtros da listagem de contas a receber.
// Status é comparado com o status derivado em Today: atrasado traz contas não pagas com
// parcela pendente vencida antes de Today, e essas contas ficam fora dos demais filtros.
type ReceivableFilter struct {
	Status string
	Today  time.Time
	Limit  int
	Offset int
}

// ReceivableRepository porta das contas a receber e parcelas.
type ReceivableRepository interface {
	// GetByID devolve a conta com as parcelas ordenadas por número.
	GetByID(ctx context.Context, id string) (*entity.AccountReceivable, error)
	// List aplica o filtro de status antes da paginação.
	List(ctx context.Context, companyID string, f ReceivableFilter) ([]*entity.AccountReceivable, error)
	GetInstallment(ctx context.Context, id string) (*entity.Installment, error)
	ListInstallments(ctx context.Context, accountID string) ([]*entity.Installment, error)
	// MarkInstallmentPaid só altera parcelas pendentes; devolve false se a parcela já estava paga.
	MarkInstallmentPaid(ctx context.Context, id string, paidAt time.Time, paymentMethodID string) (bool, error)
	UpdateAccountStatus(ctx context.Context, accountID string, paid decimal.Decimal, status string, at time.Time) error
}

// OrderRepository leitura de pedidos.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Order, error)
}

// SalespersonRepository vendedores. O id do vendedor é o id do usuário.
type SalespersonRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Salesperson, error)
	Save(ctx context.Context, s *entity.Salesperson) error
}

// CommissionRepository porta das comissões.
type CommissionRepository interface {
	ExistsFor(ctx context.Context, orderID string, installmentNumber int) (bool, error)
	// Create devolve domain.ErrDuplicate se já existir comissão para (pedido, parcela).
	Create(ctx context.Context, c *entity.Commission) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Commission, error)
}

// LedgerRepository porta dos lançamentos financeiros.
type LedgerRepository interface {
	Create(ctx context.Context, e *entity.LedgerEntry) error
	AttachReceipt(ctx context.Context, entryID, receiptKey string) error
}

// NotificationRepository porta das notificações.
type NotificationRepository interface {
	// Create devolve domain.ErrDuplicate se a notificação (tipo, referência) já existir.
	Create(ctx context.Context, n *entity.Notification) error
	ListByCompany(ctx context.Context, companyID string, limit int) ([]*entity.Notification, error)
}

// ReceiptStorage armazenamento de comprovantes.
type ReceiptStorage interface {
	// Put grava o arquivo e devolve a chave gerada.
	Put(ctx context.Context, f *entity.ReceiptFile) (string, error)
	Get(ctx context.Context, key string) (*entity.ReceiptFile, error)
}
