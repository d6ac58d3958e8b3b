package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/receivable"
	"github.com/jhoicas/decora-api/internal/domain/repository"
	"github.com/jhoicas/decora-api/pkg/logger"
)

// Nomes dos passos do recebimento (campo step nos logs e nas falhas devolvidas).
const (
	StepMarkInstallment = "parcela"
	StepPaidAmount      = "valor_pago"
	StepAccountStatus   = "status_conta"
	StepMilestones      = "marcos"
	StepLedger          = "lancamento"
	StepCommission      = "comissao"
	StepReceipt         = "comprovante"
)

// ReceiptConfig parâmetros do recebimento.
type ReceiptConfig struct {
	DefaultCommission decimal.Decimal
	MaxReceiptBytes   int
}

// step passo do recebimento. Passos críticos rodam na transação e abortam tudo;
// auxiliares rodam depois do commit e só registram a falha.
type step struct {
	name     string
	critical bool
	run      func(ctx context.Context, r *receiptRun) error
}

// receiptRun estado compartilhado entre os passos de um recebimento.
type receiptRun struct {
	companyID   string
	userID      string
	in          dto.RegisterReceiptRequest
	installment *entity.Installment
	account     *entity.AccountReceivable
	paidBefore  decimal.Decimal

	// atado à transação durante os passos críticos
	tx repository.ReceivableRepository

	installments []*entity.Installment
	paid         decimal.Decimal
	status       string

	order       *entity.Order
	orderLoaded bool

	milestones   []int
	ledgerID     string
	commissionID string
	receiptKey   string
	failures     []dto.StepFailureResponse
}

// RegisterReceiptUseCase baixa de parcela com os efeitos colaterais do recebimento.
//
// Passos, nesta ordem:
//  1. marcar a parcela como paga (crítico)
//  2. recalcular o valor pago da conta (crítico)
//  3. recalcular o status da conta (crítico)
//  4. notificar marcos de 40/60/100% do pedido
//  5. lançar a receita no fluxo de caixa
//  6. gerar a comissão do vendedor
//  7. guardar o comprovante e vinculá-lo ao lançamento
//
// 1 a 3 rodam numa única transação. 4 a 7 nunca desfazem o recebimento.
type RegisterReceiptUseCase struct {
	receivables   repository.ReceivableRepository
	orders        repository.OrderRepository
	salespeople   repository.SalespersonRepository
	commissions   repository.CommissionRepository
	ledger        repository.LedgerRepository
	notifications repository.NotificationRepository
	receipts      repository.ReceiptStorage
	tx            TxRunner
	cfg           ReceiptConfig
	log           *logger.Logger
	now           func() time.Time
	steps         []step
}

// NewRegisterReceiptUseCase constrói o caso de uso.
func NewRegisterReceiptUseCase(
	receivables repository.ReceivableRepository,
	orders repository.OrderRepository,
	salespeople repository.SalespersonRepository,
	commissions repository.CommissionRepository,
	ledger repository.LedgerRepository,
	notifications repository.NotificationRepository,
	receipts repository.ReceiptStorage,
	tx TxRunner,
	cfg ReceiptConfig,
	log *logger.Logger,
) *RegisterReceiptUseCase {
	uc := &RegisterReceiptUseCase{
		receivables:   receivables,
		orders:        orders,
		salespeople:   salespeople,
		commissions:   commissions,
		ledger:        ledger,
		notifications: notifications,
		receipts:      receipts,
		tx:            tx,
		cfg:           cfg,
		log:           log.Component("finance"),
		now:           time.Now,
	}
	uc.steps = []step{
		{name: StepMarkInstallment, critical: true, run: uc.markInstallmentPaid},
		{name: StepPaidAmount, critical: true, run: uc.recomputePaidAmount},
		{name: StepAccountStatus, critical: true, run: uc.recomputeStatus},
		{name: StepMilestones, run: uc.emitMilestones},
		{name: StepLedger, run: uc.recordLedgerEntry},
		{name: StepCommission, run: uc.createCommission},
		{name: StepReceipt, run: uc.storeReceipt},
	}
	return uc
}

// RegisterReceipt registra o pagamento da parcela.
// Falhas de validação e dos passos críticos devolvem erro sem gravar nada;
// falhas dos passos auxiliares voltam em Failures com o recebimento já confirmado.
func (uc *RegisterReceiptUseCase) RegisterReceipt(ctx context.Context, companyID, userID string, in dto.RegisterReceiptRequest) (*dto.RegisterReceiptResponse, error) {
	run, err := uc.prepare(ctx, companyID, userID, in)
	if err != nil {
		return nil, err
	}

	err = uc.tx.RunReceivables(ctx, func(receivables repository.ReceivableRepository) error {
		run.tx = receivables
		for _, s := range uc.steps {
			if !s.critical {
				continue
			}
			if err := s.run(ctx, run); err != nil {
				return fmt.Errorf("%s: %w", s.name, err)
			}
		}
		return nil
	})
	run.tx = nil
	if err != nil {
		uc.log.Error().Err(err).Str("installment_id", in.InstallmentID).Msg("recebimento não registrado")
		return nil, err
	}

	for _, s := range uc.steps {
		if s.critical {
			continue
		}
		if err := s.run(ctx, run); err != nil {
			uc.log.Warn().Err(err).Str("step", s.name).
				Str("installment_id", run.installment.ID).Str("account_id", run.account.ID).
				Msg("passo auxiliar do recebimento falhou")
			run.failures = append(run.failures, dto.StepFailureResponse{Step: s.name, Message: err.Error()})
		}
	}

	uc.log.Info().Str("installment_id", run.installment.ID).Str("account_id", run.account.ID).
		Str("status", run.status).Str("paid", run.paid.String()).Ints("milestones", run.milestones).
		Msg("recebimento registrado")

	return &dto.RegisterReceiptResponse{
		AccountID:     run.account.ID,
		InstallmentID: run.installment.ID,
		AccountStatus: run.status,
		PaidAmount:    run.paid,
		Milestones:    run.milestones,
		LedgerEntryID: run.ledgerID,
		CommissionID:  run.commissionID,
		ReceiptKey:    run.receiptKey,
		Failures:      run.failures,
	}, nil
}

// prepare valida a entrada e carrega parcela e conta antes de qualquer escrita.
func (uc *RegisterReceiptUseCase) prepare(ctx context.Context, companyID, userID string, in dto.RegisterReceiptRequest) (*receiptRun, error) {
	if in.InstallmentID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Receipt != nil && uc.cfg.MaxReceiptBytes > 0 && len(in.Receipt.Data) > uc.cfg.MaxReceiptBytes {
		return nil, domain.ErrReceiptTooLarge
	}
	if in.PaidAt.IsZero() {
		in.PaidAt = uc.now()
	}

	inst, err := uc.receivables.GetInstallment(ctx, in.InstallmentID)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, domain.ErrNotFound
	}
	acc, err := uc.receivables.GetByID(ctx, inst.AccountID)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, domain.ErrNotFound
	}
	if acc.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if inst.IsPaid() {
		return nil, domain.ErrInstallmentAlreadyPaid
	}

	return &receiptRun{
		companyID:   companyID,
		userID:      userID,
		in:          in,
		installment: inst,
		account:     acc,
		paidBefore:  receivable.PaidAmount(acc.Installments),
	}, nil
}

func (uc *RegisterReceiptUseCase) markInstallmentPaid(ctx context.Context, r *receiptRun) error {
	ok, err := r.tx.MarkInstallmentPaid(ctx, r.installment.ID, r.in.PaidAt, r.in.PaymentMethodID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrInstallmentAlreadyPaid
	}
	paidAt := r.in.PaidAt
	r.installment.Status = entity.InstallmentPaid
	r.installment.PaidAt = &paidAt
	r.installment.PaymentMethodID = r.in.PaymentMethodID
	return nil
}

func (uc *RegisterReceiptUseCase) recomputePaidAmount(ctx context.Context, r *receiptRun) error {
	list, err := r.tx.ListInstallments(ctx, r.account.ID)
	if err != nil {
		return err
	}
	r.installments = list
	r.paid = receivable.PaidAmount(list)
	return nil
}

func (uc *RegisterReceiptUseCase) recomputeStatus(ctx context.Context, r *receiptRun) error {
	r.status = receivable.AccountStatus(r.account.Total, r.paid, r.installments)
	if err := r.tx.UpdateAccountStatus(ctx, r.account.ID, r.paid, r.status, uc.now()); err != nil {
		return err
	}
	r.account.PaidAmount = r.paid
	r.account.Status = r.status
	r.account.Installments = r.installments
	return nil
}

// emitMilestones compara o percentual pago antes e depois deste recebimento. Um marco já cruzado
// antes não é emitido de novo; duplicata no banco conta como já emitido.
func (uc *RegisterReceiptUseCase) emitMilestones(ctx context.Context, r *receiptRun) error {
	order, err := uc.linkedOrder(ctx, r)
	if err != nil {
		return err
	}
	base := r.account.Total
	label := r.account.ClientName
	if order != nil {
		if order.DiscountedTotal.IsPositive() {
			base = order.DiscountedTotal
		}
		label = "Pedido " + order.Number
	}

	before := receivable.PaidPercent(r.paidBefore, base)
	after := receivable.PaidPercent(r.paid, base)
	var errs []error
	for _, m := range receivable.CrossedMilestones(before, after) {
		n := &entity.Notification{
			ID:        uuid.New().String(),
			CompanyID: r.companyID,
			Kind:      entity.NotificationPaymentMilestone,
			Title:     m.Title(),
			Message:   fmt.Sprintf("%s: %s%% recebido (R$ %s de R$ %s)", label, after.StringFixed(1), r.paid.StringFixed(2), base.StringFixed(2)),
			Reference: fmt.Sprintf("%s:%d", r.account.ID, m.Percent),
			CreatedAt: uc.now(),
		}
		if err := uc.notifications.Create(ctx, n); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				continue
			}
			errs = append(errs, fmt.Errorf("marco %d%%: %w", m.Percent, err))
			continue
		}
		r.milestones = append(r.milestones, m.Percent)
	}
	return errors.Join(errs...)
}

func (uc *RegisterReceiptUseCase) recordLedgerEntry(ctx context.Context, r *receiptRun) error {
	e := &entity.LedgerEntry{
		ID:              uuid.New().String(),
		CompanyID:       r.companyID,
		Kind:            entity.LedgerIncome,
		Amount:          r.installment.Amount,
		Date:            r.in.PaidAt,
		PaymentMethodID: r.in.PaymentMethodID,
		AccountID:       r.account.ID,
		InstallmentID:   r.installment.ID,
		Description:     fmt.Sprintf("Recebimento parcela %d - %s", r.installment.Number, r.account.ClientName),
		CreatedBy:       r.userID,
		CreatedAt:       uc.now(),
	}
	if err := uc.ledger.Create(ctx, e); err != nil {
		return err
	}
	r.ledgerID = e.ID
	return nil
}

// createCommission no máximo uma comissão por (pedido, número da parcela).
func (uc *RegisterReceiptUseCase) createCommission(ctx context.Context, r *receiptRun) error {
	order, err := uc.linkedOrder(ctx, r)
	if err != nil {
		return err
	}
	if order == nil || order.SalespersonID == "" {
		return nil
	}
	exists, err := uc.commissions.ExistsFor(ctx, order.ID, r.installment.Number)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	percent := uc.cfg.DefaultCommission
	sp, err := uc.salespeople.GetByID(ctx, order.SalespersonID)
	if err != nil {
		return err
	}
	if sp != nil && sp.CommissionPercent != nil {
		percent = *sp.CommissionPercent
	}

	c := &entity.Commission{
		ID:                uuid.New().String(),
		CompanyID:         r.companyID,
		OrderID:           order.ID,
		SalespersonID:     order.SalespersonID,
		InstallmentNumber: r.installment.Number,
		Percent:           percent,
		BaseValue:         r.installment.Amount,
		Value:             r.installment.Amount.Mul(percent).Div(decimal.NewFromInt(100)).Round(2),
		Status:            entity.CommissionPending,
		CreatedAt:         uc.now(),
	}
	if err := uc.commissions.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil
		}
		return err
	}
	r.commissionID = c.ID
	return nil
}

func (uc *RegisterReceiptUseCase) storeReceipt(ctx context.Context, r *receiptRun) error {
	up := r.in.Receipt
	if up == nil || len(up.Data) == 0 {
		return nil
	}
	key, err := uc.receipts.Put(ctx, &entity.ReceiptFile{
		CompanyID:   r.companyID,
		FileName:    up.FileName,
		ContentType: up.ContentType,
		Data:        up.Data,
		CreatedAt:   uc.now(),
	})
	if err != nil {
		return err
	}
	r.receiptKey = key
	if r.ledgerID == "" {
		return nil
	}
	return uc.ledger.AttachReceipt(ctx, r.ledgerID, key)
}

// linkedOrder carrega o pedido vinculado à conta uma única vez por recebimento.
func (uc *RegisterReceiptUseCase) linkedOrder(ctx context.Context, r *receiptRun) (*entity.Order, error) {
	if r.orderLoaded || r.account.OrderID == "" {
		return r.order, nil
	}
	o, err := uc.orders.GetByID(ctx, r.account.OrderID)
	if err != nil {
		return nil, err
	}
	r.order = o
	r.orderLoaded = true
	return o, nil
}
