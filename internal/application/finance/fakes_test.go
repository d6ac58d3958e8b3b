package finance_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/receivable"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

var errBoom = errors.New("falha simulada")

// memReceivables contas e parcelas em memória. snapshot/restore simulam o rollback.
type memReceivables struct {
	mu           sync.Mutex
	accounts     map[string]*entity.AccountReceivable
	installments map[string]*entity.Installment

	failUpdateStatus bool
}

func newMemReceivables() *memReceivables {
	return &memReceivables{accounts: map[string]*entity.AccountReceivable{}, installments: map[string]*entity.Installment{}}
}

func (m *memReceivables) add(acc *entity.AccountReceivable) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, in := range acc.Installments {
		in.AccountID = acc.ID
		cp := *in
		m.installments[in.ID] = &cp
	}
	cp := *acc
	cp.Installments = nil
	m.accounts[acc.ID] = &cp
}

func (m *memReceivables) snapshot() (map[string]entity.AccountReceivable, map[string]entity.Installment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	accs := map[string]entity.AccountReceivable{}
	for k, v := range m.accounts {
		accs[k] = *v
	}
	insts := map[string]entity.Installment{}
	for k, v := range m.installments {
		insts[k] = *v
	}
	return accs, insts
}

func (m *memReceivables) restore(accs map[string]entity.AccountReceivable, insts map[string]entity.Installment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = map[string]*entity.AccountReceivable{}
	for k, v := range accs {
		v := v
		m.accounts[k] = &v
	}
	m.installments = map[string]*entity.Installment{}
	for k, v := range insts {
		v := v
		m.installments[k] = &v
	}
}

func (m *memReceivables) listLocked(accountID string) []*entity.Installment {
	var out []*entity.Installment
	for _, in := range m.installments {
		if in.AccountID == accountID {
			cp := *in
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func (m *memReceivables) GetByID(_ context.Context, id string) (*entity.AccountReceivable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return nil, nil
	}
	cp := *acc
	cp.Installments = m.listLocked(id)
	return &cp, nil
}

func (m *memReceivables) List(_ context.Context, companyID string, f repository.ReceivableFilter) ([]*entity.AccountReceivable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.AccountReceivable
	for _, acc := range m.accounts {
		if acc.CompanyID != companyID {
			continue
		}
		cp := *acc
		cp.Installments = m.listLocked(acc.ID)
		if !receivable.MatchesStatus(&cp, f.Status, f.Today) {
			continue
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if f.Offset >= len(out) {
		return nil, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memReceivables) GetInstallment(_ context.Context, id string) (*entity.Installment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	in, ok := m.installments[id]
	if !ok {
		return nil, nil
	}
	cp := *in
	return &cp, nil
}

func (m *memReceivables) ListInstallments(_ context.Context, accountID string) ([]*entity.Installment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listLocked(accountID), nil
}

func (m *memReceivables) MarkInstallmentPaid(_ context.Context, id string, paidAt time.Time, method string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	in, ok := m.installments[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if in.Status == entity.InstallmentPaid {
		return false, nil
	}
	in.Status = entity.InstallmentPaid
	in.PaidAt = &paidAt
	in.PaymentMethodID = method
	return true, nil
}

func (m *memReceivables) UpdateAccountStatus(_ context.Context, accountID string, paid decimal.Decimal, status string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdateStatus {
		return errBoom
	}
	acc := m.accounts[accountID]
	acc.PaidAmount = paid
	acc.Status = status
	acc.UpdatedAt = at
	return nil
}

// memTx roda fn com o mesmo repositório e desfaz as mudanças se fn falhar.
type memTx struct{ repo *memReceivables }

func (t memTx) RunReceivables(ctx context.Context, fn func(repository.ReceivableRepository) error) error {
	accs, insts := t.repo.snapshot()
	if err := fn(t.repo); err != nil {
		t.repo.restore(accs, insts)
		return err
	}
	return nil
}

type memOrders map[string]*entity.Order

func (m memOrders) GetByID(_ context.Context, id string) (*entity.Order, error) {
	return m[id], nil
}

type memSalespeople map[string]*entity.Salesperson

func (m memSalespeople) GetByID(_ context.Context, id string) (*entity.Salesperson, error) {
	return m[id], nil
}

func (m memSalespeople) Save(_ context.Context, s *entity.Salesperson) error {
	m[s.ID] = s
	return nil
}

type memCommissions struct {
	mu   sync.Mutex
	rows []*entity.Commission
	// skipExistsCheck simula duas requisições que passaram pela verificação ao mesmo tempo.
	skipExistsCheck bool
	fail            bool
}

func (m *memCommissions) ExistsFor(_ context.Context, orderID string, n int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.skipExistsCheck {
		return false, nil
	}
	for _, c := range m.rows {
		if c.OrderID == orderID && c.InstallmentNumber == n {
			return true, nil
		}
	}
	return false, nil
}

func (m *memCommissions) Create(_ context.Context, c *entity.Commission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errBoom
	}
	for _, r := range m.rows {
		if r.OrderID == c.OrderID && r.InstallmentNumber == c.InstallmentNumber {
			return domain.ErrDuplicate
		}
	}
	m.rows = append(m.rows, c)
	return nil
}

func (m *memCommissions) ListByOrder(_ context.Context, orderID string) ([]*entity.Commission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Commission
	for _, c := range m.rows {
		if c.OrderID == orderID {
			out = append(out, c)
		}
	}
	return out, nil
}

type memLedger struct {
	entries map[string]*entity.LedgerEntry
	fail    bool
}

func (m *memLedger) Create(_ context.Context, e *entity.LedgerEntry) error {
	if m.fail {
		return errBoom
	}
	if m.entries == nil {
		m.entries = map[string]*entity.LedgerEntry{}
	}
	m.entries[e.ID] = e
	return nil
}

func (m *memLedger) AttachReceipt(_ context.Context, id, key string) error {
	e, ok := m.entries[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.ReceiptKey = key
	return nil
}

type memNotifications struct {
	rows []*entity.Notification
	fail bool
}

func (m *memNotifications) Create(_ context.Context, n *entity.Notification) error {
	if m.fail {
		return errBoom
	}
	for _, r := range m.rows {
		if r.Kind == n.Kind && r.Reference == n.Reference {
			return domain.ErrDuplicate
		}
	}
	m.rows = append(m.rows, n)
	return nil
}

func (m *memNotifications) ListByCompany(_ context.Context, companyID string, limit int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, n := range m.rows {
		if n.CompanyID == companyID && len(out) < limit {
			out = append(out, n)
		}
	}
	return out, nil
}

type memReceipts struct {
	files map[string]*entity.ReceiptFile
	fail  bool
}

func (m *memReceipts) Put(_ context.Context, f *entity.ReceiptFile) (string, error) {
	if m.fail {
		return "", errBoom
	}
	if m.files == nil {
		m.files = map[string]*entity.ReceiptFile{}
	}
	f.Key = uuid.New().String()
	m.files[f.Key] = f
	return f.Key, nil
}

func (m *memReceipts) Get(_ context.Context, key string) (*entity.ReceiptFile, error) {
	return m.files[key], nil
}
