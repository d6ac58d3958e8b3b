package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/decora-api/internal/application/catalog"
	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/repository"
	"github.com/jhoicas/decora-api/pkg/logger"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type memMaterials struct {
	rows       map[string]*entity.Material
	prices     []*entity.MaterialPrice
	failInsert bool
}

func newMem() *memMaterials {
	return &memMaterials{rows: map[string]*entity.Material{}}
}

func (m *memMaterials) Create(_ context.Context, mat *entity.Material) error {
	cp := *mat
	m.rows[mat.ID] = &cp
	return nil
}

func (m *memMaterials) GetByID(_ context.Context, id string) (*entity.Material, error) {
	mat, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *mat
	return &cp, nil
}

func (m *memMaterials) List(_ context.Context, companyID string, f repository.MaterialFilter) ([]*entity.Material, error) {
	var out []*entity.Material
	for _, mat := range m.rows {
		if mat.CompanyID == companyID && (f.Category == "" || mat.Category == f.Category) {
			out = append(out, mat)
		}
	}
	return out, nil
}

func (m *memMaterials) SetActive(_ context.Context, id string, active bool, _ time.Time) error {
	m.rows[id].Active = active
	return nil
}

func (m *memMaterials) ArchiveActivePrice(_ context.Context, id string, at time.Time) error {
	for _, p := range m.prices {
		if p.MaterialID == id && p.ArchivedAt == nil {
			t := at
			p.ArchivedAt = &t
		}
	}
	return nil
}

func (m *memMaterials) InsertPrice(_ context.Context, id string, cost decimal.Decimal, at time.Time) (*entity.MaterialPrice, error) {
	if m.failInsert {
		return nil, errors.New("insert falhou")
	}
	p := &entity.MaterialPrice{ID: id + "-v" + decimal.NewFromInt(int64(len(m.prices)+1)).String(), MaterialID: id, UnitCost: cost, ValidFrom: at}
	m.prices = append(m.prices, p)
	m.rows[id].UnitCost = cost
	m.rows[id].PriceID = p.ID
	return p, nil
}

func (m *memMaterials) PriceHistory(_ context.Context, id string) ([]*entity.MaterialPrice, error) {
	var out []*entity.MaterialPrice
	for i := len(m.prices) - 1; i >= 0; i-- {
		if m.prices[i].MaterialID == id {
			out = append(out, m.prices[i])
		}
	}
	return out, nil
}

func (m *memMaterials) active(id string) []*entity.MaterialPrice {
	var out []*entity.MaterialPrice
	for _, p := range m.prices {
		if p.MaterialID == id && p.ArchivedAt == nil {
			out = append(out, p)
		}
	}
	return out
}

// memTx desfaz as versões de preço gravadas quando fn falha.
type memTx struct{ repo *memMaterials }

func (t memTx) RunCatalog(_ context.Context, fn func(repository.MaterialRepository) error) error {
	prices := make([]entity.MaterialPrice, len(t.repo.prices))
	for i, p := range t.repo.prices {
		prices[i] = *p
	}
	if err := fn(t.repo); err != nil {
		t.repo.prices = t.repo.prices[:len(prices)]
		for i := range prices {
			*t.repo.prices[i] = prices[i]
		}
		return err
	}
	return nil
}

type spyCache struct {
	invalidated []string
	err         error
}

func (c *spyCache) Invalidate(_ context.Context, id string) error {
	c.invalidated = append(c.invalidated, id)
	return c.err
}

func setup() (*catalog.MaterialUseCase, *memMaterials, *spyCache) {
	repo := newMem()
	cache := &spyCache{}
	return catalog.NewMaterialUseCase(repo, memTx{repo: repo}, cache, logger.Nop()), repo, cache
}

func TestCreate_GravaPrecoInicial(t *testing.T) {
	uc, repo, _ := setup()

	out, err := uc.Create(context.Background(), "e1", dto.CreateMaterialRequest{
		Name: " Linho cru ", Category: entity.MaterialFabric, UnitCost: d("49.90"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Linho cru", out.Name)
	assert.True(t, out.Active)
	require.Len(t, repo.active(out.ID), 1)
	assert.True(t, d("49.90").Equal(repo.active(out.ID)[0].UnitCost))

	_, err = uc.Create(context.Background(), "e1", dto.CreateMaterialRequest{Name: "X", Category: "madeira"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdatePrice_ArquivaAnteriorEInvalidaCache(t *testing.T) {
	uc, repo, cache := setup()
	ctx := context.Background()
	m, err := uc.Create(ctx, "e1", dto.CreateMaterialRequest{Name: "Trilho suíço", Category: entity.MaterialRail, UnitCost: d("30")})
	require.NoError(t, err)

	out, err := uc.UpdatePrice(ctx, "e1", m.ID, dto.UpdatePriceRequest{UnitCost: d("34.50")})
	require.NoError(t, err)
	assert.True(t, d("34.50").Equal(out.UnitCost))

	active := repo.active(m.ID)
	require.Len(t, active, 1, "sempre um único preço ativo")
	assert.True(t, d("34.50").Equal(active[0].UnitCost))

	history, err := uc.PriceHistory(ctx, "e1", m.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Nil(t, history[0].ArchivedAt)
	assert.NotNil(t, history[1].ArchivedAt)

	assert.Equal(t, []string{m.ID}, cache.invalidated)
}

func TestUpdatePrice_MesmoValorNaoVersiona(t *testing.T) {
	uc, repo, cache := setup()
	ctx := context.Background()
	m, err := uc.Create(ctx, "e1", dto.CreateMaterialRequest{Name: "Forro", Category: entity.MaterialLining, UnitCost: d("20")})
	require.NoError(t, err)

	_, err = uc.UpdatePrice(ctx, "e1", m.ID, dto.UpdatePriceRequest{UnitCost: d("20.00")})
	require.NoError(t, err)
	assert.Len(t, repo.prices, 1)
	assert.Empty(t, cache.invalidated)
}

func TestUpdatePrice_FalhaMantemPrecoVigente(t *testing.T) {
	uc, repo, cache := setup()
	ctx := context.Background()
	m, err := uc.Create(ctx, "e1", dto.CreateMaterialRequest{Name: "Forro", Category: entity.MaterialLining, UnitCost: d("20")})
	require.NoError(t, err)

	repo.failInsert = true
	_, err = uc.UpdatePrice(ctx, "e1", m.ID, dto.UpdatePriceRequest{UnitCost: d("25")})
	require.Error(t, err)

	active := repo.active(m.ID)
	require.Len(t, active, 1)
	assert.True(t, d("20").Equal(active[0].UnitCost))
	assert.Empty(t, cache.invalidated)
}

func TestUpdatePrice_FalhaDeCacheNaoDesfazEscrita(t *testing.T) {
	uc, repo, cache := setup()
	ctx := context.Background()
	m, err := uc.Create(ctx, "e1", dto.CreateMaterialRequest{Name: "Tecido", Category: entity.MaterialFabric, UnitCost: d("50")})
	require.NoError(t, err)

	cache.err = errors.New("redis fora")
	out, err := uc.UpdatePrice(ctx, "e1", m.ID, dto.UpdatePriceRequest{UnitCost: d("55")})
	require.NoError(t, err)
	assert.True(t, d("55").Equal(out.UnitCost))
	assert.True(t, d("55").Equal(repo.rows[m.ID].UnitCost))
}

func TestArchive(t *testing.T) {
	uc, _, cache := setup()
	ctx := context.Background()
	m, err := uc.Create(ctx, "e1", dto.CreateMaterialRequest{Name: "Tecido", Category: entity.MaterialFabric, UnitCost: d("50")})
	require.NoError(t, err)

	_, err = uc.Get(ctx, "e2", m.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, uc.Archive(ctx, "e2", m.ID), domain.ErrForbidden)

	require.NoError(t, uc.Archive(ctx, "e1", m.ID))
	assert.Equal(t, []string{m.ID}, cache.invalidated)

	_, err = uc.UpdatePrice(ctx, "e1", m.ID, dto.UpdatePriceRequest{UnitCost: d("60")})
	assert.ErrorIs(t, err, domain.ErrMaterialInactive)
}
