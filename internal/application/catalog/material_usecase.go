package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/repository"
	"github.com/jhoicas/decora-api/pkg/logger"
)

// MaterialUseCase cadastro de materiais e versionamento de preços.
// Um material tem sempre exatamente um preço ativo; trocar o preço arquiva o anterior.
type MaterialUseCase struct {
	repo  repository.MaterialRepository
	tx    TxRunner
	cache MaterialCache
	log   *logger.Logger
	now   func() time.Time
}

// NewMaterialUseCase constrói o caso de uso. cache pode ser nil.
func NewMaterialUseCase(repo repository.MaterialRepository, tx TxRunner, cache MaterialCache, log *logger.Logger) *MaterialUseCase {
	if cache == nil {
		cache = noopCache{}
	}
	return &MaterialUseCase{repo: repo, tx: tx, cache: cache, log: log.Component("catalog"), now: time.Now}
}

// Create cadastra o material e grava o preço inicial na mesma transação.
func (uc *MaterialUseCase) Create(ctx context.Context, companyID string, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || !entity.ValidMaterialCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost.IsNegative() || in.RollWidth.IsNegative() || in.RollLength.IsNegative() || in.MinimumArea.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := uc.now()
	m := &entity.Material{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Code:        strings.TrimSpace(in.Code),
		Name:        in.Name,
		Category:    in.Category,
		UnitCost:    in.UnitCost,
		RollWidth:   in.RollWidth,
		RollLength:  in.RollLength,
		MinimumArea: in.MinimumArea,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.RunCatalog(ctx, func(materials repository.MaterialRepository) error {
		if err := materials.Create(ctx, m); err != nil {
			return err
		}
		price, err := materials.InsertPrice(ctx, m.ID, in.UnitCost, now)
		if err != nil {
			return err
		}
		m.PriceID = price.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// Get devolve um material da empresa.
func (uc *MaterialUseCase) Get(ctx context.Context, companyID, id string) (*dto.MaterialResponse, error) {
	m, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// List lista o catálogo com filtro opcional de categoria e busca por nome/código.
func (uc *MaterialUseCase) List(ctx context.Context, companyID string, f repository.MaterialFilter) (*dto.MaterialListResponse, error) {
	if f.Category != "" && !entity.ValidMaterialCategory(f.Category) {
		return nil, domain.ErrInvalidInput
	}
	page := dto.PageRequest{Limit: f.Limit, Offset: f.Offset}
	page.DefaultPage()
	f.Limit, f.Offset = page.Limit, page.Offset

	list, err := uc.repo.List(ctx, companyID, f)
	if err != nil {
		return nil, err
	}
	out := &dto.MaterialListResponse{
		Items: make([]dto.MaterialResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}
	for _, m := range list {
		out.Items = append(out.Items, *toMaterialResponse(m))
	}
	return out, nil
}

// UpdatePrice arquiva o preço vigente e grava o novo. Itens já orçados guardam o custo calculado
// e só mudam quando forem salvos de novo.
func (uc *MaterialUseCase) UpdatePrice(ctx context.Context, companyID, id string, in dto.UpdatePriceRequest) (*dto.MaterialResponse, error) {
	if in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	m, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if !m.Active {
		return nil, domain.ErrMaterialInactive
	}
	if m.UnitCost.Equal(in.UnitCost) {
		return toMaterialResponse(m), nil
	}

	now := uc.now()
	err = uc.tx.RunCatalog(ctx, func(materials repository.MaterialRepository) error {
		if err := materials.ArchiveActivePrice(ctx, m.ID, now); err != nil {
			return err
		}
		price, err := materials.InsertPrice(ctx, m.ID, in.UnitCost, now)
		if err != nil {
			return err
		}
		m.PriceID = price.ID
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("atualizar preço: %w", err)
	}
	uc.invalidate(ctx, m.ID)

	uc.log.Info().Str("material_id", m.ID).
		Str("old_cost", m.UnitCost.String()).Str("new_cost", in.UnitCost.String()).
		Msg("preço de material atualizado")
	m.UnitCost = in.UnitCost
	m.UpdatedAt = now
	return toMaterialResponse(m), nil
}

// PriceHistory versões de preço do material, da mais recente para a mais antiga.
func (uc *MaterialUseCase) PriceHistory(ctx context.Context, companyID, id string) ([]dto.MaterialPriceResponse, error) {
	if _, err := uc.load(ctx, companyID, id); err != nil {
		return nil, err
	}
	prices, err := uc.repo.PriceHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialPriceResponse, 0, len(prices))
	for _, p := range prices {
		out = append(out, dto.MaterialPriceResponse{ID: p.ID, UnitCost: p.UnitCost, ValidFrom: p.ValidFrom, ArchivedAt: p.ArchivedAt})
	}
	return out, nil
}

// Archive desativa o material. Itens novos não podem mais usá-lo.
func (uc *MaterialUseCase) Archive(ctx context.Context, companyID, id string) error {
	m, err := uc.load(ctx, companyID, id)
	if err != nil {
		return err
	}
	if !m.Active {
		return nil
	}
	if err := uc.repo.SetActive(ctx, m.ID, false, uc.now()); err != nil {
		return err
	}
	uc.invalidate(ctx, m.ID)
	return nil
}

func (uc *MaterialUseCase) load(ctx context.Context, companyID, id string) (*entity.Material, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if m.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return m, nil
}

// invalidate falha de cache não desfaz a escrita; a entrada expira pelo TTL.
func (uc *MaterialUseCase) invalidate(ctx context.Context, id string) {
	if err := uc.cache.Invalidate(ctx, id); err != nil {
		uc.log.Warn().Err(err).Str("material_id", id).Msg("falha ao invalidar cache de material")
	}
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:          m.ID,
		Code:        m.Code,
		Name:        m.Name,
		Category:    m.Category,
		UnitCost:    m.UnitCost,
		RollWidth:   m.RollWidth,
		RollLength:  m.RollLength,
		MinimumArea: m.MinimumArea,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
