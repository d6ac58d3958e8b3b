package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo catálogo de materiais. O custo exposto é sempre o da linha não arquivada em material_prices.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository constrói o adaptador. Aceita pool ou tx.
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// material sem preço ativo sai como inativo
const materialSelect = `
	SELECT m.id, m.company_id, m.code, m.name, m.category,
		COALESCE(p.unit_cost, 0), COALESCE(p.id::text, ''),
		m.roll_width, m.roll_length, m.minimum_area,
		m.active AND p.id IS NOT NULL, m.created_at, m.updated_at
	FROM materials m
	LEFT JOIN material_prices p ON p.material_id = m.id AND p.archived_at IS NULL`

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(&m.ID, &m.CompanyID, &m.Code, &m.Name, &m.Category,
		&m.UnitCost, &m.PriceID,
		&m.RollWidth, &m.RollLength, &m.MinimumArea,
		&m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste o material. O preço inicial é gravado por InsertPrice.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (id, company_id, code, name, category, roll_width, roll_length, minimum_area, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.Code, m.Name, m.Category,
		m.RollWidth, m.RollLength, m.MinimumArea, m.Active, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtém o material com o preço ativo.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, materialSelect+` WHERE m.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// List lista o catálogo da empresa. Search procura em nome e código.
func (r *MaterialRepo) List(ctx context.Context, companyID string, f repository.MaterialFilter) ([]*entity.Material, error) {
	where := []string{"m.company_id = $1"}
	args := []any{companyID}
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("m.category = $%d", len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		where = append(where, fmt.Sprintf("(m.name ILIKE $%d OR m.code ILIKE $%d)", len(args), len(args)))
	}
	if !f.IncludeInactive {
		where = append(where, "m.active AND p.id IS NOT NULL")
	}
	args = append(args, f.Limit, f.Offset)
	query := materialSelect + ` WHERE ` + strings.Join(where, " AND ") +
		fmt.Sprintf(` ORDER BY m.category, m.name LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// SetActive arquiva ou reativa o material.
func (r *MaterialRepo) SetActive(ctx context.Context, id string, active bool, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE materials SET active = $2, updated_at = $3 WHERE id = $1`, id, active, at)
	if err != nil {
		return fmt.Errorf("set material active: %w", err)
	}
	return nil
}

// ArchiveActivePrice fecha a vigência do preço atual.
func (r *MaterialRepo) ArchiveActivePrice(ctx context.Context, materialID string, at time.Time) error {
	_, err := r.q.Exec(ctx,
		`UPDATE material_prices SET archived_at = $2 WHERE material_id = $1 AND archived_at IS NULL`,
		materialID, at,
	)
	if err != nil {
		return fmt.Errorf("archive material price: %w", err)
	}
	return nil
}

// InsertPrice grava uma nova versão de preço. O índice único parcial garante um só preço ativo;
// chamar sem arquivar o anterior devolve domain.ErrConflict.
func (r *MaterialRepo) InsertPrice(ctx context.Context, materialID string, unitCost decimal.Decimal, at time.Time) (*entity.MaterialPrice, error) {
	p := &entity.MaterialPrice{ID: uuid.New().String(), MaterialID: materialID, UnitCost: unitCost, ValidFrom: at}
	_, err := r.q.Exec(ctx,
		`INSERT INTO material_prices (id, material_id, unit_cost, valid_from) VALUES ($1, $2, $3, $4)`,
		p.ID, p.MaterialID, p.UnitCost, p.ValidFrom,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("insert material price: %w", err)
	}
	if _, err := r.q.Exec(ctx, `UPDATE materials SET updated_at = $2 WHERE id = $1`, materialID, at); err != nil {
		return nil, fmt.Errorf("touch material: %w", err)
	}
	return p, nil
}

// PriceHistory versões de preço, da mais recente para a mais antiga.
func (r *MaterialRepo) PriceHistory(ctx context.Context, materialID string) ([]*entity.MaterialPrice, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, material_id, unit_cost, valid_from, archived_at
		FROM material_prices WHERE material_id = $1 ORDER BY valid_from DESC`, materialID)
	if err != nil {
		return nil, fmt.Errorf("list material prices: %w", err)
	}
	defer rows.Close()
	var list []*entity.MaterialPrice
	for rows.Next() {
		var p entity.MaterialPrice
		if err := rows.Scan(&p.ID, &p.MaterialID, &p.UnitCost, &p.ValidFrom, &p.ArchivedAt); err != nil {
			return nil, fmt.Errorf("scan material price: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
