package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

var _ repository.SewingServiceRepository = (*SewingServiceRepo)(nil)

// SewingServiceRepo serviços de costura e o vínculo com tipos de cortina.
type SewingServiceRepo struct {
	q Querier
}

// NewSewingServiceRepository constrói o adaptador. Aceita pool ou tx.
func NewSewingServiceRepository(q Querier) *SewingServiceRepo {
	return &SewingServiceRepo{q: q}
}

const sewingServiceColumns = `s.id, s.company_id, s.name, s.unit_cost, s.lining_finish, s.active`

// Create persiste o serviço.
func (r *SewingServiceRepo) Create(ctx context.Context, s *entity.SewingService) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sewing_services (id, company_id, name, unit_cost, lining_finish, active)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.CompanyID, s.Name, s.UnitCost, s.LiningFinish, s.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sewing service: %w", err)
	}
	return nil
}

// List serviços da empresa.
func (r *SewingServiceRepo) List(ctx context.Context, companyID string) ([]*entity.SewingService, error) {
	return r.query(ctx, `SELECT `+sewingServiceColumns+` FROM sewing_services s WHERE s.company_id = $1 ORDER BY s.name`, companyID)
}

// GetByIDs serviços pelos IDs; IDs inexistentes são ignorados.
func (r *SewingServiceRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.SewingService, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.query(ctx, `SELECT `+sewingServiceColumns+` FROM sewing_services s WHERE s.id = ANY($1::uuid[])`, ids)
}

// ListForCurtainType serviços vinculados ao tipo de cortina.
func (r *SewingServiceRepo) ListForCurtainType(ctx context.Context, companyID, curtainType string) ([]*entity.SewingService, error) {
	return r.query(ctx, `
		SELECT `+sewingServiceColumns+`
		FROM curtain_type_services c
		JOIN sewing_services s ON s.id = c.service_id
		WHERE c.company_id = $1 AND c.curtain_type = $2
		ORDER BY s.name`, companyID, curtainType)
}

// GetLiningFinish acabamento de forro ativo da empresa.
func (r *SewingServiceRepo) GetLiningFinish(ctx context.Context, companyID string) (*entity.SewingService, error) {
	list, err := r.query(ctx, `
		SELECT `+sewingServiceColumns+` FROM sewing_services s
		WHERE s.company_id = $1 AND s.lining_finish AND s.active
		ORDER BY s.name LIMIT 1`, companyID)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// LinkCurtainType vincula o serviço ao tipo de cortina; vínculo repetido é ignorado.
func (r *SewingServiceRepo) LinkCurtainType(ctx context.Context, companyID, curtainType, serviceID string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO curtain_type_services (company_id, curtain_type, service_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (company_id, curtain_type, service_id) DO NOTHING`,
		companyID, curtainType, serviceID,
	)
	if err != nil {
		return fmt.Errorf("link curtain type: %w", err)
	}
	return nil
}

func (r *SewingServiceRepo) query(ctx context.Context, query string, args ...any) ([]*entity.SewingService, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sewing services: %w", err)
	}
	list, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.SewingService, error) {
		var s entity.SewingService
		err := row.Scan(&s.ID, &s.CompanyID, &s.Name, &s.UnitCost, &s.LiningFinish, &s.Active)
		return &s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan sewing service: %w", err)
	}
	return list, nil
}
