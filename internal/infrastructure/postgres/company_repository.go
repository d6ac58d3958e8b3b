package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementação do CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository constrói o adaptador de persistência para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// GetByID obtém uma empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `
		SELECT id, name, cnpj, address, phone, email, status, created_at, updated_at
		FROM companies WHERE id = $1`
	var c entity.Company
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.CNPJ, &c.Address, &c.Phone, &c.Email, &c.Status,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// GetPricingSettings parâmetros comerciais da empresa; colunas NULL usam o padrão da configuração.
func (r *CompanyRepo) GetPricingSettings(ctx context.Context, companyID string) (*entity.PricingSettings, error) {
	query := `
		SELECT company_id, installation_point_price, margin_low, margin_standard, margin_premium
		FROM pricing_settings WHERE company_id = $1`
	var s entity.PricingSettings
	err := r.q.QueryRow(ctx, query, companyID).Scan(
		&s.CompanyID, &s.InstallationPointPrice, &s.MarginLow, &s.MarginStandard, &s.MarginPremium,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pricing settings: %w", err)
	}
	return &s, nil
}

// SavePricingSettings upsert por empresa; ponteiros nil viram NULL e voltam ao padrão.
func (r *CompanyRepo) SavePricingSettings(ctx context.Context, s *entity.PricingSettings) error {
	query := `
		INSERT INTO pricing_settings (company_id, installation_point_price, margin_low, margin_standard, margin_premium)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id) DO UPDATE SET
			installation_point_price = EXCLUDED.installation_point_price,
			margin_low = EXCLUDED.margin_low,
			margin_standard = EXCLUDED.margin_standard,
			margin_premium = EXCLUDED.margin_premium`
	_, err := r.q.Exec(ctx, query,
		s.CompanyID, s.InstallationPointPrice, s.MarginLow, s.MarginStandard, s.MarginPremium,
	)
	if err != nil {
		return fmt.Errorf("save pricing settings: %w", err)
	}
	return nil
}
