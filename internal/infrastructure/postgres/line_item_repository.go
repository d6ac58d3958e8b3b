package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

var _ repository.LineItemRepository = (*LineItemRepo)(nil)

// LineItemRepo itens do orçamento com o detalhamento de custo gravado.
type LineItemRepo struct {
	q Querier
}

// NewLineItemRepository constrói o adaptador. Aceita pool ou tx.
func NewLineItemRepository(q Querier) *LineItemRepo {
	return &LineItemRepo{q: q}
}

const lineItemColumns = `id, quote_id, position, product_type, curtain_type, description, width, height, quantity,
	fabric_id, lining_id, rail_id, accessory_id, hem_allowance, needs_installation, installation_points,
	installation_value, extra_service_ids, cost_fabric, cost_lining, cost_rail, cost_accessory, cost_sewing,
	cost_installation, cost_total, sale_price, created_at, updated_at`

func scanLineItem(row pgx.Row) (*entity.LineItem, error) {
	var it entity.LineItem
	var fabric, lining, rail, accessory *string
	err := row.Scan(&it.ID, &it.QuoteID, &it.Position, &it.ProductType, &it.CurtainType, &it.Description,
		&it.Width, &it.Height, &it.Quantity,
		&fabric, &lining, &rail, &accessory, &it.HemAllowance, &it.NeedsInstallation, &it.InstallationPoints,
		&it.InstallationValue, &it.ExtraServiceIDs, &it.Costs.Fabric, &it.Costs.Lining, &it.Costs.Rail,
		&it.Costs.Accessory, &it.Costs.Sewing, &it.Costs.Installation, &it.Costs.Total, &it.SalePrice,
		&it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	it.FabricID, it.LiningID, it.RailID, it.AccessoryID = deref(fabric), deref(lining), deref(rail), deref(accessory)
	return &it, nil
}

// Save insere ou substitui o item (upsert por ID).
func (r *LineItemRepo) Save(ctx context.Context, it *entity.LineItem) error {
	extras := it.ExtraServiceIDs
	if extras == nil {
		extras = []string{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO quote_items (`+lineItemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19,
			$20, $21, $22, $23, $24, $25, $26, $27, $28)
		ON CONFLICT (id) DO UPDATE SET
			position = EXCLUDED.position, product_type = EXCLUDED.product_type, curtain_type = EXCLUDED.curtain_type,
			description = EXCLUDED.description, width = EXCLUDED.width, height = EXCLUDED.height,
			quantity = EXCLUDED.quantity, fabric_id = EXCLUDED.fabric_id, lining_id = EXCLUDED.lining_id,
			rail_id = EXCLUDED.rail_id, accessory_id = EXCLUDED.accessory_id, hem_allowance = EXCLUDED.hem_allowance,
			needs_installation = EXCLUDED.needs_installation, installation_points = EXCLUDED.installation_points,
			installation_value = EXCLUDED.installation_value, extra_service_ids = EXCLUDED.extra_service_ids,
			cost_fabric = EXCLUDED.cost_fabric, cost_lining = EXCLUDED.cost_lining, cost_rail = EXCLUDED.cost_rail,
			cost_accessory = EXCLUDED.cost_accessory, cost_sewing = EXCLUDED.cost_sewing,
			cost_installation = EXCLUDED.cost_installation, cost_total = EXCLUDED.cost_total,
			sale_price = EXCLUDED.sale_price, updated_at = EXCLUDED.updated_at`,
		it.ID, it.QuoteID, it.Position, it.ProductType, it.CurtainType, it.Description, it.Width, it.Height, it.Quantity,
		nullIfEmpty(it.FabricID), nullIfEmpty(it.LiningID), nullIfEmpty(it.RailID), nullIfEmpty(it.AccessoryID),
		it.HemAllowance, it.NeedsInstallation, it.InstallationPoints, it.InstallationValue, extras,
		it.Costs.Fabric, it.Costs.Lining, it.Costs.Rail, it.Costs.Accessory, it.Costs.Sewing,
		it.Costs.Installation, it.Costs.Total, it.SalePrice, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save quote item: %w", err)
	}
	return nil
}

// GetByID obtém um item.
func (r *LineItemRepo) GetByID(ctx context.Context, id string) (*entity.LineItem, error) {
	it, err := scanLineItem(r.q.QueryRow(ctx, `SELECT `+lineItemColumns+` FROM quote_items WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote item: %w", err)
	}
	return it, nil
}

// ListByQuote itens do orçamento na ordem de posição.
func (r *LineItemRepo) ListByQuote(ctx context.Context, quoteID string) ([]*entity.LineItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+lineItemColumns+` FROM quote_items WHERE quote_id = $1 ORDER BY position, created_at`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list quote items: %w", err)
	}
	defer rows.Close()
	var list []*entity.LineItem
	for rows.Next() {
		it, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// UpdateSalePrice grava o preço de venda após troca de margem.
func (r *LineItemRepo) UpdateSalePrice(ctx context.Context, id string, salePrice decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE quote_items SET sale_price = $2, updated_at = now() WHERE id = $1`, id, salePrice)
	if err != nil {
		return fmt.Errorf("update quote item price: %w", err)
	}
	return nil
}

// Delete remove o item.
func (r *LineItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM quote_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quote item: %w", err)
	}
	return nil
}
