package quoting

import (
	"github.com/jhoicas/decora-api/internal/application/dto"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/pricing"
)

func toLineItem(in dto.LineItemRequest) *entity.LineItem {
	return &entity.LineItem{
		ProductType:        in.ProductType,
		CurtainType:        in.CurtainType,
		Description:        in.Description,
		Width:              in.Width,
		Height:             in.Height,
		Quantity:           in.Quantity,
		HemAllowance:       in.HemAllowance,
		FabricID:           in.FabricID,
		LiningID:           in.LiningID,
		RailID:             in.RailID,
		AccessoryID:        in.AccessoryID,
		NeedsInstallation:  in.NeedsInstallation,
		InstallationPoints: in.InstallationPoints,
		InstallationValue:  in.InstallationValue,
		ExtraServiceIDs:    in.ExtraServiceIDs,
	}
}

func toCostResponse(c entity.CostBreakdown) dto.CostBreakdownResponse {
	return dto.CostBreakdownResponse{
		Fabric:       c.Fabric,
		Lining:       c.Lining,
		Rail:         c.Rail,
		Accessory:    c.Accessory,
		Sewing:       c.Sewing,
		Installation: c.Installation,
		Total:        c.Total,
	}
}

func toWarningResponse(w *pricing.QuantityWarning) *dto.QuantityWarningResponse {
	if w == nil {
		return nil
	}
	return &dto.QuantityWarningResponse{Entered: w.Entered, Suggested: w.Suggested, Message: w.Message}
}

func toLineItemResponse(it *entity.LineItem) dto.LineItemResponse {
	return dto.LineItemResponse{
		ID:                 it.ID,
		Position:           it.Position,
		ProductType:        it.ProductType,
		CurtainType:        it.CurtainType,
		Description:        it.Description,
		Width:              it.Width,
		Height:             it.Height,
		Quantity:           it.Quantity,
		FabricID:           it.FabricID,
		LiningID:           it.LiningID,
		RailID:             it.RailID,
		AccessoryID:        it.AccessoryID,
		NeedsInstallation:  it.NeedsInstallation,
		InstallationPoints: it.InstallationPoints,
		ExtraServiceIDs:    it.ExtraServiceIDs,
		Costs:              toCostResponse(it.Costs),
		SalePrice:          it.SalePrice,
	}
}

func toQuoteResponse(q *entity.Quote) *dto.QuoteResponse {
	out := &dto.QuoteResponse{
		ID:                   q.ID,
		Number:               q.Number,
		ClientName:           q.ClientName,
		ClientPhone:          q.ClientPhone,
		ClientEmail:          q.ClientEmail,
		Address:              q.Address,
		SalespersonID:        q.SalespersonID,
		MarginType:           q.MarginType,
		MarginPercent:        q.MarginPercent,
		Status:               q.Status,
		SubtotalMaterials:    q.SubtotalMaterials,
		SubtotalSewing:       q.SubtotalSewing,
		SubtotalInstallation: q.SubtotalInstallation,
		CostTotal:            q.CostTotal,
		GrandTotal:           q.GrandTotal,
		Items:                make([]dto.LineItemResponse, 0, len(q.Items)),
		CreatedAt:            q.CreatedAt,
		UpdatedAt:            q.UpdatedAt,
	}
	for _, it := range q.Items {
		out.Items = append(out.Items, toLineItemResponse(it))
	}
	return out
}
