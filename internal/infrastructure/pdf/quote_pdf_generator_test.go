package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/decora-api/internal/domain/entity"
)

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 89,90", formatBRL(decimal.RequireFromString("89.9")))
	assert.Equal(t, "R$ 1.234,50", formatBRL(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "R$ 0,00", formatBRL(decimal.Zero))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Cortina prega americana", describe(&entity.LineItem{ProductType: entity.ProductCurtain, CurtainType: "prega_americana"}))
	assert.Equal(t, "Sala - janela", describe(&entity.LineItem{ProductType: entity.ProductCurtain, Description: "Sala - janela"}))
	assert.Equal(t, "Papel de parede", describe(&entity.LineItem{ProductType: entity.ProductWallpaper}))
}

func TestGenerateQuotePDF(t *testing.T) {
	q := &entity.Quote{
		Number:     "ORC-00042",
		ClientName: "Ana Lima",
		GrandTotal: decimal.RequireFromString("515.19"),
		CreatedAt:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Items: []*entity.LineItem{{
			Position:    1,
			ProductType: entity.ProductCurtain,
			CurtainType: "wave",
			Width:       decimal.RequireFromString("2"),
			Height:      decimal.RequireFromString("2.6"),
			Quantity:    decimal.NewFromInt(1),
			SalePrice:   decimal.RequireFromString("515.19"),
		}},
	}
	company := &entity.Company{Name: "Decora Interiores", CNPJ: "12.345.678/0001-90"}

	data, err := NewMarotoPDFGenerator().GenerateQuotePDF(context.Background(), q, company)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
