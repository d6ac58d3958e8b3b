package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/pricing"
)

var presets = pricing.MarginPresets{Low: d("40"), Standard: d("61.5"), Premium: d("80")}

func TestSalePrice(t *testing.T) {
	assertDec(t, "161.50", pricing.SalePrice(d("100"), d("61.5")), "100 a 61,5%")
	assertDec(t, "100", pricing.SalePrice(d("100"), decimal.Zero), "margem zero")
	assertDec(t, "300", pricing.SalePrice(d("100"), d("200")), "margem máxima")
	assertDec(t, "0", pricing.SalePrice(decimal.Zero, d("80")), "custo zero")
}

func TestSalePrice_MonotonicoNaMargem(t *testing.T) {
	cost := d("257.33")
	prev := pricing.SalePrice(cost, decimal.Zero)
	for m := int64(1); m <= 200; m++ {
		cur := pricing.SalePrice(cost, decimal.NewFromInt(m))
		assert.True(t, cur.GreaterThanOrEqual(prev), "margem %d", m)
		prev = cur
	}
}

func TestResolveMargin(t *testing.T) {
	cases := []struct {
		kind string
		want string
	}{
		{entity.MarginLow, "40"},
		{entity.MarginStandard, "61.5"},
		{"", "61.5"},
		{entity.MarginPremium, "80"},
	}
	for _, tc := range cases {
		got, err := pricing.ResolveMargin(tc.kind, decimal.Zero, presets)
		require.NoError(t, err, tc.kind)
		assertDec(t, tc.want, got, tc.kind)
	}

	got, err := pricing.ResolveMargin(entity.MarginCustom, d("200"), presets)
	require.NoError(t, err)
	assertDec(t, "200", got, "limite superior")

	got, err = pricing.ResolveMargin(entity.MarginCustom, decimal.Zero, presets)
	require.NoError(t, err)
	assertDec(t, "0", got, "limite inferior")

	_, err = pricing.ResolveMargin(entity.MarginCustom, d("200.01"), presets)
	assert.ErrorIs(t, err, domain.ErrInvalidMargin)

	_, err = pricing.ResolveMargin(entity.MarginCustom, d("-1"), presets)
	assert.ErrorIs(t, err, domain.ErrInvalidMargin)

	_, err = pricing.ResolveMargin("super", decimal.Zero, presets)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidMargin(t *testing.T) {
	assert.True(t, pricing.ValidMargin(decimal.Zero))
	assert.True(t, pricing.ValidMargin(decimal.NewFromInt(200)))
	assert.False(t, pricing.ValidMargin(decimal.RequireFromString("200.01")))
	assert.False(t, pricing.ValidMargin(decimal.NewFromInt(-1)))
}
