package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/decora-api/internal/domain/pricing"
)

func TestWallpaperRolls(t *testing.T) {
	cases := []struct {
		name                           string
		width, height, coverage, waste string
		want                           int64
	}{
		{"exemplo 3 × 2,5 com 10%", "3", "2.5", "5", "10", 2},
		{"divisão exata", "5", "2", "5", "0", 2},
		{"sobra mínima arredonda para cima", "5", "2.01", "5", "0", 3},
		{"perda negativa conta como zero", "3", "2.5", "5", "-10", 2},
		{"área zero", "0", "2.5", "5", "10", 0},
		{"altura negativa", "3", "-1", "5", "10", 0},
		{"cobertura zero", "3", "2.5", "0", "10", 0},
		{"cobertura negativa", "3", "2.5", "-5", "10", 0},
		{"dízima", "10", "1", "3", "0", 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := pricing.WallpaperRolls(d(tc.width), d(tc.height), d(tc.coverage), d(tc.waste))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWallpaperRolls_NuncaAbaixoDoValorExato(t *testing.T) {
	coverage := d("5.3")
	waste := d("15")
	for w := int64(1); w <= 40; w++ {
		width := decimal.New(w, -1).Mul(d("3"))
		height := d("2.7")
		rolls := pricing.WallpaperRolls(width, height, coverage, waste)
		exact := width.Mul(height).Mul(d("1.15")).Div(coverage)
		assert.True(t, decimal.NewFromInt(rolls).GreaterThanOrEqual(exact), "largura %s", width)
		assert.True(t, decimal.NewFromInt(rolls).Sub(exact).LessThan(decimal.NewFromInt(1)), "largura %s", width)
	}
}

func TestCheckWallpaperQuantity(t *testing.T) {
	assert.Nil(t, pricing.CheckWallpaperQuantity(d("2"), 2))
	assert.Nil(t, pricing.CheckWallpaperQuantity(d("5"), 2))

	w := pricing.CheckWallpaperQuantity(d("1"), 2)
	require.NotNil(t, w)
	assert.Equal(t, int64(2), w.Suggested)
	assert.Contains(t, w.Message, "2 rolos")
}
