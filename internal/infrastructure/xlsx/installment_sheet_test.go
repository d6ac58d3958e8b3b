package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/decora-api/internal/domain/entity"
)

func TestWriteInstallments(t *testing.T) {
	paid := time.Date(2026, 2, 10, 14, 0, 0, 0, time.UTC)
	acc := &entity.AccountReceivable{
		ClientName: "Ana Lima",
		Total:      decimal.NewFromInt(1000),
		PaidAmount: decimal.NewFromInt(400),
		Installments: []*entity.Installment{
			{Number: 1, DueDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(400), Status: entity.InstallmentPaid, PaidAt: &paid, PaymentMethodID: "pix"},
			{Number: 2, DueDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(600), Status: entity.InstallmentPending},
		},
	}

	data, err := NewInstallmentSheet().WriteInstallments(acc, entity.AccountPartial)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	header, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Parcela", header)

	due, _ := f.GetCellValue(sheetName, "B3")
	assert.Equal(t, "10/03/2026", due)
	paidAt, _ := f.GetCellValue(sheetName, "E2")
	assert.Equal(t, "10/02/2026", paidAt)
	method, _ := f.GetCellValue(sheetName, "F2")
	assert.Equal(t, "pix", method)

	status, _ := f.GetCellValue(sheetName, "C8")
	assert.Equal(t, entity.AccountPartial, status)
}
