// Package xlsx exporta parcelas de contas a receber em planilha Excel.
package xlsx

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/decora-api/internal/application/finance"
	"github.com/jhoicas/decora-api/internal/domain/entity"
)

var _ finance.InstallmentSheetWriter = (*InstallmentSheet)(nil)

const sheetName = "Parcelas"

var headers = []string{"Parcela", "Vencimento", "Valor", "Status", "Pago em", "Forma de pagamento"}

// InstallmentSheet gera a planilha com Excelize.
type InstallmentSheet struct{}

// NewInstallmentSheet constrói o gerador.
func NewInstallmentSheet() *InstallmentSheet { return &InstallmentSheet{} }

// WriteInstallments uma linha por parcela e o resumo da conta ao final.
// Valores vão como número para a planilha somar.
func (s *InstallmentSheet) WriteInstallments(acc *entity.AccountReceivable, derivedStatus string) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("xlsx: criar aba: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(sheetName, 1, 1, bold)
	}
	money, _ := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00

	for i, in := range acc.Installments {
		row := i + 2
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), in.Number)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), in.DueDate.Format("02/01/2006"))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), in.Amount.InexactFloat64())
		_ = f.SetCellStyle(sheetName, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), money)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), in.Status)
		if in.PaidAt != nil {
			_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), in.PaidAt.Format("02/01/2006"))
		}
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), in.PaymentMethodID)
	}

	summary := len(acc.Installments) + 3
	rows := [][2]any{
		{"Cliente", acc.ClientName},
		{"Total", acc.Total.InexactFloat64()},
		{"Recebido", acc.PaidAmount.InexactFloat64()},
		{"Status da conta", derivedStatus},
	}
	for i, r := range rows {
		row := summary + i
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), r[0])
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r[1])
	}
	_ = f.SetCellStyle(sheetName, fmt.Sprintf("C%d", summary+1), fmt.Sprintf("C%d", summary+2), money)
	_ = f.SetColWidth(sheetName, "A", "F", 18)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: gravar planilha: %w", err)
	}
	return buf.Bytes(), nil
}
