package quoting

import (
	"context"
	"fmt"

	"github.com/jhoicas/decora-api/internal/domain"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

// PDFUseCase gera a proposta comercial em PDF de um orçamento.
type PDFUseCase struct {
	quotes    repository.QuoteRepository
	items     repository.LineItemRepository
	companies repository.CompanyRepository
	generator QuotePDFGenerator
}

// NewPDFUseCase constrói o caso de uso.
func NewPDFUseCase(
	quotes repository.QuoteRepository,
	items repository.LineItemRepository,
	companies repository.CompanyRepository,
	generator QuotePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{quotes: quotes, items: items, companies: companies, generator: generator}
}

// DownloadQuotePDF devolve os bytes do PDF e o nome do arquivo.
//
// Erros:
//   - domain.ErrNotFound     orçamento inexistente.
//   - domain.ErrForbidden    orçamento de outra empresa.
//   - domain.ErrInvalidInput orçamento sem itens.
func (uc *PDFUseCase) DownloadQuotePDF(ctx context.Context, companyID, quoteID string) ([]byte, string, error) {
	q, err := uc.quotes.GetByID(ctx, quoteID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obter orçamento: %w", err)
	}
	if q == nil {
		return nil, "", domain.ErrNotFound
	}
	if q.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}
	if q.Items, err = uc.items.ListByQuote(ctx, q.ID); err != nil {
		return nil, "", fmt.Errorf("pdf: itens: %w", err)
	}
	if len(q.Items) == 0 {
		return nil, "", fmt.Errorf("%w: orçamento sem itens", domain.ErrInvalidInput)
	}

	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obter empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}

	pdfBytes, err := uc.generator.GenerateQuotePDF(ctx, q, company)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, fmt.Sprintf("orcamento-%s.pdf", q.Number), nil
}
