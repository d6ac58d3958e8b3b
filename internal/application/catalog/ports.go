package catalog

import (
	"context"

	"github.com/jhoicas/decora-api/internal/domain/repository"
)

// TxRunner executa fn numa transação com o repositório de materiais atado a ela.
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(materials repository.MaterialRepository) error) error
}

// MaterialCache invalida a entrada em cache de um material depois de uma escrita confirmada.
type MaterialCache interface {
	Invalidate(ctx context.Context, materialID string) error
}

type noopCache struct{}

func (noopCache) Invalidate(context.Context, string) error { return nil }
