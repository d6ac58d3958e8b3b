package postgres

import (
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"

	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/repository"
)

var _ repository.ReceiptStorage = (*ReceiptStore)(nil)

// ReceiptStore guarda comprovantes na tabela receipt_files (bytea).
type ReceiptStore struct {
	q Querier
}

// NewReceiptStore constrói o armazenamento.
func NewReceiptStore(q Querier) *ReceiptStore {
	return &ReceiptStore{q: q}
}

// Put grava o arquivo com chave <uuid><ext>.
func (s *ReceiptStore) Put(ctx context.Context, f *entity.ReceiptFile) (string, error) {
	key := uuid.New().String() + path.Ext(f.FileName)
	_, err := s.q.Exec(ctx, `
		INSERT INTO receipt_files (key, company_id, file_name, content_type, data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		key, f.CompanyID, f.FileName, f.ContentType, f.Data, f.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("store receipt: %w", err)
	}
	f.Key = key
	return key, nil
}

// Get lê o arquivo; (nil, nil) se a chave não existir.
func (s *ReceiptStore) Get(ctx context.Context, key string) (*entity.ReceiptFile, error) {
	var f entity.ReceiptFile
	err := s.q.QueryRow(ctx, `
		SELECT key, company_id, file_name, content_type, data, created_at
		FROM receipt_files WHERE key = $1`, key).Scan(
		&f.Key, &f.CompanyID, &f.FileName, &f.ContentType, &f.Data, &f.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return &f, nil
}
