package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/decora-api/internal/application/catalog"
	"github.com/jhoicas/decora-api/internal/domain/entity"
	"github.com/jhoicas/decora-api/internal/domain/repository"
	"github.com/jhoicas/decora-api/pkg/logger"
)

var (
	_ repository.MaterialRepository = (*MaterialRepository)(nil)
	_ catalog.MaterialCache         = (*MaterialRepository)(nil)
)

// errStale leitura do banco começou antes de uma invalidação; o resultado não vai para o cache.
var errStale = errors.New("material invalidado durante a leitura")

// MaterialRepository decora o repositório de materiais com leitura via Redis em GetByID.
// Escritas passam direto; quem altera preço chama Invalidate depois do commit.
// Cada material tem um contador de versão: Invalidate incrementa o contador e a gravação
// após um miss só acontece se a versão lida antes da consulta ao banco ainda for a atual.
// Redis indisponível degrada para o banco.
type MaterialRepository struct {
	repository.MaterialRepository
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// NewMaterialRepository constrói o decorator.
func NewMaterialRepository(inner repository.MaterialRepository, rdb *redis.Client, ttl time.Duration, log *logger.Logger) *MaterialRepository {
	return &MaterialRepository{MaterialRepository: inner, rdb: rdb, ttl: ttl, log: log.Component("material_cache")}
}

func materialKey(id string) string {
	return "material:" + id
}

func versionKey(id string) string {
	return "material:" + id + ":v"
}

// GetByID lê do cache; em miss consulta o banco e grava o resultado se nenhuma invalidação
// aconteceu no meio.
func (r *MaterialRepository) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	raw, err := r.rdb.Get(ctx, materialKey(id)).Bytes()
	switch {
	case err == nil:
		var m entity.Material
		if jerr := json.Unmarshal(raw, &m); jerr == nil {
			return &m, nil
		}
		r.log.Warn().Str("material_id", id).Msg("entrada de cache inválida")
	case !errors.Is(err, redis.Nil):
		r.log.Warn().Err(err).Str("material_id", id).Msg("falha ao ler cache de material")
		return r.MaterialRepository.GetByID(ctx, id)
	}

	version, err := r.version(ctx, r.rdb, id)
	if err != nil {
		r.log.Debug().Err(err).Str("material_id", id).Msg("falha ao ler versão do material")
		return r.MaterialRepository.GetByID(ctx, id)
	}

	m, err := r.MaterialRepository.GetByID(ctx, id)
	if err != nil || m == nil {
		return m, err
	}
	if serr := r.store(ctx, m, version); serr != nil && !errors.Is(serr, errStale) {
		r.log.Debug().Err(serr).Str("material_id", id).Msg("falha ao gravar cache de material")
	}
	return m, nil
}

// store grava m só se a versão do material ainda for version.
func (r *MaterialRepository) store(ctx context.Context, m *entity.Material, version string) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return err
	}
	err = r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := r.version(ctx, tx, m.ID)
		if err != nil {
			return err
		}
		if current != version {
			return errStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, materialKey(m.ID), payload, r.ttl)
			return nil
		})
		return err
	}, versionKey(m.ID))
	if errors.Is(err, redis.TxFailedErr) {
		return errStale
	}
	return err
}

// getter parte comum de *redis.Client e *redis.Tx usada para ler a versão.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *MaterialRepository) version(ctx context.Context, c getter, id string) (string, error) {
	v, err := c.Get(ctx, versionKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	return v, err
}

// Invalidate remove o material do cache e avança a versão, descartando leituras em andamento.
func (r *MaterialRepository) Invalidate(ctx context.Context, id string) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(id))
		pipe.Del(ctx, materialKey(id))
		return nil
	})
	return err
}
