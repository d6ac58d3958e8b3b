package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/decora-api/pkg/config"
)

// NewPool cria o pool de conexões PostgreSQL e confirma a conexão com um ping.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := newPoolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("criar pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// newPoolConfig monta a configuração sem abrir conexão.
// Com ForceIPv4 o nome do host é resolvido só para IPv4; o DSN mantém o nome, então
// TLS continua validando o certificado pelo host original.
func newPoolConfig(cfg config.DBConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	if cfg.ForceIPv4 {
		r := ipv4Resolver{fallback: cfg.FallbackResolver}
		poolConfig.ConnConfig.LookupFunc = r.lookup
	}

	maxConns, minConns := cfg.MaxConns, cfg.MinConns
	if maxConns <= 0 {
		maxConns = 25
	}
	if minConns < 0 {
		minConns = 0
	}
	if minConns > maxConns {
		minConns = maxConns
	}
	poolConfig.MaxConns = int32(maxConns)
	poolConfig.MinConns = int32(minConns)
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// NUMERIC <-> shopspring/decimal em todas as conexões do pool.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	return poolConfig, nil
}

// ipv4Resolver lookup do pgx restrito a IPv4. Tenta o resolver do sistema e, se ele não
// achar endereço, o servidor DNS em fallback.
type ipv4Resolver struct {
	fallback string
}

func (r ipv4Resolver) lookup(ctx context.Context, host string) ([]string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() == nil {
			return nil, fmt.Errorf("host %s é IPv6 e DB_FORCE_IPV4 está ligado", host)
		}
		return []string{ip.String()}, nil
	}
	addrs, err := lookupIPv4(ctx, net.DefaultResolver, host)
	if err == nil || r.fallback == "" {
		return addrs, err
	}
	alt := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "udp", r.fallback)
		},
	}
	return lookupIPv4(ctx, alt, host)
}

var errNoIPv4 = errors.New("sem endereço IPv4")

func lookupIPv4(ctx context.Context, res *net.Resolver, host string) ([]string, error) {
	ips, err := res.LookupIP(ctx, "ip4", host)
	if err != nil {
		return nil, err
	}
	addrs := make([]string, 0, len(ips))
	for _, ip := range ips {
		if ip.To4() != nil {
			addrs = append(addrs, ip.String())
		}
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("%s: %w", host, errNoIPv4)
	}
	return addrs, nil
}
