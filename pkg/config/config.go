package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa a configuração da aplicação (lida via Viper do ambiente e, opcionalmente, de arquivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Redis   RedisConfig
	Pricing PricingConfig
	Receipt ReceiptConfig
}

// AppConfig configuração geral.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuração do PostgreSQL.
// Se DatabaseURL não estiver vazio, é usado como connection string completa (ex. DATABASE_URL do Supabase).
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	// AutoMigrate aplica as migrações goose na subida da API.
	AutoMigrate bool

	MaxConns int
	MinConns int
	// ForceIPv4 conecta só por IPv4 (hosts gerenciados que publicam AAAA sem rota IPv6).
	ForceIPv4 bool
	// FallbackResolver servidor DNS (host:porta) consultado quando o resolver do sistema
	// não acha IPv4. Vazio desliga; só vale com ForceIPv4.
	FallbackResolver string
}

// ConnectionString devolve DATABASE_URL se definido; senão o DSN montado por DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devolve a connection string do PostgreSQL com escape de caracteres especiais na senha.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuração de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuração do servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devolve o endereço de escuta (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig cache do catálogo de materiais. Addr vazio desliga o cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// PricingConfig parâmetros comerciais padrão usados quando a empresa não tem os seus.
type PricingConfig struct {
	InstallationPointPrice decimal.Decimal
	MarginLow              decimal.Decimal
	MarginStandard         decimal.Decimal
	MarginPremium          decimal.Decimal
	DefaultCommission      decimal.Decimal
}

// ReceiptConfig limites de upload de comprovantes.
type ReceiptConfig struct {
	MaxBytes int
}

// Load lê a configuração de variáveis de ambiente (e opcionalmente de .env / config.env).
// Variáveis de ambiente têm prioridade.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // arquivo é opcional

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "decora-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "decora"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", false),

			MaxConns:         getInt(v, "DB_MAX_CONNS", 25),
			MinConns:         getInt(v, "DB_MIN_CONNS", 2),
			ForceIPv4:        getBool(v, "DB_FORCE_IPV4", false),
			FallbackResolver: getString(v, "DB_FALLBACK_RESOLVER", ""),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "decora-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", ""),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
			TTL:      getDuration(v, "REDIS_TTL", 10*time.Minute),
		},
		Pricing: PricingConfig{
			InstallationPointPrice: getDecimal(v, "PRICING_INSTALLATION_POINT", decimal.NewFromInt(35)),
			MarginLow:              getDecimal(v, "PRICING_MARGIN_LOW", decimal.NewFromInt(40)),
			MarginStandard:         getDecimal(v, "PRICING_MARGIN_STANDARD", decimal.RequireFromString("61.5")),
			MarginPremium:          getDecimal(v, "PRICING_MARGIN_PREMIUM", decimal.NewFromInt(80)),
			DefaultCommission:      getDecimal(v, "PRICING_DEFAULT_COMMISSION", decimal.NewFromInt(5)),
		},
		Receipt: ReceiptConfig{
			MaxBytes: getInt(v, "RECEIPT_MAX_BYTES", 10<<20),
		},
	}

	if cfg.App.Env == "production" && cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET obrigatório em produção")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	switch v.Get(key).(type) {
	case string:
		n, err := strconv.Atoi(v.GetString(key))
		if err != nil {
			return def
		}
		return n
	default:
		return v.GetInt(key)
	}
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(v.GetString(key))
	if err != nil {
		return def
	}
	return b
}

func getDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) {
		return def
	}
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return def
	}
	return d
}

// getDecimal aceita "61.5" e "61,5".
func getDecimal(v *viper.Viper, key string, def decimal.Decimal) decimal.Decimal {
	if !v.IsSet(key) {
		return def
	}
	raw := strings.Replace(strings.TrimSpace(v.GetString(key)), ",", ".", 1)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return def
	}
	return d
}
