package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
)

type Config struct {
	Port   string
	AppEnv string

	DatabaseURL   string
	RunMigrations bool

	// Empty RedisAddr keeps carts in process memory.
	RedisAddr     string
	RedisPassword string
	CartTTL       time.Duration
	CartCacheSize int

	// Empty RabbitURL disables event publishing.
	RabbitURL string

	PaymentAPIURL    string
	PaymentSecretKey string
	PaymentTimeout   time.Duration

	AdminPassword  string
	AdminJWTSecret string
	AdminTokenTTL  time.Duration

	Pricing       cart.Pricing
	DiscountCodes cart.DiscountCodes

	CORSAllowOrigins []string
	RequestTimeout   time.Duration
}

// Load reads the environment, after an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	pricing := cart.DefaultPricing()
	var err error
	if pricing.FreeShippingThreshold, err = parseDecimal("FREE_SHIPPING_THRESHOLD", pricing.FreeShippingThreshold); err != nil {
		return Config{}, err
	}
	if pricing.FlatShipping, err = parseDecimal("FLAT_SHIPPING", pricing.FlatShipping); err != nil {
		return Config{}, err
	}
	if pricing.TaxRate, err = parseDecimal("TAX_RATE", pricing.TaxRate); err != nil {
		return Config{}, err
	}

	codes := cart.DefaultDiscountCodes()
	if raw := getenv("DISCOUNT_CODES", ""); raw != "" {
		if codes, err = parseDiscountCodes(raw); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		Port:   getenv("PORT", "8080"),
		AppEnv: getenv("APP_ENV", "development"),

		DatabaseURL:   getenv("DATABASE_URL", ""),
		RunMigrations: parseBool(getenv("RUN_MIGRATIONS", "true"), true),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		CartTTL:       parseDuration(getenv("CART_TTL", "720h"), 720*time.Hour),
		CartCacheSize: parseInt(getenv("CART_CACHE_SIZE", "10000"), 10000),

		RabbitURL: getenv("RABBITMQ_URL", ""),

		PaymentAPIURL:    getenv("PAYMENT_API_URL", "https://api.stripe.com"),
		PaymentSecretKey: getenv("PAYMENT_SECRET_KEY", ""),
		PaymentTimeout:   parseDuration(getenv("PAYMENT_TIMEOUT", "10s"), 10*time.Second),

		AdminPassword:  getenv("ADMIN_PASSWORD", ""),
		AdminJWTSecret: getenv("ADMIN_JWT_SECRET", ""),
		AdminTokenTTL:  parseDuration(getenv("ADMIN_TOKEN_TTL", "24h"), 24*time.Hour),

		Pricing:       pricing,
		DiscountCodes: codes,

		CORSAllowOrigins: splitCSV(getenv("CORS_ALLOW_ORIGINS", "*")),
		RequestTimeout:   parseDuration(getenv("REQUEST_TIMEOUT", "5s"), 5*time.Second),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL not set")
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func parseInt(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func parseBool(v string, def bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

func parseDecimal(key string, def decimal.Decimal) (decimal.Decimal, error) {
	raw := getenv(key, "")
	if raw == "" {
		return def, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%s: invalid amount %q", key, raw)
	}
	return d, nil
}

// parseDiscountCodes reads CODE:PCT pairs, e.g. "THREADROT10:10,SAVE15:15".
func parseDiscountCodes(raw string) (cart.DiscountCodes, error) {
	codes := cart.DiscountCodes{}
	for _, pair := range splitCSV(raw) {
		code, pct, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("DISCOUNT_CODES: %q is not CODE:PCT", pair)
		}
		p, err := decimal.NewFromString(strings.TrimSpace(pct))
		if err != nil || p.IsNegative() || p.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("DISCOUNT_CODES: bad percentage for %q", code)
		}
		codes[cart.NormalizeCode(code)] = p
	}
	return codes, nil
}
