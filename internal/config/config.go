package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppEnv   string
	HTTPAddr string

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	// Empty RedisAddr keeps carts in process memory only.
	RedisAddr string

	// Empty KafkaBrokers disables order event publishing.
	KafkaBrokers []string
	ServiceName  string

	JWTIssuer           string
	JWTAccessSecret     string
	JWTRefreshSecret    string
	AccessTokenTTLMin   int
	RefreshTokenTTLDays int
}

func Load() Config {
	return Config{
		AppEnv:   get("APP_ENV", "dev"),
		HTTPAddr: get("HTTP_ADDR", ":8080"),

		DatabaseURL: get("DATABASE_URL", ""),
		DBMaxConns:  int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:  int32(getInt("DB_MIN_CONNS", 2)),

		RedisAddr: get("REDIS_ADDR", ""),

		KafkaBrokers: splitCSV(get("KAFKA_BROKERS", "")),
		ServiceName:  get("SERVICE_NAME", "storefront-api"),

		JWTIssuer:           get("JWT_ISSUER", "storefront"),
		JWTAccessSecret:     get("JWT_ACCESS_SECRET", ""),
		JWTRefreshSecret:    get("JWT_REFRESH_SECRET", ""),
		AccessTokenTTLMin:   getInt("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTokenTTLDays: getInt("REFRESH_TOKEN_TTL_DAYS", 30),
	}
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
