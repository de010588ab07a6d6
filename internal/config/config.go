package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// 増加時に total_space を超えた場合の扱い
type CapacityPolicy string

const (
	// 超過を許可し、警告ログを出す
	CapacityPolicyAllow CapacityPolicy = "allow"
	// 超過する増加は拒否
	CapacityPolicyReject CapacityPolicy = "reject"
)

// 在庫ロックの実装
type LockBackend string

const (
	LockBackendLocal LockBackend = "local"
	LockBackendRedis LockBackend = "redis"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DBDriver    string // postgres / mysql / memory
	DatabaseURL string // postgresのDSN（空ならPOSTGRES_*から組み立てる）
	MySQLDSN    string

	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	LockBackend   LockBackend
	LockTTL       time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CapacityPolicy CapacityPolicy
	LogLevel       string // debug/info/warn/error
}

// Loadは環境変数
func Load() (Config, error) {
	pgPort, err := atoiOr("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	redisDB, err := atoiOr("REDIS_DB", 0)
	if err != nil {
		return Config{}, err
	}
	lockTTL, err := durationOr("LOCK_TTL", 10*time.Second)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getenv("PORT", "8080"),

		DBDriver:    strings.ToLower(getenv("DB_DRIVER", "postgres")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		MySQLDSN:    os.Getenv("MYSQL_DSN"),

		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "inventory"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		LockBackend:   LockBackend(strings.ToLower(getenv("LOCK_BACKEND", string(LockBackendLocal)))),
		LockTTL:       lockTTL,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		CapacityPolicy: CapacityPolicy(strings.ToLower(getenv("CAPACITY_POLICY", string(CapacityPolicyAllow)))),
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.DBDriver {
	case "postgres", "memory":
	case "mysql":
		if c.MySQLDSN == "" {
			return fmt.Errorf("MYSQL_DSN is required when DB_DRIVER=mysql")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be postgres, mysql or memory: %q", c.DBDriver)
	}

	switch c.LockBackend {
	case LockBackendLocal:
	case LockBackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when LOCK_BACKEND=redis")
		}
	default:
		return fmt.Errorf("LOCK_BACKEND must be local or redis: %q", c.LockBackend)
	}
	if c.LockTTL <= 0 {
		return fmt.Errorf("LOCK_TTL must be positive")
	}

	switch c.CapacityPolicy {
	case CapacityPolicyAllow, CapacityPolicyReject:
	default:
		return fmt.Errorf("CAPACITY_POLICY must be allow or reject: %q", c.CapacityPolicy)
	}
	return nil
}

// PostgresDSN は DATABASE_URL を優先する
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

// Addrは ":8080" 形式
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiOr(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func durationOr(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}
