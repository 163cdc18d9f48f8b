package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Configはアプリ全体の設定。main()で1回だけ作って各factoryに渡す
type Config struct {
	Port  string // サーバーポート（8080）
	GoEnv string // dev/prod

	DatabaseURL      string // あればPostgres*より優先
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int
	PostgresSSLMode  string
	DBAutoMigrate    bool // 起動時にmigrationを流す

	BotToken       string // Telegram bot token（通知・initData検証）
	SecretToken    string // 管理APIのHMAC鍵
	InitDataMaxAge time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	CartBackend string // memory / redis
	RedisAddr   string
	RedisPass   string
	CartTTL     time.Duration // redisのみ

	RabbitURL      string // 空なら使わない
	RabbitExchange string
	KafkaBrokers   []string // 空なら使わない
	KafkaTopic     string

	NotifyTimeout time.Duration

	AdminRateLimit int // 1分あたり
	LogFile        string
}

// Loadは環境変数から読む（.envはmainでgodotenvが読み込む）
func Load() (Config, error) {
	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	jwtTTL, err := durationDefault("JWT_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	notifyTimeout, err := durationDefault("NOTIFY_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	initDataMaxAge, err := durationDefault("INIT_DATA_MAX_AGE", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cartTTL, err := durationDefault("CART_TTL", 7*24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	rateLimit, err := atoiDefault("ADMIN_RATE_LIMIT", 120)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:  getenv("PORT", "8080"),
		GoEnv: getenv("GO_ENV", "dev"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),
		DBAutoMigrate:    os.Getenv("DB_AUTO_MIGRATE") == "true",

		BotToken:       os.Getenv("BOT_TOKEN"),
		SecretToken:    os.Getenv("APP_SECRET_TOKEN"),
		InitDataMaxAge: initDataMaxAge,

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    jwtTTL,

		CartBackend: getenv("CART_BACKEND", "memory"),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		CartTTL:     cartTTL,

		RabbitURL:      os.Getenv("RABBITMQ_URL"),
		RabbitExchange: getenv("RABBITMQ_EXCHANGE", "order.events"),
		KafkaBrokers:   splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:     getenv("KAFKA_TOPIC", "order.created"),

		NotifyTimeout: notifyTimeout,

		AdminRateLimit: rateLimit,
		LogFile:        getenv("LOG_FILE", "./logs/app.log"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// 必須チェック
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		if c.PostgresUser == "" {
			return fmt.Errorf("POSTGRES_USER is required")
		}
		if c.PostgresPassword == "" {
			return fmt.Errorf("POSTGRES_PASSWORD is required")
		}
		if c.PostgresDB == "" {
			return fmt.Errorf("POSTGRES_DB is required")
		}
	}
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.SecretToken == "" {
		return fmt.Errorf("APP_SECRET_TOKEN is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.CartBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("CART_BACKEND must be memory or redis")
	}
	if c.AdminRateLimit <= 0 {
		return fmt.Errorf("ADMIN_RATE_LIMIT must be > 0")
	}
	return nil
}

// gorm用のDSN
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
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

func durationDefault(key string, def time.Duration) (time.Duration, error) {
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

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
