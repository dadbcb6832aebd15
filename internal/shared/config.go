package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	TokenTTL    time.Duration
	CacheTTL    time.Duration
	LoginRPS    float64 // per-IP login attempts per second
	LoginBurst  int
	Media       MediaConfig
}

// MediaConfig is a tagged union: exactly one of S3/Local is non-nil,
// resolved once at startup. There is no runtime fallback between them.
type MediaConfig struct {
	S3    *S3Config
	Local *LocalConfig
}

type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

type LocalConfig struct {
	Dir       string
	URLPrefix string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/aurora?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		JWTSecret:   env("JWT_SECRET", ""),
		TokenTTL:    time.Duration(atoi("TOKEN_TTL_MINUTES", 7*24*60)) * time.Minute,
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		LoginRPS:    float64(atoi("LOGIN_RATE_PER_MIN", 10)) / 60.0,
		LoginBurst:  atoi("LOGIN_BURST", 5),
		Media:       loadMedia(),
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty; tokens are signed with an empty key")
	}
	return c
}

// loadMedia picks the object-storage backend only when real-looking
// credentials are present; placeholder values fall through to local disk.
func loadMedia() MediaConfig {
	access := os.Getenv("S3_ACCESS_KEY")
	secret := os.Getenv("S3_SECRET_KEY")
	if access != "" && secret != "" && !placeholder(access) && !placeholder(secret) {
		return MediaConfig{S3: &S3Config{
			Endpoint:  env("S3_ENDPOINT", "s3.amazonaws.com"),
			Region:    env("S3_REGION", "us-east-2"),
			Bucket:    env("S3_BUCKET", "aurora-hotel-images"),
			AccessKey: access,
			SecretKey: secret,
			UseSSL:    env("S3_USE_SSL", "true") == "true",
		}}
	}
	return MediaConfig{Local: &LocalConfig{
		Dir:       env("UPLOAD_DIR", "uploads/room-images"),
		URLPrefix: env("UPLOAD_URL_PREFIX", "/uploads/room-images"),
	}}
}

func placeholder(v string) bool {
	switch v {
	case "PLACEHOLDER_ACCESS_KEY", "PLACEHOLDER_SECRET_KEY", "changeme":
		return true
	}
	return false
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
