package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds every setting the service reads from the environment. It is
// loaded once in main and handed to the components that need it.
type Config struct {
	AppPort string `env:"APP_PORT,default=8080"`

	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBHost     string `env:"DB_HOST,default=localhost"`
	DBPort     int    `env:"DB_PORT,default=5432"`
	DBName     string `env:"DB_NAME,required"`
	DBSSLMode  string `env:"DB_SSLMODE,default=disable"`

	JWTSecret string `env:"JWT_SECRET,required"`

	NATSURL string `env:"NATS_URL,default=nats://localhost:4222"`

	WMSAPIURL   string `env:"WMS_API_URL,default=https://wms.example.com/api/v1"`
	WMSAPIToken string `env:"WMS_API_TOKEN"`

	MetabaseURL             string `env:"METABASE_URL,default=http://localhost:3000"`
	MetabaseAPIKey          string `env:"METABASE_API_KEY"`
	MetabaseInventoryCardID int    `env:"METABASE_INVENTORY_CARD_ID,default=1"`

	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT,default=15s"`

	RateLimitMax        int           `env:"RATE_LIMIT_MAX,default=100"`
	RateLimitExpiration time.Duration `env:"RATE_LIMIT_EXPIRATION,default=1m"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT,default=jaeger:4317"`
}

func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process environment config: %w", err)
	}
	return cfg, nil
}

// DatabaseURL assembles the postgres connection string from the DB_* parts.
func (c Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}
