package boot

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env    string `env:"ENV,default=dev"`
	Server struct {
		Port    string `env:"PORT,default=8080"`
		Origins string `env:"ALLOWED_ORIGINS,default=*"`
	}
	Database struct {
		Path string `env:"DATABASE_PATH,default=courier.db"`
	}
	Queue struct {
		Backend  string `env:"QUEUE_BACKEND,default=memory"`
		RedisURL string `env:"REDIS_URL,default=redis://localhost:6379/0"`
	}
	Worker struct {
		Count           int           `env:"WORKER_COUNT,default=4"`
		DeliveryLatency time.Duration `env:"DELIVERY_LATENCY,default=500ms"`
	}
	Auth struct {
		SigningKey string        `env:"TOKEN_SIGNING_KEY,default=dev-signing-key"`
		TokenTTL   time.Duration `env:"TOKEN_TTL,default=24h"`
	}
	RateLimit struct {
		SendsPerSecond float64 `env:"SEND_RATE,default=5"`
		Burst          int     `env:"SEND_BURST,default=10"`
	}
}

func Load() (*Config, error) {
	config := &Config{}
	if err := envconfig.Process(context.Background(), config); err != nil {
		return nil, fmt.Errorf("parsing env vars: %w", err)
	}
	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "prod"
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "dev"
}

func (c *Config) DatabasePath() string {
	return c.Database.Path
}
