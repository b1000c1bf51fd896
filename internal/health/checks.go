package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/fashionhub/internal/config"
	"github.com/aaravmahajanofficial/fashionhub/internal/dataset"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/segmentio/kafka-go"
)

const version = "1.0.0"

// NewHealthHandler always reports on the bundled catalog. The remote backend
// adds its database and Redis, and a configured catalog feed adds Kafka.
func NewHealthHandler(cfg *config.Config) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "bundled-catalog",
			Timeout:   time.Second,
			SkipOnErr: false,
			Check: func(ctx context.Context) error {
				if _, err := dataset.Products(); err != nil {
					return fmt.Errorf("bundled catalog is unreadable: %w", err)
				}
				return nil
			},
		},
	}

	if cfg.IsRemote() {
		checks = append(checks,
			health.Config{
				Name:      "database",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: postgres.New(postgres.Config{
					DSN: cfg.Database.GetDSN(),
				}),
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
		)
	}

	if len(cfg.Kafka.Brokers) > 0 {
		checks = append(checks, health.Config{
			Name:    "kafka",
			Timeout: 3 * time.Second,
			// the feed is best effort, so a broker outage only degrades
			SkipOnErr: true,
			Check:     kafkaCheck(cfg.Kafka.Brokers),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    cfg.Otel.ServiceName,
			Version: version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

func kafkaCheck(brokers []string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		var lastErr error
		for _, broker := range brokers {
			conn, err := kafka.DialContext(ctx, "tcp", broker)
			if err != nil {
				lastErr = err
				continue
			}
			return conn.Close()
		}

		return fmt.Errorf("no kafka broker reachable: %w", lastErr)
	}
}
