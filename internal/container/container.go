// Package container holds the explicitly constructed infrastructure clients
// shared across the application: built once at process start, passed by
// value to the router wiring, and torn down via Close on shutdown. No
// package-level mutable state.
package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ramchaik/gojo/config"
	"github.com/ramchaik/gojo/pkg/helpers"
)

type Container struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	PGPool *pgxpool.Pool

	// Optional clients; nil when the backing service is not configured.
	Redis   *redis.Client
	ES      *elasticsearch.Client
	GCS     *storage.Client
	Invites *helpers.RabbitPublisher
}

func New(cfg *config.Config, logger *logrus.Logger, pool *pgxpool.Pool) *Container {
	return &Container{Cfg: cfg, Logger: logger, PGPool: pool}
}

// Close releases every held client. Safe to call with partially
// initialized optional clients.
func (c *Container) Close() {
	if c.Invites != nil {
		c.Invites.Close()
	}
	if c.GCS != nil {
		_ = c.GCS.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
}
