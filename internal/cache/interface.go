package cache

import (
	"context"
	"time"
)

// Cache stores JSON encoded values. A miss is (false, nil), never an error.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	CatalogKeyPrefix = "catalog"
	ProfileKeyPrefix = "profile"
)

// CatalogListKey holds the ordered product list of the remote catalog.
var CatalogListKey = Key(CatalogKeyPrefix, "products")
