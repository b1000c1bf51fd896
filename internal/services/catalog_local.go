package service

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/aaravmahajanofficial/fashionhub/internal/dataset"
	"github.com/aaravmahajanofficial/fashionhub/internal/models"
)

// localCatalog serves the bundled dataset and keeps every write in memory.
type localCatalog struct {
	products []models.Product
	lastID   atomic.Int64
}

// NewLocalCatalog returns a provider over products. New ids continue from the
// highest numeric id in products so they never collide with it.
func NewLocalCatalog(products []models.Product) CatalogProvider {
	p := &localCatalog{products: products}
	p.lastID.Store(dataset.MaxNumericID(products))

	return p
}

func (p *localCatalog) Load(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, len(p.products))
	copy(out, p.products)

	return out, nil
}

func (p *localCatalog) Create(ctx context.Context, input models.Product) (*models.Product, error) {
	input.ID = strconv.FormatInt(p.lastID.Add(1), 10)

	return &input, nil
}

func (p *localCatalog) Update(ctx context.Context, product models.Product) error {
	return nil
}

func (p *localCatalog) Delete(ctx context.Context, id string) error {
	return nil
}

// Seed has nothing to do: the local catalog already is the bundled dataset.
func (p *localCatalog) Seed(ctx context.Context, products []models.Product) (int, error) {
	return 0, nil
}

func (p *localCatalog) Ordering() models.Ordering {
	return models.OrderInsertion
}
