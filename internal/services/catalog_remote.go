package service

import (
	"context"

	"github.com/aaravmahajanofficial/fashionhub/internal/cache"
	"github.com/aaravmahajanofficial/fashionhub/internal/errors"
	"github.com/aaravmahajanofficial/fashionhub/internal/logging"
	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	repository "github.com/aaravmahajanofficial/fashionhub/internal/repositories"
)

// remoteCatalog keeps products in the document store, newest first, with the
// ordered list cached in Redis between writes.
type remoteCatalog struct {
	repo  repository.ProductRepository
	cache cache.Cache
}

// NewRemoteCatalog returns a store backed provider. productCache may be nil.
func NewRemoteCatalog(repo repository.ProductRepository, productCache cache.Cache) CatalogProvider {
	return &remoteCatalog{repo: repo, cache: productCache}
}

func (p *remoteCatalog) Load(ctx context.Context) ([]models.Product, error) {

	logger := logging.FromContext(ctx)

	if p.cache != nil {
		var cached []models.Product
		hit, err := p.cache.Get(ctx, cache.CatalogListKey, &cached)
		if err != nil {
			logger.Warn("catalog cache read failed", "error", err)
		}
		if hit {
			return cached, nil
		}
	}

	products, err := p.repo.ListProducts(ctx)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list products").WithError(err)
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, cache.CatalogListKey, products, 0); err != nil {
			logger.Warn("catalog cache write failed", "error", err)
		}
	}

	return products, nil
}

func (p *remoteCatalog) Create(ctx context.Context, input models.Product) (*models.Product, error) {

	product := input
	if err := p.repo.CreateProduct(ctx, &product); err != nil {
		return nil, errors.DatabaseError("Failed to create product").WithError(err)
	}

	p.invalidate(ctx)

	return &product, nil
}

func (p *remoteCatalog) Update(ctx context.Context, product models.Product) error {

	if err := p.repo.UpdateProduct(ctx, &product); err != nil {
		if repository.IsNotFound(err) {
			return errors.NotFoundError("Product not found").WithError(err)
		}
		return errors.DatabaseError("Failed to update product").WithError(err)
	}

	p.invalidate(ctx)

	return nil
}

func (p *remoteCatalog) Delete(ctx context.Context, id string) error {

	// already gone from the store counts as deleted
	if err := p.repo.DeleteProduct(ctx, id); err != nil && !repository.IsNotFound(err) {
		return errors.DatabaseError("Failed to delete product").WithError(err)
	}

	p.invalidate(ctx)

	return nil
}

func (p *remoteCatalog) Seed(ctx context.Context, products []models.Product) (int, error) {

	inserted, err := p.repo.SeedProducts(ctx, products)
	if err != nil {
		return 0, errors.DatabaseError("Failed to seed products").WithError(err)
	}

	if inserted > 0 {
		p.invalidate(ctx)
	}

	return inserted, nil
}

func (p *remoteCatalog) Ordering() models.Ordering {
	return models.OrderNewestFirst
}

func (p *remoteCatalog) invalidate(ctx context.Context) {
	if p.cache == nil {
		return
	}

	if err := p.cache.Delete(ctx, cache.CatalogListKey); err != nil {
		logging.FromContext(ctx).Warn("catalog cache invalidation failed", "error", err)
	}
}
