package service

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/aaravmahajanofficial/fashionhub/internal/dataset"
	"github.com/aaravmahajanofficial/fashionhub/internal/errors"
	"github.com/aaravmahajanofficial/fashionhub/internal/logging"
	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	"github.com/aaravmahajanofficial/fashionhub/internal/state"
)

// CatalogProvider is where the catalog's products live. Writes must return
// the record as stored; the container only touches memory after they succeed.
type CatalogProvider interface {
	Load(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, input models.Product) (*models.Product, error)
	Update(ctx context.Context, product models.Product) error
	Delete(ctx context.Context, id string) error
	Seed(ctx context.Context, products []models.Product) (int, error)
	Ordering() models.Ordering
}

// AllCategories is the browse filter value that matches every category.
const AllCategories = "all"

type CatalogChangeKind string

const (
	CatalogLoaded  CatalogChangeKind = "loaded"
	CatalogAdded   CatalogChangeKind = "added"
	CatalogUpdated CatalogChangeKind = "updated"
	CatalogDeleted CatalogChangeKind = "deleted"
	CatalogSeeded  CatalogChangeKind = "seeded"
)

// CatalogSnapshot is what subscribers see after every applied mutation.
// Product is the record the mutation touched, nil for loads and seeds.
type CatalogSnapshot struct {
	Kind     CatalogChangeKind
	Product  *models.Product
	Products []models.Product
}

type CatalogService struct {
	provider CatalogProvider

	// writeMu serializes mutations so they are applied and published in
	// arrival order. mu guards products for readers.
	writeMu  sync.Mutex
	mu       sync.RWMutex
	products []models.Product
	changes  *state.Broadcaster[CatalogSnapshot]
}

func NewCatalogService(provider CatalogProvider) *CatalogService {
	return &CatalogService{
		provider: provider,
		changes:  state.NewBroadcaster[CatalogSnapshot](),
	}
}

// Load replaces the in-memory catalog with the provider's. When the provider
// cannot be read the bundled dataset is used instead of an empty catalog.
func (s *CatalogService) Load(ctx context.Context) error {

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	products, err := s.provider.Load(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn("catalog read failed, using bundled products", "error", err)

		products, err = dataset.Products()
		if err != nil {
			return errors.InternalError("Failed to load bundled products").WithError(err)
		}
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()

	s.publish(CatalogLoaded, nil)

	return nil
}

func (s *CatalogService) List(ctx context.Context) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.products)
}

func (s *CatalogService) GetByID(ctx context.Context, id string) (*models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}

	product := s.products[i]
	return &product, true
}

func (s *CatalogService) GetByCategory(ctx context.Context, category string) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]models.Product, 0)
	for i := range s.products {
		if s.products[i].InCategory(category) {
			matches = append(matches, s.products[i])
		}
	}

	return matches
}

// Search matches query as a case-insensitive substring of the product name.
// An empty category or "all" matches every category.
func (s *CatalogService) Search(ctx context.Context, query, category string) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))
	anyCategory := category == "" || strings.EqualFold(category, AllCategories)

	matches := make([]models.Product, 0)
	for i := range s.products {
		p := &s.products[i]
		if !anyCategory && !p.InCategory(category) {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), query) {
			matches = append(matches, *p)
		}
	}

	return matches
}

func (s *CatalogService) Categories() []models.Category {
	return models.Categories()
}

// Add stores input under a fresh id. Provider errors are returned unchanged
// and leave the catalog as it was.
func (s *CatalogService) Add(ctx context.Context, input models.Product) (*models.Product, error) {

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	input.ID = ""

	created, err := s.provider.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.provider.Ordering() == models.OrderNewestFirst {
		s.products = slices.Insert(s.products, 0, *created)
	} else {
		s.products = append(s.products, *created)
	}
	s.mu.Unlock()

	s.publish(CatalogAdded, created)

	result := *created
	return &result, nil
}

// Update merges patch into the product with the given id. An unknown id is
// a no-op.
func (s *CatalogService) Update(ctx context.Context, id string, patch *models.UpdateProductRequest) error {

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	i := s.indexOf(id)
	var merged models.Product
	if i >= 0 {
		merged = s.products[i]
	}
	s.mu.RUnlock()

	if i < 0 {
		return nil
	}

	patch.Apply(&merged)

	if err := s.provider.Update(ctx, merged); err != nil {
		return err
	}

	s.mu.Lock()
	s.products[i] = merged
	s.mu.Unlock()

	s.publish(CatalogUpdated, &merged)

	return nil
}

// Delete removes the product with the given id. An unknown id is a no-op.
func (s *CatalogService) Delete(ctx context.Context, id string) error {

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	i := s.indexOf(id)
	var removed models.Product
	if i >= 0 {
		removed = s.products[i]
	}
	s.mu.RUnlock()

	if i < 0 {
		return nil
	}

	if err := s.provider.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	s.products = slices.Delete(s.products, i, i+1)
	s.mu.Unlock()

	s.publish(CatalogDeleted, &removed)

	return nil
}

// Seed copies the bundled dataset into the provider and reloads the catalog.
// It returns how many products were newly written.
func (s *CatalogService) Seed(ctx context.Context) (int, error) {

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	products, err := dataset.Products()
	if err != nil {
		return 0, errors.InternalError("Failed to load bundled products").WithError(err)
	}

	inserted, err := s.provider.Seed(ctx, products)
	if err != nil {
		return 0, err
	}

	if inserted == 0 {
		return 0, nil
	}

	reloaded, err := s.provider.Load(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn("catalog reload after seeding failed", "error", err)
		return inserted, nil
	}

	s.mu.Lock()
	s.products = reloaded
	s.mu.Unlock()

	s.publish(CatalogSeeded, nil)

	return inserted, nil
}

func (s *CatalogService) Subscribe(fn func(CatalogSnapshot)) (unsubscribe func()) {
	return s.changes.Subscribe(fn)
}

// indexOf must be called with mu held.
func (s *CatalogService) indexOf(id string) int {
	return slices.IndexFunc(s.products, func(p models.Product) bool {
		return p.ID == id
	})
}

func (s *CatalogService) publish(kind CatalogChangeKind, product *models.Product) {
	snapshot := CatalogSnapshot{Kind: kind, Products: s.List(context.Background())}
	if product != nil {
		p := *product
		snapshot.Product = &p
	}

	s.changes.Publish(snapshot)
}
