package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	"github.com/aaravmahajanofficial/fashionhub/internal/utils"
	"github.com/google/uuid"
)

// ProductRepository is the document store behind the remote catalog. Ids are
// opaque strings; new documents get a UUID.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	SeedProducts(ctx context.Context, products []models.Product) (int, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

func (r *productRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, price, category, image, description, created_at
		FROM products
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}

	defer rows.Close()

	products := []models.Product{}

	for rows.Next() {
		var p models.Product

		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Image, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	return products, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	id := product.ID
	if id == "" {
		id = uuid.NewString()
	}

	query := `
		INSERT INTO products (id, name, price, category, image, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.DB.QueryRowContext(dbCtx, query, id, product.Name, product.Price, product.Category, product.Image, product.Description).Scan(&product.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("product %s: %w", id, ErrDuplicate)
		}
		return fmt.Errorf("inserting product: %w", err)
	}

	product.ID = id

	return nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET name = $1, price = $2, category = $3, image = $4, description = $5, updated_at = NOW()
		WHERE id = $6
	`

	result, err := r.DB.ExecContext(dbCtx, query, product.Name, product.Price, product.Category, product.Image, product.Description, product.ID)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	return expectOneRow(result, product.ID)
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	return expectOneRow(result, id)
}

// SeedProducts inserts the given products in one transaction, skipping ids
// that already exist, and reports how many rows were added.
func (r *productRepository) SeedProducts(ctx context.Context, products []models.Product) (int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(dbCtx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting seed transaction: %w", err)
	}

	defer tx.Rollback()

	query := `
		INSERT INTO products (id, name, price, category, image, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`

	inserted := 0

	for _, p := range products {
		result, err := tx.ExecContext(dbCtx, query, p.ID, p.Name, p.Price, p.Category, p.Image, p.Description)
		if err != nil {
			return 0, fmt.Errorf("seeding product %s: %w", p.ID, err)
		}

		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get seeded rows: %w", err)
		}

		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing seed transaction: %w", err)
	}

	return inserted, nil
}

func expectOneRow(result sql.Result, id string) error {

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	return nil
}

// IsNotFound reports whether err means the row did not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}
