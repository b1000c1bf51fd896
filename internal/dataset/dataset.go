// Package dataset exposes the product list bundled with the binary. It is the
// default catalog of the local backend and the fallback of the remote one.
package dataset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/aaravmahajanofficial/fashionhub/internal/models"
)

//go:embed products.json
var productsJSON []byte

// Products decodes a fresh copy of the bundled catalog on every call so
// callers may mutate the result freely.
func Products() ([]models.Product, error) {
	return Parse(productsJSON)
}

func Parse(data []byte) ([]models.Product, error) {

	var products []models.Product

	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode bundled products: %w", err)
	}

	for i, p := range products {
		if p.ID == "" || p.Name == "" || p.Image == "" || p.Description == "" || p.Category == "" {
			return nil, fmt.Errorf("bundled product at index %d is missing a required field", i)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("bundled product %s has a negative price", p.ID)
		}
	}

	return products, nil
}

// MustProducts panics if the embedded file is broken, which is a build defect.
func MustProducts() []models.Product {
	products, err := Products()
	if err != nil {
		panic(err)
	}

	return products
}

// MaxNumericID returns the largest id that parses as an integer, 0 if none do.
func MaxNumericID(products []models.Product) int64 {

	var highest int64

	for _, p := range products {
		if n, err := strconv.ParseInt(p.ID, 10, 64); err == nil && n > highest {
			highest = n
		}
	}

	return highest
}
