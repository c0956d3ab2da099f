// Package catalog holds the fixed product list the storefront sells.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/domain"
	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/slug"
)

//go:embed products.json
var embeddedProducts []byte

// ErrInvalidCatalog is returned when a product list fails validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is an immutable, indexed product list. It is safe for concurrent use.
type Catalog struct {
	products []domain.Product
	byID     map[int]int
	bySlug   map[string]int
}

// Load reads the catalog from path, or the embedded product list when path
// is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(embeddedProducts)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a JSON array of products and builds a Catalog from it.
func Parse(data []byte) (*Catalog, error) {
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(products)
}

// New validates products and indexes them by ID and slug. Products without
// a slug get one generated from their name. Order is preserved.
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
		bySlug:   make(map[string]int, len(products)),
	}

	for i, p := range products {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: product at index %d has no name", ErrInvalidCatalog, i)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("%w: product %d has a negative price", ErrInvalidCatalog, p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %d", ErrInvalidCatalog, p.ID)
		}
		if p.Slug == "" {
			p.Slug = slug.Generate(p.Name)
		}
		if p.Slug == "" {
			return nil, fmt.Errorf("%w: product %d has no usable slug", ErrInvalidCatalog, p.ID)
		}
		if _, dup := c.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("%w: duplicate slug %q", ErrInvalidCatalog, p.Slug)
		}

		c.byID[p.ID] = len(c.products)
		c.bySlug[p.Slug] = len(c.products)
		c.products = append(c.products, p)
	}

	return c, nil
}

// All returns the products in catalog order. The slice is a copy.
func (c *Catalog) All() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// ByID returns the product with the given ID.
func (c *Catalog) ByID(id int) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// BySlug returns the product with the given slug.
func (c *Catalog) BySlug(s string) (domain.Product, bool) {
	i, ok := c.bySlug[s]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Lookup resolves ref as a numeric ID first and as a slug otherwise.
func (c *Catalog) Lookup(ref string) (domain.Product, bool) {
	if id, err := strconv.Atoi(ref); err == nil {
		if p, ok := c.ByID(id); ok {
			return p, true
		}
	}
	return c.BySlug(ref)
}
