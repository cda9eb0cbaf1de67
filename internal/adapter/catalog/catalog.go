// Package catalog serves the static, read-only product catalog. The data
// ships inside the binary and is validated once at load, every query after
// that is a pure function over the loaded slice.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/trustedwear/storefront/internal/core/domain"
	"github.com/trustedwear/storefront/internal/core/port"
)

//go:embed products.json
var productsJSON []byte

var _ port.CatalogProvider = (*Catalog)(nil)

type productEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	SalePrice   *float64 `json:"salePrice"`
	Category    string   `json:"category"`
	Type        string   `json:"type"`
	Images      []string `json:"images"`
	Sizes       []string `json:"sizes"`
	InStock     bool     `json:"inStock"`
	Description string   `json:"description"`
	Featured    bool     `json:"featured"`
	New         bool     `json:"new"`
}

type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

// Load parses and validates the embedded catalog. A validation failure is a
// build-data mistake and aborts startup.
func Load() (*Catalog, error) {
	return load(productsJSON)
}

func load(data []byte) (*Catalog, error) {
	const op = "catalog.Load"

	var entries []productEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c := &Catalog{byID: make(map[string]int, len(entries))}
	for _, e := range entries {
		p := domain.Product{
			ID:          e.ID,
			Name:        e.Name,
			Price:       e.Price,
			SalePrice:   e.SalePrice,
			Category:    domain.Category(e.Category),
			Type:        e.Type,
			Images:      e.Images,
			Sizes:       e.Sizes,
			InStock:     e.InStock,
			Description: e.Description,
			Featured:    e.Featured,
			New:         e.New,
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("%s: duplicate product id %q", op, p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// All returns the catalog in its stable order.
func (c *Catalog) All() []domain.Product {
	ps := make([]domain.Product, len(c.products))
	copy(ps, c.products)
	return ps
}

func (c *Catalog) ByID(id string) (domain.Product, error) {
	const op = "Catalog.ByID"

	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%s: %q: %w", op, id, ErrNotFound)
	}
	return c.products[i], nil
}

func (c *Catalog) ByCategory(cat domain.Category) (ps []domain.Product) {
	for _, p := range c.products {
		if p.Category == cat {
			ps = append(ps, p)
		}
	}
	return ps
}

// Search matches the query against name, type and description,
// case-insensitively.
func (c *Catalog) Search(query string) (ps []domain.Product) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.All()
	}
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Type), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			ps = append(ps, p)
		}
	}
	return ps
}

func (c *Catalog) Featured() (ps []domain.Product) {
	for _, p := range c.products {
		if p.Featured {
			ps = append(ps, p)
		}
	}
	return ps
}

func (c *Catalog) New() (ps []domain.Product) {
	for _, p := range c.products {
		if p.New {
			ps = append(ps, p)
		}
	}
	return ps
}
