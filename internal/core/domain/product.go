package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidProduct = errors.New("invalid product")

type Category string

const (
	CategoryMen   Category = "men"
	CategoryWomen Category = "women"
	CategoryKids  Category = "kids"
)

func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryMen, CategoryWomen, CategoryKids:
		return c, nil
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

// A Product is a read-only catalog entry. Cart items hold a snapshot of it
// and never mutate it.
type Product struct {
	ID          string
	Name        string
	Price       float64
	SalePrice   *float64
	Category    Category
	Type        string
	Images      []string
	Sizes       []string
	InStock     bool
	Description string
	Featured    bool
	New         bool
}

// EffectivePrice is the sale price when present, the base price otherwise.
func (p Product) EffectivePrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// Validate checks the catalog invariants: a stable id, a non-empty image
// list and size set, a known category and a sale price not above the base.
func (p Product) Validate() error {
	var errs []error

	if p.ID == "" {
		errs = append(errs, errors.New("empty product id"))
	}
	if p.Name == "" {
		errs = append(errs, errors.New("empty product name"))
	}
	if _, err := ParseCategory(string(p.Category)); err != nil {
		errs = append(errs, err)
	}
	if len(p.Images) == 0 {
		errs = append(errs, errors.New("no images"))
	}
	if len(p.Sizes) == 0 {
		errs = append(errs, errors.New("no sizes"))
	}
	if p.SalePrice != nil && *p.SalePrice > p.Price {
		errs = append(errs, fmt.Errorf(
			"sale price %v above base price %v", *p.SalePrice, p.Price,
		))
	}

	if len(errs) != 0 {
		return fmt.Errorf("%w %q: %w", ErrInvalidProduct, p.ID, errors.Join(errs...))
	}
	return nil
}
