package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Product is a single catalog entry.
type Product struct {
	ID    int     `yaml:"id" json:"id"`
	Name  string  `yaml:"name" json:"name"`
	Price float64 `yaml:"price" json:"price"`
}

// Catalog is the read-only product list served by the store.
type Catalog struct {
	products []Product
	byID     map[int]int
}

var defaultProducts = []Product{
	{ID: 1, Name: "Tshirt", Price: 25},
	{ID: 2, Name: "Jeans", Price: 70},
	{ID: 3, Name: "Socks", Price: 15},
}

// NewCatalog builds a catalog preserving the order of products.
func NewCatalog(products []Product) (*Catalog, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	copy(c.products, products)
	for i, p := range c.products {
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// List returns the products in definition order. The slice is a copy.
func (c *Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Find looks up a product by id.
func (c *Catalog) Find(id int) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// loadCatalog reads products from a YAML file, or returns the built-in
// products when path is empty.
func loadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return NewCatalog(defaultProducts)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var products []Product
	if err := yaml.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	return NewCatalog(products)
}
