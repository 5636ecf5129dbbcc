// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import "catalogd/internal/models"

// Catalog bundles the category and product stores behind the single
// upsert/query surface the ingestion pipeline consumes.
type Catalog struct {
	categories *CategoryStore
	products   *ProductStore
}

// NewCatalog returns a Catalog over the given stores.
func NewCatalog(categories *CategoryStore, products *ProductStore) *Catalog {
	return &Catalog{categories: categories, products: products}
}

// UpsertCategory inserts or refreshes a category keyed on its upstream id.
func (c *Catalog) UpsertCategory(id, name string, parentID *string) (*models.Category, error) {
	return c.categories.Upsert(id, name, parentID)
}

// UpsertProduct inserts or refreshes a product keyed on its upstream code.
func (c *Catalog) UpsertProduct(code, name string, price float64) (*models.Product, error) {
	return c.products.Upsert(code, name, price)
}

// UpsertAssociation links a product to a category, tolerating an existing edge.
func (c *Catalog) UpsertAssociation(productCode, categoryID string) error {
	return c.products.UpsertAssociation(productCode, categoryID)
}

// ListCategories returns every category currently persisted.
func (c *Catalog) ListCategories() ([]models.Category, error) {
	return c.categories.List()
}
