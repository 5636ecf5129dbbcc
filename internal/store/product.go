// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"catalogd/internal/models"
)

// ProductStore manages products and their category associations.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore returns a new ProductStore.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `code, name, price, created_at, updated_at`

// scanProduct scans a row into a Product struct.
func scanProduct(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := scanner.Scan(&p.Code, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert inserts or refreshes a product keyed on its upstream code.
func (s *ProductStore) Upsert(code, name string, price float64) (*models.Product, error) {
	row := s.db.QueryRow(`
		INSERT INTO products (code, name, price)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name, price = EXCLUDED.price, updated_at = NOW()
		RETURNING `+productColumns,
		code, name, price,
	)
	p, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("upsert product %s: %w", code, err)
	}
	return p, nil
}

// Create inserts a new product, failing with ErrConflict if the code is taken.
func (s *ProductStore) Create(p *models.Product) (*models.Product, error) {
	row := s.db.QueryRow(`
		INSERT INTO products (code, name, price)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO NOTHING
		RETURNING `+productColumns,
		p.Code, p.Name, p.Price,
	)
	created, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

// Update modifies a product's name and price. Returns ErrNotFound if missing.
func (s *ProductStore) Update(code, name string, price float64) (*models.Product, error) {
	row := s.db.QueryRow(`
		UPDATE products SET name = $1, price = $2, updated_at = NOW()
		WHERE code = $3
		RETURNING `+productColumns,
		name, price, code,
	)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update product %s: %w", code, err)
	}
	return p, nil
}

// Delete removes a product by code. Association edges cascade away.
// Returns ErrNotFound if the product does not exist.
func (s *ProductStore) Delete(code string) error {
	res, err := s.db.Exec(`DELETE FROM products WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete product %s: %w", code, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product %s: %w", code, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByCode retrieves a product with its category ids populated.
// Returns ErrNotFound if missing.
func (s *ProductStore) FindByCode(code string) (*models.Product, error) {
	row := s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE code = $1`, code)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find product by code: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT category_id FROM product_categories WHERE product_code = $1 ORDER BY category_id`, code)
	if err != nil {
		return nil, fmt.Errorf("find product categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product category: %w", err)
		}
		p.CategoryIDs = append(p.CategoryIDs, id)
	}
	return p, rows.Err()
}

// List returns all products ordered by code.
func (s *ProductStore) List() ([]models.Product, error) {
	rows, err := s.db.Query(`SELECT ` + productColumns + ` FROM products ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListByCategory returns all products associated with one category.
func (s *ProductStore) ListByCategory(categoryID string) ([]models.Product, error) {
	rows, err := s.db.Query(`
		SELECT p.code, p.name, p.price, p.created_at, p.updated_at
		FROM products p
		JOIN product_categories pc ON pc.product_code = p.code
		WHERE pc.category_id = $1
		ORDER BY p.code
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// collectProducts drains a product result set.
func collectProducts(rows *sql.Rows) ([]models.Product, error) {
	var items []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// UpsertAssociation links a product to a category, quietly succeeding if
// the edge already exists. Used by ingestion, which re-discovers the same
// edges on every sync.
func (s *ProductStore) UpsertAssociation(productCode, categoryID string) error {
	_, err := s.db.Exec(`
		INSERT INTO product_categories (product_code, category_id)
		VALUES ($1, $2)
		ON CONFLICT (product_code, category_id) DO NOTHING
	`, productCode, categoryID)
	if err != nil {
		return fmt.Errorf("upsert association %s/%s: %w", productCode, categoryID, err)
	}
	return nil
}

// AddAssociation links a product to a category. Unlike UpsertAssociation it
// detects preconditions: ErrConflict if the edge exists, ErrNotFound if
// either endpoint does not.
func (s *ProductStore) AddAssociation(productCode, categoryID string) error {
	res, err := s.db.Exec(`
		INSERT INTO product_categories (product_code, category_id)
		VALUES ($1, $2)
		ON CONFLICT (product_code, category_id) DO NOTHING
	`, productCode, categoryID)
	if isFKViolation(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("add association %s/%s: %w", productCode, categoryID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("add association %s/%s: %w", productCode, categoryID, err)
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// RemoveAssociation unlinks a product from a category. Returns ErrNotFound
// if no such edge exists.
func (s *ProductStore) RemoveAssociation(productCode, categoryID string) error {
	res, err := s.db.Exec(
		`DELETE FROM product_categories WHERE product_code = $1 AND category_id = $2`,
		productCode, categoryID,
	)
	if err != nil {
		return fmt.Errorf("remove association %s/%s: %w", productCode, categoryID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove association %s/%s: %w", productCode, categoryID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
