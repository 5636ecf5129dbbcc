// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Product is a catalog item identified by its upstream-assigned code.
// The code is unique across the whole catalog and survives re-syncs.
type Product struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Virtual field populated by store methods: IDs of the categories
	// this product belongs to.
	CategoryIDs []string `json:"category_ids,omitempty"`
}

// ProductCategory is the many-to-many edge linking a product to a category.
type ProductCategory struct {
	ProductCode string    `json:"product_code"`
	CategoryID  string    `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
}
