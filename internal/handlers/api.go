// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"

	"catalogd/internal/cache"
	"catalogd/internal/models"
)

// CategoryStore is the category persistence surface the API consumes.
// Satisfied by *store.CategoryStore.
type CategoryStore interface {
	Create(c *models.Category) (*models.Category, error)
	Update(id, name string) (*models.Category, error)
	Delete(id string) error
	FindByID(id string) (*models.Category, error)
	List() ([]models.Category, error)
	Tree() ([]models.Category, error)
}

// ProductStore is the product persistence surface the API consumes.
// Satisfied by *store.ProductStore.
type ProductStore interface {
	Create(p *models.Product) (*models.Product, error)
	Update(code, name string, price float64) (*models.Product, error)
	Delete(code string) error
	FindByCode(code string) (*models.Product, error)
	List() ([]models.Product, error)
	ListByCategory(categoryID string) ([]models.Product, error)
	AddAssociation(productCode, categoryID string) error
	RemoveAssociation(productCode, categoryID string) error
}

// Broadcaster fans a change event out to connected observers after a
// successful mutation. Satisfied by *hub.Hub.
type Broadcaster interface {
	Broadcast(event models.ChangeEvent)
}

// API holds the catalog CRUD handlers and their dependencies.
type API struct {
	categories CategoryStore
	products   ProductStore
	hub        Broadcaster
	listings   *cache.ListingCache
}

// NewAPI creates the catalog API handler group. listings may be nil when
// no cache is configured.
func NewAPI(categories CategoryStore, products ProductStore, hub Broadcaster, listings *cache.ListingCache) *API {
	return &API{
		categories: categories,
		products:   products,
		hub:        hub,
		listings:   listings,
	}
}

// invalidateListings drops cached listings after a mutation.
func (a *API) invalidateListings(ctx context.Context) {
	if a.listings != nil {
		a.listings.InvalidateAll(ctx)
	}
}

// cachedListing returns a cached listing payload, if present.
func (a *API) cachedListing(ctx context.Context, key string) ([]byte, bool) {
	if a.listings == nil {
		return nil, false
	}
	return a.listings.Get(ctx, key)
}

// storeListing caches a serialized listing payload.
func (a *API) storeListing(ctx context.Context, key string, payload []byte) {
	if a.listings != nil {
		a.listings.Set(ctx, key, payload)
	}
}
