// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handlers_test.go provides in-memory store fakes and a test router so
// the API handlers can be exercised without PostgreSQL.
package handlers

import (
	"sync"

	"github.com/go-chi/chi/v5"

	"catalogd/internal/models"
	"catalogd/internal/store"
)

// fakeCategoryStore is an in-memory CategoryStore.
type fakeCategoryStore struct {
	mu    sync.Mutex
	items map[string]models.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{items: make(map[string]models.Category)}
}

func (f *fakeCategoryStore) Create(c *models.Category) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[c.ID]; ok {
		return nil, store.ErrConflict
	}
	f.items[c.ID] = *c
	out := *c
	return &out, nil
}

func (f *fakeCategoryStore) Update(id, name string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c.Name = name
	f.items[id] = c
	return &c, nil
}

func (f *fakeCategoryStore) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeCategoryStore) FindByID(id string) (*models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (f *fakeCategoryStore) List() ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Category, 0, len(f.items))
	for _, c := range f.items {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryStore) Tree() ([]models.Category, error) {
	return f.List()
}

// fakeProductStore is an in-memory ProductStore.
type fakeProductStore struct {
	mu     sync.Mutex
	items  map[string]models.Product
	assocs map[[2]string]bool
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{
		items:  make(map[string]models.Product),
		assocs: make(map[[2]string]bool),
	}
}

func (f *fakeProductStore) Create(p *models.Product) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[p.Code]; ok {
		return nil, store.ErrConflict
	}
	f.items[p.Code] = *p
	out := *p
	return &out, nil
}

func (f *fakeProductStore) Update(code, name string, price float64) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.items[code]
	if !ok {
		return nil, store.ErrNotFound
	}
	p.Name = name
	p.Price = price
	f.items[code] = p
	return &p, nil
}

func (f *fakeProductStore) Delete(code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[code]; !ok {
		return store.ErrNotFound
	}
	delete(f.items, code)
	return nil
}

func (f *fakeProductStore) FindByCode(code string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.items[code]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProductStore) List() ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Product, 0, len(f.items))
	for _, p := range f.items {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductStore) ListByCategory(categoryID string) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Product
	for code, p := range f.items {
		if f.assocs[[2]string{code, categoryID}] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) AddAssociation(productCode, categoryID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[productCode]; !ok {
		return store.ErrNotFound
	}
	key := [2]string{productCode, categoryID}
	if f.assocs[key] {
		return store.ErrConflict
	}
	f.assocs[key] = true
	return nil
}

func (f *fakeProductStore) RemoveAssociation(productCode, categoryID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]string{productCode, categoryID}
	if !f.assocs[key] {
		return store.ErrNotFound
	}
	delete(f.assocs, key)
	return nil
}

// recordingHub captures broadcast events in order.
type recordingHub struct {
	mu     sync.Mutex
	events []models.ChangeEvent
}

func (r *recordingHub) Broadcast(event models.ChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingHub) all() []models.ChangeEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ChangeEvent, len(r.events))
	copy(out, r.events)
	return out
}

// testAPI wires the API handler group onto a chi router with fakes.
func testAPI() (*API, *fakeCategoryStore, *fakeProductStore, *recordingHub, chi.Router) {
	categories := newFakeCategoryStore()
	products := newFakeProductStore()
	h := &recordingHub{}
	api := NewAPI(categories, products, h, nil)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", api.CategoriesList)
			r.Get("/tree", api.CategoriesTree)
			r.Post("/", api.CategoryCreate)
			r.Get("/{id}", api.CategoryGet)
			r.Put("/{id}", api.CategoryUpdate)
			r.Delete("/{id}", api.CategoryDelete)
			r.Get("/{id}/products", api.CategoryProducts)
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/", api.ProductsList)
			r.Post("/", api.ProductCreate)
			r.Get("/{code}", api.ProductGet)
			r.Put("/{code}", api.ProductUpdate)
			r.Delete("/{code}", api.ProductDelete)
			r.Post("/{code}/categories/{id}", api.AssociationAdd)
			r.Delete("/{code}/categories/{id}", api.AssociationRemove)
		})
	})

	return api, categories, products, h, r
}
