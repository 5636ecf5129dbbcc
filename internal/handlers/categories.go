// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"catalogd/internal/cache"
	"catalogd/internal/models"
)

// categoryRequest is the payload for category create/update calls.
type categoryRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id"`
}

// serveListing answers from the listing cache or runs the query, caching
// the serialized result.
func (a *API) serveListing(w http.ResponseWriter, r *http.Request, key string, query func() (any, error)) {
	if payload, ok := a.cachedListing(r.Context(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
		return
	}

	result, err := query()
	if err != nil {
		writeStoreError(w, err)
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	a.storeListing(r.Context(), key, payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// CategoriesList handles GET /api/categories.
func (a *API) CategoriesList(w http.ResponseWriter, r *http.Request) {
	a.serveListing(w, r, cache.CategoriesKey(), func() (any, error) {
		items, err := a.categories.List()
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []models.Category{}
		}
		return items, nil
	})
}

// CategoriesTree handles GET /api/categories/tree.
func (a *API) CategoriesTree(w http.ResponseWriter, r *http.Request) {
	a.serveListing(w, r, cache.CategoryTreeKey(), func() (any, error) {
		items, err := a.categories.Tree()
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []models.Category{}
		}
		return items, nil
	})
}

// CategoryGet handles GET /api/categories/{id}.
func (a *API) CategoryGet(w http.ResponseWriter, r *http.Request) {
	c, err := a.categories.FindByID(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CategoryCreate handles POST /api/categories. On success a
// category_created event reaches every connected observer.
func (a *API) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if msg := validateCategory(req.ID, req.Name); msg != "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", msg)
		return
	}

	created, err := a.categories.Create(&models.Category{ID: req.ID, Name: req.Name, ParentID: req.ParentID})
	if err != nil {
		writeStoreError(w, err)
		return
	}

	a.invalidateListings(r.Context())
	a.hub.Broadcast(models.CategoryEvent(models.ActionCategoryCreated, created))
	writeJSON(w, http.StatusCreated, created)
}

// CategoryUpdate handles PUT /api/categories/{id}.
func (a *API) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	id := chi.URLParam(r, "id")
	if msg := validateCategory(id, req.Name); msg != "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", msg)
		return
	}

	updated, err := a.categories.Update(id, req.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	a.invalidateListings(r.Context())
	a.hub.Broadcast(models.CategoryEvent(models.ActionCategoryUpdated, updated))
	writeJSON(w, http.StatusOK, updated)
}

// CategoryDelete handles DELETE /api/categories/{id}. Association edges
// to the deleted category are cascaded away by the store.
func (a *API) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Fetch first so the event can carry the category's name.
	c, err := a.categories.FindByID(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if err := a.categories.Delete(id); err != nil {
		writeStoreError(w, err)
		return
	}

	a.invalidateListings(r.Context())
	a.hub.Broadcast(models.CategoryEvent(models.ActionCategoryDeleted, c))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// CategoryProducts handles GET /api/categories/{id}/products.
func (a *API) CategoryProducts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := a.categories.FindByID(id); err != nil {
		writeStoreError(w, err)
		return
	}

	items, err := a.products.ListByCategory(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if items == nil {
		items = []models.Product{}
	}
	writeJSON(w, http.StatusOK, items)
}
