// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"catalogd/internal/cache"
	"catalogd/internal/models"
)

// productRequest is the payload for product create/update calls.
// CategoryID optionally links the new product to a category in the same
// request.
type productRequest struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	CategoryID string  `json:"category_id,omitempty"`
}

// ProductsList handles GET /api/products.
func (a *API) ProductsList(w http.ResponseWriter, r *http.Request) {
	a.serveListing(w, r, cache.ProductsKey(), func() (any, error) {
		items, err := a.products.List()
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []models.Product{}
		}
		return items, nil
	})
}

// ProductGet handles GET /api/products/{code}.
func (a *API) ProductGet(w http.ResponseWriter, r *http.Request) {
	p, err := a.products.FindByCode(chi.URLParam(r, "code"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ProductCreate handles POST /api/products. When category_id is given,
// the referenced category must exist before anything is written; the
// resulting product_created event carries that category id.
func (a *API) ProductCreate(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if msg := validateProduct(req.Code, req.Name, req.Price); msg != "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", msg)
		return
	}

	if req.CategoryID != "" {
		if _, err := a.categories.FindByID(req.CategoryID); err != nil {
			writeStoreError(w, err)
			return
		}
	}

	created, err := a.products.Create(&models.Product{Code: req.Code, Name: req.Name, Price: req.Price})
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if req.CategoryID != "" {
		if err := a.products.AddAssociation(created.Code, req.CategoryID); err != nil {
			writeStoreError(w, err)
			return
		}
		created.CategoryIDs = []string{req.CategoryID}
	}

	a.invalidateListings(r.Context())
	a.hub.Broadcast(models.ProductEvent(models.ActionProductCreated, created, req.CategoryID))
	writeJSON(w, http.StatusCreated, created)
}

// ProductUpdate handles PUT /api/products/{code}.
func (a *API) ProductUpdate(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	code := chi.URLParam(r, "code")
	if msg := validateProduct(code, req.Name, req.Price); msg != "" {
		writeJSONError(w, http.StatusBadRequest, "validation_error", msg)
		return
	}

	updated, err := a.products.Update(code, req.Name, req.Price)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	a.invalidateListings(r.Context())
	a.hub.Broadcast(models.ProductEvent(models.ActionProductUpdated, updated, ""))
	writeJSON(w, http.StatusOK, updated)
}

// ProductDelete handles DELETE /api/products/{code}.
func (a *API) ProductDelete(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	p, err := a.products.FindByCode(code)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	if err := a.products.Delete(code); err != nil {
		writeStoreError(w, err)
		return
	}

	a.invalidateListings(r.Context())
	a.hub.Broadcast(models.ProductEvent(models.ActionProductDeleted, p, ""))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "code": code})
}

// AssociationAdd handles POST /api/products/{code}/categories/{id}.
// An already-existing edge is a conflict and emits no event.
func (a *API) AssociationAdd(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	id := chi.URLParam(r, "id")

	if err := a.products.AddAssociation(code, id); err != nil {
		writeStoreError(w, err)
		return
	}

	a.invalidateListings(r.Context())
	a.hub.Broadcast(models.AssociationEvent(models.ActionProductAddedToCategory, code, id))
	writeJSON(w, http.StatusCreated, map[string]string{"product_code": code, "category_id": id})
}

// AssociationRemove handles DELETE /api/products/{code}/categories/{id}.
func (a *API) AssociationRemove(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	id := chi.URLParam(r, "id")

	if err := a.products.RemoveAssociation(code, id); err != nil {
		writeStoreError(w, err)
		return
	}

	a.invalidateListings(r.Context())
	a.hub.Broadcast(models.AssociationEvent(models.ActionProductRemovedFromCategory, code, id))
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
