// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ingest rebuilds the category tree and product set from the
// upstream catalog. Writes are idempotent upserts keyed on natural
// identity, so a full sync can be re-run wholesale; a failed fetch aborts
// only the subtree or category it concerns, never the whole run.
package ingest

import (
	"context"
	"log/slog"

	"catalogd/internal/fetcher"
	"catalogd/internal/models"
)

// Fetcher is the network-fetch surface the ingestor consumes. Both calls
// are single-page request/response against the upstream catalog.
type Fetcher interface {
	FetchCategoryTree(ctx context.Context) ([]fetcher.CategoryNode, error)
	FetchProductsForCategory(ctx context.Context, categoryID string) ([]fetcher.ProductEntry, error)
}

// Store is the upsert/query surface the ingestor consumes.
type Store interface {
	UpsertCategory(id, name string, parentID *string) (*models.Category, error)
	UpsertProduct(code, name string, price float64) (*models.Product, error)
	UpsertAssociation(productCode, categoryID string) error
	ListCategories() ([]models.Category, error)
}

// Broadcaster receives ingestion lifecycle events for fan-out to observers.
type Broadcaster interface {
	Broadcast(event models.ChangeEvent)
}

// Ingestor orchestrates recursive category discovery and per-category
// product discovery.
type Ingestor struct {
	fetcher Fetcher
	store   Store
	hub     Broadcaster
}

// New returns an Ingestor over the given collaborators.
func New(f Fetcher, s Store, b Broadcaster) *Ingestor {
	return &Ingestor{fetcher: f, store: s, hub: b}
}

// RefreshCategories fetches the upstream category tree and upserts every
// node depth-first, roots with a nil parent and each child with its
// immediate parent's id. A repeated id anywhere in the tree is skipped
// rather than revisited, so a cyclic or duplicated upstream response
// cannot loop the traversal. After traversal it broadcasts a
// categories_received event carrying the count of top-level categories.
func (in *Ingestor) RefreshCategories(ctx context.Context) error {
	roots, err := in.fetcher.FetchCategoryTree(ctx)
	if err != nil {
		slog.Error("category tree fetch failed", "error", err)
		return err
	}

	// Iterative depth-first traversal with an explicit stack and a
	// visited set guarding against repeated ids.
	type frame struct {
		node     fetcher.CategoryNode
		parentID *string
	}
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: roots[i]})
	}

	visited := make(map[string]bool)
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[f.node.ID] {
			slog.Warn("skipping repeated category id", "id", f.node.ID)
			continue
		}
		visited[f.node.ID] = true

		if _, err := in.store.UpsertCategory(f.node.ID, f.node.Name, f.parentID); err != nil {
			// Abort only the subtree rooted here; siblings and
			// ancestors stay committed.
			slog.Error("category upsert failed", "id", f.node.ID, "error", err)
			continue
		}

		parentID := f.node.ID
		for i := len(f.node.Subcategories) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.Subcategories[i], parentID: &parentID})
		}
	}

	in.hub.Broadcast(models.CategoriesReceived(len(roots)))
	return nil
}

// RefreshProducts fetches the full product listing for one category and
// upserts each product by code, linking it to the category. Entries
// arrive with missing prices already defaulted to 0 by the fetcher.
func (in *Ingestor) RefreshProducts(ctx context.Context, categoryID string) error {
	entries, err := in.fetcher.FetchProductsForCategory(ctx, categoryID)
	if err != nil {
		slog.Error("product fetch failed", "category", categoryID, "error", err)
		return err
	}

	for _, e := range entries {
		if _, err := in.store.UpsertProduct(e.Code, e.Name, e.Price); err != nil {
			slog.Error("product upsert failed", "code", e.Code, "error", err)
			continue
		}
		if err := in.store.UpsertAssociation(e.Code, categoryID); err != nil {
			slog.Error("association upsert failed", "code", e.Code, "category", categoryID, "error", err)
		}
	}

	slog.Info("category products refreshed", "category", categoryID, "count", len(entries))
	return nil
}

// RunFullSync refreshes the category tree and then the product set of
// every category in the store, including categories left over from
// earlier syncs. It brackets the run with parsing_started and
// parsing_finished events; per-category fetch failures are logged and do
// not abort the run. Cancelling ctx ends the run early with a clean
// parsing_finished event.
func (in *Ingestor) RunFullSync(ctx context.Context) {
	in.hub.Broadcast(models.ParsingStarted())
	defer in.hub.Broadcast(models.ParsingFinished())

	slog.Info("catalog sync started")

	if err := in.RefreshCategories(ctx); err != nil {
		// The stored tree is stale but products of known categories
		// can still be refreshed.
		slog.Warn("continuing sync with stored categories")
	}

	if ctx.Err() != nil {
		slog.Info("catalog sync cancelled")
		return
	}

	categories, err := in.store.ListCategories()
	if err != nil {
		slog.Error("listing categories failed", "error", err)
		return
	}

	for _, c := range categories {
		if ctx.Err() != nil {
			slog.Info("catalog sync cancelled", "at_category", c.ID)
			return
		}
		// Failures are already logged per category; the sync moves on.
		_ = in.RefreshProducts(ctx, c.ID)
	}

	slog.Info("catalog sync finished", "categories", len(categories))
}
