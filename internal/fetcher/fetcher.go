// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package fetcher implements the HTTP client for the upstream OCC catalog
// API. It exposes two synchronous calls: one for the full category tree and
// one for a category's complete product listing, requested as a single page
// sized to hold every result.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// pageSize is large enough that the upstream returns every product of a
// category in one page, so no pagination loop is needed.
const pageSize = "9999999"

// CategoryNode is one node of the upstream category tree response.
type CategoryNode struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Subcategories []CategoryNode `json:"subcategories"`
}

// ProductEntry is one product of an upstream search response. Price is
// already unwrapped from the nested price object, defaulting to 0 when
// the upstream omits it.
type ProductEntry struct {
	Code  string
	Name  string
	Price float64
}

// Config holds the upstream endpoint and locale settings.
type Config struct {
	BaseURL   string // e.g. "https://api-ecomm.sdvor.com/occ/v2/sd"
	Lang      string
	Curr      string
	BaseStore string
	Timeout   time.Duration
}

// Client performs catalog requests against the upstream OCC API.
type Client struct {
	config Config
	client *http.Client
}

// New creates a catalog fetcher for the given upstream configuration.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// catalogResponse is the wire shape of the category tree endpoint.
type catalogResponse struct {
	Categories []CategoryNode `json:"categories"`
}

// FetchCategoryTree retrieves the top-level category listing with its
// nested subcategory lists.
func (c *Client) FetchCategoryTree(ctx context.Context) ([]CategoryNode, error) {
	u := c.config.BaseURL + "/catalogs/sdvrProductCatalog/Online/"

	var result catalogResponse
	if err := c.getJSON(ctx, u, &result); err != nil {
		return nil, fmt.Errorf("fetch category tree: %w", err)
	}
	return result.Categories, nil
}

// searchResponse is the wire shape of the product search endpoint. Prices
// arrive as nested objects carrying a value field.
type searchResponse struct {
	Products []struct {
		Code  string `json:"code"`
		Name  string `json:"name"`
		Price *struct {
			Value float64 `json:"value"`
		} `json:"price"`
	} `json:"products"`
}

// FetchProductsForCategory retrieves the full product listing for one
// category in a single page request. Entries without a price field are
// returned with price 0, not treated as a failure.
func (c *Client) FetchProductsForCategory(ctx context.Context, categoryID string) ([]ProductEntry, error) {
	q := url.Values{}
	q.Set("fields", "products(code,name,price(FULL)),pagination(DEFAULT)")
	q.Set("currentPage", "0")
	q.Set("pageSize", pageSize)
	q.Set("facets", "allCategories:"+categoryID)
	q.Set("lang", c.config.Lang)
	q.Set("curr", c.config.Curr)
	q.Set("deviceType", "desktop")
	q.Set("baseStore", c.config.BaseStore)

	u := c.config.BaseURL + "/products/search?" + q.Encode()

	var result searchResponse
	if err := c.getJSON(ctx, u, &result); err != nil {
		return nil, fmt.Errorf("fetch products for category %s: %w", categoryID, err)
	}

	entries := make([]ProductEntry, 0, len(result.Products))
	for _, p := range result.Products {
		entry := ProductEntry{Code: p.Code, Name: p.Name}
		if p.Price != nil {
			entry.Price = p.Price.Value
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// getJSON performs a GET request and decodes the JSON response body.
// A non-200 status is returned as an error carrying the response body.
func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}
