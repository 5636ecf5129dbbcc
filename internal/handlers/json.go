// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API surface: catalog CRUD, the
// sync trigger, and the observer websocket endpoint.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"catalogd/internal/store"
)

// jsonError is the JSON error payload returned for failed requests.
type jsonError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("response encode failed", "error", err)
	}
}

// writeJSONError writes a JSON error payload with the given status code.
func writeJSONError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, jsonError{Error: message, Details: details})
}

// writeStoreError maps store sentinel errors to client status codes, and
// everything else to a 500 without leaking internals.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not_found", "")
	case errors.Is(err, store.ErrConflict):
		writeJSONError(w, http.StatusConflict, "already_exists", "")
	default:
		slog.Error("store operation failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

// decodeJSON decodes a request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
