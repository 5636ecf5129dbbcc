package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for catalog fields. Upstream ids and codes are short
// alphanumeric keys; the caps only guard against abusive payloads.
const (
	maxIDLen   = 100
	maxNameLen = 500
)

// validateCategory checks category inputs and returns the first error found.
func validateCategory(id, name string) string {
	if strings.TrimSpace(id) == "" {
		return "id is required"
	}
	if utf8.RuneCountInString(id) > maxIDLen {
		return "id is too long (max 100 characters)"
	}
	if strings.TrimSpace(name) == "" {
		return "name is required"
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "name is too long (max 500 characters)"
	}
	return ""
}

// validateProduct checks product inputs and returns the first error found.
func validateProduct(code, name string, price float64) string {
	if strings.TrimSpace(code) == "" {
		return "code is required"
	}
	if utf8.RuneCountInString(code) > maxIDLen {
		return "code is too long (max 100 characters)"
	}
	if strings.TrimSpace(name) == "" {
		return "name is required"
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "name is too long (max 500 characters)"
	}
	if price < 0 {
		return "price must be >= 0"
	}
	return ""
}
