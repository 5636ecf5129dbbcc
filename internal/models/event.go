// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Event actions carried on the wire to connected observers. Ingestion
// lifecycle markers come from the sync pipeline; the rest are emitted
// after successful mutations.
const (
	ActionParsingStarted     = "parsing_started"
	ActionCategoriesReceived = "categories_received"
	ActionParsingFinished    = "parsing_finished"

	ActionCategoryCreated = "category_created"
	ActionCategoryUpdated = "category_updated"
	ActionCategoryDeleted = "category_deleted"

	ActionProductCreated = "product_created"
	ActionProductUpdated = "product_updated"
	ActionProductDeleted = "product_deleted"

	ActionProductAddedToCategory     = "product_added_to_category"
	ActionProductRemovedFromCategory = "product_removed_from_category"
)

// ChangeEvent is the message delivered to every connected observer.
// It is transient: constructed, serialized once, broadcast, and dropped.
// Only the fields relevant to the action are populated.
type ChangeEvent struct {
	Action string `json:"action"`

	// Length is the number of top-level categories discovered by a sync.
	// Set only for categories_received.
	Length *int `json:"length,omitempty"`

	// Category identity, for category_* actions.
	ID       string  `json:"id,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`

	// Product identity, for product_* actions.
	Code  string  `json:"code,omitempty"`
	Price float64 `json:"price,omitempty"`

	// Name of the affected category or product.
	Name string `json:"name,omitempty"`

	// CategoryID links a product event to the category it concerns.
	CategoryID string `json:"category_id,omitempty"`
}

// ParsingStarted marks the beginning of a full catalog sync.
func ParsingStarted() ChangeEvent {
	return ChangeEvent{Action: ActionParsingStarted}
}

// CategoriesReceived reports how many top-level categories the sync
// discovered (not the recursive total).
func CategoriesReceived(count int) ChangeEvent {
	return ChangeEvent{Action: ActionCategoriesReceived, Length: &count}
}

// ParsingFinished marks the end of a full catalog sync, successful or not.
func ParsingFinished() ChangeEvent {
	return ChangeEvent{Action: ActionParsingFinished}
}

// CategoryEvent builds a category_created/updated/deleted event.
func CategoryEvent(action string, c *Category) ChangeEvent {
	return ChangeEvent{Action: action, ID: c.ID, Name: c.Name, ParentID: c.ParentID}
}

// ProductEvent builds a product_created/updated/deleted event. categoryID
// may be empty when the mutation is not scoped to one category.
func ProductEvent(action string, p *Product, categoryID string) ChangeEvent {
	return ChangeEvent{Action: action, Code: p.Code, Name: p.Name, Price: p.Price, CategoryID: categoryID}
}

// AssociationEvent builds a product_added_to_category or
// product_removed_from_category event.
func AssociationEvent(action, productCode, categoryID string) ChangeEvent {
	return ChangeEvent{Action: action, Code: productCode, CategoryID: categoryID}
}
