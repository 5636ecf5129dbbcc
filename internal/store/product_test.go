package store

import (
	"testing"

	"catalogd/internal/models"
)

func TestProductUpsertIdempotent(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)

	code := testID("prod-upsert")
	t.Cleanup(func() { cleanProducts(t, db, code) })

	if _, err := s.Upsert(code, "Hammer", 9.99); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	p, err := s.Upsert(code, "Hammer", 9.99)
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if p.Price != 9.99 {
		t.Errorf("price: got %v, want 9.99", p.Price)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM products WHERE code = $1", code).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("rows for %s: got %d, want 1", code, count)
	}
}

func TestProductCreateConflict(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)

	code := testID("prod-conflict")
	t.Cleanup(func() { cleanProducts(t, db, code) })

	if _, err := s.Create(&models.Product{Code: code, Name: "Hammer", Price: 9.99}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(&models.Product{Code: code, Name: "Hammer", Price: 9.99}); err != ErrConflict {
		t.Errorf("duplicate Create: got %v, want ErrConflict", err)
	}
}

func TestProductNotFound(t *testing.T) {
	db := testDB(t)
	s := NewProductStore(db)

	missing := testID("prod-missing")

	if _, err := s.FindByCode(missing); err != ErrNotFound {
		t.Errorf("FindByCode: got %v, want ErrNotFound", err)
	}
	if _, err := s.Update(missing, "x", 1); err != ErrNotFound {
		t.Errorf("Update: got %v, want ErrNotFound", err)
	}
	if err := s.Delete(missing); err != ErrNotFound {
		t.Errorf("Delete: got %v, want ErrNotFound", err)
	}
}

func TestAssociationLifecycle(t *testing.T) {
	db := testDB(t)
	products := NewProductStore(db)
	categories := NewCategoryStore(db)

	code := testID("assoc-prod")
	catID := testID("assoc-cat")
	t.Cleanup(func() {
		cleanProducts(t, db, code)
		cleanCategories(t, db, catID)
	})

	if _, err := categories.Upsert(catID, "Tools", nil); err != nil {
		t.Fatalf("Upsert category: %v", err)
	}
	if _, err := products.Upsert(code, "Hammer", 9.99); err != nil {
		t.Fatalf("Upsert product: %v", err)
	}

	if err := products.AddAssociation(code, catID); err != nil {
		t.Fatalf("AddAssociation: %v", err)
	}

	// Adding the same edge again is a conflict.
	if err := products.AddAssociation(code, catID); err != ErrConflict {
		t.Errorf("duplicate AddAssociation: got %v, want ErrConflict", err)
	}

	// UpsertAssociation tolerates the existing edge.
	if err := products.UpsertAssociation(code, catID); err != nil {
		t.Errorf("UpsertAssociation on existing edge: %v", err)
	}

	p, err := products.FindByCode(code)
	if err != nil {
		t.Fatalf("FindByCode: %v", err)
	}
	if len(p.CategoryIDs) != 1 || p.CategoryIDs[0] != catID {
		t.Errorf("category ids: got %v, want [%s]", p.CategoryIDs, catID)
	}

	listed, err := products.ListByCategory(catID)
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(listed) != 1 || listed[0].Code != code {
		t.Errorf("ListByCategory: got %+v", listed)
	}

	if err := products.RemoveAssociation(code, catID); err != nil {
		t.Fatalf("RemoveAssociation: %v", err)
	}
	if err := products.RemoveAssociation(code, catID); err != ErrNotFound {
		t.Errorf("second RemoveAssociation: got %v, want ErrNotFound", err)
	}
}

func TestAddAssociationMissingEndpoints(t *testing.T) {
	db := testDB(t)
	products := NewProductStore(db)

	if err := products.AddAssociation(testID("nope"), testID("nope")); err != ErrNotFound {
		t.Errorf("AddAssociation with missing endpoints: got %v, want ErrNotFound", err)
	}
}

func TestCategoryDeleteCascadesAssociations(t *testing.T) {
	db := testDB(t)
	products := NewProductStore(db)
	categories := NewCategoryStore(db)

	code := testID("cascade-prod")
	catID := testID("cascade-cat")
	t.Cleanup(func() {
		cleanProducts(t, db, code)
		cleanCategories(t, db, catID)
	})

	if _, err := categories.Upsert(catID, "Tools", nil); err != nil {
		t.Fatalf("Upsert category: %v", err)
	}
	if _, err := products.Upsert(code, "Hammer", 9.99); err != nil {
		t.Fatalf("Upsert product: %v", err)
	}
	if err := products.AddAssociation(code, catID); err != nil {
		t.Fatalf("AddAssociation: %v", err)
	}

	if err := categories.Delete(catID); err != nil {
		t.Fatalf("Delete category: %v", err)
	}

	// The edge is gone, the product survives.
	p, err := products.FindByCode(code)
	if err != nil {
		t.Fatalf("FindByCode: %v", err)
	}
	if len(p.CategoryIDs) != 0 {
		t.Errorf("category ids after cascade: got %v, want none", p.CategoryIDs)
	}
}
