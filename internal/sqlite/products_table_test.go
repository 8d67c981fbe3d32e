package sqlite

import (
	"testing"

	"github.com/wickers-data/catalog/pkg/types"
)

func mustProduct(t *testing.T, raw string) *types.Product {
	t.Helper()
	product, err := types.NewProduct([]byte(raw))
	if err != nil {
		t.Fatalf("NewProduct failed: %v", err)
	}
	return &product
}

func TestProductsTable_SetAndGet(t *testing.T) {
	b := setupBackend(t)
	table, err := b.GetTable(types.TableProducts)
	if err != nil {
		t.Fatalf("GetTable failed: %v", err)
	}

	product := mustProduct(t, `{"styleCode":"WS-100","name":"Trail Jacket","attributes":{"brand":"Wickers"}}`)
	id, err := table.Set("", product)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if id != "WS-100" {
		t.Errorf("expected id WS-100, got %s", id)
	}

	entity, err := table.Get("WS-100")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	got := entity.(*types.Product)
	if got.Name() != "Trail Jacket" {
		t.Errorf("expected name Trail Jacket, got %s", got.Name())
	}

	// Update overwrites in place.
	updated := mustProduct(t, `{"styleCode":"WS-100","name":"Trail Jacket v2"}`)
	if _, err := table.Set("WS-100", updated); err != nil {
		t.Fatalf("update Set failed: %v", err)
	}
	entity, err = table.Get("WS-100")
	if err != nil {
		t.Fatalf("Get after update failed: %v", err)
	}
	if entity.(*types.Product).Name() != "Trail Jacket v2" {
		t.Error("update did not overwrite the stored record")
	}

	entities, err := table.Fetch(nil)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(entities) != 1 {
		t.Errorf("expected 1 product after update, got %d", len(entities))
	}
}

func TestProductsTable_SetInvalid(t *testing.T) {
	b := setupBackend(t)
	table, _ := b.GetTable(types.TableProducts)

	if _, err := table.Set("", "not a product"); err != types.ErrInvalidData {
		t.Errorf("expected ErrInvalidData for wrong type, got %v", err)
	}

	noStyle := mustProduct(t, `{"name":"Anonymous"}`)
	if _, err := table.Set("", noStyle); err != types.ErrInvalidData {
		t.Errorf("expected ErrInvalidData for missing style code, got %v", err)
	}

	// ID must agree with the product's own style code.
	product := mustProduct(t, `{"styleCode":"WS-100"}`)
	if _, err := table.Set("WS-999", product); err != types.ErrInvalidData {
		t.Errorf("expected ErrInvalidData for mismatched id, got %v", err)
	}
}

func TestProductsTable_GetErrors(t *testing.T) {
	b := setupBackend(t)
	table, _ := b.GetTable(types.TableProducts)

	if _, err := table.Get(""); err != types.ErrInvalidID {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
	if _, err := table.Get("missing"); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestProductsTable_Delete(t *testing.T) {
	b := setupBackend(t)
	table, _ := b.GetTable(types.TableProducts)

	if _, err := table.Set("", mustProduct(t, `{"styleCode":"WS-100"}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := table.Delete("WS-100"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := table.Get("WS-100"); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := table.Delete("WS-100"); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
	if err := table.Delete(""); err != types.ErrInvalidID {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

func TestProductsTable_FetchOrderAndPaging(t *testing.T) {
	b := setupBackend(t)
	table, _ := b.GetTable(types.TableProducts)

	for _, code := range []string{"WS-300", "WS-100", "WS-200"} {
		if _, err := table.Set("", mustProduct(t, `{"styleCode":"`+code+`"}`)); err != nil {
			t.Fatalf("Set %s failed: %v", code, err)
		}
	}

	entities, err := table.Fetch(nil)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(entities) != 3 {
		t.Fatalf("expected 3 products, got %d", len(entities))
	}
	want := []string{"WS-100", "WS-200", "WS-300"}
	for i, e := range entities {
		if got := e.(*types.Product).StyleCode(); got != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got)
		}
	}

	entities, err = table.Fetch(map[string]any{"limit": 1, "offset": 1})
	if err != nil {
		t.Fatalf("Fetch with paging failed: %v", err)
	}
	if len(entities) != 1 || entities[0].(*types.Product).StyleCode() != "WS-200" {
		t.Errorf("paging returned wrong slice: %v", entities)
	}

	if _, err := table.Fetch(map[string]any{"limit": "ten"}); err != types.ErrInvalidFilter {
		t.Errorf("expected ErrInvalidFilter for non-int limit, got %v", err)
	}
}
