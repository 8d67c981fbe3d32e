package sqlite

import (
	"testing"

	"github.com/wickers-data/catalog/pkg/types"
)

func TestLookupsTable_SetAndGet(t *testing.T) {
	b := setupBackend(t)
	table, err := b.GetTable(types.TableLookups)
	if err != nil {
		t.Fatalf("GetTable failed: %v", err)
	}

	lookup := &types.Lookup{Name: "Outlet", TableName: "program_types", Ordinal: 9}
	id, err := table.Set("", lookup)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}
	if lookup.LookupID != id {
		t.Errorf("generated id not written back: %s vs %s", lookup.LookupID, id)
	}

	entity, err := table.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	got := entity.(*types.Lookup)
	if got.Name != "Outlet" || got.TableName != "program_types" || got.Ordinal != 9 {
		t.Errorf("lookup fields did not survive: %+v", got)
	}

	// Upsert by explicit id.
	got.Name = "Outlet Stores"
	if _, err := table.Set(got.LookupID, got); err != nil {
		t.Fatalf("update Set failed: %v", err)
	}
	entity, _ = table.Get(id)
	if entity.(*types.Lookup).Name != "Outlet Stores" {
		t.Error("update did not persist")
	}
}

func TestLookupsTable_SetInvalid(t *testing.T) {
	b := setupBackend(t)
	table, _ := b.GetTable(types.TableLookups)

	if _, err := table.Set("", "not a lookup"); err != types.ErrInvalidData {
		t.Errorf("expected ErrInvalidData for wrong type, got %v", err)
	}
	if _, err := table.Set("", &types.Lookup{TableName: "brands"}); err != types.ErrInvalidData {
		t.Errorf("expected ErrInvalidData for missing name, got %v", err)
	}
	if _, err := table.Set("", &types.Lookup{Name: "Wickers"}); err != types.ErrInvalidData {
		t.Errorf("expected ErrInvalidData for missing table name, got %v", err)
	}
}

func TestLookupsTable_Delete(t *testing.T) {
	b := setupBackend(t)
	table, _ := b.GetTable(types.TableLookups)

	id, err := table.Set("", &types.Lookup{Name: "Outlet", TableName: "program_types"})
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := table.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := table.Get(id); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := table.Delete(id); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestLookupsTable_FetchByTable(t *testing.T) {
	b := setupBackend(t)
	table, _ := b.GetTable(types.TableLookups)

	entities, err := table.Fetch(map[string]any{"table_name": "brands"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(entities) == 0 {
		t.Fatal("expected seeded brand lookups")
	}
	prev := -1
	for _, e := range entities {
		l := e.(*types.Lookup)
		if l.TableName != "brands" {
			t.Errorf("filter leaked row from table %s", l.TableName)
		}
		if l.Ordinal < prev {
			t.Error("rows not ordered by ordinal")
		}
		prev = l.Ordinal
	}

	if _, err := table.Fetch(map[string]any{"table_name": 42}); err != types.ErrInvalidFilter {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
}
