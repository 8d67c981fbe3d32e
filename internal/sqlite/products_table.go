// Products table accessor: working-set products keyed by style code.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wickers-data/catalog/pkg/types"
)

// Compile-time interface check: productsTable must implement Table.
var _ types.Table = (*productsTable)(nil)

// productsTable implements the Table interface for working-set products.
// The style code is the natural key; the raw product record is stored
// whole so both legacy and new product shapes survive round-trips.
type productsTable struct {
	backend *Backend
}

// Get retrieves a product by style code.
func (pt *productsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	pt.backend.mu.RLock()
	defer pt.backend.mu.RUnlock()
	if !pt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	var data string
	err := pt.backend.db.QueryRow(
		"SELECT data FROM products WHERE style_code = ?", id,
	).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting product %s: %w", id, err)
	}

	product, err := types.NewProduct([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("hydrating product %s: %w", id, err)
	}
	return &product, nil
}

// Set persists a product. The ID is the style code; when id is empty it is
// derived from the product itself. A product without a style code cannot
// be stored (the empty key would collide).
func (pt *productsTable) Set(id string, data any) (string, error) {
	product, ok := data.(*types.Product)
	if !ok {
		return "", types.ErrInvalidData
	}
	styleCode := product.StyleCode()
	if id == "" {
		id = styleCode
	}
	if id == "" || (styleCode != "" && styleCode != id) {
		return "", types.ErrInvalidData
	}

	pt.backend.mu.Lock()
	defer pt.backend.mu.Unlock()
	if !pt.backend.attached {
		return "", types.ErrStoreDetached
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)

	var createdAt string
	err := pt.backend.db.QueryRow(
		"SELECT created_at FROM products WHERE style_code = ?", id,
	).Scan(&createdAt)
	switch {
	case err == sql.ErrNoRows:
		createdAt = now
		_, err = pt.backend.db.Exec(
			"INSERT INTO products (style_code, name, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			id, product.Name(), string(product.Raw()), createdAt, now,
		)
	case err == nil:
		_, err = pt.backend.db.Exec(
			"UPDATE products SET name = ?, data = ?, updated_at = ? WHERE style_code = ?",
			product.Name(), string(product.Raw()), now, id,
		)
	}
	if err != nil {
		return "", fmt.Errorf("persisting product %s: %w", id, err)
	}

	if err := pt.persistJSONL(); err != nil {
		return "", fmt.Errorf("persisting products.jsonl: %w", err)
	}
	return id, nil
}

// Delete removes a product by style code.
func (pt *productsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	pt.backend.mu.Lock()
	defer pt.backend.mu.Unlock()
	if !pt.backend.attached {
		return types.ErrStoreDetached
	}

	res, err := pt.backend.db.Exec("DELETE FROM products WHERE style_code = ?", id)
	if err != nil {
		return fmt.Errorf("deleting product %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting product %s: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}

	if err := pt.persistJSONL(); err != nil {
		return fmt.Errorf("persisting products.jsonl: %w", err)
	}
	return nil
}

// Fetch returns products ordered by style code. Supported filter keys:
// "limit" and "offset" (int).
func (pt *productsTable) Fetch(filter map[string]any) ([]any, error) {
	pt.backend.mu.RLock()
	defer pt.backend.mu.RUnlock()
	if !pt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	query := "SELECT data FROM products ORDER BY style_code ASC"
	limitSQL, err := limitOffsetSQL(filter)
	if err != nil {
		return nil, err
	}
	query += limitSQL

	rows, err := pt.backend.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		product, err := types.NewProduct([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("hydrating product: %w", err)
		}
		results = append(results, &product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}
	return results, nil
}

// persistJSONL writes every product row to products.jsonl atomically.
// The caller must hold the backend lock.
func (pt *productsTable) persistJSONL() error {
	rows, err := pt.backend.db.Query(
		"SELECT style_code, name, data, created_at, updated_at FROM products ORDER BY style_code ASC",
	)
	if err != nil {
		return fmt.Errorf("querying products for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var rec productJSON
		var data string
		if err := rows.Scan(&rec.StyleCode, &rec.Name, &data, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return fmt.Errorf("scanning product for JSONL: %w", err)
		}
		rec.Data = json.RawMessage(data)
		out, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshaling product for JSONL: %w", err)
		}
		records = append(records, out)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating products for JSONL: %w", err)
	}

	return writeJSONL(jsonlPath(pt.backend.config.DataDir, "products.jsonl"), records)
}

// limitOffsetSQL renders optional limit/offset filter keys into SQL.
func limitOffsetSQL(filter map[string]any) (string, error) {
	var out string
	if filter == nil {
		return "", nil
	}
	if v, ok := filter["limit"]; ok {
		limit, ok := v.(int)
		if !ok {
			return "", types.ErrInvalidFilter
		}
		if limit > 0 {
			out += fmt.Sprintf(" LIMIT %d", limit)
		}
	}
	if v, ok := filter["offset"]; ok {
		offset, ok := v.(int)
		if !ok {
			return "", types.ErrInvalidFilter
		}
		if offset > 0 {
			if out == "" {
				out = " LIMIT -1" // SQLite requires LIMIT before OFFSET
			}
			out += fmt.Sprintf(" OFFSET %d", offset)
		}
	}
	return out, nil
}
