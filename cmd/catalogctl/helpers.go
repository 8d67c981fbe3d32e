// Shared helpers for catalogctl commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/wickers-data/catalog/internal/sqlite"
	"github.com/wickers-data/catalog/pkg/catalog"
	"github.com/wickers-data/catalog/pkg/publish"
	"github.com/wickers-data/catalog/pkg/types"
)

// attachBackend resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach().
func attachBackend() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return backend, nil
}

// loadEngine builds the attribute engine. An attributes.json in the config
// directory overrides the embedded defaults.
func loadEngine() (*catalog.Engine, error) {
	configDir, err := resolveConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}

	path := filepath.Join(configDir, attributesFileName)
	if _, err := os.Stat(path); err == nil {
		set, err := catalog.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", attributesFileName, err)
		}
		return catalog.NewEngine(set), nil
	}

	set, err := catalog.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("load default attributes: %w", err)
	}
	return catalog.NewEngine(set), nil
}

// newLogger builds a console zerolog logger at the configured level.
// CLI commands default to warn so command output stays clean; the serve
// command passes the config's log.level instead.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}

// newManager wires a publish manager over an attached backend.
func newManager(backend *sqlite.Backend, level string) *publish.Manager {
	return publish.NewManager(backend, newLogger(level))
}

// printJSON renders v as indented JSON on stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// fetchWorkingSet loads every product from the products table.
func fetchWorkingSet(backend *sqlite.Backend) ([]types.Product, error) {
	table, err := backend.GetTable(types.TableProducts)
	if err != nil {
		return nil, fmt.Errorf("get products table: %w", err)
	}
	entities, err := table.Fetch(nil)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	products := make([]types.Product, 0, len(entities))
	for _, e := range entities {
		p, ok := e.(*types.Product)
		if !ok {
			return nil, types.ErrInvalidData
		}
		products = append(products, *p)
	}
	return products, nil
}
