// Package server exposes the catalog over HTTP. Handlers are thin: they
// parse the request, call into the catalog engine or publish manager, and
// render JSON.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/wickers-data/catalog/pkg/catalog"
	"github.com/wickers-data/catalog/pkg/publish"
	"github.com/wickers-data/catalog/pkg/types"
)

// Server wires the HTTP surface to the store, attribute engine, and
// publish manager.
type Server struct {
	store  types.Store
	engine *catalog.Engine
	mgr    *publish.Manager
	log    zerolog.Logger
}

// New creates a Server over an attached store.
func New(store types.Store, engine *catalog.Engine, mgr *publish.Manager, log zerolog.Logger) *Server {
	return &Server{
		store:  store,
		engine: engine,
		mgr:    mgr,
		log:    log,
	}
}

// Handler returns the routed HTTP handler with logging middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/products", s.handleListProducts)
	mux.HandleFunc("POST /api/products", s.handleSetProduct)
	mux.HandleFunc("GET /api/products/{styleCode}", s.handleGetProduct)
	mux.HandleFunc("DELETE /api/products/{styleCode}", s.handleDeleteProduct)

	mux.HandleFunc("GET /api/attributes", s.handleListAttributes)
	mux.HandleFunc("GET /api/attributes/{id}/counts", s.handleValueCounts)
	mux.HandleFunc("GET /api/lookups", s.handleListLookups)

	mux.HandleFunc("GET /api/snapshots", s.handleListSnapshots)
	mux.HandleFunc("POST /api/snapshots", s.handlePublish)
	mux.HandleFunc("GET /api/snapshots/active", s.handleActiveSnapshot)
	mux.HandleFunc("GET /api/snapshots/stats", s.handleSnapshotStats)
	mux.HandleFunc("GET /api/snapshots/{id}", s.handleGetSnapshot)
	mux.HandleFunc("POST /api/snapshots/{id}/archive", s.handleArchive)
	mux.HandleFunc("GET /api/snapshots/{id}/diff", s.handleDiff)
	mux.HandleFunc("GET /api/snapshots/{id}/export", s.handleExport)

	return s.withLogging(mux)
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// workingSet loads the full product working set from the store.
func (s *Server) workingSet() ([]types.Product, error) {
	table, err := s.store.GetTable(types.TableProducts)
	if err != nil {
		return nil, err
	}
	entities, err := table.Fetch(nil)
	if err != nil {
		return nil, err
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
