// Attribute catalog and lookup handlers.
package server

import (
	"net/http"

	"github.com/wickers-data/catalog/pkg/catalog"
	"github.com/wickers-data/catalog/pkg/types"
)

// valueCountsResponse is the JSON shape of GET /api/attributes/{id}/counts.
type valueCountsResponse struct {
	AttributeID string               `json:"attributeId"`
	Counts      []catalog.ValueCount `json:"counts"`
}

// handleListAttributes returns every attribute definition in display order.
func (s *Server) handleListAttributes(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.engine.All())
}

// handleValueCounts returns distinct-value occurrence counts for one
// attribute across the working set.
func (s *Server) handleValueCounts(w http.ResponseWriter, r *http.Request) {
	attrID := r.PathValue("id")
	if _, ok := s.engine.ByID(attrID); !ok {
		s.respondErrorStatus(w, http.StatusNotFound, "unknown attribute: "+attrID)
		return
	}

	products, err := s.workingSet()
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, valueCountsResponse{
		AttributeID: attrID,
		Counts:      s.engine.ValueCounts(products, attrID),
	})
}

// handleListLookups returns lookup reference rows, optionally narrowed to
// one logical table via ?table=.
func (s *Server) handleListLookups(w http.ResponseWriter, r *http.Request) {
	table, err := s.store.GetTable(types.TableLookups)
	if err != nil {
		s.respondError(w, err)
		return
	}

	var filter map[string]any
	if name := r.URL.Query().Get("table"); name != "" {
		filter = map[string]any{"table_name": name}
	}
	entities, err := table.Fetch(filter)
	if err != nil {
		s.respondError(w, err)
		return
	}

	lookups := make([]types.Lookup, 0, len(entities))
	for _, e := range entities {
		l, ok := e.(*types.Lookup)
		if !ok {
			s.respondError(w, types.ErrInvalidData)
			return
		}
		lookups = append(lookups, *l)
	}
	s.respondJSON(w, http.StatusOK, lookups)
}
