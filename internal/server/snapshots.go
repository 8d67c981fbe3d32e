// Snapshot lifecycle handlers: publish, activate, archive, diff, export.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/wickers-data/catalog/pkg/publish"
)

// publishRequest is the JSON body of POST /api/snapshots. EffectiveDate
// defaults to the publication time when omitted.
type publishRequest struct {
	EffectiveDate *time.Time `json:"effectiveDate"`
	PublishedBy   string     `json:"publishedBy"`
	Notes         string     `json:"notes"`
}

// archiveRequest is the JSON body of POST /api/snapshots/{id}/archive.
type archiveRequest struct {
	ArchivedBy string `json:"archivedBy"`
}

// handleListSnapshots returns all snapshots plus the current active ID.
func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	published, err := s.mgr.Published()
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, published)
}

// handlePublish captures the current working set as a new snapshot.
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondErrorStatus(w, http.StatusBadRequest, "parsing request body: "+err.Error())
		return
	}

	products, err := s.workingSet()
	if err != nil {
		s.respondError(w, err)
		return
	}
	if len(products) == 0 {
		s.respondErrorStatus(w, http.StatusBadRequest, "working set is empty; nothing to publish")
		return
	}

	effective := time.Now().UTC()
	if req.EffectiveDate != nil {
		effective = *req.EffectiveDate
	}

	snapshot, err := s.mgr.Publish(products, effective, req.PublishedBy, req.Notes)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, snapshot)
}

// handleGetSnapshot returns a stored snapshot by ID.
func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.mgr.Get(r.PathValue("id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, snapshot)
}

// handleActiveSnapshot returns the currently active snapshot. Absence is
// a 404 with an explicit body, never a 500.
func (s *Server) handleActiveSnapshot(w http.ResponseWriter, r *http.Request) {
	active, err := s.mgr.Active()
	if err != nil {
		s.respondError(w, err)
		return
	}
	if active == nil {
		s.respondErrorStatus(w, http.StatusNotFound, "no active snapshot")
		return
	}
	s.respondJSON(w, http.StatusOK, active)
}

// handleSnapshotStats summarizes the snapshot set.
func (s *Server) handleSnapshotStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.mgr.Stats()
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, stats)
}

// handleArchive marks a snapshot archived and returns its final state.
func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	var req archiveRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondErrorStatus(w, http.StatusBadRequest, "parsing request body: "+err.Error())
			return
		}
	}

	id := r.PathValue("id")
	if err := s.mgr.Archive(id, req.ArchivedBy); err != nil {
		s.respondError(w, err)
		return
	}
	snapshot, err := s.mgr.Get(id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, snapshot)
}

// handleDiff compares the working set against a stored snapshot.
func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	products, err := s.workingSet()
	if err != nil {
		s.respondError(w, err)
		return
	}
	diff, err := s.mgr.DiffAgainst(products, r.PathValue("id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, diff)
}

// handleExport streams a snapshot's products as a downloadable file.
// ?format=adl (default) produces the ADL JSON feed; ?format=xlsx produces
// a spreadsheet.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	snapshot, err := s.mgr.Get(id)
	if err != nil {
		s.respondError(w, err)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "adl":
		data, err := publish.ExportADL(snapshot)
		if err != nil {
			s.respondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="`+id+`.json"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	case "xlsx":
		data, err := publish.ExportXLSX(snapshot, s.engine)
		if err != nil {
			s.respondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+id+`.xlsx"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	default:
		s.respondErrorStatus(w, http.StatusBadRequest, "unknown export format: "+format)
	}
}
