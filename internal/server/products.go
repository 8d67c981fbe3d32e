// Product working-set handlers.
package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/wickers-data/catalog/pkg/types"
)

// filterParamPrefix marks attribute filter query parameters, e.g.
// ?filter.brand=Wickers&filter.category=Footwear.
const filterParamPrefix = "filter."

// productListResponse is the JSON shape of GET /api/products.
type productListResponse struct {
	Products []types.Product `json:"products"`
	Total    int             `json:"total"`
}

// handleListProducts returns the working set, narrowed by attribute
// filters and free-text search.
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.workingSet()
	if err != nil {
		s.respondError(w, err)
		return
	}

	query := r.URL.Query()
	filters := map[string]string{}
	for key, values := range query {
		if !strings.HasPrefix(key, filterParamPrefix) || len(values) == 0 {
			continue
		}
		filters[strings.TrimPrefix(key, filterParamPrefix)] = values[0]
	}

	matched := s.engine.ApplyFilters(products, filters, query.Get("q"))
	s.respondJSON(w, http.StatusOK, productListResponse{
		Products: matched,
		Total:    len(matched),
	})
}

// handleGetProduct returns a single product by style code.
func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	table, err := s.store.GetTable(types.TableProducts)
	if err != nil {
		s.respondError(w, err)
		return
	}
	entity, err := table.Get(r.PathValue("styleCode"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, entity)
}

// handleSetProduct upserts a product from the request body. The style
// code inside the record is the identity.
func (s *Server) handleSetProduct(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 16*1024*1024))
	if err != nil {
		s.respondErrorStatus(w, http.StatusBadRequest, "reading request body: "+err.Error())
		return
	}
	product, err := types.NewProduct(body)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if product.StyleCode() == "" {
		s.respondErrorStatus(w, http.StatusBadRequest, "product has no style code")
		return
	}

	table, err := s.store.GetTable(types.TableProducts)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if _, err := table.Set("", &product); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, product)
}

// handleDeleteProduct removes a product from the working set.
func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	table, err := s.store.GetTable(types.TableProducts)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if err := table.Delete(r.PathValue("styleCode")); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
