package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
)

type CatalogHandler struct {
	catalog CatalogService
}

func NewCatalogHandler(c CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	inStock, _ := strconv.ParseBool(q.Get("inStock"))
	f := catalog.Filter{
		Category: q.Get("category"),
		Style:    q.Get("style"),
		Color:    q.Get("color"),
		Brand:    q.Get("brand"),
		Size:     q.Get("size"),
		InStock:  inStock,
	}

	products, err := h.catalog.Browse(r.Context(), f, q.Get("sort"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Product(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
