package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/admin"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

type AdminHandler struct {
	auth     *admin.Authenticator
	orders   OrderService
	products catalog.Repository
	logger   *zap.Logger
}

func NewAdminHandler(auth *admin.Authenticator, orders OrderService, products catalog.Repository, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{auth: auth, orders: orders, products: products, logger: logger}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, expires, err := h.auth.Login(req.Password)
	switch {
	case errors.Is(err, admin.ErrDisabled):
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	case errors.Is(err, admin.ErrInvalidPassword):
		h.logger.Warn("admin login rejected", zap.String("remote_addr", r.RemoteAddr))
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	case err != nil:
		h.logger.Error("admin login failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expires})
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.orders.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("load dashboard", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *AdminHandler) listFilter(r *http.Request) (order.ListFilter, error) {
	q := r.URL.Query()
	f := order.ListFilter{Search: strings.TrimSpace(q.Get("q"))}
	if raw := q.Get("status"); raw != "" && !strings.EqualFold(raw, "all") {
		st, err := order.ParseStatus(raw)
		if err != nil {
			return f, err
		}
		f.Status = st
	}
	return f, nil
}

func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	f, err := h.listFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	orders, err := h.orders.List(r.Context(), f)
	if err != nil {
		h.logger.Error("list orders", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// ExportOrders streams the filtered order list as a spreadsheet.
func (h *AdminHandler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	f, err := h.listFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	orders, err := h.orders.List(r.Context(), f)
	if err != nil {
		h.logger.Error("export orders", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}

	name := fmt.Sprintf("orders-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", order.XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := order.WriteXLSX(w, orders); err != nil {
		h.logger.Error("write orders export", zap.Error(err))
	}
}

func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Get(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		writeOrderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	st, err := order.ParseStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "orderId"), st)
	if err != nil {
		writeOrderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListAll(r.Context())
	if err != nil {
		h.logger.Error("list products", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *AdminHandler) decodeProduct(w http.ResponseWriter, r *http.Request) (catalog.ProductInput, bool) {
	var in catalog.ProductInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return in, false
	}
	if err := in.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return in, false
	}
	return in, true
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}
	p, err := h.products.Create(r.Context(), in)
	if err != nil {
		h.logger.Error("create product", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create product")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}
	p, err := h.products.Update(r.Context(), chi.URLParam(r, "productId"), in)
	if err != nil {
		h.writeProductError(w, "update product", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *AdminHandler) ToggleProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productId")
	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		h.writeProductError(w, "load product", err)
		return
	}
	if err := h.products.SetActive(r.Context(), id, !p.IsActive); err != nil {
		h.writeProductError(w, "toggle product", err)
		return
	}
	p.IsActive = !p.IsActive
	writeJSON(w, http.StatusOK, p)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), chi.URLParam(r, "productId")); err != nil {
		h.writeProductError(w, "delete product", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) writeProductError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	h.logger.Error(op, zap.Error(err))
	writeError(w, http.StatusInternalServerError, "failed to "+op)
}
