package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
)

type CartHandler struct {
	carts   CartRegistry
	catalog CatalogService
	pricing cart.Pricing
	codes   cart.DiscountCodes
}

func NewCartHandler(carts CartRegistry, cat CatalogService, pricing cart.Pricing, codes cart.DiscountCodes) *CartHandler {
	return &CartHandler{carts: carts, catalog: cat, pricing: pricing, codes: codes}
}

// cartView is the cart state plus everything derived from it.
type cartView struct {
	cart.State
	ItemCount             int             `json:"itemCount"`
	Subtotal              decimal.Decimal `json:"subtotal"`
	Total                 decimal.Decimal `json:"total"`
	DiscountAmount        decimal.Decimal `json:"discountAmount"`
	FreeShippingRemaining decimal.Decimal `json:"freeShippingRemaining"`
	Breakdown             cart.Breakdown  `json:"breakdown"`
}

func (h *CartHandler) view(s cart.State) cartView {
	return cartView{
		State:                 s,
		ItemCount:             s.ItemCount(),
		Subtotal:              s.Subtotal(),
		Total:                 s.Total(),
		DiscountAmount:        s.DiscountAmount(),
		FreeShippingRemaining: h.pricing.FreeShippingRemaining(s),
		Breakdown:             h.pricing.Breakdown(s),
	}
}

func (h *CartHandler) store(r *http.Request) *cart.Store {
	return h.carts.Get(r.Context(), sessionID(r.Context()))
}

func (h *CartHandler) dispatch(w http.ResponseWriter, r *http.Request, a cart.Action) {
	writeJSON(w, http.StatusOK, h.view(h.store(r).Dispatch(r.Context(), a)))
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.view(h.store(r).Snapshot()))
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// AddItem snapshots name, price and image from the catalog so clients can't
// set their own prices.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	p, err := h.catalog.Product(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	switch {
	case len(p.Sizes) == 0:
		req.Size = ""
	case !p.HasSize(req.Size):
		writeError(w, http.StatusBadRequest, "please select a size")
		return
	}
	if !p.InStock() {
		writeError(w, http.StatusConflict, "product is out of stock")
		return
	}

	h.dispatch(w, r, cart.AddItem{Item: cart.NewItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Size:      req.Size,
		Category:  p.Category,
		Quantity:  req.Quantity,
	}})
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.dispatch(w, r, cart.SetQuantity{ID: chi.URLParam(r, "itemId"), Quantity: req.Quantity})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, cart.RemoveItem{ID: chi.URLParam(r, "itemId")})
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, cart.Clear{})
}

func (h *CartHandler) Open(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, cart.Open{})
}

func (h *CartHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, cart.Close{})
}

func (h *CartHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, cart.ToggleOpen{})
}

type discountRequest struct {
	Code string `json:"code"`
}

func (h *CartHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	var req discountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, ok := h.codes.Lookup(req.Code)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid discount code")
		return
	}
	h.dispatch(w, r, cart.ApplyDiscount{Discount: d})
}

func (h *CartHandler) RemoveDiscount(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, cart.RemoveDiscount{})
}
