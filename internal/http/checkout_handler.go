package httpapi

import (
	"errors"
	"net/http"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
)

type CheckoutHandler struct {
	carts    CartRegistry
	sessions *checkout.Manager
}

func NewCheckoutHandler(carts CartRegistry, sessions *checkout.Manager) *CheckoutHandler {
	return &CheckoutHandler{carts: carts, sessions: sessions}
}

func (h *CheckoutHandler) session(r *http.Request) *checkout.Session {
	sid := sessionID(r.Context())
	return h.sessions.Get(sid, h.carts.Get(r.Context(), sid))
}

// Begin starts a fresh checkout visit.
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r.Context())
	s := h.sessions.Begin(sid, h.carts.Get(r.Context(), sid))
	writeJSON(w, http.StatusCreated, s.View())
}

func (h *CheckoutHandler) View(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.session(r).View())
}

func (h *CheckoutHandler) UpdateShipping(w http.ResponseWriter, r *http.Request) {
	var info checkout.ShippingInfo
	if err := decodeJSON(w, r, &info); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s := h.session(r)
	if err := s.UpdateShipping(info); err != nil {
		writeCheckoutError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

func (h *CheckoutHandler) Continue(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	if err := s.ContinueToPayment(); err != nil {
		writeCheckoutError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

func (h *CheckoutHandler) EditShipping(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	if err := s.EditShipping(); err != nil {
		writeCheckoutError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.View())
}

func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	var details checkout.PaymentDetails
	if err := decodeJSON(w, r, &details); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sid := sessionID(r.Context())
	res, err := h.session(r).SubmitPayment(r.Context(), details)
	if err != nil {
		writeCheckoutError(w, err)
		return
	}
	h.sessions.End(sid)
	writeJSON(w, http.StatusCreated, res)
}

func writeCheckoutError(w http.ResponseWriter, err error) {
	var (
		verr *checkout.ValidationError
		perr *checkout.PaymentError
	)
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusUnprocessableEntity, verr.Message)
	case errors.As(err, &perr):
		writeError(w, http.StatusPaymentRequired, perr.Message)
	case errors.Is(err, checkout.ErrOrderNotCreated):
		writeError(w, http.StatusBadGateway, checkout.ErrOrderNotCreated.Error())
	case errors.Is(err, checkout.ErrWrongStep), errors.Is(err, checkout.ErrEmptyCart):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "checkout failed")
	}
}
