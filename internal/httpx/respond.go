package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ariefcatur/go-marketplace.git/internal/cart"
	"github.com/ariefcatur/go-marketplace.git/internal/catalog"
	"github.com/ariefcatur/go-marketplace.git/internal/checkout"
	"github.com/ariefcatur/go-marketplace.git/internal/orders"
	"github.com/ariefcatur/go-marketplace.git/internal/profile"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, errCode, msg string) {
	writeJSON(w, code, map[string]string{"error": errCode, "message": msg})
}

// writeDomainError: tiap failure mode domain keluar sebagai kode error yg
// bisa dibedakan client, tidak pernah digepengkan jadi 500 generik.
func writeDomainError(w http.ResponseWriter, err error) {
	var unavailable *checkout.ProductUnavailableError
	var shortage *checkout.InsufficientStockError

	switch {
	case errors.Is(err, checkout.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, checkout.ErrIncompleteShipping):
		writeError(w, http.StatusBadRequest, "incomplete_shipping_info", err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, checkout.ErrUnknownPaymentMethod):
		writeError(w, http.StatusBadRequest, "unknown_payment_method", err.Error())
	case errors.As(err, &unavailable):
		writeJSON(w, http.StatusConflict, map[string]string{
			"error": "product_unavailable", "product_id": unavailable.ProductID,
		})
	case errors.As(err, &shortage):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error": "insufficient_stock", "product_id": shortage.ProductID, "available": shortage.Available,
		})
	case errors.Is(err, checkout.ErrStockConflict):
		writeError(w, http.StatusConflict, "stock_conflict", err.Error())
	case errors.Is(err, orders.ErrInvalidStatusTransition):
		writeError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	case errors.Is(err, cart.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	case errors.Is(err, cart.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, orders.ErrNotFound),
		errors.Is(err, profile.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
	}
}
