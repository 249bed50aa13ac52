package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/go-marketplace.git/internal/auth"
	"github.com/ariefcatur/go-marketplace.git/internal/checkout"
	kafkax "github.com/ariefcatur/go-marketplace.git/internal/kafka"
	"github.com/ariefcatur/go-marketplace.git/internal/orders"
	"github.com/ariefcatur/go-marketplace.git/internal/redisx"
)

type CheckoutHandler struct {
	Engine   *checkout.Engine
	Producer *kafkax.Producer
	Redis    *redis.Client
	Auth     *auth.Manager
	Service  string
}

type checkoutReq struct {
	Shipping      checkout.Shipping `json:"shipping"`
	PaymentMethod string            `json:"payment_method"`
}

type checkoutResp struct {
	OrderID     string `json:"order_id"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"total_amount"`
	Idempotent  bool   `json:"idempotent"`
}

func (h *CheckoutHandler) Register(r *chi.Mux) {
	r.Group(func(g chi.Router) {
		g.Use(h.Auth.Middleware)
		g.Post("/checkout", h.placeOrder)
	})
}

func (h *CheckoutHandler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	buyerID := auth.UserID(ctx)

	// Fast-path idempotency: client boleh kirim ulang request yg sama
	// (mis. retry jaringan) tanpa bikin order kedua.
	idemKey := ""
	if k := r.Header.Get("X-Idempotency-Key"); k != "" {
		idemKey = fmt.Sprintf(redisx.KeyIdemCheckout, buyerID, k)
		if orderID, err := h.Redis.Get(ctx, idemKey).Result(); err == nil && orderID != "" {
			writeJSON(w, http.StatusOK, checkoutResp{OrderID: orderID, Status: string(orders.StatusPending), Idempotent: true})
			return
		}
	}

	o, err := h.Engine.PlaceOrder(ctx, buyerID, req.Shipping, checkout.PaymentMethod(req.PaymentMethod))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if idemKey != "" {
		_ = h.Redis.Set(ctx, idemKey, o.ID, redisx.TTLIdempotency).Err()
	}
	// cache status awal + badge keranjang sudah pasti kosong
	_ = h.Redis.Set(ctx, fmt.Sprintf(redisx.KeyOrderStatus, o.ID), `{"status":"pending"}`, redisx.TTLStatusCache).Err()
	_ = h.Redis.Set(ctx, fmt.Sprintf(redisx.KeyCartCount, buyerID), "0", redisx.TTLCartCount).Err()

	h.publishPlaced(o, r.Header.Get("X-Request-Id"))

	writeJSON(w, http.StatusCreated, checkoutResp{
		OrderID:     o.ID,
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
	})
}

// publishPlaced: event keluar setelah commit; best-effort, order sudah
// aman di DB walau publish gagal.
func (h *CheckoutHandler) publishPlaced(o *orders.Order, traceID string) {
	items := make([]orders.PlacedItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orders.PlacedItem{
			ProductID: it.ProductID,
			SellerID:  it.SellerID,
			Title:     it.ProductTitle,
			Qty:       it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       traceID,
		CorrelationID: o.ID,
		Payload: kafkax.MustMarshal(orders.OrderPlacedPayload{
			OrderID:       o.ID,
			BuyerID:       o.BuyerID,
			Items:         items,
			TotalAmount:   o.TotalAmount,
			PaymentMethod: o.PaymentMethod,
		}),
	}
	h.Producer.Publish(orders.PartitionKey(o.ID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
