package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/ariefcatur/go-marketplace.git/internal/auth"
	"github.com/ariefcatur/go-marketplace.git/internal/cart"
	"github.com/ariefcatur/go-marketplace.git/internal/redisx"
)

type CartHandler struct {
	Repo  *cart.Repo
	Redis *redis.Client
	Auth  *auth.Manager
}

type cartAddReq struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type cartQtyReq struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) Register(r *chi.Mux) {
	r.Group(func(g chi.Router) {
		g.Use(h.Auth.Middleware)
		g.Get("/cart", h.snapshot)
		g.Get("/cart/count", h.count)
		g.Post("/cart", h.add)
		g.Put("/cart/{productID}", h.setQuantity)
		g.Delete("/cart/{productID}", h.remove)
		g.Delete("/cart", h.clear)
	})
}

func (h *CartHandler) snapshot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	lines, err := h.Repo.Snapshot(ctx, auth.UserID(ctx))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items":    lines,
		"subtotal": cart.Subtotal(lines),
	})
}

// count: badge navbar; cache redis dgn TTL pendek, di-invalidate tiap mutasi.
func (h *CartHandler) count(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()
	buyerID := auth.UserID(ctx)

	key := fmt.Sprintf(redisx.KeyCartCount, buyerID)
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil {
		if n, err := strconv.Atoi(s); err == nil {
			writeJSON(w, http.StatusOK, map[string]int{"count": n})
			return
		}
	}

	n, err := h.Repo.Count(ctx, buyerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	_ = h.Redis.Set(ctx, key, strconv.Itoa(n), redisx.TTLCartCount).Err()
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	var req cartAddReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "product_id wajib")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	buyerID := auth.UserID(ctx)

	if err := h.Repo.Add(ctx, buyerID, req.ProductID, req.Quantity); err != nil {
		writeDomainError(w, err)
		return
	}
	h.invalidateCount(ctx, buyerID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "added"})
}

func (h *CartHandler) setQuantity(w http.ResponseWriter, r *http.Request) {
	var req cartQtyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Repo.SetQuantity(ctx, auth.UserID(ctx), chi.URLParam(r, "productID"), req.Quantity); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	buyerID := auth.UserID(ctx)

	if err := h.Repo.Remove(ctx, buyerID, chi.URLParam(r, "productID")); err != nil {
		writeDomainError(w, err)
		return
	}
	h.invalidateCount(ctx, buyerID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	buyerID := auth.UserID(ctx)

	if err := h.Repo.Clear(ctx, buyerID); err != nil {
		writeDomainError(w, err)
		return
	}
	h.invalidateCount(ctx, buyerID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *CartHandler) invalidateCount(ctx context.Context, buyerID string) {
	_ = h.Redis.Del(ctx, fmt.Sprintf(redisx.KeyCartCount, buyerID)).Err()
}
