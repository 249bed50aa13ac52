package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-marketplace.git/internal/auth"
	"github.com/ariefcatur/go-marketplace.git/internal/profile"
)

type ProfileHandler struct {
	Repo *profile.Repo
	Auth *auth.Manager
}

func (h *ProfileHandler) Register(r *chi.Mux) {
	r.Group(func(g chi.Router) {
		g.Use(h.Auth.Middleware)
		g.Get("/profile", h.get)
		g.Put("/profile", h.update)
	})
}

func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Repo.Get(ctx, auth.UserID(ctx))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProfileHandler) update(w http.ResponseWriter, r *http.Request) {
	var p profile.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p.ID = auth.UserID(ctx) // tidak bisa update profil orang lain
	if err := h.Repo.Update(ctx, p); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
