package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-marketplace.git/internal/auth"
	"github.com/ariefcatur/go-marketplace.git/internal/profile"
)

type AuthHandler struct {
	Profiles *profile.Repo
	Tokens   *auth.Manager
}

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(r *chi.Mux) {
	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || len(req.Password) < 6 {
		writeError(w, http.StatusBadRequest, "bad_request", "email dan password (min 6 karakter) wajib")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	id, err := h.Profiles.Create(ctx, req.Email, hash, req.FullName)
	if err != nil {
		if errors.Is(err, profile.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email_taken", err.Error())
			return
		}
		writeDomainError(w, err)
		return
	}

	token, err := h.Tokens.IssueToken(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"user_id": id, "access_token": token})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, hash, err := h.Profiles.Credentials(ctx, strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil || !auth.CheckPassword(hash, req.Password) {
		// jangan bocorkan apakah emailnya terdaftar
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "email atau password salah")
		return
	}

	token, err := h.Tokens.IssueToken(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"user_id": id, "access_token": token})
}
