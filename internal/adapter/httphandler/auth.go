package httphandler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/trustedwear/storefront/internal/core/domain"
)

// POST v1/auth/login  JSON {"email", "password"}          (200 OK, 401 Unauthorized)
// POST v1/auth/signup JSON {"email", "password", "name"}  (201 Created, 400 Bad request)
// POST v1/auth/logout                                     (204 No content)
// GET  v1/session                                         (200 OK, 204 No content)

type SessionAuth interface {
	Login(ctx context.Context, email, password string) (domain.User, bool)
	Logout(ctx context.Context)
	Signup(ctx context.Context, email, password, name string) (domain.User, bool)
	User() (domain.User, bool)
}

type AuthHandler struct {
	auth SessionAuth
}

func RegisterAuth(mux *http.ServeMux, auth SessionAuth) {
	h := AuthHandler{auth}
	mux.HandleFunc("POST /v1/auth/login", h.Login)
	mux.HandleFunc("POST /v1/auth/signup", h.Signup)
	mux.HandleFunc("POST /v1/auth/logout", h.Logout)
	mux.HandleFunc("GET /v1/session", h.Session)
}

func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.Login"
	log := slog.With("op", op)

	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	u, ok := h.auth.Login(r.Context(), creds.Email, creds.Password)
	if !ok {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	log.Info("logged in", "userID", u.ID)
	writeJSON(w, http.StatusOK, toUserView(u), op)
}

func (h AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.Signup"
	log := slog.With("op", op)

	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	u, ok := h.auth.Signup(r.Context(), creds.Email, creds.Password, creds.Name)
	if !ok {
		http.Error(w, "email, password and name are required", http.StatusBadRequest)
		return
	}

	log.Info("signed up", "userID", u.ID)
	writeJSON(w, http.StatusCreated, toUserView(u), op)
}

func (h AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.Session"

	u, ok := h.auth.User()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, toUserView(u), op)
}
