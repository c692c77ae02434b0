package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/diewo77/freelance-invoices/auth"
	"github.com/diewo77/freelance-invoices/httpx"
	"github.com/diewo77/freelance-invoices/internal/models"
	"github.com/diewo77/freelance-invoices/internal/store"
	"github.com/diewo77/freelance-invoices/validation"
)

type AuthHandler struct {
	Store store.Store
}

func NewAuthHandler(st store.Store) *AuthHandler {
	return &AuthHandler{Store: st}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup: POST /signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	req.Email = validation.NormalizeEmail(req.Email)
	if !validation.IsEmail(req.Email) {
		httpx.JSONError(w, http.StatusBadRequest, "Email must be a valid address", nil)
		return
	}
	if len(req.Password) < 8 {
		httpx.JSONError(w, http.StatusBadRequest, "Password must be at least 8 characters", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "could not hash password", nil)
		return
	}
	user := &models.User{Email: req.Email, PasswordHash: string(hash)}
	if err := h.Store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			httpx.JSONError(w, http.StatusConflict, "Email is already registered", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	auth.CreateSession(w, user.ID)
	httpx.JSON(w, http.StatusCreated, map[string]any{"id": user.ID, "email": user.Email})
}

// Login: POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}
	req.Email = validation.NormalizeEmail(req.Email)

	user, err := h.Store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		// Same response for unknown email and bad password.
		httpx.JSONError(w, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	auth.CreateSession(w, user.ID)
	httpx.JSON(w, http.StatusOK, map[string]any{"id": user.ID, "email": user.Email})
}

// Logout: POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	httpx.NoContent(w)
}

// VerifyUser returns an auth.UserVerifier backed by the store, for wiring
// into the session middleware at bootstrap.
func (h *AuthHandler) VerifyUser() func(ctx context.Context, userID string) bool {
	return func(ctx context.Context, userID string) bool {
		_, err := h.Store.GetUser(ctx, userID)
		return err == nil
	}
}
