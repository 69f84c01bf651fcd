package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/markbates/goth/gothic"
	"github.com/radionovroman/tic-tac-toe-backend/internal/auth"
	"github.com/radionovroman/tic-tac-toe-backend/internal/storage"
	"github.com/radionovroman/tic-tac-toe-backend/models"
	"go.uber.org/zap"
)

type UserHandler struct {
	store  storage.Store
	tokens *auth.Tokens
	log    *zap.Logger
}

func NewUserHandler(store storage.Store, tokens *auth.Tokens, log *zap.Logger) *UserHandler {
	return &UserHandler{store: store, tokens: tokens, log: log}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.store.UserByEmail(r.Context(), req.Email); err == nil {
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		h.log.Error("user lookup failed", zap.String("email", req.Email), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to check existing user")
		return
	}

	digest, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.Error("password hashing failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user := models.User{Name: req.Name, Email: req.Email, Password: digest}
	if err := h.store.CreateUser(r.Context(), &user); err != nil {
		h.log.Error("user creation failed", zap.String("email", req.Email), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"id": user.ID, "email": user.Email})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.store.UserByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			h.log.Error("user lookup failed", zap.String("email", req.Email), zap.Error(err))
		}
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := auth.ComparePassword(req.Password, user.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	h.issueToken(w, r, user)
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-1 * time.Second),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "Logged out"})
}

func (h *UserHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	user, err := h.store.UserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error("user lookup failed", zap.Uint("user", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// BeginOAuth starts the provider flow, or short-circuits when gothic already
// has a completed session.
func (h *UserHandler) BeginOAuth(w http.ResponseWriter, r *http.Request) {
	if _, err := gothic.CompleteUserAuth(w, r); err == nil {
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}
	gothic.BeginAuthHandler(w, r)
}

// OAuthCallback finds or creates the local account for the provider identity
// and issues the same bearer token the password login does.
func (h *UserHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	gothUser, err := gothic.CompleteUserAuth(w, r)
	if err != nil {
		h.log.Warn("oauth completion failed", zap.Error(err))
		writeError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}

	user, err := h.store.UserByEmail(r.Context(), gothUser.Email)
	if errors.Is(err, storage.ErrNotFound) {
		user = models.User{Name: gothUser.Name, Email: gothUser.Email}
		if err := h.store.CreateUser(r.Context(), &user); err != nil {
			h.log.Error("oauth user creation failed", zap.String("email", gothUser.Email), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to create user")
			return
		}
	} else if err != nil {
		h.log.Error("user lookup failed", zap.String("email", gothUser.Email), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	h.issueToken(w, r, user)
}

func (h *UserHandler) OAuthLogout(w http.ResponseWriter, r *http.Request) {
	gothic.Logout(w, r)
	h.Logout(w, r)
}

func (h *UserHandler) issueToken(w http.ResponseWriter, _ *http.Request, user models.User) {
	token, err := h.tokens.Sign(user.ID, user.Email, user.Name)
	if err != nil {
		h.log.Error("token signing failed", zap.Uint("user", user.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokens.TTL()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "Login successful",
		"token":  token,
	})
}
