package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/radionovroman/tic-tac-toe-backend/internal/auth"
	"github.com/radionovroman/tic-tac-toe-backend/internal/game"
	"go.uber.org/zap"
)

type ShareHandler struct {
	sharing *game.Sharing
	baseURL string
	log     *zap.Logger
}

func NewShareHandler(sharing *game.Sharing, baseURL string, log *zap.Logger) *ShareHandler {
	return &ShareHandler{sharing: sharing, baseURL: baseURL, log: log}
}

// Generate snapshots the caller's current images into a bundle and returns
// an absolute share URL.
func (h *ShareHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	bundle, err := h.sharing.CreateBundle(r.Context(), userID)
	if err != nil {
		if errors.Is(err, game.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No customizations found for this user")
			return
		}
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"shared_link": fmt.Sprintf("%s/share/%s", h.baseURL, bundle.Token),
	})
}

// SharedCustomization returns the images behind a share token without
// authentication.
func (h *ShareHandler) SharedCustomization(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	items, err := h.sharing.ResolveBundle(r.Context(), token)
	if err != nil {
		if errors.Is(err, game.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Shared game not found")
			return
		}
		h.log.Error("share resolution failed", zap.String("token", token), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}
	writeJSON(w, http.StatusOK, items)
}
