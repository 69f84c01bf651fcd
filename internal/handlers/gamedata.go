package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/radionovroman/tic-tac-toe-backend/internal/auth"
	"github.com/radionovroman/tic-tac-toe-backend/internal/game"
	"go.uber.org/zap"
)

type GameDataHandler struct {
	games *game.Games
	log   *zap.Logger
}

func NewGameDataHandler(games *game.Games, log *zap.Logger) *GameDataHandler {
	return &GameDataHandler{games: games, log: log}
}

// Get serves the board data. A share token (path or query) wins over the
// caller's identity; with neither, the request is unauthorized.
func (h *GameDataHandler) Get(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		token = r.URL.Query().Get("token")
	}

	if token != "" {
		data, err := h.games.ForToken(r.Context(), token)
		switch {
		case errors.Is(err, game.ErrInvalidToken):
			writeError(w, http.StatusBadRequest, "Invalid shared link")
		case errors.Is(err, game.ErrNotFound):
			writeError(w, http.StatusNotFound, "Customization not found for this link")
		case err != nil:
			h.log.Error("shared game data failed", zap.String("token", token), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to load game data")
		default:
			writeJSON(w, http.StatusOK, data)
		}
		return
	}

	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized or invalid link")
		return
	}

	data, err := h.games.ForOwner(r.Context(), userID)
	if err != nil {
		h.log.Error("game data failed", zap.Uint("user", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load game data")
		return
	}
	writeJSON(w, http.StatusOK, data)
}
