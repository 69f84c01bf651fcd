package handlers

import (
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/radionovroman/tic-tac-toe-backend/internal/auth"
	"github.com/radionovroman/tic-tac-toe-backend/internal/blob"
	"github.com/radionovroman/tic-tac-toe-backend/internal/game"
	"go.uber.org/zap"
)

// Upload file fields are named "<key>_image" with the matching label in a
// "<key>_word" value, e.g. first_image/first_word. Field keys are sorted so
// slot order does not depend on multipart part order.
const (
	imageFieldSuffix = "_image"
	labelFieldSuffix = "_word"
)

type ImagesHandler struct {
	customization *game.Customization
	blobs         blob.Store
	maxBytes      int64
	log           *zap.Logger
}

func NewImagesHandler(customization *game.Customization, blobs blob.Store, maxBytes int64, log *zap.Logger) *ImagesHandler {
	return &ImagesHandler{customization: customization, blobs: blobs, maxBytes: maxBytes, log: log}
}

func (h *ImagesHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	var keys []string
	for field := range r.MultipartForm.File {
		if strings.HasSuffix(field, imageFieldSuffix) {
			keys = append(keys, field)
		}
	}
	sort.Strings(keys)

	var uploads []game.Upload
	for _, field := range keys {
		headers := r.MultipartForm.File[field]
		if len(headers) == 0 {
			continue
		}
		header := headers[0]

		file, err := header.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "Unreadable image file")
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, "Unreadable image file")
			return
		}

		labelField := strings.TrimSuffix(field, imageFieldSuffix) + labelFieldSuffix
		uploads = append(uploads, game.Upload{
			Label:       r.FormValue(labelField),
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	if len(uploads) == 0 {
		writeError(w, http.StatusBadRequest, "No image files provided")
		return
	}

	if err := h.customization.SubmitImages(r.Context(), userID, uploads); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save images")
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (h *ImagesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	slots, err := h.customization.CurrentSlots(r.Context(), userID)
	if err != nil {
		h.log.Error("slot listing failed", zap.Uint("user", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load images")
		return
	}

	type slotResponse struct {
		ID          uint   `json:"id"`
		Description string `json:"description"`
		File        string `json:"file"`
	}
	resp := make([]slotResponse, 0, len(slots))
	for _, slot := range slots {
		url, err := h.blobs.URL(r.Context(), slot.BlobKey)
		if err != nil {
			h.log.Error("image url failed", zap.Uint("slot", slot.ID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to load images")
			return
		}
		resp = append(resp, slotResponse{ID: slot.ID, Description: slot.Label, File: url})
	}
	writeJSON(w, http.StatusOK, resp)
}
