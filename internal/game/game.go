// Package game holds the customization rules: the three-image slot model,
// share bundle snapshots, and assembly of the data the game client renders.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/radionovroman/tic-tac-toe-backend/internal/blob"
	"github.com/radionovroman/tic-tac-toe-backend/models"
)

// maxSlots caps the current customization pool per user. A fourth upload
// overwrites the oldest slot instead of growing the pool.
const maxSlots = 3

var (
	// ErrNotFound covers unknown share tokens, empty bundles, and share
	// requests from users with no images.
	ErrNotFound = errors.New("game: not found")
	// ErrInvalidToken reports a share token that is not a UUID at all.
	ErrInvalidToken = errors.New("game: invalid share token")
)

// Item is one tile the game client renders.
type Item struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

func itemsFromSlots(ctx context.Context, blobs blob.Store, slots []models.ImageSlot) ([]Item, error) {
	items := make([]Item, 0, len(slots))
	for _, slot := range slots {
		url, err := blobs.URL(ctx, slot.BlobKey)
		if err != nil {
			return nil, fmt.Errorf("resolve image url for slot %d: %w", slot.ID, err)
		}
		items = append(items, Item{Name: slot.Label, Image: url})
	}
	return items, nil
}
