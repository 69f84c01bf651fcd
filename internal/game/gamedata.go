package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/radionovroman/tic-tac-toe-backend/internal/blob"
	"github.com/radionovroman/tic-tac-toe-backend/internal/storage"
)

// Data is the payload the game board is built from. Matches is always empty
// for now; match history lives client-side.
type Data struct {
	Items   []Item   `json:"items"`
	Matches []string `json:"matches"`
}

// Games assembles game data from either a share token or a user's own
// customization.
type Games struct {
	store   storage.Store
	blobs   blob.Store
	sharing *Sharing
}

func NewGames(store storage.Store, blobs blob.Store, sharing *Sharing) *Games {
	return &Games{store: store, blobs: blobs, sharing: sharing}
}

// DefaultData is the built-in placeholder set served to users who have not
// customized anything yet.
func DefaultData() Data {
	return Data{
		Items: []Item{
			{Name: "apple", Image: "/images/apple.jpg"},
			{Name: "banana", Image: "/images/banana.jpg"},
			{Name: "cherry", Image: "/images/cherry.jpg"},
		},
		Matches: []string{},
	}
}

// ForToken resolves game data from a share token. A token that is not a UUID
// fails with ErrInvalidToken before any lookup happens.
func (g *Games) ForToken(ctx context.Context, token string) (Data, error) {
	if _, err := uuid.Parse(token); err != nil {
		return Data{}, ErrInvalidToken
	}
	items, err := g.sharing.ResolveBundle(ctx, token)
	if err != nil {
		return Data{}, err
	}
	return Data{Items: items, Matches: []string{}}, nil
}

// ForOwner returns the owner's current customization, or the default set
// when they have no images.
func (g *Games) ForOwner(ctx context.Context, ownerID uint) (Data, error) {
	slots, err := g.store.CurrentSlots(ctx, ownerID)
	if err != nil {
		return Data{}, fmt.Errorf("list slots: %w", err)
	}
	if len(slots) == 0 {
		return DefaultData(), nil
	}
	items, err := itemsFromSlots(ctx, g.blobs, slots)
	if err != nil {
		return Data{}, err
	}
	return Data{Items: items, Matches: []string{}}, nil
}
