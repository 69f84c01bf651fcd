// Package storage defines the repository boundary over users, image slots
// and share bundles. All multi-row mutations go through Transaction so slot
// eviction and bundle snapshots stay atomic.
package storage

import (
	"context"
	"errors"

	"github.com/radionovroman/tic-tac-toe-backend/models"
)

// ErrNotFound reports that a row does not exist, as opposed to the store
// failing to answer.
var ErrNotFound = errors.New("storage: not found")

type Users interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (models.User, error)
	UserByID(ctx context.Context, id uint) (models.User, error)
}

type Slots interface {
	CreateSlot(ctx context.Context, slot *models.ImageSlot) error
	SaveSlot(ctx context.Context, slot *models.ImageSlot) error
	DeleteSlot(ctx context.Context, id uint) error

	// CurrentSlots returns the owner's unbundled slots in creation order.
	CurrentSlots(ctx context.Context, ownerID uint) ([]models.ImageSlot, error)
	// LatestCurrentSlots returns up to n unbundled slots, newest first.
	LatestCurrentSlots(ctx context.Context, ownerID uint, n int) ([]models.ImageSlot, error)
	// SlotsByBundle returns a bundle's slots in creation order.
	SlotsByBundle(ctx context.Context, bundleID uint) ([]models.ImageSlot, error)
	// AssignBundle points the given slots at a bundle in a single statement.
	AssignBundle(ctx context.Context, slotIDs []uint, bundleID uint) error
}

type Bundles interface {
	CreateBundle(ctx context.Context, bundle *models.ShareBundle) error
	BundleByToken(ctx context.Context, token string) (models.ShareBundle, error)
}

type Store interface {
	Users
	Slots
	Bundles

	// Transaction runs fn against a store scoped to one database
	// transaction. fn returning an error rolls everything back.
	Transaction(ctx context.Context, fn func(Store) error) error
}
