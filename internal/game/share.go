package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/radionovroman/tic-tac-toe-backend/internal/blob"
	"github.com/radionovroman/tic-tac-toe-backend/internal/storage"
	"github.com/radionovroman/tic-tac-toe-backend/models"
	"go.uber.org/zap"
)

// Sharing snapshots a user's current slots into immutable bundles and
// resolves bundle tokens back to their images.
type Sharing struct {
	store storage.Store
	blobs blob.Store
	log   *zap.Logger
}

func NewSharing(store storage.Store, blobs blob.Store, log *zap.Logger) *Sharing {
	return &Sharing{store: store, blobs: blobs, log: log}
}

// CreateBundle moves the owner's newest current slots (at most three) into a
// fresh bundle and returns it. The owner's current pool is empty afterwards.
// Returns ErrNotFound when the owner has no images; no bundle row is created
// in that case.
func (s *Sharing) CreateBundle(ctx context.Context, ownerID uint) (models.ShareBundle, error) {
	var bundle models.ShareBundle

	err := s.store.Transaction(ctx, func(tx storage.Store) error {
		slots, err := tx.LatestCurrentSlots(ctx, ownerID, maxSlots)
		if err != nil {
			return fmt.Errorf("select slots: %w", err)
		}
		if len(slots) == 0 {
			return ErrNotFound
		}

		bundle = models.ShareBundle{
			OwnerID: ownerID,
			Token:   uuid.NewString(),
		}
		if err := tx.CreateBundle(ctx, &bundle); err != nil {
			return fmt.Errorf("create bundle: %w", err)
		}

		ids := make([]uint, len(slots))
		for i, slot := range slots {
			ids[i] = slot.ID
		}
		if err := tx.AssignBundle(ctx, ids, bundle.ID); err != nil {
			return fmt.Errorf("assign slots to bundle: %w", err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("bundle creation failed", zap.Uint("owner", ownerID), zap.Error(err))
		}
		return models.ShareBundle{}, err
	}

	s.log.Info("share bundle created",
		zap.Uint("owner", ownerID),
		zap.String("token", bundle.Token))
	return bundle, nil
}

// ResolveBundle returns a bundle's items in their original slot order.
// Unknown tokens and bundles with no slots both come back as ErrNotFound.
func (s *Sharing) ResolveBundle(ctx context.Context, token string) ([]Item, error) {
	bundle, err := s.store.BundleByToken(ctx, token)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.log.Error("bundle lookup failed", zap.String("token", token), zap.Error(err))
		return nil, err
	}

	slots, err := s.store.SlotsByBundle(ctx, bundle.ID)
	if err != nil {
		s.log.Error("bundle slot lookup failed", zap.String("token", token), zap.Error(err))
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrNotFound
	}

	return itemsFromSlots(ctx, s.blobs, slots)
}
