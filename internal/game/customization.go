package game

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/radionovroman/tic-tac-toe-backend/internal/blob"
	"github.com/radionovroman/tic-tac-toe-backend/internal/imaging"
	"github.com/radionovroman/tic-tac-toe-backend/internal/storage"
	"github.com/radionovroman/tic-tac-toe-backend/models"
	"go.uber.org/zap"
)

// Upload is one incoming image with its label.
type Upload struct {
	Label       string
	Filename    string
	ContentType string
	Data        []byte
}

// Customization enforces the slot model on uploads.
type Customization struct {
	store  storage.Store
	blobs  blob.Store
	images imaging.Processor
	log    *zap.Logger
}

func NewCustomization(store storage.Store, blobs blob.Store, images imaging.Processor, log *zap.Logger) *Customization {
	return &Customization{store: store, blobs: blobs, images: images, log: log}
}

// SubmitImages writes uploads into the owner's slots, oldest first:
// positions that already hold a slot are overwritten in place, the rest get
// new slots, and anything past the third upload is dropped. Runs in one
// transaction so a concurrent share snapshot never sees a half-written pool.
func (c *Customization) SubmitImages(ctx context.Context, ownerID uint, uploads []Upload) error {
	var staleKeys []string

	err := c.store.Transaction(ctx, func(tx storage.Store) error {
		slots, err := tx.CurrentSlots(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("list slots: %w", err)
		}

		// Repair step: the pool should never exceed maxSlots, but if it
		// does, drop the oldest rows before writing anything.
		for len(slots) > maxSlots {
			if err := tx.DeleteSlot(ctx, slots[0].ID); err != nil {
				return fmt.Errorf("evict slot %d: %w", slots[0].ID, err)
			}
			staleKeys = append(staleKeys, slots[0].BlobKey)
			slots = slots[1:]
		}

		if len(uploads) > maxSlots {
			c.log.Warn("dropping uploads beyond slot capacity",
				zap.Uint("owner", ownerID),
				zap.Int("submitted", len(uploads)))
			uploads = uploads[:maxSlots]
		}

		for i, up := range uploads {
			data, err := c.images.Normalize(up.Data)
			if err != nil {
				return fmt.Errorf("normalize image %q: %w", up.Filename, err)
			}

			key := fmt.Sprintf("images/%d/%s_%s", ownerID, uuid.NewString(), up.Filename)
			if err := c.blobs.Put(ctx, key, bytes.NewReader(data), up.ContentType); err != nil {
				return fmt.Errorf("store image %q: %w", up.Filename, err)
			}

			if i < len(slots) {
				slot := slots[i]
				staleKeys = append(staleKeys, slot.BlobKey)
				slot.Label = up.Label
				slot.BlobKey = key
				slot.MimeType = up.ContentType
				if err := tx.SaveSlot(ctx, &slot); err != nil {
					return fmt.Errorf("overwrite slot %d: %w", slot.ID, err)
				}
				continue
			}

			slot := models.ImageSlot{
				OwnerID:    ownerID,
				Label:      up.Label,
				BlobKey:    key,
				MimeType:   up.ContentType,
				SharedLink: uuid.NewString(),
			}
			if err := tx.CreateSlot(ctx, &slot); err != nil {
				return fmt.Errorf("create slot: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		c.log.Error("image submission failed", zap.Uint("owner", ownerID), zap.Error(err))
		return err
	}

	// Replaced and evicted objects are orphaned once the transaction
	// commits; removal is best-effort.
	for _, key := range staleKeys {
		if key == "" {
			continue
		}
		if err := c.blobs.Delete(ctx, key); err != nil {
			c.log.Warn("failed to delete stale image", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

// CurrentSlots returns the owner's unbundled slots in creation order.
func (c *Customization) CurrentSlots(ctx context.Context, ownerID uint) ([]models.ImageSlot, error) {
	return c.store.CurrentSlots(ctx, ownerID)
}
