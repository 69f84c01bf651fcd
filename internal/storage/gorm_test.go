package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/radionovroman/tic-tac-toe-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	store := NewDB(db)
	require.NoError(t, store.Migrate())
	return store
}

func createOwner(t *testing.T, store *DB, email string) models.User {
	t.Helper()
	user := models.User{Name: "owner", Email: email}
	require.NoError(t, store.CreateUser(context.Background(), &user))
	return user
}

func TestUserLookup(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()

	created := createOwner(t, store, "alice@example.com")

	byEmail, err := store.UserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)

	byID, err := store.UserByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", byID.Email)

	_, err = store.UserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCurrentSlotsOrderingAndBundleFilter(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()
	owner := createOwner(t, store, "bob@example.com")

	var ids []uint
	for _, label := range []string{"first", "second", "third"} {
		slot := models.ImageSlot{OwnerID: owner.ID, Label: label, BlobKey: "k-" + label}
		require.NoError(t, store.CreateSlot(ctx, &slot))
		ids = append(ids, slot.ID)
	}

	slots, err := store.CurrentSlots(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	require.Equal(t, "first", slots[0].Label)
	require.Equal(t, "third", slots[2].Label)

	latest, err := store.LatestCurrentSlots(ctx, owner.ID, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	require.Equal(t, "third", latest[0].Label)
	require.Equal(t, "second", latest[1].Label)

	bundle := models.ShareBundle{OwnerID: owner.ID, Token: "3f1f5ddc-52e4-47b4-b2dd-6cf9ffe1a001"}
	require.NoError(t, store.CreateBundle(ctx, &bundle))
	require.NoError(t, store.AssignBundle(ctx, ids[:2], bundle.ID))

	slots, err = store.CurrentSlots(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	require.Equal(t, "third", slots[0].Label)

	bundled, err := store.SlotsByBundle(ctx, bundle.ID)
	require.NoError(t, err)
	require.Len(t, bundled, 2)
	require.Equal(t, "first", bundled[0].Label)
	require.Equal(t, "second", bundled[1].Label)
}

func TestBundleByToken(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()
	owner := createOwner(t, store, "carol@example.com")

	bundle := models.ShareBundle{OwnerID: owner.ID, Token: "b9b7b6ee-8a04-4d66-9e2e-2a2a6a1f0c11"}
	require.NoError(t, store.CreateBundle(ctx, &bundle))

	found, err := store.BundleByToken(ctx, bundle.Token)
	require.NoError(t, err)
	require.Equal(t, bundle.ID, found.ID)

	_, err = store.BundleByToken(ctx, "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTransactionRollback(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()
	owner := createOwner(t, store, "dave@example.com")

	boom := errors.New("boom")
	err := store.Transaction(ctx, func(tx Store) error {
		if err := tx.CreateSlot(ctx, &models.ImageSlot{OwnerID: owner.ID, Label: "doomed"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	slots, err := store.CurrentSlots(ctx, owner.ID)
	require.NoError(t, err)
	require.Empty(t, slots)
}

func TestDeleteSlot(t *testing.T) {
	store := newTestDB(t)
	ctx := context.Background()
	owner := createOwner(t, store, "erin@example.com")

	slot := models.ImageSlot{OwnerID: owner.ID, Label: "gone"}
	require.NoError(t, store.CreateSlot(ctx, &slot))
	require.NoError(t, store.DeleteSlot(ctx, slot.ID))

	slots, err := store.CurrentSlots(ctx, owner.ID)
	require.NoError(t, err)
	require.Empty(t, slots)
}
