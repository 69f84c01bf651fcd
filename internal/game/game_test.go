package game

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/radionovroman/tic-tac-toe-backend/internal/blob"
	"github.com/radionovroman/tic-tac-toe-backend/internal/imaging"
	"github.com/radionovroman/tic-tac-toe-backend/internal/storage"
	"github.com/radionovroman/tic-tac-toe-backend/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db      *gorm.DB
	store   *storage.DB
	blobs   *blob.MemoryStore
	custom  *Customization
	sharing *Sharing
	games   *Games
	owner   models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store := storage.NewDB(db)
	require.NoError(t, store.Migrate())

	owner := models.User{Name: "owner", Email: "owner@example.com"}
	require.NoError(t, store.CreateUser(context.Background(), &owner))

	blobs := blob.NewMemoryStore()
	log := zap.NewNop()
	sharing := NewSharing(store, blobs, log)

	return &testEnv{
		db:      db,
		store:   store,
		blobs:   blobs,
		custom:  NewCustomization(store, blobs, imaging.Passthrough{}, log),
		sharing: sharing,
		games:   NewGames(store, blobs, sharing),
		owner:   owner,
	}
}

func upload(label string) Upload {
	return Upload{
		Label:       label,
		Filename:    label + ".png",
		ContentType: "image/png",
		Data:        []byte("png-bytes-" + label),
	}
}

func (e *testEnv) labels(t *testing.T) []string {
	t.Helper()
	slots, err := e.store.CurrentSlots(context.Background(), e.owner.ID)
	require.NoError(t, err)
	out := make([]string, len(slots))
	for i, slot := range slots {
		out[i] = slot.Label
	}
	return out
}

func (e *testEnv) bundleCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(&models.ShareBundle{}).Count(&count).Error)
	return count
}
