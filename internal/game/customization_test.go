package game

import (
	"context"
	"testing"

	"github.com/radionovroman/tic-tac-toe-backend/models"
	"github.com/stretchr/testify/require"
)

func TestSubmitImagesCreatesSlots(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.custom.SubmitImages(ctx, env.owner.ID, []Upload{upload("cat"), upload("dog")})
	require.NoError(t, err)

	require.Equal(t, []string{"cat", "dog"}, env.labels(t))

	slots, err := env.store.CurrentSlots(ctx, env.owner.ID)
	require.NoError(t, err)
	for _, slot := range slots {
		require.NotEmpty(t, slot.SharedLink)
		data, ok := env.blobs.Get(slot.BlobKey)
		require.True(t, ok)
		require.Equal(t, []byte("png-bytes-"+slot.Label), data)
	}
}

func TestSubmitImagesNeverExceedsThreeSlots(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	submissions := [][]Upload{
		{upload("a")},
		{upload("b"), upload("c")},
		{upload("d"), upload("e"), upload("f"), upload("g")},
		{upload("h"), upload("i")},
	}
	for _, uploads := range submissions {
		require.NoError(t, env.custom.SubmitImages(ctx, env.owner.ID, uploads))
		slots, err := env.store.CurrentSlots(ctx, env.owner.ID)
		require.NoError(t, err)
		require.LessOrEqual(t, len(slots), 3)
	}
}

func TestSubmitImagesOverwritesOldestInPlace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.custom.SubmitImages(ctx, env.owner.ID,
		[]Upload{upload("one"), upload("two"), upload("three")}))

	before, err := env.store.CurrentSlots(ctx, env.owner.ID)
	require.NoError(t, err)
	require.Len(t, before, 3)
	oldBlobKey := before[0].BlobKey

	// A single new image lands on the oldest slot; the other two stay put.
	require.NoError(t, env.custom.SubmitImages(ctx, env.owner.ID, []Upload{upload("four")}))

	after, err := env.store.CurrentSlots(ctx, env.owner.ID)
	require.NoError(t, err)
	require.Len(t, after, 3)
	require.Equal(t, before[0].ID, after[0].ID)
	require.Equal(t, "four", after[0].Label)
	require.Equal(t, "two", after[1].Label)
	require.Equal(t, "three", after[2].Label)
	require.Equal(t, before[1].BlobKey, after[1].BlobKey)

	_, ok := env.blobs.Get(oldBlobKey)
	require.False(t, ok, "replaced blob should be deleted")
	_, ok = env.blobs.Get(after[0].BlobKey)
	require.True(t, ok)
}

func TestSubmitImagesDropsExtraUploads(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.custom.SubmitImages(ctx, env.owner.ID,
		[]Upload{upload("p"), upload("q"), upload("r"), upload("s"), upload("t")})
	require.NoError(t, err)

	require.Equal(t, []string{"p", "q", "r"}, env.labels(t))
	require.Equal(t, 3, env.blobs.Len())
}

func TestSubmitImagesRepairsOversizedPool(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Seed five unbundled slots directly, simulating a historical invariant
	// violation.
	for _, label := range []string{"v", "w", "x", "y", "z"} {
		slot := models.ImageSlot{OwnerID: env.owner.ID, Label: label, BlobKey: "seed-" + label}
		require.NoError(t, env.store.CreateSlot(ctx, &slot))
	}

	require.NoError(t, env.custom.SubmitImages(ctx, env.owner.ID, []Upload{upload("fresh")}))

	// The two oldest rows are evicted, then the upload overwrites the new
	// oldest.
	require.Equal(t, []string{"fresh", "y", "z"}, env.labels(t))
}

func TestSubmitImagesIgnoresBundledSlots(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.custom.SubmitImages(ctx, env.owner.ID,
		[]Upload{upload("old1"), upload("old2"), upload("old3")}))
	_, err := env.sharing.CreateBundle(ctx, env.owner.ID)
	require.NoError(t, err)

	// Pool is empty again; new uploads create slots rather than touching
	// the bundled ones.
	require.NoError(t, env.custom.SubmitImages(ctx, env.owner.ID, []Upload{upload("new1")}))
	require.Equal(t, []string{"new1"}, env.labels(t))
}
