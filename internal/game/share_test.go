package game

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateBundleWithoutImages(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.sharing.CreateBundle(context.Background(), env.owner.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.Zero(t, env.bundleCount(t), "failed share must not leave a bundle behind")
}

func TestCreateBundleSnapshotsCurrentSlots(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.custom.SubmitImages(ctx, env.owner.ID,
		[]Upload{upload("cat"), upload("dog"), upload("bird")}))

	bundle, err := env.sharing.CreateBundle(ctx, env.owner.ID)
	require.NoError(t, err)
	require.NotEmpty(t, bundle.Token)
	_, err = uuid.Parse(bundle.Token)
	require.NoError(t, err, "token must be a UUID")

	// All three slots moved out of the current pool.
	require.Empty(t, env.labels(t))

	items, err := env.sharing.ResolveBundle(ctx, bundle.Token)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "cat", items[0].Name)
	require.Equal(t, "dog", items[1].Name)
	require.Equal(t, "bird", items[2].Name)
}

func TestResolveBundleUnknownToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.sharing.ResolveBundle(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBundlesAreImmutableSnapshots(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.custom.SubmitImages(ctx, env.owner.ID,
		[]Upload{upload("red"), upload("green")}))
	first, err := env.sharing.CreateBundle(ctx, env.owner.ID)
	require.NoError(t, err)

	// New uploads and a second share never touch the first snapshot.
	require.NoError(t, env.custom.SubmitImages(ctx, env.owner.ID, []Upload{upload("blue")}))
	second, err := env.sharing.CreateBundle(ctx, env.owner.ID)
	require.NoError(t, err)
	require.NotEqual(t, first.Token, second.Token)

	firstItems, err := env.sharing.ResolveBundle(ctx, first.Token)
	require.NoError(t, err)
	require.Len(t, firstItems, 2)
	require.Equal(t, "red", firstItems[0].Name)
	require.Equal(t, "green", firstItems[1].Name)

	secondItems, err := env.sharing.ResolveBundle(ctx, second.Token)
	require.NoError(t, err)
	require.Len(t, secondItems, 1)
	require.Equal(t, "blue", secondItems[0].Name)
}
