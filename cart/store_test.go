package cart

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acestore/acestore-api/logger"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	c := New()
	botProduct, botVariant := juggernautBot()
	packProduct, packVariant := goldPack()
	require.NoError(t, c.AddItem(botProduct, botVariant, 2))
	require.NoError(t, c.AddItem(packProduct, packVariant, 3))

	require.NoError(t, store.Save(ctx, "session-1", c))

	loaded, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)
	assert.Equal(t, c.Items, loaded.Items)
	assert.Equal(t, c.Total(), loaded.Total())
}

func TestRedisStoreMissingKeyIsEmptyCart(t *testing.T) {
	store, _ := newRedisStore(t)

	c, err := store.Load(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestRedisStoreCorruptPayload(t *testing.T) {
	store, mr := newRedisStore(t)
	require.NoError(t, mr.Set(Namespace+":session-1", "{not json"))

	_, err := store.Load(context.Background(), "session-1")
	assert.ErrorIs(t, err, ErrCorruptState)
}

func TestRedisStoreKeyNamespace(t *testing.T) {
	store, mr := newRedisStore(t)
	require.NoError(t, store.Save(context.Background(), "abc", New()))
	assert.True(t, mr.Exists("ace-store-cart:abc"))
}

func TestServiceRecoversFromCorruptState(t *testing.T) {
	store := NewMemoryStore()
	store.SeedRaw("session-1", []byte("][ junk"))
	svc := NewService(store, logger.NewNop())
	ctx := context.Background()

	c, err := svc.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	// The next mutation starts from the clean slate and persists it.
	product, variant := goldPack()
	c, err = svc.AddItem(ctx, "session-1", product, variant, 1)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)

	reloaded, err := svc.Get(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, 1, reloaded.Items[0].Quantity)
}

func TestServiceMutationsPersistAcrossLoads(t *testing.T) {
	svc := NewService(NewMemoryStore(), logger.NewNop())
	ctx := context.Background()
	product, variant := goldPack()

	_, err := svc.AddItem(ctx, "s", product, variant, 2)
	require.NoError(t, err)
	_, err = svc.SetQuantity(ctx, "s", variant.ID, 5)
	require.NoError(t, err)

	c, err := svc.Get(ctx, "s")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)

	_, err = svc.RemoveItem(ctx, "s", variant.ID)
	require.NoError(t, err)

	c, err = svc.Get(ctx, "s")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestServiceClear(t *testing.T) {
	svc := NewService(NewMemoryStore(), logger.NewNop())
	ctx := context.Background()
	product, variant := juggernautBot()

	_, err := svc.AddItem(ctx, "s", product, variant, 1)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, "s"))

	c, err := svc.Get(ctx, "s")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}
