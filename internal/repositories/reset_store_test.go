package repositories

import (
	"context"
	"testing"
	"time"

	"medspace-api/internal/models"
	"medspace-api/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestStore(t *testing.T) (*cache.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewStore(client), mr
}

func TestResetStoreConsumesOnce(t *testing.T) {
	store, _ := newTestStore(t)
	resets := NewResetStore(store)
	ctx := context.Background()

	ok, err := resets.ConsumeVerified(ctx, "ada@example.com")
	if err != nil || ok {
		t.Fatalf("unverified email must not consume: ok=%v err=%v", ok, err)
	}

	if err := resets.MarkVerified(ctx, "Ada@Example.com ", time.Minute); err != nil {
		t.Fatalf("mark: %v", err)
	}
	ok, err = resets.ConsumeVerified(ctx, "ada@example.com")
	if err != nil || !ok {
		t.Fatalf("expected marker to be consumed: ok=%v err=%v", ok, err)
	}
	ok, _ = resets.ConsumeVerified(ctx, "ada@example.com")
	if ok {
		t.Fatal("marker must be single use")
	}
}

func TestResetStoreExpires(t *testing.T) {
	store, mr := newTestStore(t)
	resets := NewResetStore(store)
	ctx := context.Background()

	if err := resets.MarkVerified(ctx, "ada@example.com", time.Minute); err != nil {
		t.Fatalf("mark: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if ok, _ := resets.ConsumeVerified(ctx, "ada@example.com"); ok {
		t.Fatal("expired marker must not be consumed")
	}
}

func TestProfileCacheRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	profiles := NewProfileCache(store)
	ctx := context.Background()

	user := &models.User{
		ID:       primitive.NewObjectID(),
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "$2a$10$hash",
		OTP:      "123456",
	}

	if _, found, err := profiles.Get(ctx, user.ID.Hex()); err != nil || found {
		t.Fatalf("expected miss, found=%v err=%v", found, err)
	}
	if err := profiles.Set(ctx, user, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	cached, found, err := profiles.Get(ctx, user.ID.Hex())
	if err != nil || !found {
		t.Fatalf("expected hit, found=%v err=%v", found, err)
	}
	if cached.ID != user.ID || cached.Name != "Ada" {
		t.Errorf("unexpected cached user: %+v", cached)
	}
	if cached.Password != "" || cached.OTP != "" {
		t.Error("secrets must not be cached")
	}

	if err := profiles.Invalidate(ctx, user.ID.Hex()); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, found, _ := profiles.Get(ctx, user.ID.Hex()); found {
		t.Fatal("expected miss after invalidate")
	}
}

func TestProfileCacheDropsUnreadableEntry(t *testing.T) {
	store, mr := newTestStore(t)
	profiles := NewProfileCache(store)
	ctx := context.Background()
	id := primitive.NewObjectID().Hex()

	if err := mr.Set(cache.ProfileKey(id), "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, _, err := profiles.Get(ctx, id); err == nil {
		t.Fatal("expected an unmarshal error")
	}
	if mr.Exists(cache.ProfileKey(id)) {
		t.Fatal("corrupt entry should have been deleted")
	}
}
