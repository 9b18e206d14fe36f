package dedupe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_FirstSeen(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewRedisStore(db, 10*time.Minute)
	ctx := context.Background()

	mock.ExpectSetNX("waha:msg:true_62812@c.us_ABC", "1", 10*time.Minute).SetVal(true)
	mock.ExpectSetNX("waha:msg:true_62812@c.us_ABC", "1", 10*time.Minute).SetVal(false)
	mock.ExpectSetNX("waha:msg:broken", "1", 10*time.Minute).SetErr(errors.New("connection refused"))

	first, err := store.FirstSeen(ctx, "true_62812@c.us_ABC")
	require.NoError(t, err)
	assert.True(t, first)

	again, err := store.FirstSeen(ctx, "true_62812@c.us_ABC")
	require.NoError(t, err)
	assert.False(t, again)

	_, err = store.FirstSeen(ctx, "broken")
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryStore_FirstSeen(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	ok, _ := store.FirstSeen(ctx, "msg-1")
	assert.True(t, ok)
	ok, _ = store.FirstSeen(ctx, "msg-1")
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	ok, _ = store.FirstSeen(ctx, "msg-1")
	assert.True(t, ok, "entry expires after ttl")
}
