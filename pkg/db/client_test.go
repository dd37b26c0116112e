package db

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/luxehair/pkg/config"
	"github.com/angelmondragon/luxehair/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err, "failed to open sqlite")
	client, err := NewFromConn(context.Background(), conn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestLoadMissingKeyIsAbsent(t *testing.T) {
	client := newTestClient(t)

	value, ok, err := client.Load(context.Background(), "cart")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestSaveUpsertsAndLoadReturnsLatest(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	client.now = func() time.Time { return fixed }

	require.NoError(t, client.Save(ctx, "cart", "[]"))
	require.NoError(t, client.Save(ctx, "cart", `[{"id":"x"}]`))

	value, ok, err := client.Load(ctx, "cart")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"x"}]`, value)

	var count int64
	require.NoError(t, client.DB().Model(&models.StorageEntry{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "upsert must not duplicate rows")
}

func TestDeleteRemovesKey(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Save(ctx, "wishlist", `["wig-001"]`))
	require.NoError(t, client.Delete(ctx, "wishlist"))
	require.NoError(t, client.Delete(ctx, "wishlist"), "deleting twice should succeed")

	_, ok, err := client.Load(ctx, "wishlist")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPing(t *testing.T) {
	client := newTestClient(t)
	assert.NoError(t, client.Ping(context.Background()))
}

func TestDialectorForRejectsUnknownDriver(t *testing.T) {
	_, err := dialectorFor("mysql", "dsn")
	assert.Error(t, err)

	d, err := dialectorFor(config.StorageDriverSQLite, "file::memory:")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())
}

func TestNewRequiresDSN(t *testing.T) {
	_, err := New(context.Background(), config.StorageDriverSQLite, config.DBConfig{}, nil)
	assert.Error(t, err)
}
