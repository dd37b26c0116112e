package comparison

import (
	"context"
	"testing"

	"github.com/angelmondragon/luxehair/internal/catalog"
	pkgerrors "github.com/angelmondragon/luxehair/pkg/errors"
	"github.com/angelmondragon/luxehair/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, st storage.Storage) Service {
	t.Helper()
	store, err := catalog.Default()
	require.NoError(t, err)
	svc, err := NewService(context.Background(), ServiceParams{Storage: st, Catalog: store})
	require.NoError(t, err)
	return svc
}

func TestAddUpToLimit(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemory()
	svc := newTestService(t, st)

	for _, id := range []string{"wig-001", "wig-002", "frontal-001"} {
		added, err := svc.Add(ctx, id)
		require.NoError(t, err)
		assert.True(t, added)
	}

	added, err := svc.Add(ctx, "wig-002")
	require.NoError(t, err, "re-adding a selected product is not an error")
	assert.False(t, added)

	_, err = svc.Add(ctx, "care-001")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeLimitReached))
	assert.Equal(t, []string{"wig-001", "wig-002", "frontal-001"}, svc.IDs())

	raw, _ := st.Raw(storage.KeyComparison)
	assert.JSONEq(t, `["wig-001","wig-002","frontal-001"]`, raw)
}

func TestRemoveFreesSlot(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryWith(map[string]string{storage.KeyComparison: `["wig-001","wig-002","frontal-001"]`})
	svc := newTestService(t, st)

	require.NoError(t, svc.Remove(ctx, "wig-002"))
	added, err := svc.Add(ctx, "care-001")
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, svc.Contains("care-001"))

	products := svc.Products()
	require.Len(t, products, 3)
	assert.Equal(t, "care-001", products[2].ID)

	require.NoError(t, svc.Clear(ctx))
	assert.Empty(t, svc.IDs())
}

func TestAddUnknownProduct(t *testing.T) {
	svc := newTestService(t, storage.NewMemory())
	_, err := svc.Add(context.Background(), "ghost")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}
