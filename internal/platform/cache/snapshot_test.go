package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"admin_backend/internal/platform/store"
)

func TestSnapshot_CategoryPage(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	page := store.Page[CategorySnapshot]{
		Items: []CategorySnapshot{
			{ID: 1, Name: "Books", Slug: "books", CreatedAt: created},
			{ID: 2, Name: "Fiction", Slug: "fiction", ParentID: ptr(uint(1)), CreatedAt: created},
		},
		Total: 2, Page: 1, Limit: 10, LastPage: 1,
	}

	raw, err := encodeSnapshot(kindCategory, page)
	require.NoError(t, err)

	got, err := decodeSnapshot[store.Page[CategorySnapshot]](kindCategory, raw)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Nil(t, got.Items[0].ParentID)
	require.NotNil(t, got.Items[1].ParentID)
	assert.Equal(t, uint(1), *got.Items[1].ParentID)
	assert.True(t, created.Equal(got.Items[0].CreatedAt))
	assert.Equal(t, int64(2), got.Total)
}

func TestSnapshot_KindMismatch(t *testing.T) {
	raw, err := encodeSnapshot(kindUser, UserSnapshot{ID: 1})
	require.NoError(t, err)

	_, err = decodeSnapshot[CategorySnapshot](kindCategory, raw)
	assert.ErrorIs(t, err, ErrSnapshotMismatch)
}

func TestSnapshot_VersionMismatch(t *testing.T) {
	payload, err := msgpack.Marshal(CategorySnapshot{ID: 1})
	require.NoError(t, err)
	raw, err := msgpack.Marshal(envelope{V: snapshotVersion + 1, Kind: kindCategory, Payload: payload})
	require.NoError(t, err)

	_, err = decodeSnapshot[CategorySnapshot](kindCategory, raw)
	assert.ErrorIs(t, err, ErrSnapshotMismatch)
}

func TestSnapshot_Garbage(t *testing.T) {
	_, err := decodeSnapshot[CategorySnapshot](kindCategory, []byte{0xc1})
	assert.Error(t, err)
}
