package store

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"admin_backend/internal/shared/apperr"
)

type widget struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:55;not null;uniqueIndex"`
	Color     string `gorm:"size:20"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, db.AutoMigrate(&widget{}), "failed to migrate table")
	return db
}

func seed(t *testing.T, s *Store[widget], names ...string) []widget {
	t.Helper()
	out := make([]widget, 0, len(names))
	for _, n := range names {
		w := widget{Name: n, Color: "red"}
		require.NoError(t, s.Create(context.Background(), &w))
		out = append(out, w)
	}
	return out
}

func TestStore_CreateThenFind(t *testing.T) {
	s := New[widget](setupTestDB(t), "name")
	ctx := context.Background()

	w := widget{Name: "gear", Color: "blue"}
	require.NoError(t, s.Create(ctx, &w))
	assert.NotZero(t, w.ID)

	found, err := s.Find(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "gear", found.Name)
	assert.Equal(t, "blue", found.Color)
}

func TestStore_FindMissingIsNil(t *testing.T) {
	s := New[widget](setupTestDB(t))

	found, err := s.Find(context.Background(), 42)

	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestStore_CreateDuplicateIsPersistenceError(t *testing.T) {
	s := New[widget](setupTestDB(t))
	seed(t, s, "gear")

	err := s.Create(context.Background(), &widget{Name: "gear"})

	assert.ErrorIs(t, err, apperr.ErrPersistence)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestStore_CreateNil(t *testing.T) {
	s := New[widget](setupTestDB(t))

	assert.ErrorIs(t, s.Create(context.Background(), nil), apperr.ErrPersistence)
}

func TestStore_GetAllSkipsDeleted(t *testing.T) {
	s := New[widget](setupTestDB(t))
	ctx := context.Background()
	ws := seed(t, s, "a", "b", "c")

	ok, err := s.Delete(ctx, ws[1].ID)
	require.NoError(t, err)
	require.True(t, ok)

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name)
	assert.Equal(t, "c", all[1].Name)
}

func TestStore_Paginate(t *testing.T) {
	s := New[widget](setupTestDB(t))
	ctx := context.Background()
	seed(t, s, "a", "b", "c", "d", "e")

	tests := []struct {
		name      string
		req       PageRequest
		wantNames []string
		wantPage  int
		wantLast  int
	}{
		{"first page", PageRequest{Page: 1, Limit: 2}, []string{"a", "b"}, 1, 3},
		{"last partial page", PageRequest{Page: 3, Limit: 2}, []string{"e"}, 3, 3},
		{"out of range page", PageRequest{Page: 4, Limit: 2}, []string{}, 4, 3},
		{"page defaults to one", PageRequest{Page: 0, Limit: 10}, []string{"a", "b", "c", "d", "e"}, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := s.Paginate(ctx, tt.req)
			require.NoError(t, err)

			names := make([]string, 0, len(page.Items))
			for _, w := range page.Items {
				names = append(names, w.Name)
			}
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, int64(5), page.Total)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.wantLast, page.LastPage)
		})
	}
}

func TestStore_PaginateDefaultLimit(t *testing.T) {
	s := New[widget](setupTestDB(t))

	page, err := s.Paginate(context.Background(), PageRequest{Page: 1})

	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, page.Limit)
	assert.True(t, page.IsEmpty())
}

func TestStore_PaginateFarPageIsEmpty(t *testing.T) {
	s := New[widget](setupTestDB(t))
	seed(t, s, "gear", "cog")

	page, err := s.Paginate(context.Background(), PageRequest{Page: 100000000000000000, Limit: 100})

	require.NoError(t, err)
	assert.True(t, page.IsEmpty())
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, 100000000000000000, page.Page)
}

func TestPageRequest_Offset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  PageRequest
		want int
	}{
		{"first page", PageRequest{Page: 1, Limit: 10}, 0},
		{"third page", PageRequest{Page: 3, Limit: 10}, 20},
		{"zero page", PageRequest{Page: 0, Limit: 10}, 0},
		{"zero limit", PageRequest{Page: 5, Limit: 0}, 0},
		{"saturates", PageRequest{Page: 100000000000000000, Limit: 100}, math.MaxInt},
		{"max page", PageRequest{Page: math.MaxInt, Limit: 2}, math.MaxInt},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.req.Offset(), tt.name)
	}
}

func TestStore_UpdateByID(t *testing.T) {
	s := New[widget](setupTestDB(t))
	ctx := context.Background()
	ws := seed(t, s, "gear", "cog")

	t.Run("merges attributes", func(t *testing.T) {
		updated, err := s.UpdateByID(ctx, ws[0].ID, map[string]any{"color": "green"})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "gear", updated.Name)
		assert.Equal(t, "green", updated.Color)
	})

	t.Run("missing id is nil", func(t *testing.T) {
		updated, err := s.UpdateByID(ctx, 999, map[string]any{"color": "green"})
		assert.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("unique violation", func(t *testing.T) {
		_, err := s.UpdateByID(ctx, ws[1].ID, map[string]any{"name": "gear"})
		assert.ErrorIs(t, err, apperr.ErrPersistence)
	})
}

func TestStore_Delete(t *testing.T) {
	s := New[widget](setupTestDB(t))
	ctx := context.Background()
	ws := seed(t, s, "gear")

	ok, err := s.Delete(ctx, ws[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Delete(ctx, ws[0].ID)
	require.NoError(t, err)
	assert.False(t, ok, "second delete should report absence")

	found, err := s.Find(ctx, ws[0].ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestStore_FindFirstByField(t *testing.T) {
	s := New[widget](setupTestDB(t), "name")
	ctx := context.Background()
	seed(t, s, "gear", "cog")

	found, err := s.FindFirstByField(ctx, "name", "cog")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "cog", found.Name)

	missing, err := s.FindFirstByField(ctx, "name", "spring")
	assert.NoError(t, err)
	assert.Nil(t, missing)

	_, err = s.FindFirstByField(ctx, "color; DROP TABLE widgets", "x")
	assert.Error(t, err, "fields outside the allow-list are rejected")
}

func TestStore_ExistsByField(t *testing.T) {
	s := New[widget](setupTestDB(t), "name")
	ctx := context.Background()
	seed(t, s, "gear")

	ok, err := s.ExistsByField(ctx, "name", "gear")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.ExistsByField(ctx, "name", "cog")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewPage_LastPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 5, 5},
	}
	for _, tt := range tests {
		p := NewPage([]int{}, tt.total, PageRequest{Page: 1, Limit: tt.limit})
		assert.Equal(t, tt.want, p.LastPage, "total=%d limit=%d", tt.total, tt.limit)
	}
}
