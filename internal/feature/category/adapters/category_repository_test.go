package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"admin_backend/internal/feature/category/domain/entity"
	"admin_backend/internal/feature/category/usecase"
	"admin_backend/internal/platform/store"
	"admin_backend/internal/shared/apperr"
	"admin_backend/internal/shared/messages"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")
	require.NoError(t, db.AutoMigrate(&entity.Category{}), "failed to migrate table")
	return db
}

func uintPtr(v uint) *uint { return &v }

func mustCreate(t *testing.T, repo *categoryRepository, name string, parent *uint) *entity.Category {
	t.Helper()
	c, err := repo.Create(context.Background(), usecase.CategoryAttributes{Name: name, Slug: name, ParentID: parent})
	require.NoError(t, err)
	return c
}

func TestNewCategoryRepository_DefaultLimit(t *testing.T) {
	repo := NewCategoryRepository(setupTestDB(t), 0)

	assert.Equal(t, store.DefaultLimit, repo.limit)
}

func TestCategoryRepository_CreateThenGet(t *testing.T) {
	repo := NewCategoryRepository(setupTestDB(t), 10)
	ctx := context.Background()

	created, err := repo.Create(ctx, usecase.CategoryAttributes{Name: "Books", Slug: "books"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := repo.GetCategory(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Books", found.Name)
	assert.Equal(t, "books", found.Slug)
	assert.Nil(t, found.ParentID)
}

func TestCategoryRepository_GetCategory_NotFound(t *testing.T) {
	repo := NewCategoryRepository(setupTestDB(t), 10)

	_, err := repo.GetCategory(context.Background(), 404)

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCategoryRepository_Create_DuplicateSlug(t *testing.T) {
	repo := NewCategoryRepository(setupTestDB(t), 10)
	ctx := context.Background()
	mustCreate(t, repo, "books", nil)

	_, err := repo.Create(ctx, usecase.CategoryAttributes{Name: "Books 2", Slug: "books"})

	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.ErrorIs(t, err, store.ErrDuplicate)
	assert.Equal(t, "slug", apperr.FieldOf(err))
	assert.Equal(t, messages.CategorySlugUnique, apperr.MessageOf(err))
}

func TestCategoryRepository_Create_DuplicateName(t *testing.T) {
	repo := NewCategoryRepository(setupTestDB(t), 10)
	mustCreate(t, repo, "books", nil)

	_, err := repo.Create(context.Background(), usecase.CategoryAttributes{Name: "books", Slug: "books-2"})

	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "name", apperr.FieldOf(err))
	assert.Equal(t, messages.CategoryNameUnique, apperr.MessageOf(err))
}

func TestCategoryRepository_Create_MissingParent(t *testing.T) {
	repo := NewCategoryRepository(setupTestDB(t), 10)

	_, err := repo.Create(context.Background(), usecase.CategoryAttributes{Name: "Orphan", Slug: "orphan", ParentID: uintPtr(99)})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCategoryRepository_GetAllCategory(t *testing.T) {
	repo := NewCategoryRepository(setupTestDB(t), 2)
	ctx := context.Background()
	for _, n := range []string{"a", "b", "c"} {
		mustCreate(t, repo, n, nil)
	}

	t.Run("default limit applies", func(t *testing.T) {
		page, err := repo.GetAllCategory(ctx, store.PageRequest{Page: 1})
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, 2, page.LastPage)
		assert.Equal(t, int64(3), page.Total)
	})

	t.Run("explicit limit", func(t *testing.T) {
		page, err := repo.GetAllCategory(ctx, store.PageRequest{Page: 1, Limit: 5})
		require.NoError(t, err)
		assert.Len(t, page.Items, 3)
	})

	t.Run("page beyond the last is not found", func(t *testing.T) {
		_, err := repo.GetAllCategory(ctx, store.PageRequest{Page: 3})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("page whose offset overflows is not found", func(t *testing.T) {
		_, err := repo.GetAllCategory(ctx, store.PageRequest{Page: 100000000000000000, Limit: 100})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestCategoryRepository_GetAllCategory_EmptyTable(t *testing.T) {
	repo := NewCategoryRepository(setupTestDB(t), 10)

	_, err := repo.GetAllCategory(context.Background(), store.PageRequest{Page: 1})

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCategoryRepository_GetParent(t *testing.T) {
	repo := NewCategoryRepository(setupTestDB(t), 10)
	ctx := context.Background()

	_, err := repo.GetParent(ctx)
	assert.ErrorIs(t, err, apperr.ErrNotFound, "no roots yet")

	books := mustCreate(t, repo, "books", nil)
	mustCreate(t, repo, "fiction", &books.ID)
	mustCreate(t, repo, "music", nil)

	roots, err := repo.GetParent(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.Equal(t, "books", roots[0].Slug)
	assert.Equal(t, "music", roots[1].Slug)
}

func TestCategoryRepository_Update(t *testing.T) {
	repo := NewCategoryRepository(setupTestDB(t), 10)
	ctx := context.Background()
	books := mustCreate(t, repo, "books", nil)
	music := mustCreate(t, repo, "music", nil)

	t.Run("returns refreshed row", func(t *testing.T) {
		updated, err := repo.Update(ctx, usecase.CategoryAttributes{Name: "Novels", Slug: "novels", ParentID: &music.ID}, books.ID)
		require.NoError(t, err)
		assert.Equal(t, "Novels", updated.Name)
		assert.Equal(t, "novels", updated.Slug)
		require.NotNil(t, updated.ParentID)
		assert.Equal(t, music.ID, *updated.ParentID)
	})

	t.Run("clears parent", func(t *testing.T) {
		updated, err := repo.Update(ctx, usecase.CategoryAttributes{Name: "Novels", Slug: "novels"}, books.ID)
		require.NoError(t, err)
		assert.Nil(t, updated.ParentID)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.Update(ctx, usecase.CategoryAttributes{Name: "x", Slug: "x"}, 999)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		_, err := repo.Update(ctx, usecase.CategoryAttributes{Name: "m", Slug: "novels"}, music.ID)
		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, "slug", apperr.FieldOf(err))
	})

	t.Run("keeping its own name is not a duplicate", func(t *testing.T) {
		_, err := repo.Update(ctx, usecase.CategoryAttributes{Name: "music", Slug: "novels"}, music.ID)
		assert.ErrorIs(t, err, apperr.ErrValidation)
		assert.Equal(t, "slug", apperr.FieldOf(err), "own name is skipped, the taken slug is reported")
	})
}

func TestCategoryRepository_Update_RejectsCycles(t *testing.T) {
	repo := NewCategoryRepository(setupTestDB(t), 10)
	ctx := context.Background()
	root := mustCreate(t, repo, "root", nil)
	child := mustCreate(t, repo, "child", &root.ID)
	grandchild := mustCreate(t, repo, "grandchild", &child.ID)

	tests := []struct {
		name     string
		id       uint
		parentID uint
		want     error
	}{
		{"self parent", root.ID, root.ID, apperr.ErrConflict},
		{"parent is a grandchild", root.ID, grandchild.ID, apperr.ErrConflict},
		{"parent is missing", child.ID, 999, apperr.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Update(ctx, usecase.CategoryAttributes{Name: "n" + tt.name, Slug: "s" + tt.name, ParentID: uintPtr(tt.parentID)}, tt.id)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// Moving a leaf under another branch is fine.
	other := mustCreate(t, repo, "other", nil)
	_, err := repo.Update(ctx, usecase.CategoryAttributes{Name: "grandchild", Slug: "grandchild", ParentID: &other.ID}, grandchild.ID)
	assert.NoError(t, err)
}

func TestCategoryRepository_DeleteScenario(t *testing.T) {
	repo := NewCategoryRepository(setupTestDB(t), 10)
	ctx := context.Background()

	books, err := repo.Create(ctx, usecase.CategoryAttributes{Name: "Books", Slug: "books"})
	require.NoError(t, err)

	roots, err := repo.GetParent(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, books.ID, roots[0].ID)

	fiction, err := repo.Create(ctx, usecase.CategoryAttributes{Name: "Fiction", Slug: "fiction", ParentID: &books.ID})
	require.NoError(t, err)

	_, err = repo.DeleteCategory(ctx, books.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	ok, err := repo.DeleteCategory(ctx, fiction.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DeleteCategory(ctx, books.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.GetCategory(ctx, books.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCategoryRepository_DeleteCategory_NotFound(t *testing.T) {
	repo := NewCategoryRepository(setupTestDB(t), 10)

	_, err := repo.DeleteCategory(context.Background(), 7)

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
