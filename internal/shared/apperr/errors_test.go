package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKind(t *testing.T) {
	t.Parallel()

	err := NotFound("CATEGORY NOT FOUND")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.Equal(t, "CATEGORY NOT FOUND", err.Error())
}

func TestError_SurvivesWrapping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("usecase: %w", Conflict("has children"))

	assert.ErrorIs(t, wrapped, ErrConflict)
	assert.Equal(t, ErrConflict, KindOf(wrapped))
	assert.Equal(t, "has children", MessageOf(wrapped))
}

func TestPersistence_KeepsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("duplicate key")
	err := Persistence("CREATE USER FAIL", cause)

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "CREATE USER FAIL: duplicate key", err.Error())
	assert.Equal(t, "CREATE USER FAIL", MessageOf(err))
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"application error", Login("WRONG PASSWORD OR USERNAME"), ErrLogin},
		{"bare kind", ErrValidation, ErrValidation},
		{"plain error", errors.New("boom"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestInvalid_CarriesField(t *testing.T) {
	t.Parallel()

	cause := errors.New("duplicate key")
	err := fmt.Errorf("repo: %w", Invalid("email", "EMAIL IS EXISTS", cause))

	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "email", FieldOf(err))
	assert.Equal(t, "EMAIL IS EXISTS", MessageOf(err))
	assert.Empty(t, FieldOf(NotFound("USER NOT FOUND")))
	assert.Empty(t, FieldOf(cause))
}
