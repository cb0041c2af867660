package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	categoryentity "admin_backend/internal/feature/category/domain/entity"
	userentity "admin_backend/internal/feature/user/domain/entity"
)

// snapshotVersion is bumped whenever a snapshot struct changes shape. Entries
// written with another version are dropped on read.
const snapshotVersion = 1

// ErrSnapshotMismatch is returned when a cached value was written for another
// kind or another snapshot version.
var ErrSnapshotMismatch = errors.New("cache snapshot mismatch")

type envelope struct {
	V       int                `msgpack:"v"`
	Kind    string             `msgpack:"kind"`
	Payload msgpack.RawMessage `msgpack:"payload"`
}

func encodeSnapshot[S any](kind string, payload S) ([]byte, error) {
	p, err := msgpack.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s snapshot: %w", kind, err)
	}
	b, err := msgpack.Marshal(envelope{V: snapshotVersion, Kind: kind, Payload: p})
	if err != nil {
		return nil, fmt.Errorf("encode %s envelope: %w", kind, err)
	}
	return b, nil
}

func decodeSnapshot[S any](kind string, raw []byte) (S, error) {
	var out S
	var env envelope
	if err := msgpack.Unmarshal(raw, &env); err != nil {
		return out, fmt.Errorf("decode %s envelope: %w", kind, err)
	}
	if env.V != snapshotVersion || env.Kind != kind {
		return out, fmt.Errorf("%w: got v%d %q, want v%d %q", ErrSnapshotMismatch, env.V, env.Kind, snapshotVersion, kind)
	}
	if err := msgpack.Unmarshal(env.Payload, &out); err != nil {
		return out, fmt.Errorf("decode %s snapshot: %w", kind, err)
	}
	return out, nil
}

// CategorySnapshot is the cached form of a category.
type CategorySnapshot struct {
	ID        uint      `msgpack:"id"`
	Name      string    `msgpack:"name"`
	Slug      string    `msgpack:"slug"`
	ParentID  *uint     `msgpack:"parent_id"`
	CreatedAt time.Time `msgpack:"created_at"`
	UpdatedAt time.Time `msgpack:"updated_at"`
}

func categorySnapshot(c categoryentity.Category) CategorySnapshot {
	return CategorySnapshot{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (s CategorySnapshot) entity() categoryentity.Category {
	return categoryentity.Category{
		ID:        s.ID,
		Name:      s.Name,
		Slug:      s.Slug,
		ParentID:  s.ParentID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// UserSnapshot is the cached form of a user. It keeps the password hash so a
// cached user is indistinguishable from one read from the database.
type UserSnapshot struct {
	ID           uint      `msgpack:"id"`
	Name         string    `msgpack:"name"`
	Email        string    `msgpack:"email"`
	PasswordHash string    `msgpack:"password_hash"`
	CreatedAt    time.Time `msgpack:"created_at"`
	UpdatedAt    time.Time `msgpack:"updated_at"`
}

func userSnapshot(u userentity.User) UserSnapshot {
	return UserSnapshot{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.Password,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (s UserSnapshot) entity() userentity.User {
	return userentity.User{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Password:  s.PasswordHash,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
