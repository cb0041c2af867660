// Package store provides a generic gorm backed data access capability.
//
// A Store knows nothing about caching or about domain rules: it reports
// absence as a nil result, never as an error, and wraps rejected writes in
// apperr.ErrPersistence.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"admin_backend/internal/shared/apperr"
)

// pgUniqueViolation is the SQLSTATE Postgres reports for a unique index violation.
const pgUniqueViolation = "23505"

// Store is a typed CRUD capability over the table of E.
type Store[E any] struct {
	db     *gorm.DB
	fields map[string]struct{}
}

// New returns a Store for E. fields lists the column names that FindFirstByField
// and ExistsByField accept.
func New[E any](db *gorm.DB, fields ...string) *Store[E] {
	allowed := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		allowed[f] = struct{}{}
	}
	return &Store[E]{db: db, fields: allowed}
}

// GetAll returns every non-deleted row ordered by id.
func (s *Store[E]) GetAll(ctx context.Context) ([]E, error) {
	var out []E
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Paginate returns one page of rows ordered by id. An out-of-range page yields
// an empty Items slice and no error.
func (s *Store[E]) Paginate(ctx context.Context, req PageRequest) (Page[E], error) {
	return s.PaginateWhere(ctx, req, nil)
}

// PaginateWhere is Paginate restricted by scope.
func (s *Store[E]) PaginateWhere(ctx context.Context, req PageRequest, scope func(*gorm.DB) *gorm.DB) (Page[E], error) {
	req = req.Normalize(DefaultLimit)

	query := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(new(E))
		if scope != nil {
			q = scope(q)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return Page[E]{}, err
	}

	items := make([]E, 0, req.Limit)
	if int64(req.Offset()) >= total {
		return NewPage(items, total, req), nil
	}
	if err := query().Order("id ASC").Offset(req.Offset()).Limit(req.Limit).Find(&items).Error; err != nil {
		return Page[E]{}, err
	}
	return NewPage(items, total, req), nil
}

// Find returns the row with id, or nil if there is none.
func (s *Store[E]) Find(ctx context.Context, id uint) (*E, error) {
	var e E
	err := s.db.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// FindWhere returns every row matching the query and args.
func (s *Store[E]) FindWhere(ctx context.Context, query any, args ...any) ([]E, error) {
	var out []E
	if err := s.db.WithContext(ctx).Where(query, args...).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts e and fills its generated fields.
func (s *Store[E]) Create(ctx context.Context, e *E) error {
	if e == nil {
		return apperr.Persistence("create", errors.New("nil record"))
	}
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return apperr.Persistence("create", translate(err))
	}
	return nil
}

// UpdateByID applies attrs to the row with id and returns the refreshed row,
// or nil if the row does not exist. attrs keys are column names.
func (s *Store[E]) UpdateByID(ctx context.Context, id uint, attrs map[string]any) (*E, error) {
	current, err := s.Find(ctx, id)
	if err != nil || current == nil {
		return nil, err
	}
	if len(attrs) > 0 {
		if err := s.db.WithContext(ctx).Model(current).Updates(attrs).Error; err != nil {
			return nil, apperr.Persistence("update", translate(err))
		}
	}
	return s.Find(ctx, id)
}

// Delete removes the row with id and reports whether one existed.
func (s *Store[E]) Delete(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(new(E), id)
	if res.Error != nil {
		return false, apperr.Persistence("delete", translate(res.Error))
	}
	return res.RowsAffected > 0, nil
}

// FindFirstByField returns the first row whose field equals value, or nil.
func (s *Store[E]) FindFirstByField(ctx context.Context, field string, value any) (*E, error) {
	if err := s.checkField(field); err != nil {
		return nil, err
	}
	var e E
	err := s.db.WithContext(ctx).Where(fmt.Sprintf("%s = ?", field), value).Order("id ASC").First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ExistsByField reports whether any row has field equal to value.
func (s *Store[E]) ExistsByField(ctx context.Context, field string, value any) (bool, error) {
	if err := s.checkField(field); err != nil {
		return false, err
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(new(E)).Where(fmt.Sprintf("%s = ?", field), value).Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store[E]) checkField(field string) error {
	if _, ok := s.fields[field]; !ok {
		return fmt.Errorf("store: field %q is not queryable", field)
	}
	return nil
}

// ErrDuplicate marks a unique constraint violation inside a persistence error.
var ErrDuplicate = errors.New("duplicate key")

// translate normalizes unique violations coming from any dialect to ErrDuplicate.
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}
