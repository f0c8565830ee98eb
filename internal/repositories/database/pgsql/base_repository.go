package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/filmorate/filmorate_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common query-execution functionality for all
// repositories: find-one, find-all, mutate and insert-returning-id,
// parameterized by an injected row-to-entity mapper. It performs no retries
// and no caching; failures propagate immediately.
type BaseRepository[T any] struct {
	db  *pgxpool.Pool
	row pgx.RowToFunc[T]
}

// NewBaseRepository builds a BaseRepository around a pool and a row mapper.
func NewBaseRepository[T any](db *pgxpool.Pool, row pgx.RowToFunc[T]) BaseRepository[T] {
	return BaseRepository[T]{db: db, row: row}
}

// FindOne runs the query and maps the first resulting row. Returns nil
// without an error when no row matches.
func (r *BaseRepository[T]) FindOne(ctx context.Context, query string, args ...any) (*T, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	entity, err := pgx.CollectOneRow(rows, r.row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translateError(err)
	}
	return &entity, nil
}

// FindAll runs the query and maps every resulting row.
func (r *BaseRepository[T]) FindAll(ctx context.Context, query string, args ...any) ([]T, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	entities, err := pgx.CollectRows(rows, r.row)
	if err != nil {
		return nil, translateError(err)
	}
	return entities, nil
}

// Mutate executes an UPDATE/DELETE/INSERT statement and returns the number
// of affected rows.
func (r *BaseRepository[T]) Mutate(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, translateError(err)
	}
	return tag.RowsAffected(), nil
}

// Insert executes an INSERT ... RETURNING id statement and returns the
// generated id. A backend that yields no id is a persistence bug, surfaced
// as apperrors.ErrInternal.
func (r *BaseRepository[T]) Insert(ctx context.Context, query string, args ...any) (int, error) {
	var id int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("insert returned no generated id: %w", apperrors.ErrInternal)
		}
		return 0, translateError(err)
	}
	return id, nil
}

// translateError maps backend-detected constraint violations to the
// application error taxonomy; everything else passes through unchanged.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("constraint %s violated: %w", pgErr.ConstraintName, apperrors.ErrDuplicate)
		case "23503": // foreign_key_violation
			return fmt.Errorf("constraint %s violated: %w", pgErr.ConstraintName, apperrors.ErrDuplicate)
		}
	}
	return err
}
