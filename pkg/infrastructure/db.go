package infrastructure

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4/pgxpool"
)

// NewPool connects to Postgres at dsn.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("database url is empty")
	}
	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return pool, nil
}
