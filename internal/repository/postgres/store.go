package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voltshare/rental-backend/internal/rental"
	"github.com/voltshare/rental-backend/internal/repository"
)

// maxTxAttempts bounds serialization-conflict retries. The transaction has
// not taken effect when the conflict fires, so the retry is safe.
const maxTxAttempts = 3

type store struct{ pool *pgxpool.Pool }

func NewStore(pool *pgxpool.Pool) repository.Store { return &store{pool: pool} }

func (s *store) WithTx(ctx context.Context, fn func(ctx context.Context, tx repository.TxStore) error) error {
	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := s.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if rental.CodeOf(err) != "" {
			return err // business failure, surfaced verbatim
		}
		if isSerializationFailure(err) {
			lastErr = err
			continue
		}
		return rental.StorageError(err)
	}
	return fmt.Errorf("%w: %v", rental.ErrConflict, lastErr)
}

func (s *store) runOnce(ctx context.Context, fn func(ctx context.Context, tx repository.TxStore) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}
	if err := fn(ctx, &txStore{tx: tx}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

// 40001 serialization_failure, 40P01 deadlock_detected
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
