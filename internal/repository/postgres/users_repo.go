package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voltshare/rental-backend/internal/models"
	"github.com/voltshare/rental-backend/internal/rental"
)

type usersRepo struct{ pool *pgxpool.Pool }

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.get(ctx, `WHERE id=$1`, id)
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.get(ctx, `WHERE email=$1`, email)
}

func (r *usersRepo) get(ctx context.Context, where string, arg any) (models.User, error) {
	var u models.User
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, balance_cents, created_at FROM users `+where, arg,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.BalanceCents, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, rental.ErrUserNotFound
	}
	return u, err
}
