package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voltshare/rental-backend/internal/models"
)

type eventsRepo struct{ pool *pgxpool.Pool }

func (r *eventsRepo) Insert(ctx context.Context, e models.RentalEvent) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO rental_events(id, rental_id, user_id, action, detail)
		 VALUES($1,$2,$3,$4,$5)`,
		e.ID, e.RentalID, e.UserID, e.Action, e.Detail)
	return err
}
