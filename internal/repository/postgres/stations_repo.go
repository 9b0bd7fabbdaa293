package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voltshare/rental-backend/internal/models"
	"github.com/voltshare/rental-backend/internal/repository"
)

type stationsRepo struct{ pool *pgxpool.Pool }

func (r *stationsRepo) List(ctx context.Context) ([]models.Station, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, location, lat, lng FROM stations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Station
	for rows.Next() {
		var s models.Station
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.Lat, &s.Lng); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *stationsRepo) Get(ctx context.Context, id string) (models.Station, error) {
	var s models.Station
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, location, lat, lng FROM stations WHERE id=$1`, id,
	).Scan(&s.ID, &s.Name, &s.Location, &s.Lat, &s.Lng)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Station{}, repository.ErrStationNotFound
	}
	return s, err
}
