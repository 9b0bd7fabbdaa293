package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voltshare/rental-backend/internal/models"
)

type batteriesRepo struct{ pool *pgxpool.Pool }

func (r *batteriesRepo) AvailableCount(ctx context.Context, stationID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM batteries WHERE station_id=$1 AND available`, stationID,
	).Scan(&n)
	return n, err
}

func (r *batteriesRepo) ListAvailableByStation(ctx context.Context, stationID string) ([]models.Battery, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, serial, station_id, available, charge_level
		   FROM batteries
		  WHERE station_id=$1 AND available
		  ORDER BY serial`, stationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Battery
	for rows.Next() {
		var b models.Battery
		if err := rows.Scan(&b.ID, &b.Serial, &b.StationID, &b.Available, &b.ChargeLevel); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
