package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voltshare/rental-backend/internal/repository"
)

type rentalsRepo struct{ pool *pgxpool.Pool }

// HistoryForUser keeps left-join semantics on both enrichments: a charged
// row has no battery, and a battery may have been unassigned or deleted
// since the rental; neither may suppress the row.
func (r *rentalsRepo) HistoryForUser(ctx context.Context, userID string) ([]repository.HistoryEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT r.id, r.user_id, r.battery_id, r.status, r.start_at, r.end_at,
		        r.return_station_id, r.price_cents, b.serial, s.name
		   FROM rentals r
		   LEFT JOIN batteries b ON b.id = r.battery_id
		   LEFT JOIN stations  s ON s.id = b.station_id
		  WHERE r.user_id=$1
		  ORDER BY r.start_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.HistoryEntry
	for rows.Next() {
		var e repository.HistoryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.BatteryID, &e.Status, &e.StartAt,
			&e.EndAt, &e.ReturnStationID, &e.PriceCents, &e.BatterySerial, &e.StationName); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
