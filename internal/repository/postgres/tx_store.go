package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/voltshare/rental-backend/internal/models"
	"github.com/voltshare/rental-backend/internal/rental"
	"github.com/voltshare/rental-backend/internal/repository"
)

// txStore binds the row-level contract to one open pgx transaction.
type txStore struct{ tx pgx.Tx }

func (s *txStore) InsertUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	err := s.tx.QueryRow(ctx,
		`INSERT INTO users(id, email, password_hash, balance_cents)
		 VALUES($1,$2,$3,$4)
		 RETURNING created_at`,
		u.ID, u.Email, u.PasswordHash, u.BalanceCents,
	).Scan(&u.CreatedAt)
	if isUniqueViolation(err) {
		return repository.ErrDuplicateEmail
	}
	return err
}

func (s *txStore) UserForUpdate(ctx context.Context, id string) (models.User, error) {
	var u models.User
	err := s.tx.QueryRow(ctx,
		`SELECT id, email, password_hash, balance_cents, created_at
		   FROM users WHERE id=$1 FOR UPDATE`, id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.BalanceCents, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, rental.ErrUserNotFound
	}
	return u, err
}

func (s *txStore) AddToBalance(ctx context.Context, userID string, delta int64) (int64, error) {
	var balance int64
	err := s.tx.QueryRow(ctx,
		`UPDATE users SET balance_cents = balance_cents + $2
		  WHERE id=$1
		  RETURNING balance_cents`,
		userID, delta,
	).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, rental.ErrUserNotFound
	}
	return balance, err
}

func (s *txStore) BatteryForUpdate(ctx context.Context, id string) (models.Battery, error) {
	var b models.Battery
	err := s.tx.QueryRow(ctx,
		`SELECT id, serial, station_id, available, charge_level
		   FROM batteries WHERE id=$1 FOR UPDATE`, id,
	).Scan(&b.ID, &b.Serial, &b.StationID, &b.Available, &b.ChargeLevel)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Battery{}, rental.ErrBatteryNotFound
	}
	return b, err
}

// MarkBatteryRented is the availability compare-and-set: zero rows affected
// means another transaction already holds the battery.
func (s *txStore) MarkBatteryRented(ctx context.Context, id string) (bool, error) {
	ct, err := s.tx.Exec(ctx,
		`UPDATE batteries SET available=false WHERE id=$1 AND available=true`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() == 1, nil
}

func (s *txStore) MarkBatteryReturned(ctx context.Context, id string, stationID *string) error {
	_, err := s.tx.Exec(ctx,
		`UPDATE batteries
		    SET available=true,
		        station_id=COALESCE($2, station_id)
		  WHERE id=$1`,
		id, stationID)
	return err
}

func (s *txStore) InsertRental(ctx context.Context, r *models.Rental) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.tx.Exec(ctx,
		`INSERT INTO rentals(id, user_id, battery_id, status, start_at, end_at, return_station_id, price_cents)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
		r.ID, r.UserID, r.BatteryID, r.Status, r.StartAt, r.EndAt, r.ReturnStationID, r.PriceCents)
	return err
}

func (s *txStore) RentalForUpdate(ctx context.Context, id string) (models.Rental, error) {
	var r models.Rental
	err := s.tx.QueryRow(ctx,
		`SELECT id, user_id, battery_id, status, start_at, end_at, return_station_id, price_cents
		   FROM rentals WHERE id=$1 FOR UPDATE`, id,
	).Scan(&r.ID, &r.UserID, &r.BatteryID, &r.Status, &r.StartAt, &r.EndAt, &r.ReturnStationID, &r.PriceCents)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Rental{}, rental.ErrRentalNotFound
	}
	return r, err
}

func (s *txStore) FinishRental(ctx context.Context, id string, endAt time.Time, priceCents int64, returnStationID *string) error {
	_, err := s.tx.Exec(ctx,
		`UPDATE rentals
		    SET status=$2, end_at=$3, price_cents=$4, return_station_id=$5
		  WHERE id=$1`,
		id, models.RentalReturned, endAt, priceCents, returnStationID)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
