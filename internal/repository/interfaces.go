package repository

import (
	"context"
	"errors"
	"time"

	"github.com/voltshare/rental-backend/internal/models"
)

// ErrDuplicateEmail is returned by InsertUser when the email is taken.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrStationNotFound is returned by Stations.Get for an unknown station.
var ErrStationNotFound = errors.New("station not found")

// Store runs a function inside one database transaction. The function's
// error aborts with a full rollback; nothing it did is observable. Commit-time
// serialization conflicts are retried a bounded number of times, domain
// errors never are.
type Store interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, tx TxStore) error) error
}

// TxStore is the row-level contract available inside a transaction. Every
// ForUpdate method takes an exclusive lock on the row before returning it;
// MarkBatteryRented is a compare-and-set that reports whether this caller
// won the availability token. Missing rows surface as the domain not-found
// errors so callers can branch without knowing the driver.
type TxStore interface {
	InsertUser(ctx context.Context, u *models.User) error
	UserForUpdate(ctx context.Context, id string) (models.User, error)
	AddToBalance(ctx context.Context, userID string, delta int64) (int64, error)

	BatteryForUpdate(ctx context.Context, id string) (models.Battery, error)
	MarkBatteryRented(ctx context.Context, id string) (bool, error)
	MarkBatteryReturned(ctx context.Context, id string, stationID *string) error

	InsertRental(ctx context.Context, r *models.Rental) error
	RentalForUpdate(ctx context.Context, id string) (models.Rental, error)
	FinishRental(ctx context.Context, id string, endAt time.Time, priceCents int64, returnStationID *string) error
}

type Users interface {
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

type Stations interface {
	List(ctx context.Context) ([]models.Station, error)
	Get(ctx context.Context, id string) (models.Station, error)
}

type Batteries interface {
	AvailableCount(ctx context.Context, stationID string) (int, error)
	ListAvailableByStation(ctx context.Context, stationID string) ([]models.Battery, error)
}

// HistoryEntry is a rental enriched with battery and station metadata.
// Both enrichments are left-join nullable: a deleted battery or an
// unassigned station must not suppress the row.
type HistoryEntry struct {
	models.Rental
	BatterySerial *string `json:"battery_serial"`
	StationName   *string `json:"station_name"`
}

type Rentals interface {
	HistoryForUser(ctx context.Context, userID string) ([]HistoryEntry, error)
}

type Events interface {
	Insert(ctx context.Context, e models.RentalEvent) error
}
