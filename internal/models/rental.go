package models

import "time"

type RentalStatus string

const (
	RentalOngoing  RentalStatus = "ongoing"
	RentalReturned RentalStatus = "returned"
	RentalCharged  RentalStatus = "charged"
)

// LedgerKind classifies a rental row as seen by the balance ledger.
type LedgerKind string

const (
	LedgerFee    LedgerKind = "fee"
	LedgerCredit LedgerKind = "credit"
)

// Rental is both a physical rental record and, when Status is RentalCharged,
// a balance top-up event (BatteryID nil, PriceCents negative). The stored
// sign convention is kept for history compatibility; Kind exposes it
// explicitly so callers never branch on the sign.
type Rental struct {
	ID              string       `json:"id"`
	UserID          string       `json:"user_id"`
	BatteryID       *string      `json:"battery_id,omitempty"`
	Status          RentalStatus `json:"status"`
	StartAt         time.Time    `json:"start_at"`
	EndAt           *time.Time   `json:"end_at,omitempty"`
	ReturnStationID *string      `json:"return_station_id,omitempty"`
	PriceCents      *int64       `json:"price_cents,omitempty"`
}

func (r *Rental) Kind() LedgerKind {
	if r.Status == RentalCharged {
		return LedgerCredit
	}
	return LedgerFee
}

// Amount reports the unsigned magnitude of the settled price, 0 while ongoing.
func (r *Rental) Amount() int64 {
	if r.PriceCents == nil {
		return 0
	}
	if *r.PriceCents < 0 {
		return -*r.PriceCents
	}
	return *r.PriceCents
}
