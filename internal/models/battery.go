package models

// Battery is the rentable unit. Available doubles as the mutual-exclusion
// token for rental: it flips to false when rented and back to true on return,
// always inside the same transaction as the rental row change.
type Battery struct {
	ID          string  `json:"id"`
	Serial      string  `json:"serial"`
	StationID   *string `json:"station_id,omitempty"` // nil while in transit
	Available   bool    `json:"available"`
	ChargeLevel int     `json:"charge_level"`
}
