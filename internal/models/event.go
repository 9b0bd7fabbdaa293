package models

import "time"

// RentalEvent is an append-only audit row written after commit by the worker
// pool. It never participates in settlement.
type RentalEvent struct {
	ID        string    `json:"id"`
	RentalID  *string   `json:"rental_id,omitempty"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"` // rented|returned|charged|registered
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
