package models

import (
	"errors"
	"strings"
	"time"
)

// User carries the materialized prepaid balance in integer cents. The balance
// is only ever mutated together with a rental ledger row, in one transaction.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	BalanceCents int64     `json:"balance_cents"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) Validate() error {
	if !strings.Contains(u.Email, "@") {
		return errors.New("invalid email")
	}
	return nil
}
