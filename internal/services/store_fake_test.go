package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/voltshare/rental-backend/internal/models"
	"github.com/voltshare/rental-backend/internal/rental"
	repo "github.com/voltshare/rental-backend/internal/repository"
)

// memStore is an in-memory stand-in for the postgres store. One mutex
// serializes whole transactions, which is the strictest reading of the
// row-locking contract; a snapshot taken at begin gives rollback-on-error.
type memStore struct {
	mu        sync.Mutex
	users     map[string]*models.User
	batteries map[string]*models.Battery
	rentals   map[string]*models.Rental
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[string]*models.User{},
		batteries: map[string]*models.Battery{},
		rentals:   map[string]*models.Rental{},
	}
}

func (s *memStore) addUser(balance int64) string {
	id := uuid.NewString()
	s.users[id] = &models.User{ID: id, Email: id + "@example.com", BalanceCents: balance, CreatedAt: time.Now()}
	return id
}

func (s *memStore) addBattery(available bool) string {
	id := uuid.NewString()
	s.batteries[id] = &models.Battery{ID: id, Serial: "BAT-" + id[:8], Available: available, ChargeLevel: 100}
	return id
}

func (s *memStore) snapshot() (map[string]*models.User, map[string]*models.Battery, map[string]*models.Rental) {
	us := make(map[string]*models.User, len(s.users))
	for k, v := range s.users {
		c := *v
		us[k] = &c
	}
	bs := make(map[string]*models.Battery, len(s.batteries))
	for k, v := range s.batteries {
		c := *v
		bs[k] = &c
	}
	rs := make(map[string]*models.Rental, len(s.rentals))
	for k, v := range s.rentals {
		c := *v
		rs[k] = &c
	}
	return us, bs, rs
}

func (s *memStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx repo.TxStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	us, bs, rs := s.snapshot()
	if err := fn(ctx, &memTx{s: s}); err != nil {
		s.users, s.batteries, s.rentals = us, bs, rs
		if rental.CodeOf(err) != "" {
			return err
		}
		return rental.StorageError(err)
	}
	return nil
}

type memTx struct{ s *memStore }

func (t *memTx) InsertUser(ctx context.Context, u *models.User) error {
	for _, ex := range t.s.users {
		if ex.Email == u.Email {
			return repo.ErrDuplicateEmail
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now().UTC()
	c := *u
	t.s.users[u.ID] = &c
	return nil
}

func (t *memTx) UserForUpdate(ctx context.Context, id string) (models.User, error) {
	u, ok := t.s.users[id]
	if !ok {
		return models.User{}, rental.ErrUserNotFound
	}
	return *u, nil
}

func (t *memTx) AddToBalance(ctx context.Context, userID string, delta int64) (int64, error) {
	u, ok := t.s.users[userID]
	if !ok {
		return 0, rental.ErrUserNotFound
	}
	u.BalanceCents += delta
	return u.BalanceCents, nil
}

func (t *memTx) BatteryForUpdate(ctx context.Context, id string) (models.Battery, error) {
	b, ok := t.s.batteries[id]
	if !ok {
		return models.Battery{}, rental.ErrBatteryNotFound
	}
	return *b, nil
}

func (t *memTx) MarkBatteryRented(ctx context.Context, id string) (bool, error) {
	b, ok := t.s.batteries[id]
	if !ok || !b.Available {
		return false, nil
	}
	b.Available = false
	return true, nil
}

func (t *memTx) MarkBatteryReturned(ctx context.Context, id string, stationID *string) error {
	b, ok := t.s.batteries[id]
	if !ok {
		return rental.ErrBatteryNotFound
	}
	b.Available = true
	if stationID != nil {
		b.StationID = stationID
	}
	return nil
}

func (t *memTx) InsertRental(ctx context.Context, r *models.Rental) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	c := *r
	t.s.rentals[r.ID] = &c
	return nil
}

func (t *memTx) RentalForUpdate(ctx context.Context, id string) (models.Rental, error) {
	r, ok := t.s.rentals[id]
	if !ok {
		return models.Rental{}, rental.ErrRentalNotFound
	}
	return *r, nil
}

func (t *memTx) FinishRental(ctx context.Context, id string, endAt time.Time, priceCents int64, returnStationID *string) error {
	r, ok := t.s.rentals[id]
	if !ok {
		return rental.ErrRentalNotFound
	}
	r.Status = models.RentalReturned
	r.EndAt = &endAt
	r.PriceCents = &priceCents
	r.ReturnStationID = returnStationID
	return nil
}

// memEvents records audit inserts; safe for the worker pool goroutines.
type memEvents struct {
	mu     sync.Mutex
	events []models.RentalEvent
}

func (e *memEvents) Insert(ctx context.Context, ev models.RentalEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
	return nil
}
