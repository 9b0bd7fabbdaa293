package services

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/voltshare/rental-backend/internal/metrics"
	"github.com/voltshare/rental-backend/internal/models"
	"github.com/voltshare/rental-backend/internal/pricing"
	"github.com/voltshare/rental-backend/internal/rental"
	repo "github.com/voltshare/rental-backend/internal/repository"
	"github.com/voltshare/rental-backend/internal/worker"
)

// Settlement is the result of a successful Return.
type Settlement struct {
	RentalID     string    `json:"rental_id"`
	PriceCents   int64     `json:"price_cents"`
	BalanceCents int64     `json:"balance_cents"`
	EndAt        time.Time `json:"end_at"`
}

// RentalService is the rental state machine. Every mutating operation runs
// in a single transaction and locks every row it will change before
// validating, so concurrent calls against the same battery or balance are
// serialized and the loser fails cleanly.
type RentalService struct {
	store   repo.Store
	events  repo.Events
	wp      *worker.Pool
	rate    int64 // price per minute, cents
	deposit int64 // minimum balance to start a rental, not withdrawn
	now     func() time.Time
}

func NewRentalService(store repo.Store, events repo.Events, wp *worker.Pool, ratePerMinuteCents, depositCents int64) *RentalService {
	return &RentalService{
		store:   store,
		events:  events,
		wp:      wp,
		rate:    ratePerMinuteCents,
		deposit: depositCents,
		now:     time.Now,
	}
}

// Rent acquires the battery for the user. The battery row is locked first;
// the availability flip is a compare-and-set, so of two concurrent calls
// exactly one wins and the other observes available=false.
func (s *RentalService) Rent(ctx context.Context, userID, batteryID string) (string, error) {
	var rentalID string
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repo.TxStore) error {
		b, err := tx.BatteryForUpdate(ctx, batteryID)
		if err != nil {
			return err
		}
		if !b.Available {
			return rental.ErrBatteryUnavailable
		}
		u, err := tx.UserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if u.BalanceCents < s.deposit {
			return rental.ErrInsufficientBalance
		}
		won, err := tx.MarkBatteryRented(ctx, batteryID)
		if err != nil {
			return err
		}
		if !won {
			return rental.ErrBatteryUnavailable
		}
		r := &models.Rental{
			UserID:    userID,
			BatteryID: &batteryID,
			Status:    models.RentalOngoing,
			StartAt:   s.now().UTC(),
		}
		if err := tx.InsertRental(ctx, r); err != nil {
			return err
		}
		rentalID = r.ID
		return nil
	})
	if err != nil {
		s.observe("rent", err)
		return "", err
	}
	metrics.RentalOps.WithLabelValues("rent", "ok").Inc()
	slog.Info("battery rented", "user_id", userID, "battery_id", batteryID, "rental_id", rentalID)
	s.audit(rentalID, userID, "rented", "battery "+batteryID)
	return rentalID, nil
}

// Return settles an ongoing rental. When the balance does not cover the fee
// the transaction aborts: the rental stays ongoing and the battery stays
// out, so the balance never goes negative.
func (s *RentalService) Return(ctx context.Context, userID, rentalID string, returnStationID *string) (Settlement, error) {
	var out Settlement
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repo.TxStore) error {
		r, err := tx.RentalForUpdate(ctx, rentalID)
		if err != nil {
			return err
		}
		if r.UserID != userID || r.Status != models.RentalOngoing || r.BatteryID == nil {
			return rental.ErrRentalNotOngoing
		}
		if _, err := tx.BatteryForUpdate(ctx, *r.BatteryID); err != nil {
			return err
		}
		u, err := tx.UserForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		endAt := s.now().UTC()
		price, err := pricing.Price(r.StartAt, endAt, s.rate)
		if err != nil {
			// clock skew: start is in the future, treat as server fault
			return rental.StorageError(err)
		}
		if u.BalanceCents < price {
			return rental.ErrInsufficientBalance
		}

		balance, err := tx.AddToBalance(ctx, userID, -price)
		if err != nil {
			return err
		}
		if err := tx.FinishRental(ctx, rentalID, endAt, price, returnStationID); err != nil {
			return err
		}
		if err := tx.MarkBatteryReturned(ctx, *r.BatteryID, returnStationID); err != nil {
			return err
		}
		out = Settlement{RentalID: rentalID, PriceCents: price, BalanceCents: balance, EndAt: endAt}
		return nil
	})
	if err != nil {
		s.observe("return", err)
		return Settlement{}, err
	}
	metrics.RentalOps.WithLabelValues("return", "ok").Inc()
	slog.Info("battery returned", "user_id", userID, "rental_id", rentalID, "price_cents", out.PriceCents)
	s.audit(rentalID, userID, "returned", "fee "+strconv.FormatInt(out.PriceCents, 10))
	return out, nil
}

// Charge credits the balance and records the top-up as a charged ledger row
// with a negative price, keeping history and balance in one aggregate.
func (s *RentalService) Charge(ctx context.Context, userID string, amountCents int64) (int64, error) {
	if amountCents <= 0 {
		metrics.RentalOps.WithLabelValues("charge", "rejected").Inc()
		return 0, rental.ErrInvalidAmount
	}
	var (
		balance  int64
		rentalID string
	)
	err := s.store.WithTx(ctx, func(ctx context.Context, tx repo.TxStore) error {
		if _, err := tx.UserForUpdate(ctx, userID); err != nil {
			return err
		}
		var err error
		balance, err = tx.AddToBalance(ctx, userID, amountCents)
		if err != nil {
			return err
		}
		credit := -amountCents
		r := &models.Rental{
			UserID:     userID,
			Status:     models.RentalCharged,
			StartAt:    s.now().UTC(),
			PriceCents: &credit,
		}
		if err := tx.InsertRental(ctx, r); err != nil {
			return err
		}
		rentalID = r.ID
		return nil
	})
	if err != nil {
		s.observe("charge", err)
		return 0, err
	}
	metrics.RentalOps.WithLabelValues("charge", "ok").Inc()
	slog.Info("balance charged", "user_id", userID, "amount_cents", amountCents, "balance_cents", balance)
	s.audit(rentalID, userID, "charged", "amount "+strconv.FormatInt(amountCents, 10))
	return balance, nil
}

func (s *RentalService) observe(op string, err error) {
	switch rental.CodeOf(err) {
	case rental.CodeStorage, rental.CodeConflict:
		metrics.RentalOps.WithLabelValues(op, "error").Inc()
		slog.Error(op+" failed", "err", err)
	default:
		if op == "rent" && rental.CodeOf(err) == rental.CodeBatteryUnavailable {
			metrics.RentConflicts.Inc()
		}
		metrics.RentalOps.WithLabelValues(op, "rejected").Inc()
	}
}

func (s *RentalService) audit(rentalID, userID, action, detail string) {
	var rid *string
	if rentalID != "" {
		rid = &rentalID
	}
	e := models.RentalEvent{RentalID: rid, UserID: userID, Action: action, Detail: detail}
	s.wp.Submit(func() {
		if err := s.events.Insert(context.Background(), e); err != nil {
			slog.Error("audit event insert", "err", err)
		}
	})
}
