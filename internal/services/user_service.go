package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/voltshare/rental-backend/internal/auth"
	"github.com/voltshare/rental-backend/internal/models"
	"github.com/voltshare/rental-backend/internal/rental"
	repo "github.com/voltshare/rental-backend/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

type TokenPair struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    time.Duration `json:"expires_in"`
}

type UserService struct {
	store          repo.Store
	users          repo.Users
	tm             *auth.TokenManager
	initialBalance int64
}

func NewUserService(store repo.Store, users repo.Users, tm *auth.TokenManager, initialBalanceCents int64) *UserService {
	return &UserService{store: store, users: users, tm: tm, initialBalance: initialBalanceCents}
}

// Register creates the user with the signup bonus and, when the bonus is
// positive, the matching charged ledger row, in one transaction so the
// balance and the ledger never diverge.
func (s *UserService) Register(ctx context.Context, email, password string) (models.User, error) {
	u := models.User{Email: strings.TrimSpace(strings.ToLower(email)), BalanceCents: s.initialBalance}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	if len(password) < 8 {
		return models.User{}, ErrWeakPassword
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = hash

	err = s.store.WithTx(ctx, func(ctx context.Context, tx repo.TxStore) error {
		if err := tx.InsertUser(ctx, &u); err != nil {
			return err
		}
		if s.initialBalance > 0 {
			credit := -s.initialBalance
			return tx.InsertRental(ctx, &models.Rental{
				UserID:     u.ID,
				Status:     models.RentalCharged,
				StartAt:    u.CreatedAt,
				PriceCents: &credit,
			})
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}
	slog.Info("user registered", "user_id", u.ID, "initial_balance_cents", s.initialBalance)
	return u, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, rental.ErrUserNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	access, refresh, exp, err := s.tm.GeneratePair(u.ID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    time.Until(exp).Truncate(time.Second),
	}, nil
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, isRefresh, err := s.tm.ParseAny(refreshToken)
	if err != nil || !isRefresh {
		return TokenPair{}, ErrInvalidCredentials
	}
	// the user may have been deleted since the token was issued
	if _, err := s.users.GetByID(ctx, claims.UserID); err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	access, refresh, exp, err := s.tm.GeneratePair(claims.UserID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    time.Until(exp).Truncate(time.Second),
	}, nil
}

func (s *UserService) Me(ctx context.Context, userID string) (models.User, error) {
	return s.users.GetByID(ctx, userID)
}
