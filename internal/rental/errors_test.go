package rental_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/voltshare/rental-backend/internal/rental"
)

func TestCodeOf(t *testing.T) {
	require.Equal(t, rental.CodeBatteryUnavailable, rental.CodeOf(rental.ErrBatteryUnavailable))
	require.Equal(t, rental.Code(""), rental.CodeOf(errors.New("plain")))
	require.Equal(t, rental.Code(""), rental.CodeOf(nil))

	wrapped := fmt.Errorf("rent: %w", rental.ErrInsufficientBalance)
	require.Equal(t, rental.CodeInsufficientBalance, rental.CodeOf(wrapped))
}

func TestStorageErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := rental.StorageError(cause)

	require.ErrorIs(t, err, rental.ErrStorage)
	require.ErrorIs(t, err, cause)
	require.Equal(t, rental.CodeStorage, rental.CodeOf(err))
	require.Contains(t, err.Error(), "connection reset")
}

func TestSentinelsMatchByCode(t *testing.T) {
	require.ErrorIs(t, rental.ErrConflict, rental.ErrConflict)
	require.NotErrorIs(t, rental.ErrConflict, rental.ErrStorage)
}
