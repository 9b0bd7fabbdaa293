package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/voltshare/rental-backend/internal/pricing"
)

func TestPrice(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		elapsed time.Duration
		rate    int64
		want    int64
	}{
		{"under a minute bills one minute", 30 * time.Second, 10, 10},
		{"zero duration bills one minute", 0, 10, 10},
		{"partial minutes floor", 150 * time.Second, 10, 20},
		{"exact minute", time.Minute, 10, 10},
		{"just under two minutes", 119 * time.Second, 10, 10},
		{"long rental", 24 * time.Hour, 10, 14400},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pricing.Price(start, start.Add(tc.elapsed), tc.rate)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestPriceClockSkew(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	_, err := pricing.Price(start, start.Add(-time.Second), 10)
	require.ErrorIs(t, err, pricing.ErrNegativeDuration)
}
