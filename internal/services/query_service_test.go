package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/voltshare/rental-backend/internal/models"
	repo "github.com/voltshare/rental-backend/internal/repository"
)

type stationsFake struct {
	listFn func(ctx context.Context) ([]models.Station, error)
	getFn  func(ctx context.Context, id string) (models.Station, error)
}

func (f *stationsFake) List(ctx context.Context) ([]models.Station, error) { return f.listFn(ctx) }
func (f *stationsFake) Get(ctx context.Context, id string) (models.Station, error) {
	return f.getFn(ctx, id)
}

type batteriesFake struct {
	countFn func(ctx context.Context, stationID string) (int, error)
	listFn  func(ctx context.Context, stationID string) ([]models.Battery, error)
}

func (f *batteriesFake) AvailableCount(ctx context.Context, stationID string) (int, error) {
	return f.countFn(ctx, stationID)
}
func (f *batteriesFake) ListAvailableByStation(ctx context.Context, stationID string) ([]models.Battery, error) {
	return f.listFn(ctx, stationID)
}

type rentalsFake struct {
	historyFn func(ctx context.Context, userID string) ([]repo.HistoryEntry, error)
}

func (f *rentalsFake) HistoryForUser(ctx context.Context, userID string) ([]repo.HistoryEntry, error) {
	return f.historyFn(ctx, userID)
}

func TestAvailableCount(t *testing.T) {
	stations := &stationsFake{
		getFn: func(ctx context.Context, id string) (models.Station, error) {
			if id != "st-1" {
				return models.Station{}, repo.ErrStationNotFound
			}
			return models.Station{ID: id, Name: "Central"}, nil
		},
	}
	batteries := &batteriesFake{
		countFn: func(ctx context.Context, stationID string) (int, error) { return 3, nil },
	}
	svc := NewQueryService(stations, batteries, &rentalsFake{})

	n, err := svc.AvailableCount(context.Background(), "st-1")
	require.NoError(t, err)
	require.Equal(t, 3, n)

	_, err = svc.AvailableCount(context.Background(), "st-2")
	require.ErrorIs(t, err, repo.ErrStationNotFound)
}

func TestStationsWithAvailability(t *testing.T) {
	counts := map[string]int{"st-1": 2, "st-2": 0}
	stations := &stationsFake{
		listFn: func(ctx context.Context) ([]models.Station, error) {
			return []models.Station{{ID: "st-1", Name: "Central"}, {ID: "st-2", Name: "Mall"}}, nil
		},
	}
	batteries := &batteriesFake{
		countFn: func(ctx context.Context, stationID string) (int, error) { return counts[stationID], nil },
	}
	svc := NewQueryService(stations, batteries, &rentalsFake{})

	out, err := svc.Stations(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, 2, out[0].AvailableCount)
	require.Equal(t, 0, out[1].AvailableCount)
}

// History rows must tolerate left-join nulls: a charged row has no battery,
// and a battery deleted since the rental leaves serial and station nil.
func TestHistoryForUser(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	serial := "BAT-0001"
	station := "Central"
	price := int64(20)
	credit := int64(-500)

	entries := []repo.HistoryEntry{
		{
			Rental:        models.Rental{ID: "r-3", Status: models.RentalOngoing, StartAt: now.Add(2 * time.Hour)},
			BatterySerial: nil, StationName: nil, // battery deleted since
		},
		{
			Rental:        models.Rental{ID: "r-2", Status: models.RentalReturned, StartAt: now.Add(time.Hour), PriceCents: &price},
			BatterySerial: &serial, StationName: &station,
		},
		{
			Rental: models.Rental{ID: "r-1", Status: models.RentalCharged, StartAt: now, PriceCents: &credit},
		},
	}
	rentals := &rentalsFake{
		historyFn: func(ctx context.Context, userID string) ([]repo.HistoryEntry, error) {
			require.Equal(t, "u-1", userID)
			return entries, nil
		},
	}
	svc := NewQueryService(&stationsFake{}, &batteriesFake{}, rentals)

	out, err := svc.HistoryForUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, out, 3)

	// newest first, nil enrichment preserved
	require.Equal(t, "r-3", out[0].ID)
	require.Nil(t, out[0].BatterySerial)
	require.Equal(t, "BAT-0001", *out[1].BatterySerial)
	require.Equal(t, models.LedgerCredit, out[2].Kind())
	require.Equal(t, int64(500), out[2].Amount())
}
