package services

import (
	"context"

	"github.com/voltshare/rental-backend/internal/models"
	repo "github.com/voltshare/rental-backend/internal/repository"
)

// StationAvailability is a station with its available-battery count, the
// shape the station listing pages consume.
type StationAvailability struct {
	models.Station
	AvailableCount int `json:"available_count"`
}

// QueryService is the read-only facade over committed state. No invariants
// to enforce here; everything goes through plain pool queries.
type QueryService struct {
	stations  repo.Stations
	batteries repo.Batteries
	rentals   repo.Rentals
}

func NewQueryService(stations repo.Stations, batteries repo.Batteries, rentals repo.Rentals) *QueryService {
	return &QueryService{stations: stations, batteries: batteries, rentals: rentals}
}

func (s *QueryService) AvailableCount(ctx context.Context, stationID string) (int, error) {
	if _, err := s.stations.Get(ctx, stationID); err != nil {
		return 0, err
	}
	return s.batteries.AvailableCount(ctx, stationID)
}

func (s *QueryService) Stations(ctx context.Context) ([]StationAvailability, error) {
	stations, err := s.stations.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]StationAvailability, 0, len(stations))
	for _, st := range stations {
		n, err := s.batteries.AvailableCount(ctx, st.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, StationAvailability{Station: st, AvailableCount: n})
	}
	return out, nil
}

func (s *QueryService) BatteriesAt(ctx context.Context, stationID string) ([]models.Battery, error) {
	if _, err := s.stations.Get(ctx, stationID); err != nil {
		return nil, err
	}
	return s.batteries.ListAvailableByStation(ctx, stationID)
}

func (s *QueryService) HistoryForUser(ctx context.Context, userID string) ([]repo.HistoryEntry, error) {
	return s.rentals.HistoryForUser(ctx, userID)
}
