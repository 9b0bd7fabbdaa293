package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"
	repo "github.com/voltshare/rental-backend/internal/repository"
)

type Repositories struct {
	Store     repo.Store
	Users     repo.Users
	Stations  repo.Stations
	Batteries repo.Batteries
	Rentals   repo.Rentals
	Events    repo.Events
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Store:     NewStore(pool),
		Users:     &usersRepo{pool},
		Stations:  &stationsRepo{pool},
		Batteries: &batteriesRepo{pool},
		Rentals:   &rentalsRepo{pool},
		Events:    &eventsRepo{pool},
	}
}
