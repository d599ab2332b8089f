// This file implements BookingService: CRUD and status transitions for
// bookings, always scoped to the authenticated caller. Reads used for
// ownership checks and the mutations that follow are separate statements;
// concurrent requests against the same booking are last-writer-wins.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/imorozov/carbook/internal/common"
	"github.com/imorozov/carbook/internal/server/config"
	"github.com/imorozov/carbook/internal/server/models"
	"github.com/imorozov/carbook/internal/server/repositories/repomanager"
)

// Booking field bounds. Both ends inclusive.
const (
	MinDays       = 1
	MaxDays       = 364
	MinRentPerDay = 1
	MaxRentPerDay = 2000
)

// BookingService provides booking CRUD operations scoped to an owner.
type BookingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewBookingService constructs a BookingService using repositories and server config.
func NewBookingService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *BookingService {
	return &BookingService{db: db, repomanager: m}
}

// Create validates the booking fields and inserts a new booking owned by
// userID. Status is always forced to booked.
func (s *BookingService) Create(ctx context.Context, userID string, carName string, days int, rentPerDay int) (*models.Booking, error) {
	if err := validateBookingFields(carName, days, rentPerDay); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:         uuid.NewString(),
		UserID:     userID,
		CarName:    carName,
		Days:       days,
		RentPerDay: rentPerDay,
		Status:     models.StatusBooked,
	}

	repo := s.repomanager.Bookings(s.db)
	b, err := repo.Create(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("error creating booking: %w", err)
	}
	return b, nil
}

// Get returns a single booking by id, scoped to userID in the lookup itself.
// A booking that exists but belongs to someone else is reported as
// common.ErrorNotFound.
func (s *BookingService) Get(ctx context.Context, userID string, bookingID string) (*models.Booking, error) {
	repo := s.repomanager.Bookings(s.db)
	return repo.GetByIDAndOwner(ctx, bookingID, userID)
}

// List returns all of userID's bookings, every status included.
func (s *BookingService) List(ctx context.Context, userID string) ([]*models.Booking, error) {
	repo := s.repomanager.Bookings(s.db)
	return repo.ListByOwner(ctx, userID)
}

// Summary aggregates userID's booked and completed bookings into a count and
// a cost sum; cancelled bookings are excluded.
func (s *BookingService) Summary(ctx context.Context, userID string) (*models.BookingSummary, error) {
	repo := s.repomanager.Bookings(s.db)
	return repo.SummaryByOwner(ctx, userID)
}

// UpdateStatus transitions the booking to the given status, leaving every
// other field untouched.
func (s *BookingService) UpdateStatus(ctx context.Context, userID string, bookingID string, status models.BookingStatus) (*models.Booking, error) {
	if !models.ValidBookingStatus(status) {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Bookings(s.db)
	booking, err := s.fetchOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	if err := repo.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}

	booking.Status = status
	return booking, nil
}

// UpdateFields replaces carName, days and rentPerDay together, applying the
// same validation as Create. Status is untouched.
func (s *BookingService) UpdateFields(ctx context.Context, userID string, bookingID string, carName string, days int, rentPerDay int) (*models.Booking, error) {
	if err := validateBookingFields(carName, days, rentPerDay); err != nil {
		return nil, err
	}

	repo := s.repomanager.Bookings(s.db)
	booking, err := s.fetchOwned(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}

	if err := repo.UpdateFields(ctx, bookingID, carName, days, rentPerDay); err != nil {
		return nil, err
	}

	booking.CarName = carName
	booking.Days = days
	booking.RentPerDay = rentPerDay
	return booking, nil
}

// Delete removes the booking unconditionally once ownership is verified.
// Repeating a delete yields common.ErrorNotFound.
func (s *BookingService) Delete(ctx context.Context, userID string, bookingID string) error {
	repo := s.repomanager.Bookings(s.db)
	if _, err := s.fetchOwned(ctx, userID, bookingID); err != nil {
		return err
	}
	return repo.Delete(ctx, bookingID)
}

// fetchOwned loads the booking by id alone, then verifies ownership, so that
// a foreign booking is a Forbidden rather than a NotFound.
func (s *BookingService) fetchOwned(ctx context.Context, userID string, bookingID string) (*models.Booking, error) {
	repo := s.repomanager.Bookings(s.db)
	booking, err := repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	if booking.UserID != userID {
		return nil, common.ErrorForbidden
	}
	return booking, nil
}

func validateBookingFields(carName string, days int, rentPerDay int) error {
	if carName == "" {
		return common.ErrorValidation
	}
	if days < MinDays || days > MaxDays {
		return common.ErrorValidation
	}
	if rentPerDay < MinRentPerDay || rentPerDay > MaxRentPerDay {
		return common.ErrorValidation
	}
	return nil
}
