package bookings

import (
	"context"

	"github.com/imorozov/carbook/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByIDAndOwner(ctx context.Context, id string, userID string) (*models.Booking, error)
	ListByOwner(ctx context.Context, userID string) ([]*models.Booking, error)
	SummaryByOwner(ctx context.Context, userID string) (*models.BookingSummary, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
	UpdateFields(ctx context.Context, id string, carName string, days int, rentPerDay int) error
	Delete(ctx context.Context, id string) error
}
