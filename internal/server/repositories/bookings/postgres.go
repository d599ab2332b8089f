// Package bookings provides the PostgreSQL-backed booking store and the
// per-owner aggregate queries used by summary mode.
package bookings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/imorozov/carbook/internal/common"
	"github.com/imorozov/carbook/internal/dbx"
	"github.com/imorozov/carbook/internal/server/models"
)

// PostgresRepository implements booking storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new booking row and fills in the DB-assigned timestamp.
func (r *PostgresRepository) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {

	query :=
		`INSERT INTO bookings (id, user_id, car_name, days, rent_per_day, status)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		booking.ID, booking.UserID, booking.CarName, booking.Days, booking.RentPerDay, string(booking.Status)).
		Scan(&booking.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return booking, nil
}

// GetByID returns the booking with the given id regardless of owner, or
// common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	query :=
		`SELECT id, user_id, car_name, days, rent_per_day, status, created_at FROM bookings
		 WHERE id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByIDAndOwner returns the booking only if it belongs to userID. The
// ownership is part of the lookup itself, so a foreign booking is
// indistinguishable from a missing one.
func (r *PostgresRepository) GetByIDAndOwner(ctx context.Context, id string, userID string) (*models.Booking, error) {
	query :=
		`SELECT id, user_id, car_name, days, rent_per_day, status, created_at FROM bookings
		 WHERE id = $1 AND user_id = $2
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id, userID))
}

// ListByOwner returns all of userID's bookings, every status included.
func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]*models.Booking, error) {
	query :=
		`SELECT id, user_id, car_name, days, rent_per_day, status, created_at FROM bookings
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Booking
	for rows.Next() {
		var item models.Booking
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.CarName, &item.Days, &item.RentPerDay,
			&item.Status, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SummaryByOwner aggregates userID's booked and completed bookings into a
// count and a cost sum. Cancelled bookings are excluded.
func (r *PostgresRepository) SummaryByOwner(ctx context.Context, userID string) (*models.BookingSummary, error) {
	query :=
		`SELECT COUNT(*), COALESCE(SUM(days * rent_per_day), 0) FROM bookings
		 WHERE user_id = $1 AND status IN ('booked', 'completed')
		 `

	summary := &models.BookingSummary{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&summary.TotalBookings, &summary.TotalCost)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return summary, nil
}

// UpdateStatus sets only the status column. A missing row is reported as
// common.ErrorNotFound.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	query :=
		`UPDATE bookings SET status = $1
		 WHERE id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return checkAffected(res)
}

// UpdateFields replaces car_name, days and rent_per_day together, leaving
// status untouched. A missing row is reported as common.ErrorNotFound.
func (r *PostgresRepository) UpdateFields(ctx context.Context, id string, carName string, days int, rentPerDay int) error {
	query :=
		`UPDATE bookings SET car_name = $1, days = $2, rent_per_day = $3
		 WHERE id = $4
		 `

	res, err := r.db.ExecContext(ctx, query, carName, days, rentPerDay, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return checkAffected(res)
}

// Delete removes the row unconditionally. A missing row is reported as
// common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query :=
		`DELETE FROM bookings
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return checkAffected(res)
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Booking, error) {
	booking := &models.Booking{}
	err := row.Scan(
		&booking.ID, &booking.UserID, &booking.CarName, &booking.Days,
		&booking.RentPerDay, &booking.Status, &booking.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return booking, nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
