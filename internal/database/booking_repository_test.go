package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrostay/hotel-booking-backend/internal/models"
)

var bookingTestColumns = []string{
	"id", "user_id", "hotel_id", "check_in", "check_out", "nights",
	"currency", "subtotal", "tax", "total_price", "status",
	"created_at", "updated_at", "hotel_name", "hotel_city",
}

func TestBookingCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	userID := uuid.New()
	checkIn := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(72 * time.Hour)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`INSERT INTO bookings`).
			WithArgs(userID, int64(7), checkIn, checkOut, 3, "KES", 300.0, 30.0, 330.0, models.BookingStatusPending).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(int64(42), now, now))

		booking := &models.Booking{
			UserID:     userID,
			HotelID:    7,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Nights:     3,
			Currency:   "KES",
			Subtotal:   300,
			Tax:        30,
			TotalPrice: 330,
		}

		err := repo.Create(booking)
		require.NoError(t, err)
		assert.Equal(t, int64(42), booking.ID)
		assert.Equal(t, models.BookingStatusPending, booking.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnError(fmt.Errorf("database error"))

		err := repo.Create(&models.Booking{UserID: userID, HotelID: 7, CheckIn: checkIn, CheckOut: checkOut})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create booking")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New()
		now := time.Now()
		mock.ExpectQuery(`SELECT (.+) FROM bookings b`).
			WithArgs(int64(42)).
			WillReturnRows(sqlmock.NewRows(bookingTestColumns).AddRow(
				int64(42), userID, int64(7), now, now.Add(72*time.Hour), 3,
				"KES", 300.0, 30.0, 330.0, models.BookingStatusConfirmed,
				now, now, "Savannah Lodge", "Nairobi",
			))

		booking, err := repo.GetByID(42)
		require.NoError(t, err)
		assert.Equal(t, userID, booking.UserID)
		assert.Equal(t, "Savannah Lodge", booking.HotelName.String)
		assert.Equal(t, models.BookingStatusConfirmed, booking.Status)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM bookings b`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(bookingTestColumns))

		booking, err := repo.GetByID(99)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, booking)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	userID := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM bookings b`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(bookingTestColumns).
			AddRow(int64(2), userID, int64(7), now, now.Add(24*time.Hour), 1,
				"KES", 100.0, 10.0, 110.0, models.BookingStatusPending, now, now, "Savannah Lodge", "Nairobi").
			AddRow(int64(1), userID, int64(8), now, now.Add(48*time.Hour), 2,
				"ZAR", 200.0, 20.0, 220.0, models.BookingStatusCancelled, now, now, "Cape Breeze", "Cape Town"))

	bookings, err := repo.ListByUser(userID)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, "Cape Town", bookings[1].HotelCity.String)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingUpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings SET status`).
			WithArgs(models.BookingStatusCancelled, int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(42, models.BookingStatusCancelled))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings SET status`).
			WithArgs(models.BookingStatusCancelled, int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateStatus(99, models.BookingStatusCancelled), ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
