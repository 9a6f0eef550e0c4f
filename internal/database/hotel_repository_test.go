package database

import (
	"database/sql/driver"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrostay/hotel-booking-backend/internal/models"
)

// newMockDB wraps a sqlmock connection in the sqlx-backed PostgresDB so
// repositories exercise the same Get/Select paths as production
func newMockDB(t *testing.T) (DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &PostgresDB{DB: sqlx.NewDb(db, "sqlmock")}, mock
}

var hotelTestColumns = []string{
	"id", "name", "description", "country", "city", "address", "price", "currency",
	"rating", "total_rooms", "available_rooms", "amenities", "images", "is_active",
	"created_at", "updated_at",
}

func hotelTestRow(id int64, name string, now time.Time) []driver.Value {
	return []driver.Value{
		id, name, "A fine hotel", "Kenya", "Nairobi", "1 Main St", 120.0, "KES",
		4.5, 50, 48, []byte(`["wifi"]`), []byte(`[]`), true, now, now,
	}
}

func newTestHotel() *models.Hotel {
	return &models.Hotel{
		Name:           "Savannah Lodge",
		Country:        "Kenya",
		City:           "Nairobi",
		BasePrice:      120,
		BaseCurrency:   "KES",
		Rating:         4.5,
		TotalRooms:     50,
		AvailableRooms: 50,
		Amenities:      models.StringList{"wifi"},
		Images:         models.StringList{},
	}
}

func TestHotelGetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHotelRepository(db)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT (.+) FROM hotels WHERE id = \$1 AND is_active = TRUE`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(hotelTestColumns).AddRow(hotelTestRow(7, "Savannah Lodge", now)...))

		hotel, err := repo.GetByID(7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), hotel.ID)
		assert.Equal(t, "Savannah Lodge", hotel.Name)
		assert.Equal(t, "KES", hotel.BaseCurrency)
		assert.Equal(t, []string{"wifi"}, []string(hotel.Amenities))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM hotels WHERE id = \$1 AND is_active = TRUE`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(hotelTestColumns))

		hotel, err := repo.GetByID(99)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, hotel)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestHotelListActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHotelRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM hotels WHERE is_active = TRUE`).
		WillReturnRows(sqlmock.NewRows(hotelTestColumns).
			AddRow(hotelTestRow(1, "Savannah Lodge", now)...).
			AddRow(hotelTestRow(2, "Cape Breeze", now)...))

	hotels, err := repo.ListActive()
	require.NoError(t, err)
	require.Len(t, hotels, 2)
	assert.Equal(t, "Cape Breeze", hotels[1].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHotelCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHotelRepository(db)

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`INSERT INTO hotels`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "is_active", "created_at", "updated_at"}).
				AddRow(int64(11), true, now, now))

		hotel := newTestHotel()
		err := repo.Create(hotel)
		require.NoError(t, err)
		assert.Equal(t, int64(11), hotel.ID)
		assert.True(t, hotel.IsActive)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO hotels`).
			WillReturnError(fmt.Errorf("database error"))

		err := repo.Create(newTestHotel())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create hotel")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestHotelReserveRoom(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHotelRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE hotels`).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.ReserveRoom(3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Rooms Available", func(t *testing.T) {
		// The available_rooms guard matches no rows when the hotel is full
		mock.ExpectExec(`UPDATE hotels`).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.ReserveRoom(3), ErrNoRoomsAvailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestHotelSoftDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHotelRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE hotels SET is_active = FALSE`).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SoftDelete(5))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE hotels SET is_active = FALSE`).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SoftDelete(5), ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestHotelStats(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewHotelRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS total_hotels`).
		WillReturnRows(sqlmock.NewRows([]string{"total_hotels", "total_rooms", "available_rooms", "average_rating"}).
			AddRow(12, 600, 420, 4.2))

	stats, err := repo.Stats()
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalHotels)
	assert.Equal(t, 420, stats.AvailableRooms)
	assert.Equal(t, 4.2, stats.AverageRating)

	assert.NoError(t, mock.ExpectationsWereMet())
}
