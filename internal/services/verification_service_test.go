package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afrostay/hotel-booking-backend/internal/database"
	"github.com/afrostay/hotel-booking-backend/internal/models"
)

type fakeMailer struct {
	sentTo   string
	sentURL  string
	sendErr  error
	numSends int
}

func (m *fakeMailer) SendVerification(toEmail, toName, verifyURL string) error {
	m.numSends++
	m.sentTo = toEmail
	m.sentURL = verifyURL
	return m.sendErr
}

func (m *fakeMailer) GetName() string { return "fake" }

func newVerificationFixture(t *testing.T) (*VerificationService, sqlmock.Sqlmock, *fakeMailer) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := &database.PostgresDB{DB: sqlx.NewDb(db, "sqlmock")}
	mailer := &fakeMailer{}
	svc := NewVerificationService(
		database.NewVerificationTokenRepository(wrapped),
		database.NewUserRepository(wrapped),
		mailer,
		"http://localhost:8080/api/v1/auth/verify-email",
		24*time.Hour,
	)
	return svc, mock, mailer
}

var tokenTestColumns = []string{"id", "user_id", "token", "expires_at", "used_at", "created_at"}

var userTestColumns = []string{
	"id", "email", "password_hash", "first_name", "last_name", "role", "status",
	"email_verified", "created_at", "updated_at",
}

func TestSendVerification(t *testing.T) {
	svc, mock, mailer := newVerificationFixture(t)

	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO verification_tokens`).
		WithArgs(userID, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(tokenTestColumns).
			AddRow(int64(1), userID, "tok", now.Add(24*time.Hour), nil, now))

	user := &models.User{ID: userID, Email: "guest@example.com"}
	err := svc.SendVerification(user)
	require.NoError(t, err)

	assert.Equal(t, 1, mailer.numSends)
	assert.Equal(t, "guest@example.com", mailer.sentTo)
	assert.Contains(t, mailer.sentURL, "?token=")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyEmail(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, mock, _ := newVerificationFixture(t)

		userID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM verification_tokens`).
			WithArgs("tok").
			WillReturnRows(sqlmock.NewRows(tokenTestColumns).
				AddRow(int64(1), userID, "tok", now.Add(time.Hour), nil, now))
		mock.ExpectExec(`UPDATE verification_tokens SET used_at`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE users SET email_verified`).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE id`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(userTestColumns).
				AddRow(userID, "guest@example.com", "hash", nil, nil, models.RoleUser, "active", true, now, now))

		user, err := svc.VerifyEmail("tok")
		require.NoError(t, err)
		assert.True(t, user.EmailVerified)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Expired Token", func(t *testing.T) {
		svc, mock, _ := newVerificationFixture(t)

		now := time.Now()
		mock.ExpectQuery(`SELECT (.+) FROM verification_tokens`).
			WithArgs("tok").
			WillReturnRows(sqlmock.NewRows(tokenTestColumns).
				AddRow(int64(1), uuid.New(), "tok", now.Add(-time.Hour), nil, now.Add(-25*time.Hour)))

		_, err := svc.VerifyEmail("tok")
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("Already Used Token", func(t *testing.T) {
		svc, mock, _ := newVerificationFixture(t)

		now := time.Now()
		mock.ExpectQuery(`SELECT (.+) FROM verification_tokens`).
			WithArgs("tok").
			WillReturnRows(sqlmock.NewRows(tokenTestColumns).
				AddRow(int64(1), uuid.New(), "tok", now.Add(time.Hour), now.Add(-time.Minute), now))

		_, err := svc.VerifyEmail("tok")
		assert.ErrorIs(t, err, ErrTokenAlreadyUsed)
	})

	t.Run("Unknown Token", func(t *testing.T) {
		svc, mock, _ := newVerificationFixture(t)

		mock.ExpectQuery(`SELECT (.+) FROM verification_tokens`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(tokenTestColumns))

		_, err := svc.VerifyEmail("missing")
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}
