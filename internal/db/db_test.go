package db

import (
	"context"
	"reservation_system/internal/apperr"
	"reservation_system/internal/domain"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)
	return gdb, mock
}

var reservationColumns = []string{"id", "guest_name", "phone", "email", "arrival_time", "table_size", "status", "user_id", "created_at"}

func TestUserRepositoryCreate(t *testing.T) {
	gdb, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `users`")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	user := &domain.User{Username: "Test", Email: "test@example.com", Password: "hash"}
	require.NoError(t, NewUserRepository(gdb).Create(context.Background(), user))

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, domain.RoleGuest, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	gdb, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `users`")).
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'test@example.com'"})
	mock.ExpectRollback()

	err := NewUserRepository(gdb).Create(context.Background(), &domain.User{Email: "test@example.com"})

	assert.Equal(t, apperr.DuplicateEmail, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByEmailNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE email = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewUserRepository(gdb).FindByEmail(context.Background(), "nobody@example.com")

	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByID(t *testing.T) {
	gdb, mock := newMockDB(t)
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password", "role", "created_at"}).
			AddRow("u-1", "Staff", "staff@example.com", "hash", "staff", now))

	user, err := NewUserRepository(gdb).FindByID(context.Background(), "u-1")

	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, domain.RoleStaff, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepositoryListAppliesFilters(t *testing.T) {
	gdb, mock := newMockDB(t)
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	next := day.AddDate(0, 0, 1)
	status := domain.StatusRequested

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `reservations` WHERE status = ? AND created_at >= ? AND created_at < ? ORDER BY created_at asc",
	)).WillReturnRows(sqlmock.NewRows(reservationColumns).
		AddRow("r-1", "Test", "123456", "test@example.com", day.Add(19*time.Hour), 4, "requested", "u-1", day.Add(time.Hour)))

	got, err := NewReservationRepository(gdb).List(context.Background(), ReservationFilter{
		Status: &status, CreatedFrom: &day, CreatedBefore: &next,
	})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.StatusRequested, got[0].Status)
	assert.Equal(t, 4, got[0].TableSize)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepositoryListWithoutFilters(t *testing.T) {
	gdb, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `reservations` ORDER BY created_at asc")).
		WillReturnRows(sqlmock.NewRows(reservationColumns))

	got, err := NewReservationRepository(gdb).List(context.Background(), ReservationFilter{})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepositoryUpdateStatus(t *testing.T) {
	gdb, mock := newMockDB(t)
	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `reservations` WHERE id = ?")).
		WillReturnRows(sqlmock.NewRows(reservationColumns).
			AddRow("r-1", "Test", "123456", "test@example.com", now, 2, "completed", "u-1", now))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `reservations` SET `status`=?")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := NewReservationRepository(gdb).UpdateStatus(context.Background(), "r-1", domain.StatusRequested, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusRequested, res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepositoryUpdateStatusNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `reservations` WHERE id = ?")).
		WillReturnRows(sqlmock.NewRows(reservationColumns))
	mock.ExpectRollback()

	_, err := NewReservationRepository(gdb).UpdateStatus(context.Background(), "missing", domain.StatusCancelled, nil)

	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepositoryUpdateStatusVetoRollsBack(t *testing.T) {
	gdb, mock := newMockDB(t)
	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `reservations` WHERE id = ?")).
		WillReturnRows(sqlmock.NewRows(reservationColumns).
			AddRow("r-1", "Test", "123456", "test@example.com", now, 2, "completed", "u-1", now))
	mock.ExpectRollback()

	veto := apperr.New(apperr.InvalidTransition, "no")
	_, err := NewReservationRepository(gdb).UpdateStatus(context.Background(), "r-1", domain.StatusRequested,
		func(current *domain.Reservation) error {
			assert.Equal(t, domain.StatusCompleted, current.Status)
			return veto
		})

	assert.Equal(t, apperr.InvalidTransition, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
