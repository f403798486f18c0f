package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rentalog/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func mockRentalRow() *sqlmock.Rows {
	checkin := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows([]string{
		"id", "nama", "nik", "tower", "lantai", "unit", "jenis_sewa",
		"metode_pembayaran", "metode_lain", "tanggal_checkin", "waktu_checkin",
		"tanggal_checkout", "waktu_checkout", "lama_menginap", "komentar", "email_agent",
	}).AddRow(
		7, "Tenant", nil, "A", "10", "01", "Harian",
		"Cash", "", checkin, "14:00:00",
		checkin.AddDate(0, 0, 3), nil, 3, "[]", "agent@example.com",
	)
}

func TestApplyRentalUpdate_PostgresRollback(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewChangeLogService(db, nil)
	actor := &models.Actor{UserID: 1, Email: "pkj@example.com", Role: models.RolePKJ}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "rentals" WHERE .* FOR UPDATE`).WillReturnRows(mockRentalRow())
	mock.ExpectExec(`UPDATE "rentals" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "rental_logs"`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := svc.ApplyRentalUpdate(context.Background(), actor, 7, RentalUpdate{RentalType: strPtr("Mingguan")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "internal error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyRentalUpdate_PostgresCommit(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewChangeLogService(db, nil)
	actor := &models.Actor{UserID: 1, Email: "pkj@example.com", Role: models.RolePKJ}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "rentals" WHERE .* FOR UPDATE`).WillReturnRows(mockRentalRow())
	mock.ExpectExec(`UPDATE "rentals" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "rental_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectCommit()

	result, err := svc.ApplyRentalUpdate(context.Background(), actor, 7, RentalUpdate{
		RentalType:    strPtr("Mingguan"),
		CheckoutTime:  strPtr("11:00"),
		PaymentMethod: strPtr("Cash"),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.UpdatedFieldCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
