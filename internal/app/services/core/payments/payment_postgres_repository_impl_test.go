package payments

import (
	"context"
	"database/sql/driver"
	"errors"
	"hospital-billing-service/internal/app/models"
	"hospital-billing-service/internal/pkg/exceptions"
	"hospital-billing-service/internal/pkg/queries"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var paymentColumnNames = []string{
	"id", "payment_code", "payment_type", "reference_id", "appointment_id", "prescription_id",
	"parent_payment_id", "amount", "status", "payment_method", "payment_url", "transaction_id",
	"description", "metadata", "created_at", "updated_at", "expired_at", "paid_at",
}

func newRepositoryWithMock(t *testing.T) (*paymentPostgresRepository, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return newPaymentPostgresRepository(db, zap.NewNop()), mockDB
}

func TestPaymentPostgresRepository_FindByPaymentCode(t *testing.T) {
	repo, mockDB := newRepositoryWithMock(t)
	createdAt := time.Date(2025, 1, 15, 3, 0, 0, 0, time.UTC)
	appointmentID := "APT-1"

	rows := sqlmock.NewRows(paymentColumnNames).AddRow(
		int64(7), "PAY-7", "APPOINTMENT_FEE", "APT-1", appointmentID, nil,
		nil, "150000.00", "PENDING", "MOMO", nil, nil,
		nil, nil, createdAt, createdAt, createdAt.Add(15*time.Minute), nil,
	)
	mockDB.ExpectQuery(regexp.QuoteMeta(queries.GetPaymentByCode)).WithArgs("PAY-7").WillReturnRows(rows)

	payment, err := repo.FindByPaymentCode(context.Background(), "PAY-7")

	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, int64(7), payment.ID)
	assert.Equal(t, models.PaymentTypeAppointmentFee, payment.PaymentType)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(150000)))
	require.NotNil(t, payment.AppointmentID)
	assert.Equal(t, "APT-1", *payment.AppointmentID)
	assert.Nil(t, payment.PaidAt)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestPaymentPostgresRepository_FindByPaymentCode_NotFound(t *testing.T) {
	repo, mockDB := newRepositoryWithMock(t)
	mockDB.ExpectQuery(regexp.QuoteMeta(queries.GetPaymentByCode)).WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(paymentColumnNames))

	payment, err := repo.FindByPaymentCode(context.Background(), "missing")

	require.NoError(t, err)
	assert.Nil(t, payment)
}

func TestPaymentPostgresRepository_Create(t *testing.T) {
	repo, mockDB := newRepositoryWithMock(t)
	payment := &models.Payment{
		PaymentCode:   "PAY-1",
		PaymentType:   models.PaymentTypeLabTest,
		ReferenceID:   "LAB-1",
		Amount:        decimal.NewFromInt(50000),
		Status:        models.PaymentStatusPending,
		PaymentMethod: models.PaymentMethodVNPay,
	}
	mockDB.ExpectQuery(regexp.QuoteMeta(queries.InsertPayment)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	err := repo.Create(context.Background(), payment)

	require.NoError(t, err)
	assert.Equal(t, int64(42), payment.ID)
	assert.False(t, payment.CreatedAt.IsZero())
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestPaymentPostgresRepository_UpdateMany_Commits(t *testing.T) {
	repo, mockDB := newRepositoryWithMock(t)
	payments := []*models.Payment{
		{ID: 1, Status: models.PaymentStatusCompleted, Amount: decimal.NewFromInt(1)},
		{ID: 2, Status: models.PaymentStatusCompleted, Amount: decimal.NewFromInt(2)},
	}

	mockDB.ExpectBegin()
	mockDB.ExpectExec(regexp.QuoteMeta(queries.UpdatePayment)).WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.ExpectExec(regexp.QuoteMeta(queries.UpdatePayment)).WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.ExpectCommit()

	require.NoError(t, repo.UpdateMany(context.Background(), payments))
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestPaymentPostgresRepository_UpdateMany_RollsBack(t *testing.T) {
	repo, mockDB := newRepositoryWithMock(t)
	payments := []*models.Payment{
		{ID: 1, Status: models.PaymentStatusCompleted, Amount: decimal.NewFromInt(1)},
		{ID: 2, Status: models.PaymentStatusCompleted, Amount: decimal.NewFromInt(2)},
	}

	mockDB.ExpectBegin()
	mockDB.ExpectExec(regexp.QuoteMeta(queries.UpdatePayment)).WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.ExpectExec(regexp.QuoteMeta(queries.UpdatePayment)).WillReturnError(errors.New("deadlock"))
	mockDB.ExpectRollback()

	err := repo.UpdateMany(context.Background(), payments)

	assert.Error(t, err)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

// updateArgs lists the UpdatePayment arguments, matching only the write
// timestamp and the status the row must still have.
func updateArgs(updatedAt time.Time, expected models.PaymentStatus) []driver.Value {
	anyArg := sqlmock.AnyArg()
	return []driver.Value{
		anyArg, anyArg, anyArg, anyArg, anyArg, anyArg, anyArg, anyArg, anyArg, anyArg,
		updatedAt, anyArg, anyArg, string(expected),
	}
}

func TestPaymentPostgresRepository_UpdateMany_StaleStatus(t *testing.T) {
	repo, mockDB := newRepositoryWithMock(t)
	createdAt := time.Date(2025, 1, 15, 3, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(paymentColumnNames).AddRow(
		int64(7), "PAY-7", "LAB_TEST", "LAB-1", nil, nil,
		nil, "150000.00", "PROCESSING", "VNPAY", nil, nil,
		nil, nil, createdAt, createdAt, createdAt.Add(15*time.Minute), nil,
	)
	mockDB.ExpectQuery(regexp.QuoteMeta(queries.GetPaymentByCode)).WithArgs("PAY-7").WillReturnRows(rows)

	payment, err := repo.FindByPaymentCode(context.Background(), "PAY-7")
	require.NoError(t, err)

	// A notification completed the row after it was read, so the guarded
	// update matches nothing.
	expiredAt := createdAt.Add(time.Hour)
	payment.Status = models.PaymentStatusExpired
	payment.UpdatedAt = expiredAt

	mockDB.ExpectBegin()
	mockDB.ExpectExec(regexp.QuoteMeta(queries.UpdatePayment)).
		WithArgs(updateArgs(expiredAt, models.PaymentStatusProcessing)...).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mockDB.ExpectRollback()

	err = repo.UpdateMany(context.Background(), []*models.Payment{payment})

	require.Error(t, err)
	assert.True(t, errors.Is(err, exceptions.ErrStalePaymentWrite))
	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, 409, customErr.StatusCode)
	assert.Equal(t, models.PaymentStatusProcessing, payment.PersistedStatus())
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestPaymentPostgresRepository_Update_KeepsCallerTimestamp(t *testing.T) {
	repo, mockDB := newRepositoryWithMock(t)
	payment := &models.Payment{
		ID:            3,
		PaymentCode:   "PAY-3",
		Amount:        decimal.NewFromInt(10),
		Status:        models.PaymentStatusPending,
		PaymentMethod: models.PaymentMethodMomo,
	}
	payment.MarkPersisted()

	settledAt := time.Date(2025, 1, 15, 4, 0, 0, 0, time.UTC)
	payment.Status = models.PaymentStatusProcessing
	payment.UpdatedAt = settledAt

	mockDB.ExpectExec(regexp.QuoteMeta(queries.UpdatePayment)).
		WithArgs(updateArgs(settledAt, models.PaymentStatusPending)...).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), payment))
	assert.Equal(t, settledAt, payment.UpdatedAt)
	assert.Equal(t, models.PaymentStatusProcessing, payment.PersistedStatus())
	assert.NoError(t, mockDB.ExpectationsWereMet())
}

func TestPaymentPostgresRepository_Search_EmptyCountSkipsQuery(t *testing.T) {
	repo, mockDB := newRepositoryWithMock(t)
	mockDB.ExpectQuery(regexp.QuoteMeta(queries.CountPayments)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	payments, total, err := repo.Search(context.Background(), &models.PaymentFilter{
		Status: models.PaymentStatusCompleted,
		Limit:  20,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, payments)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}
