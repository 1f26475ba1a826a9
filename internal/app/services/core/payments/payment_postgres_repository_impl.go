package payments

import (
	"context"
	"database/sql"
	"errors"
	"hospital-billing-service/internal/app/contracts"
	"hospital-billing-service/internal/app/models"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/exceptions"
	"hospital-billing-service/internal/pkg/queries"
	"sync"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type paymentPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

var (
	paymentPostgresRepositoryInstance contracts.PaymentRepository
	oncePaymentPostgresRepository     sync.Once
)

func NewPaymentPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.PaymentRepository {
	oncePaymentPostgresRepository.Do(func() {
		paymentPostgresRepositoryInstance = newPaymentPostgresRepository(db, logger)
	})
	return paymentPostgresRepositoryInstance
}

func newPaymentPostgresRepository(db *sql.DB, logger *zap.Logger) *paymentPostgresRepository {
	return &paymentPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (*models.Payment, error) {
	var payment models.Payment
	err := row.Scan(
		&payment.ID,
		&payment.PaymentCode,
		&payment.PaymentType,
		&payment.ReferenceID,
		&payment.AppointmentID,
		&payment.PrescriptionID,
		&payment.ParentPaymentID,
		&payment.Amount,
		&payment.Status,
		&payment.PaymentMethod,
		&payment.PaymentURL,
		&payment.TransactionID,
		&payment.Description,
		&payment.Metadata,
		&payment.CreatedAt,
		&payment.UpdatedAt,
		&payment.ExpiredAt,
		&payment.PaidAt,
	)
	if err != nil {
		return nil, err
	}
	payment.MarkPersisted()
	return &payment, nil
}

func (r *paymentPostgresRepository) findOne(ctx context.Context, query string, args ...any) (*models.Payment, error) {
	payment, err := scanPayment(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return payment, nil
}

func (r *paymentPostgresRepository) findMany(ctx context.Context, query string, args ...any) ([]models.Payment, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		payments = append(payments, *payment)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}

	return payments, nil
}

func (r *paymentPostgresRepository) Create(ctx context.Context, payment *models.Payment) error {
	now := time.Now()
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}
	if payment.UpdatedAt.IsZero() {
		payment.UpdatedAt = now
	}

	err := r.DB.QueryRowContext(ctx, queries.InsertPayment,
		payment.PaymentCode,
		payment.PaymentType,
		payment.ReferenceID,
		payment.AppointmentID,
		payment.PrescriptionID,
		payment.ParentPaymentID,
		payment.Amount,
		payment.Status,
		payment.PaymentMethod,
		payment.PaymentURL,
		payment.TransactionID,
		payment.Description,
		payment.Metadata,
		payment.CreatedAt,
		payment.UpdatedAt,
		payment.ExpiredAt,
		payment.PaidAt,
	).Scan(&payment.ID)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	payment.MarkPersisted()
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// updatePayment writes the row only while it still has the status it was
// read with, so a concurrent settlement is never rolled back.
func updatePayment(ctx context.Context, db execer, payment *models.Payment) error {
	if payment.UpdatedAt.IsZero() {
		payment.UpdatedAt = time.Now()
	}
	expected := payment.PersistedStatus()
	result, err := db.ExecContext(ctx, queries.UpdatePayment,
		payment.ID,
		payment.AppointmentID,
		payment.ParentPaymentID,
		payment.Amount,
		payment.Status,
		payment.PaymentMethod,
		payment.PaymentURL,
		payment.TransactionID,
		payment.Description,
		payment.Metadata,
		payment.UpdatedAt,
		payment.ExpiredAt,
		payment.PaidAt,
		expected,
	)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	if affected == 0 {
		return exceptions.ErrPaymentStatusConflict(exceptions.ErrStalePaymentWrite, payment.PaymentCode, string(expected))
	}
	return nil
}

func (r *paymentPostgresRepository) Update(ctx context.Context, payment *models.Payment) error {
	if err := updatePayment(ctx, r.DB, payment); err != nil {
		r.Log.Warn("paymentPostgresRepository.Update payment not updated",
			zap.Int64(constvars.LoggingPaymentIDKey, payment.ID),
			zap.Error(err),
		)
		return err
	}
	payment.MarkPersisted()
	return nil
}

// UpdateMany writes every payment in one transaction. A single stale row
// rolls the whole batch back.
func (r *paymentPostgresRepository) UpdateMany(ctx context.Context, payments []*models.Payment) error {
	if len(payments) == 0 {
		return nil
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrPostgresDBBeginTx(err)
	}
	defer tx.Rollback()

	for _, payment := range payments {
		if err := updatePayment(ctx, tx, payment); err != nil {
			r.Log.Warn("paymentPostgresRepository.UpdateMany error updating payment",
				zap.Int64(constvars.LoggingPaymentIDKey, payment.ID),
				zap.String(constvars.LoggingPaymentCodeKey, payment.PaymentCode),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return exceptions.ErrPostgresDBCommitTx(err)
	}
	for _, payment := range payments {
		payment.MarkPersisted()
	}
	return nil
}

func (r *paymentPostgresRepository) FindByID(ctx context.Context, paymentID int64) (*models.Payment, error) {
	return r.findOne(ctx, queries.GetPaymentByID, paymentID)
}

func (r *paymentPostgresRepository) FindByPaymentCode(ctx context.Context, paymentCode string) (*models.Payment, error) {
	return r.findOne(ctx, queries.GetPaymentByCode, paymentCode)
}

func (r *paymentPostgresRepository) FindByPaymentCodes(ctx context.Context, paymentCodes []string) ([]models.Payment, error) {
	return r.findMany(ctx, queries.GetPaymentsByCodes, pq.Array(paymentCodes))
}

func (r *paymentPostgresRepository) FindLatestByReferenceAndType(ctx context.Context, referenceID string, paymentType models.PaymentType) (*models.Payment, error) {
	return r.findOne(ctx, queries.GetLatestPaymentByReferenceAndType, referenceID, paymentType)
}

func (r *paymentPostgresRepository) FindLatestByReference(ctx context.Context, referenceID string) (*models.Payment, error) {
	return r.findOne(ctx, queries.GetLatestPaymentByReference, referenceID)
}

func (r *paymentPostgresRepository) FindLatestByAppointmentAndType(ctx context.Context, appointmentID string, paymentType models.PaymentType) (*models.Payment, error) {
	return r.findOne(ctx, queries.GetLatestPaymentByAppointmentAndType, appointmentID, paymentType)
}

func (r *paymentPostgresRepository) FindLatestByPrescription(ctx context.Context, prescriptionID string) (*models.Payment, error) {
	return r.findOne(ctx, queries.GetLatestPaymentByPrescription, prescriptionID)
}

func (r *paymentPostgresRepository) FindAllByAppointment(ctx context.Context, appointmentID string) ([]models.Payment, error) {
	return r.findMany(ctx, queries.GetPaymentsByAppointment, appointmentID)
}

func (r *paymentPostgresRepository) FindByParentID(ctx context.Context, parentPaymentID int64) ([]models.Payment, error) {
	return r.findMany(ctx, queries.GetPaymentsByParentID, parentPaymentID)
}

func (r *paymentPostgresRepository) FindOutstandingForComposite(ctx context.Context, referenceIDs []string) ([]models.Payment, error) {
	statuses := []string{string(models.PaymentStatusPending), string(models.PaymentStatusProcessing)}
	return r.findMany(ctx, queries.GetOutstandingPaymentsForComposite, pq.Array(referenceIDs), pq.Array(statuses))
}

func (r *paymentPostgresRepository) FindCreatedBetween(ctx context.Context, start, end time.Time, status models.PaymentStatus) ([]models.Payment, error) {
	return r.findMany(ctx, queries.GetPaymentsCreatedBetween, start, end, string(status))
}

func (r *paymentPostgresRepository) FindExpirable(ctx context.Context, now time.Time, limit int) ([]models.Payment, error) {
	return r.findMany(ctx, queries.GetExpirablePayments, now, limit)
}

func (r *paymentPostgresRepository) Search(ctx context.Context, filter *models.PaymentFilter) ([]models.Payment, int, error) {
	args := []any{
		filter.StartDate,
		filter.EndDate,
		string(filter.Status),
		string(filter.PaymentMethod),
		string(filter.PaymentType),
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, queries.CountPayments, args...).Scan(&total); err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	if total == 0 {
		return []models.Payment{}, 0, nil
	}

	payments, err := r.findMany(ctx, queries.SearchPayments, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}
