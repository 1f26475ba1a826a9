package payments

import (
	"context"
	"hospital-billing-service/internal/app/contracts"
	"hospital-billing-service/internal/app/contracts/mocks"
	"hospital-billing-service/internal/app/models"
	"hospital-billing-service/internal/app/services/shared/payment_gateway"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/dto/requests"
	"hospital-billing-service/internal/pkg/exceptions"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryPaymentRepository keeps rows in memory and applies the same
// status-guarded writes as the postgres repository. Reads return copies,
// so callers work on snapshots exactly as they do against the database.
type memoryPaymentRepository struct {
	*mocks.MockPaymentRepository
	mu   sync.Mutex
	rows map[string]models.Payment
	// afterRead runs once a read has taken its snapshot, before returning it.
	afterRead func()
}

func newMemoryPaymentRepository(payments ...models.Payment) *memoryPaymentRepository {
	repo := &memoryPaymentRepository{
		MockPaymentRepository: &mocks.MockPaymentRepository{},
		rows:                  make(map[string]models.Payment, len(payments)),
	}
	for _, payment := range payments {
		payment.MarkPersisted()
		repo.rows[payment.PaymentCode] = payment
	}
	return repo
}

func (r *memoryPaymentRepository) snapshot(match func(models.Payment) bool) []models.Payment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []models.Payment
	for _, payment := range r.rows {
		if match(payment) {
			result = append(result, payment)
		}
	}
	return result
}

func (r *memoryPaymentRepository) runAfterRead() {
	if hook := r.afterRead; hook != nil {
		r.afterRead = nil
		hook()
	}
}

func (r *memoryPaymentRepository) FindByPaymentCode(ctx context.Context, paymentCode string) (*models.Payment, error) {
	found := r.snapshot(func(p models.Payment) bool { return p.PaymentCode == paymentCode })
	r.runAfterRead()
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func (r *memoryPaymentRepository) FindByParentID(ctx context.Context, parentPaymentID int64) ([]models.Payment, error) {
	return r.snapshot(func(p models.Payment) bool {
		return p.ParentPaymentID != nil && *p.ParentPaymentID == parentPaymentID
	}), nil
}

func (r *memoryPaymentRepository) FindExpirable(ctx context.Context, now time.Time, limit int) ([]models.Payment, error) {
	found := r.snapshot(func(p models.Payment) bool {
		return p.Status.IsOutstanding() && p.ParentPaymentID == nil && p.ExpiredAt != nil && p.ExpiredAt.Before(now)
	})
	r.runAfterRead()
	return found, nil
}

func (r *memoryPaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	return r.UpdateMany(ctx, []*models.Payment{payment})
}

func (r *memoryPaymentRepository) UpdateMany(ctx context.Context, payments []*models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, payment := range payments {
		if stored := r.rows[payment.PaymentCode]; stored.Status != payment.PersistedStatus() {
			return exceptions.ErrPaymentStatusConflict(exceptions.ErrStalePaymentWrite, payment.PaymentCode, string(payment.PersistedStatus()))
		}
	}
	for _, payment := range payments {
		payment.MarkPersisted()
		r.rows[payment.PaymentCode] = *payment
	}
	return nil
}

func (r *memoryPaymentRepository) stored(code string) models.Payment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[code]
}

type concurrencyFixture struct {
	repo       *memoryPaymentRepository
	notifier   *mocks.MockPaymentNotifier
	reconciler contracts.PaymentReconciler
	usecase    *paymentUsecase
}

func newConcurrencyFixture(payments ...models.Payment) *concurrencyFixture {
	f := newUsecaseFixture()
	repo := newMemoryPaymentRepository(payments...)
	locker := &mocks.MockLockerService{}
	locker.On("TryLock", mock.Anything, mock.Anything, constvars.PaymentIPNLockTTL).Return(true, "lock-value", nil)
	locker.On("Unlock", mock.Anything, mock.Anything, "lock-value").Return(nil)
	f.notifier.On("NotifyPaymentCompleted", mock.Anything, mock.Anything).Return()

	usecase := newPaymentUsecase(repo, f.factory, f.notifier, f.usecase.InternalConfig, zap.NewNop())
	usecase.Location = f.usecase.Location
	usecase.now = f.usecase.now

	return &concurrencyFixture{
		repo:       repo,
		notifier:   f.notifier,
		reconciler: payment_gateway.NewPaymentReconciler(repo, locker, f.notifier, zap.NewNop()),
		usecase:    usecase,
	}
}

func (f *concurrencyFixture) settle(t *testing.T, code, transactionID string) {
	t.Helper()
	require.NoError(t, f.reconciler.Apply(context.Background(), &models.PaymentNotification{
		Gateway:       models.PaymentMethodVNPay,
		PaymentCode:   code,
		TransactionID: transactionID,
		Success:       true,
	}))
}

func processingPayment(code string) models.Payment {
	expiredAt := usecaseTestNow.Add(-time.Minute)
	return models.Payment{
		ID:            9,
		PaymentCode:   code,
		PaymentType:   models.PaymentTypeLabTest,
		ReferenceID:   "LAB-9",
		Amount:        decimal.NewFromInt(100000),
		Status:        models.PaymentStatusProcessing,
		PaymentMethod: models.PaymentMethodVNPay,
		CreatedAt:     usecaseTestNow.Add(-20 * time.Minute),
		ExpiredAt:     &expiredAt,
	}
}

func TestExpireStalePayments_NotificationDuringExpiry(t *testing.T) {
	f := newConcurrencyFixture(processingPayment("PAY-9"))
	f.repo.afterRead = func() { f.settle(t, "PAY-9", "TXN-9") }

	expired, err := f.usecase.ExpireStalePayments(context.Background(), usecaseTestNow)

	require.NoError(t, err)
	assert.Zero(t, expired)

	stored := f.repo.stored("PAY-9")
	assert.Equal(t, models.PaymentStatusCompleted, stored.Status)
	require.NotNil(t, stored.TransactionID)
	assert.Equal(t, "TXN-9", *stored.TransactionID)
	assert.NotNil(t, stored.PaidAt)

	// A gateway retry finds the payment completed and notifies nobody again.
	f.settle(t, "PAY-9", "TXN-9")
	f.notifier.AssertNumberOfCalls(t, "NotifyPaymentCompleted", 1)
}

func TestCancelPayment_NotificationDuringCancel(t *testing.T) {
	f := newConcurrencyFixture(processingPayment("PAY-9"))
	f.repo.afterRead = func() { f.settle(t, "PAY-9", "TXN-9") }

	_, err := f.usecase.CancelPayment(context.Background(), "PAY-9", nil)

	requireStatus(t, err, constvars.StatusConflict)
	assert.Equal(t, models.PaymentStatusCompleted, f.repo.stored("PAY-9").Status)
}

func TestCreateCashPayment_NotificationDuringCollection(t *testing.T) {
	f := newConcurrencyFixture(processingPayment("PAY-9"))
	f.repo.MockPaymentRepository.
		On("FindLatestByReferenceAndType", mock.Anything, "LAB-9", models.PaymentTypeLabTest).
		Run(func(mock.Arguments) { f.settle(t, "PAY-9", "TXN-9") }).
		Return(func() *models.Payment {
			payment := processingPayment("PAY-9")
			payment.MarkPersisted()
			return &payment
		}(), nil)

	_, err := f.usecase.CreateCashPayment(context.Background(), &requests.CreateCashPayment{
		PaymentType: string(models.PaymentTypeLabTest),
		ReferenceID: "LAB-9",
		Amount:      decimal.NewFromInt(100000),
		CollectedBy: "receptionist-1",
	})

	requireStatus(t, err, constvars.StatusConflict)
	stored := f.repo.stored("PAY-9")
	assert.Equal(t, models.PaymentStatusCompleted, stored.Status)
	assert.Equal(t, models.PaymentMethodVNPay, stored.PaymentMethod)
	f.notifier.AssertNumberOfCalls(t, "NotifyPaymentCompleted", 1)
}
