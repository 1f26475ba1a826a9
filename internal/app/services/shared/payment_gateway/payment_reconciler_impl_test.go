package payment_gateway

import (
	"context"
	"hospital-billing-service/internal/app/contracts/mocks"
	"hospital-billing-service/internal/app/models"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var reconcilerTestNow = time.Date(2025, 1, 15, 3, 35, 0, 0, time.UTC)

type reconcilerFixture struct {
	repo       *mocks.MockPaymentRepository
	locker     *mocks.MockLockerService
	notifier   *mocks.MockPaymentNotifier
	reconciler *paymentReconciler
}

func newReconcilerFixture() *reconcilerFixture {
	f := &reconcilerFixture{
		repo:     &mocks.MockPaymentRepository{},
		locker:   &mocks.MockLockerService{},
		notifier: &mocks.MockPaymentNotifier{},
	}
	f.reconciler = &paymentReconciler{
		PaymentRepository: f.repo,
		Locker:            f.locker,
		Notifier:          f.notifier,
		Log:               zap.NewNop(),
		now:               func() time.Time { return reconcilerTestNow },
	}
	return f
}

func (f *reconcilerFixture) expectLock(code string) {
	key := "billing:ipn:" + code
	f.locker.On("TryLock", mock.Anything, key, constvars.PaymentIPNLockTTL).Return(true, "lock-value", nil)
	f.locker.On("Unlock", mock.Anything, key, "lock-value").Return(nil)
}

func successNotification(code string, amount int64) *models.PaymentNotification {
	value := decimal.NewFromInt(amount)
	return &models.PaymentNotification{
		Gateway:       models.PaymentMethodVNPay,
		PaymentCode:   code,
		TransactionID: "TXN-1",
		Success:       true,
		ResultCode:    "00",
		Amount:        &value,
	}
}

func TestPaymentReconciler_Apply_Success(t *testing.T) {
	f := newReconcilerFixture()
	f.expectLock("PAY-1")
	payment := newTestPayment()
	payment.Status = models.PaymentStatusProcessing
	f.repo.On("FindByPaymentCode", mock.Anything, "PAY-1").Return(payment, nil)
	f.repo.On("UpdateMany", mock.Anything, mock.MatchedBy(func(payments []*models.Payment) bool {
		return len(payments) == 1 && payments[0].Status == models.PaymentStatusCompleted
	})).Return(nil)
	f.notifier.On("NotifyPaymentCompleted", mock.Anything, payment).Return()

	err := f.reconciler.Apply(context.Background(), successNotification("PAY-1", 100000))

	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
	require.NotNil(t, payment.TransactionID)
	assert.Equal(t, "TXN-1", *payment.TransactionID)
	require.NotNil(t, payment.PaidAt)
	assert.True(t, payment.PaidAt.Equal(reconcilerTestNow))
	f.repo.AssertExpectations(t)
	f.locker.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestPaymentReconciler_Apply_FailureDoesNotNotify(t *testing.T) {
	f := newReconcilerFixture()
	f.expectLock("PAY-1")
	payment := newTestPayment()
	f.repo.On("FindByPaymentCode", mock.Anything, "PAY-1").Return(payment, nil)
	f.repo.On("UpdateMany", mock.Anything, mock.Anything).Return(nil)

	notification := successNotification("PAY-1", 100000)
	notification.Success = false
	notification.ResultCode = "24"

	err := f.reconciler.Apply(context.Background(), notification)

	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, payment.Status)
	assert.Nil(t, payment.PaidAt)
	f.notifier.AssertNotCalled(t, "NotifyPaymentCompleted", mock.Anything, mock.Anything)
}

func TestPaymentReconciler_Apply_DuplicateIsNoop(t *testing.T) {
	f := newReconcilerFixture()
	f.expectLock("PAY-1")
	payment := newTestPayment()
	payment.Status = models.PaymentStatusCompleted
	f.repo.On("FindByPaymentCode", mock.Anything, "PAY-1").Return(payment, nil)

	err := f.reconciler.Apply(context.Background(), successNotification("PAY-1", 100000))

	require.NoError(t, err)
	f.repo.AssertNotCalled(t, "UpdateMany", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "NotifyPaymentCompleted", mock.Anything, mock.Anything)
}

func TestPaymentReconciler_Apply_LockHeld(t *testing.T) {
	f := newReconcilerFixture()
	f.locker.On("TryLock", mock.Anything, "billing:ipn:PAY-1", constvars.PaymentIPNLockTTL).Return(false, "", nil)

	err := f.reconciler.Apply(context.Background(), successNotification("PAY-1", 100000))

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	f.repo.AssertNotCalled(t, "FindByPaymentCode", mock.Anything, mock.Anything)
}

func TestPaymentReconciler_Apply_PaymentNotFound(t *testing.T) {
	f := newReconcilerFixture()
	f.expectLock("PAY-404")
	f.repo.On("FindByPaymentCode", mock.Anything, "PAY-404").Return(nil, nil)

	err := f.reconciler.Apply(context.Background(), successNotification("PAY-404", 100000))

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	f.locker.AssertExpectations(t)
}

func TestPaymentReconciler_Apply_AmountMismatch(t *testing.T) {
	f := newReconcilerFixture()
	f.expectLock("PAY-1")
	payment := newTestPayment()
	f.repo.On("FindByPaymentCode", mock.Anything, "PAY-1").Return(payment, nil)

	err := f.reconciler.Apply(context.Background(), successNotification("PAY-1", 1000))

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	f.repo.AssertNotCalled(t, "UpdateMany", mock.Anything, mock.Anything)
}

func compositeWithChildren(code string, method models.PaymentMethod) (*models.Payment, []models.Payment) {
	parent := &models.Payment{
		ID:            10,
		PaymentCode:   code,
		PaymentType:   models.PaymentTypeComposite,
		ReferenceID:   "APT-1",
		Amount:        decimal.NewFromInt(300000),
		Status:        models.PaymentStatusProcessing,
		PaymentMethod: method,
	}
	parentID := parent.ID
	children := []models.Payment{
		{ID: 11, PaymentCode: "PAY-11", PaymentType: models.PaymentTypeAppointmentFee, ReferenceID: "APT-1", ParentPaymentID: &parentID, Amount: decimal.NewFromInt(100000), Status: models.PaymentStatusProcessing, PaymentMethod: method},
		{ID: 12, PaymentCode: "PAY-12", PaymentType: models.PaymentTypeLabTest, ReferenceID: "LAB-1", ParentPaymentID: &parentID, Amount: decimal.NewFromInt(200000), Status: models.PaymentStatusProcessing, PaymentMethod: method},
		{ID: 13, PaymentCode: "PAY-13", PaymentType: models.PaymentTypeLabTest, ReferenceID: "LAB-2", ParentPaymentID: &parentID, Amount: decimal.NewFromInt(50000), Status: models.PaymentStatusCompleted, PaymentMethod: models.PaymentMethodCash},
	}
	return parent, children
}

// captureUpdateMany records the batch handed to UpdateMany.
func (f *reconcilerFixture) captureUpdateMany(result error) *[]*models.Payment {
	var written []*models.Payment
	f.repo.On("UpdateMany", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { written = args.Get(1).([]*models.Payment) }).
		Return(result)
	return &written
}

func assertCascadedSettlement(t *testing.T, written []*models.Payment, transactionID string) {
	t.Helper()
	require.Len(t, written, 3)
	parent := written[0]
	require.NotNil(t, parent.PaidAt)
	require.NotNil(t, parent.TransactionID)
	assert.Equal(t, transactionID, *parent.TransactionID)

	for _, child := range written[1:] {
		assert.Equal(t, models.PaymentStatusCompleted, child.Status, child.PaymentCode)
		require.NotNil(t, child.PaidAt, child.PaymentCode)
		assert.True(t, child.PaidAt.Equal(*parent.PaidAt), child.PaymentCode)
		assert.True(t, child.UpdatedAt.Equal(parent.UpdatedAt), child.PaymentCode)
		require.NotNil(t, child.TransactionID, child.PaymentCode)
		assert.Equal(t, *parent.TransactionID, *child.TransactionID, child.PaymentCode)
	}
	assert.Equal(t, []string{"PAY-11", "PAY-12"}, []string{written[1].PaymentCode, written[2].PaymentCode})
}

func TestPaymentReconciler_Apply_CompositeCascade(t *testing.T) {
	tests := []struct {
		name    string
		gateway models.PaymentMethod
		code    string
	}{
		{"momo", models.PaymentMethodMomo, "COMP-1"},
		{"vnpay", models.PaymentMethodVNPay, "COMP-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReconcilerFixture()
			f.expectLock(tt.code)
			parent, children := compositeWithChildren(tt.code, tt.gateway)
			f.repo.On("FindByPaymentCode", mock.Anything, tt.code).Return(parent, nil)
			f.repo.On("FindByParentID", mock.Anything, int64(10)).Return(children, nil)
			written := f.captureUpdateMany(nil)
			f.notifier.On("NotifyPaymentCompleted", mock.Anything, mock.MatchedBy(func(p *models.Payment) bool {
				return p.PaymentCode == "PAY-11" || p.PaymentCode == "PAY-12"
			})).Return()

			notification := successNotification(tt.code, 300000)
			notification.Gateway = tt.gateway
			err := f.reconciler.Apply(context.Background(), notification)

			require.NoError(t, err)
			assertCascadedSettlement(t, *written, "TXN-1")
			assert.True(t, (*written)[0].PaidAt.Equal(reconcilerTestNow))
			f.repo.AssertExpectations(t)
			f.notifier.AssertNumberOfCalls(t, "NotifyPaymentCompleted", 2)
		})
	}
}

func TestPaymentReconciler_Apply_VNPayCompositeNotification(t *testing.T) {
	f := newReconcilerFixture()
	f.expectLock("COMP-3")
	parent, children := compositeWithChildren("COMP-3", models.PaymentMethodVNPay)
	f.repo.On("FindByPaymentCode", mock.Anything, "COMP-3").Return(parent, nil)
	f.repo.On("FindByParentID", mock.Anything, int64(10)).Return(children, nil)
	written := f.captureUpdateMany(nil)
	f.notifier.On("NotifyPaymentCompleted", mock.Anything, mock.Anything).Return()

	fields := vnpayNotificationFields()
	fields["vnp_TxnRef"] = "COMP-3"
	fields["vnp_Amount"] = "30000000"
	signed := make(map[string]string, len(fields))
	for key, value := range fields {
		if key != "vnp_SecureHash" && key != "vnp_SecureHashType" {
			signed[key] = value
		}
	}
	fields["vnp_SecureHash"] = hmacSHA512Hex(vnpayTestSecretKey, buildVNPayHashData(signed))

	service := newTestVNPayService(&mocks.MockPaymentReconciler{})
	service.Reconciler = f.reconciler

	err := service.ProcessIPN(context.Background(), fields)

	require.NoError(t, err)
	assertCascadedSettlement(t, *written, "14422574")
	f.notifier.AssertNumberOfCalls(t, "NotifyPaymentCompleted", 2)
}

func TestPaymentReconciler_Apply_StaleWriteDoesNotNotify(t *testing.T) {
	f := newReconcilerFixture()
	f.expectLock("PAY-1")
	payment := &models.Payment{ID: 1, PaymentCode: "PAY-1", Amount: decimal.NewFromInt(1000), Status: models.PaymentStatusProcessing}
	f.repo.On("FindByPaymentCode", mock.Anything, "PAY-1").Return(payment, nil)
	f.captureUpdateMany(exceptions.ErrPaymentStatusConflict(exceptions.ErrStalePaymentWrite, "PAY-1", "PROCESSING"))

	err := f.reconciler.Apply(context.Background(), successNotification("PAY-1", 1000))

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusConflict, customErr.StatusCode)
	f.notifier.AssertNotCalled(t, "NotifyPaymentCompleted", mock.Anything, mock.Anything)
	f.locker.AssertExpectations(t)
}

func TestPaymentReconciler_Apply_CompositeFailureCascades(t *testing.T) {
	f := newReconcilerFixture()
	f.expectLock("COMP-2")
	parent := &models.Payment{
		ID:          20,
		PaymentCode: "COMP-2",
		PaymentType: models.PaymentTypeComposite,
		Amount:      decimal.NewFromInt(100000),
		Status:      models.PaymentStatusProcessing,
	}
	parentID := parent.ID
	children := []models.Payment{
		{ID: 21, PaymentCode: "PAY-21", ParentPaymentID: &parentID, Amount: decimal.NewFromInt(100000), Status: models.PaymentStatusProcessing},
	}
	f.repo.On("FindByPaymentCode", mock.Anything, "COMP-2").Return(parent, nil)
	f.repo.On("FindByParentID", mock.Anything, int64(20)).Return(children, nil)
	f.repo.On("UpdateMany", mock.Anything, mock.MatchedBy(func(payments []*models.Payment) bool {
		return len(payments) == 2 &&
			payments[0].Status == models.PaymentStatusFailed &&
			payments[1].Status == models.PaymentStatusFailed
	})).Return(nil)

	notification := successNotification("COMP-2", 100000)
	notification.Success = false

	err := f.reconciler.Apply(context.Background(), notification)

	require.NoError(t, err)
	f.repo.AssertExpectations(t)
	f.notifier.AssertNotCalled(t, "NotifyPaymentCompleted", mock.Anything, mock.Anything)
}
