// Package mocks holds testify mocks for the payment contracts.
package mocks

import (
	"context"
	"hospital-billing-service/internal/app/contracts"
	"hospital-billing-service/internal/app/models"
	"hospital-billing-service/internal/pkg/dto/requests"
	"hospital-billing-service/internal/pkg/dto/responses"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdateMany(ctx context.Context, payments []*models.Payment) error {
	args := m.Called(ctx, payments)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByID(ctx context.Context, paymentID int64) (*models.Payment, error) {
	args := m.Called(ctx, paymentID)
	return paymentOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPaymentRepository) FindByPaymentCode(ctx context.Context, paymentCode string) (*models.Payment, error) {
	args := m.Called(ctx, paymentCode)
	return paymentOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPaymentRepository) FindByPaymentCodes(ctx context.Context, paymentCodes []string) ([]models.Payment, error) {
	args := m.Called(ctx, paymentCodes)
	return paymentsOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPaymentRepository) FindLatestByReferenceAndType(ctx context.Context, referenceID string, paymentType models.PaymentType) (*models.Payment, error) {
	args := m.Called(ctx, referenceID, paymentType)
	return paymentOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPaymentRepository) FindLatestByReference(ctx context.Context, referenceID string) (*models.Payment, error) {
	args := m.Called(ctx, referenceID)
	return paymentOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPaymentRepository) FindLatestByAppointmentAndType(ctx context.Context, appointmentID string, paymentType models.PaymentType) (*models.Payment, error) {
	args := m.Called(ctx, appointmentID, paymentType)
	return paymentOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPaymentRepository) FindLatestByPrescription(ctx context.Context, prescriptionID string) (*models.Payment, error) {
	args := m.Called(ctx, prescriptionID)
	return paymentOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPaymentRepository) FindAllByAppointment(ctx context.Context, appointmentID string) ([]models.Payment, error) {
	args := m.Called(ctx, appointmentID)
	return paymentsOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPaymentRepository) FindByParentID(ctx context.Context, parentPaymentID int64) ([]models.Payment, error) {
	args := m.Called(ctx, parentPaymentID)
	return paymentsOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPaymentRepository) FindOutstandingForComposite(ctx context.Context, referenceIDs []string) ([]models.Payment, error) {
	args := m.Called(ctx, referenceIDs)
	return paymentsOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPaymentRepository) FindCreatedBetween(ctx context.Context, start, end time.Time, status models.PaymentStatus) ([]models.Payment, error) {
	args := m.Called(ctx, start, end, status)
	return paymentsOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPaymentRepository) FindExpirable(ctx context.Context, now time.Time, limit int) ([]models.Payment, error) {
	args := m.Called(ctx, now, limit)
	return paymentsOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPaymentRepository) Search(ctx context.Context, filter *models.PaymentFilter) ([]models.Payment, int, error) {
	args := m.Called(ctx, filter)
	return paymentsOrNil(args.Get(0)), args.Int(1), args.Error(2)
}

type MockLockerService struct {
	mock.Mock
}

func (m *MockLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

func (m *MockLockerService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	args := m.Called(ctx, key, lockValue, expiration)
	return args.Error(0)
}

type MockPaymentNotifier struct {
	mock.Mock
}

func (m *MockPaymentNotifier) NotifyPaymentCompleted(ctx context.Context, payment *models.Payment) {
	m.Called(ctx, payment)
}

type MockPaymentReconciler struct {
	mock.Mock
}

func (m *MockPaymentReconciler) Apply(ctx context.Context, notification *models.PaymentNotification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

type MockPaymentGatewayService struct {
	mock.Mock
}

func (m *MockPaymentGatewayService) Method() models.PaymentMethod {
	args := m.Called()
	return args.Get(0).(models.PaymentMethod)
}

func (m *MockPaymentGatewayService) CreatePaymentURL(ctx context.Context, payment *models.Payment) (string, error) {
	args := m.Called(ctx, payment)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGatewayService) ProcessIPN(ctx context.Context, fields map[string]string) error {
	args := m.Called(ctx, fields)
	return args.Error(0)
}

type MockAppointmentClient struct {
	mock.Mock
}

func (m *MockAppointmentClient) ConfirmPayment(ctx context.Context, appointmentID string, request *requests.ConfirmAppointmentPayment) error {
	args := m.Called(ctx, appointmentID, request)
	return args.Error(0)
}

type MockMedicineClient struct {
	mock.Mock
}

func (m *MockMedicineClient) ConfirmPrescriptionPayment(ctx context.Context, prescriptionID string) error {
	args := m.Called(ctx, prescriptionID)
	return args.Error(0)
}

type MockPaymentEventPublisher struct {
	mock.Mock
}

func (m *MockPaymentEventPublisher) PublishLabTestPaymentConfirmed(ctx context.Context, event *requests.LabTestPaymentConfirmed) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockPaymentUsecase struct {
	mock.Mock
}

func (m *MockPaymentUsecase) CreatePayment(ctx context.Context, request *requests.CreatePayment) (*responses.Payment, error) {
	args := m.Called(ctx, request)
	return paymentResponseOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPaymentUsecase) CreateCashPayment(ctx context.Context, request *requests.CreateCashPayment) (*responses.Payment, error) {
	args := m.Called(ctx, request)
	return paymentResponseOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPaymentUsecase) ProcessIPN(ctx context.Context, notification *requests.GatewayNotification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockPaymentUsecase) HandleGatewayReturn(ctx context.Context, params map[string]string) string {
	args := m.Called(ctx, params)
	return args.String(0)
}

func (m *MockPaymentUsecase) GetPaymentByID(ctx context.Context, paymentID int64) (*responses.Payment, error) {
	args := m.Called(ctx, paymentID)
	return paymentResponseOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPaymentUsecase) GetPaymentByCode(ctx context.Context, paymentCode string) (*responses.Payment, error) {
	args := m.Called(ctx, paymentCode)
	return paymentResponseOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPaymentUsecase) GetPaymentByPrescriptionID(ctx context.Context, prescriptionID string) (*responses.Payment, error) {
	args := m.Called(ctx, prescriptionID)
	return paymentResponseOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPaymentUsecase) GetPaymentByReferenceID(ctx context.Context, referenceID string, paymentType string) (*responses.Payment, error) {
	args := m.Called(ctx, referenceID, paymentType)
	return paymentResponseOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPaymentUsecase) GetPaymentByAppointmentID(ctx context.Context, appointmentID string) (*responses.Payment, error) {
	args := m.Called(ctx, appointmentID)
	return paymentResponseOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPaymentUsecase) SearchPayments(ctx context.Context, request *requests.SearchPayments) (*responses.PaymentList, error) {
	args := m.Called(ctx, request)
	if v := args.Get(0); v != nil {
		return v.(*responses.PaymentList), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentUsecase) GetTodayPayments(ctx context.Context, status string) ([]responses.Payment, error) {
	args := m.Called(ctx, status)
	if v := args.Get(0); v != nil {
		return v.([]responses.Payment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentUsecase) GetOutstandingPayments(ctx context.Context, request *requests.OutstandingPayments) (*responses.OutstandingPayments, error) {
	args := m.Called(ctx, request)
	if v := args.Get(0); v != nil {
		return v.(*responses.OutstandingPayments), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentUsecase) ProcessBulkPayment(ctx context.Context, request *requests.BulkPayment) (*responses.BulkPayment, error) {
	args := m.Called(ctx, request)
	if v := args.Get(0); v != nil {
		return v.(*responses.BulkPayment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentUsecase) CreateCompositePayment(ctx context.Context, request *requests.CompositePayment) (*responses.CompositePayment, error) {
	args := m.Called(ctx, request)
	if v := args.Get(0); v != nil {
		return v.(*responses.CompositePayment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentUsecase) CancelPayment(ctx context.Context, paymentCode string, request *requests.CancelPayment) (*responses.Payment, error) {
	args := m.Called(ctx, paymentCode, request)
	return paymentResponseOrNil(args.Get(0)), args.Error(1)
}

func (m *MockPaymentUsecase) ExpireStalePayments(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func paymentOrNil(v interface{}) *models.Payment {
	if v == nil {
		return nil
	}
	return v.(*models.Payment)
}

func paymentsOrNil(v interface{}) []models.Payment {
	if v == nil {
		return nil
	}
	return v.([]models.Payment)
}

func paymentResponseOrNil(v interface{}) *responses.Payment {
	if v == nil {
		return nil
	}
	return v.(*responses.Payment)
}

type MockPaymentGatewayFactory struct {
	mock.Mock
}

func (m *MockPaymentGatewayFactory) GetGatewayService(method models.PaymentMethod) (contracts.PaymentGatewayService, error) {
	args := m.Called(method)
	if v := args.Get(0); v != nil {
		return v.(contracts.PaymentGatewayService), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPaymentGatewayFactory) GetGatewayServiceByName(name string) (contracts.PaymentGatewayService, error) {
	args := m.Called(name)
	if v := args.Get(0); v != nil {
		return v.(contracts.PaymentGatewayService), args.Error(1)
	}
	return nil, args.Error(1)
}
