package contracts

import (
	"context"
	"hospital-billing-service/internal/app/models"
	"hospital-billing-service/internal/pkg/dto/requests"
	"hospital-billing-service/internal/pkg/dto/responses"
	"time"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	Update(ctx context.Context, payment *models.Payment) error
	// UpdateMany persists every payment in one transaction.
	UpdateMany(ctx context.Context, payments []*models.Payment) error
	FindByID(ctx context.Context, paymentID int64) (*models.Payment, error)
	FindByPaymentCode(ctx context.Context, paymentCode string) (*models.Payment, error)
	FindByPaymentCodes(ctx context.Context, paymentCodes []string) ([]models.Payment, error)
	FindLatestByReferenceAndType(ctx context.Context, referenceID string, paymentType models.PaymentType) (*models.Payment, error)
	FindLatestByReference(ctx context.Context, referenceID string) (*models.Payment, error)
	FindLatestByAppointmentAndType(ctx context.Context, appointmentID string, paymentType models.PaymentType) (*models.Payment, error)
	FindLatestByPrescription(ctx context.Context, prescriptionID string) (*models.Payment, error)
	FindAllByAppointment(ctx context.Context, appointmentID string) ([]models.Payment, error)
	FindByParentID(ctx context.Context, parentPaymentID int64) ([]models.Payment, error)
	FindOutstandingForComposite(ctx context.Context, referenceIDs []string) ([]models.Payment, error)
	FindCreatedBetween(ctx context.Context, start, end time.Time, status models.PaymentStatus) ([]models.Payment, error)
	FindExpirable(ctx context.Context, now time.Time, limit int) ([]models.Payment, error)
	Search(ctx context.Context, filter *models.PaymentFilter) ([]models.Payment, int, error)
}

type PaymentUsecase interface {
	CreatePayment(ctx context.Context, request *requests.CreatePayment) (*responses.Payment, error)
	CreateCashPayment(ctx context.Context, request *requests.CreateCashPayment) (*responses.Payment, error)
	ProcessIPN(ctx context.Context, notification *requests.GatewayNotification) error
	HandleGatewayReturn(ctx context.Context, params map[string]string) string
	GetPaymentByID(ctx context.Context, paymentID int64) (*responses.Payment, error)
	GetPaymentByCode(ctx context.Context, paymentCode string) (*responses.Payment, error)
	GetPaymentByPrescriptionID(ctx context.Context, prescriptionID string) (*responses.Payment, error)
	GetPaymentByReferenceID(ctx context.Context, referenceID string, paymentType string) (*responses.Payment, error)
	GetPaymentByAppointmentID(ctx context.Context, appointmentID string) (*responses.Payment, error)
	SearchPayments(ctx context.Context, request *requests.SearchPayments) (*responses.PaymentList, error)
	GetTodayPayments(ctx context.Context, status string) ([]responses.Payment, error)
	GetOutstandingPayments(ctx context.Context, request *requests.OutstandingPayments) (*responses.OutstandingPayments, error)
	ProcessBulkPayment(ctx context.Context, request *requests.BulkPayment) (*responses.BulkPayment, error)
	CreateCompositePayment(ctx context.Context, request *requests.CompositePayment) (*responses.CompositePayment, error)
	CancelPayment(ctx context.Context, paymentCode string, request *requests.CancelPayment) (*responses.Payment, error)
	ExpireStalePayments(ctx context.Context, now time.Time) (int, error)
}

// PaymentNotifier tells the owning service that a payment was collected.
// Implementations log failures instead of returning them.
type PaymentNotifier interface {
	NotifyPaymentCompleted(ctx context.Context, payment *models.Payment)
}

type PaymentExpiryWorker interface {
	Start(ctx context.Context)
	Stop()
}
