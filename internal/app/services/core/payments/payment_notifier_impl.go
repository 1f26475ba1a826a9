package payments

import (
	"context"
	"hospital-billing-service/internal/app/contracts"
	"hospital-billing-service/internal/app/models"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/dto/requests"
	"strconv"

	"go.uber.org/zap"
)

type paymentNotifier struct {
	AppointmentClient contracts.AppointmentClient
	MedicineClient    contracts.MedicineClient
	EventPublisher    contracts.PaymentEventPublisher
	Log               *zap.Logger
}

func NewPaymentNotifier(
	appointmentClient contracts.AppointmentClient,
	medicineClient contracts.MedicineClient,
	eventPublisher contracts.PaymentEventPublisher,
	logger *zap.Logger,
) contracts.PaymentNotifier {
	return &paymentNotifier{
		AppointmentClient: appointmentClient,
		MedicineClient:    medicineClient,
		EventPublisher:    eventPublisher,
		Log:               logger,
	}
}

// NotifyPaymentCompleted tells the owning service about a collected payment.
// Delivery is best effort; failures never undo the payment.
func (n *paymentNotifier) NotifyPaymentCompleted(ctx context.Context, payment *models.Payment) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	n.Log.Info("paymentNotifier.NotifyPaymentCompleted called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentCodeKey, payment.PaymentCode),
		zap.String(constvars.LoggingPaymentTypeKey, string(payment.PaymentType)),
	)

	var err error
	switch payment.PaymentType {
	case models.PaymentTypeAppointmentFee:
		appointmentID := payment.ReferenceID
		if payment.AppointmentID != nil && *payment.AppointmentID != "" {
			appointmentID = *payment.AppointmentID
		}
		err = n.AppointmentClient.ConfirmPayment(ctx, appointmentID, &requests.ConfirmAppointmentPayment{
			PaymentID: strconv.FormatInt(payment.ID, 10),
			Amount:    payment.Amount,
		})

	case models.PaymentTypeLabTest:
		err = n.EventPublisher.PublishLabTestPaymentConfirmed(ctx, &requests.LabTestPaymentConfirmed{
			LabTestID:     payment.ReferenceID,
			AppointmentID: payment.AppointmentID,
			PaymentID:     payment.ID,
			PaymentCode:   payment.PaymentCode,
			Amount:        payment.Amount,
			PaymentMethod: string(payment.PaymentMethod),
			TransactionID: payment.TransactionID,
			PaidAt:        payment.PaidAt,
		})

	case models.PaymentTypePrescription:
		prescriptionID := payment.ReferenceID
		if payment.PrescriptionID != nil && *payment.PrescriptionID != "" {
			prescriptionID = *payment.PrescriptionID
		}
		err = n.MedicineClient.ConfirmPrescriptionPayment(ctx, prescriptionID)

	default:
		n.Log.Info("paymentNotifier.NotifyPaymentCompleted no downstream for payment type",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentCodeKey, payment.PaymentCode),
			zap.String(constvars.LoggingReferenceIDKey, payment.ReferenceID),
		)
		return
	}

	if err != nil {
		n.Log.Error("paymentNotifier.NotifyPaymentCompleted downstream notification failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentCodeKey, payment.PaymentCode),
			zap.String(constvars.LoggingPaymentTypeKey, string(payment.PaymentType)),
			zap.Error(err),
		)
		return
	}

	n.Log.Info("paymentNotifier.NotifyPaymentCompleted succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentCodeKey, payment.PaymentCode),
	)
}
