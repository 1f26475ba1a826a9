package contracts

import (
	"context"
	"hospital-billing-service/internal/pkg/dto/requests"
)

type AppointmentClient interface {
	ConfirmPayment(ctx context.Context, appointmentID string, request *requests.ConfirmAppointmentPayment) error
}

type MedicineClient interface {
	ConfirmPrescriptionPayment(ctx context.Context, prescriptionID string) error
}

type PaymentEventPublisher interface {
	PublishLabTestPaymentConfirmed(ctx context.Context, event *requests.LabTestPaymentConfirmed) error
}
