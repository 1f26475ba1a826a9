package requests

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConfirmAppointmentPayment is the body the appointment service expects on
// its internal confirm-payment endpoint.
type ConfirmAppointmentPayment struct {
	PaymentID string          `json:"paymentId"`
	Amount    decimal.Decimal `json:"amount"`
}

type LabTestPaymentConfirmed struct {
	LabTestID     string          `json:"lab_test_id"`
	AppointmentID *string         `json:"appointment_id,omitempty"`
	PaymentID     int64           `json:"payment_id"`
	PaymentCode   string          `json:"payment_code"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
}
