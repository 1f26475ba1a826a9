package requests

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreatePayment struct {
	PaymentType   string          `json:"payment_type" validate:"required,oneof=APPOINTMENT_FEE LAB_TEST PRESCRIPTION OTHER"`
	ReferenceID   string          `json:"reference_id" validate:"required,max=100"`
	AppointmentID *string         `json:"appointment_id,omitempty" validate:"omitempty,max=100"`
	Amount        decimal.Decimal `json:"amount" validate:"required,gt=0"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=MOMO VNPAY CASH momo vnpay cash cod"`
	Description   *string         `json:"description,omitempty" validate:"omitempty,max=500"`
}

type CreateCashPayment struct {
	PaymentType   string          `json:"payment_type" validate:"required,oneof=APPOINTMENT_FEE LAB_TEST PRESCRIPTION OTHER"`
	ReferenceID   string          `json:"reference_id" validate:"required,max=100"`
	AppointmentID *string         `json:"appointment_id,omitempty" validate:"omitempty,max=100"`
	Amount        decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Notes         *string         `json:"notes,omitempty" validate:"omitempty,max=500"`

	// Filled from the authenticated principal, never from the body.
	CollectedBy string `json:"-"`
}

type BulkPayment struct {
	PaymentCodes  []string        `json:"payment_codes" validate:"required,min=1,dive,required"`
	TotalAmount   decimal.Decimal `json:"total_amount" validate:"required,gt=0"`
	PaymentMethod string          `json:"payment_method" validate:"omitempty,oneof=CASH cash cod"`
	Notes         *string         `json:"notes,omitempty" validate:"omitempty,max=500"`

	CollectedBy string `json:"-"`
}

type CompositePayment struct {
	AppointmentID string   `json:"appointment_id" validate:"required,max=100"`
	ReferenceIDs  []string `json:"reference_ids" validate:"required,min=1,dive,required"`
	PaymentMethod string   `json:"payment_method" validate:"required,oneof=MOMO VNPAY momo vnpay"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=500"`
}

type OutstandingPayments struct {
	ReferenceIDs []string `json:"reference_ids" validate:"required,min=1,dive,required"`
}

type CancelPayment struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

type SearchPayments struct {
	StartDate     *time.Time
	EndDate       *time.Time
	Status        string `validate:"omitempty,oneof=PENDING PROCESSING COMPLETED FAILED EXPIRED CANCELLED REFUNDED"`
	PaymentMethod string `validate:"omitempty,oneof=MOMO VNPAY CASH"`
	PaymentType   string `validate:"omitempty,oneof=APPOINTMENT_FEE LAB_TEST PRESCRIPTION OTHER COMPOSITE_PAYMENT"`
	Pagination
}

// GatewayNotification carries the raw fields a gateway posted back.
type GatewayNotification struct {
	Gateway string
	Fields  map[string]string
}
