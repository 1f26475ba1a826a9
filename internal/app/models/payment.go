package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusCompleted  PaymentStatus = "COMPLETED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusExpired    PaymentStatus = "EXPIRED"
	PaymentStatusCancelled  PaymentStatus = "CANCELLED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED"
)

// IsOutstanding reports whether the payment still waits for money.
func (s PaymentStatus) IsOutstanding() bool {
	return s == PaymentStatusPending || s == PaymentStatusProcessing
}

type PaymentMethod string

const (
	PaymentMethodMomo  PaymentMethod = "MOMO"
	PaymentMethodVNPay PaymentMethod = "VNPAY"
	PaymentMethodCash  PaymentMethod = "CASH"
)

// IsOnline reports whether the method settles through an external gateway.
func (m PaymentMethod) IsOnline() bool {
	return m == PaymentMethodMomo || m == PaymentMethodVNPay
}

// ParsePaymentMethod accepts the enum names and the "cod" alias, case-insensitively.
func ParsePaymentMethod(value string) (PaymentMethod, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case string(PaymentMethodMomo):
		return PaymentMethodMomo, true
	case string(PaymentMethodVNPay):
		return PaymentMethodVNPay, true
	case string(PaymentMethodCash), "COD":
		return PaymentMethodCash, true
	}
	return "", false
}

type PaymentType string

const (
	PaymentTypeAppointmentFee PaymentType = "APPOINTMENT_FEE"
	PaymentTypeLabTest        PaymentType = "LAB_TEST"
	// PaymentTypePrescription is kept for historical rows; new prescriptions
	// are billed by the medicine service.
	PaymentTypePrescription PaymentType = "PRESCRIPTION"
	PaymentTypeOther        PaymentType = "OTHER"
	PaymentTypeComposite    PaymentType = "COMPOSITE_PAYMENT"
)

type Payment struct {
	ID              int64           `json:"id"`
	PaymentCode     string          `json:"payment_code"`
	PaymentType     PaymentType     `json:"payment_type"`
	ReferenceID     string          `json:"reference_id"`
	AppointmentID   *string         `json:"appointment_id,omitempty"`
	PrescriptionID  *string         `json:"prescription_id,omitempty"`
	ParentPaymentID *int64          `json:"parent_payment_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Status          PaymentStatus   `json:"status"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	PaymentURL      *string         `json:"payment_url,omitempty"`
	TransactionID   *string         `json:"transaction_id,omitempty"`
	Description     *string         `json:"description,omitempty"`
	Metadata        *string         `json:"metadata,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	ExpiredAt       *time.Time      `json:"expired_at,omitempty"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`

	// persistedStatus is the status the stored row had when this value was
	// loaded or last written. Updates are conditional on it.
	persistedStatus PaymentStatus
}

// MarkPersisted records the current status as the stored one.
func (p *Payment) MarkPersisted() {
	p.persistedStatus = p.Status
}

// PersistedStatus returns the stored status an update must still find.
// Payments never loaded from storage fall back to their current status.
func (p *Payment) PersistedStatus() PaymentStatus {
	if p.persistedStatus == "" {
		return p.Status
	}
	return p.persistedStatus
}

func (p *Payment) IsComposite() bool {
	return p.PaymentType == PaymentTypeComposite
}

func (p *Payment) IsChild() bool {
	return p.ParentPaymentID != nil
}

// PaymentFilter narrows payment searches. Zero values mean "any".
type PaymentFilter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	Status        PaymentStatus
	PaymentMethod PaymentMethod
	PaymentType   PaymentType
	Limit         int
	Offset        int
}

// PaymentNotification is a verified gateway notification reduced to what
// reconciliation needs.
type PaymentNotification struct {
	Gateway       PaymentMethod
	PaymentCode   string
	TransactionID string
	Success       bool
	ResultCode    string
	Amount        *decimal.Decimal
}
