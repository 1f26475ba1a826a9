package responses

import (
	"hospital-billing-service/internal/app/models"
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	ID              int64           `json:"id"`
	PaymentCode     string          `json:"payment_code"`
	PaymentType     string          `json:"payment_type"`
	ReferenceID     string          `json:"reference_id"`
	AppointmentID   *string         `json:"appointment_id,omitempty"`
	PrescriptionID  *string         `json:"prescription_id,omitempty"`
	ParentPaymentID *int64          `json:"parent_payment_id,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentURL      *string         `json:"payment_url,omitempty"`
	TransactionID   *string         `json:"transaction_id,omitempty"`
	Description     *string         `json:"description,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	ExpiredAt       *time.Time      `json:"expired_at,omitempty"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
}

func NewPayment(p *models.Payment) *Payment {
	if p == nil {
		return nil
	}
	return &Payment{
		ID:              p.ID,
		PaymentCode:     p.PaymentCode,
		PaymentType:     string(p.PaymentType),
		ReferenceID:     p.ReferenceID,
		AppointmentID:   p.AppointmentID,
		PrescriptionID:  p.PrescriptionID,
		ParentPaymentID: p.ParentPaymentID,
		Amount:          p.Amount,
		Status:          string(p.Status),
		PaymentMethod:   string(p.PaymentMethod),
		PaymentURL:      p.PaymentURL,
		TransactionID:   p.TransactionID,
		Description:     p.Description,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		ExpiredAt:       p.ExpiredAt,
		PaidAt:          p.PaidAt,
	}
}

func NewPayments(payments []models.Payment) []Payment {
	result := make([]Payment, 0, len(payments))
	for i := range payments {
		result = append(result, *NewPayment(&payments[i]))
	}
	return result
}

type OutstandingPayments struct {
	AppointmentID string          `json:"appointment_id"`
	UnpaidCount   int             `json:"unpaid_count"`
	PaidCount     int             `json:"paid_count"`
	TotalUnpaid   decimal.Decimal `json:"total_unpaid"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	Unpaid        []Payment       `json:"unpaid"`
	Paid          []Payment       `json:"paid"`
}

type BulkPayment struct {
	Message              string          `json:"message"`
	ProcessedCount       int             `json:"processed_count"`
	SkippedCount         int             `json:"skipped_count"`
	TotalProcessedAmount decimal.Decimal `json:"total_processed_amount"`
	TotalSkippedAmount   decimal.Decimal `json:"total_skipped_amount"`
	ProcessedCodes       []string        `json:"processed_codes"`
	SkippedCodes         []string        `json:"skipped_codes"`
}

type CompositePaymentItem struct {
	PaymentCode string          `json:"payment_code"`
	PaymentType string          `json:"payment_type"`
	ReferenceID string          `json:"reference_id"`
	Amount      decimal.Decimal `json:"amount"`
}

type CompositePayment struct {
	Payment     *Payment               `json:"payment"`
	PaymentURL  string                 `json:"payment_url"`
	TotalAmount decimal.Decimal        `json:"total_amount"`
	Breakdown   []CompositePaymentItem `json:"breakdown"`
}

type PaymentList struct {
	Payments []Payment
	Total    int
}
