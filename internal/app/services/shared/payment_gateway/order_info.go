package payment_gateway

import (
	"fmt"
	"hospital-billing-service/internal/app/models"
	"hospital-billing-service/internal/pkg/constvars"
)

// buildOrderInfo renders the human readable order line shown by the gateway.
func buildOrderInfo(payment *models.Payment) string {
	switch payment.PaymentType {
	case models.PaymentTypeAppointmentFee:
		return fmt.Sprintf(constvars.OrderInfoAppointmentFee, payment.ReferenceID)
	case models.PaymentTypeLabTest:
		return fmt.Sprintf(constvars.OrderInfoLabTest, payment.ReferenceID)
	case models.PaymentTypePrescription:
		return fmt.Sprintf(constvars.OrderInfoPrescription, payment.ReferenceID)
	case models.PaymentTypeComposite:
		return fmt.Sprintf(constvars.OrderInfoComposite, payment.ReferenceID)
	default:
		return fmt.Sprintf(constvars.OrderInfoOther, payment.ReferenceID)
	}
}
