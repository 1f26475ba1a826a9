package contracts

import (
	"context"
	"hospital-billing-service/internal/app/models"
)

type PaymentGatewayService interface {
	Method() models.PaymentMethod
	// CreatePaymentURL returns the URL the payer is sent to; an empty
	// string means the method has no online checkout.
	CreatePaymentURL(ctx context.Context, payment *models.Payment) (string, error)
	// ProcessIPN verifies a gateway notification and applies it.
	ProcessIPN(ctx context.Context, fields map[string]string) error
}

type PaymentGatewayFactory interface {
	GetGatewayService(method models.PaymentMethod) (PaymentGatewayService, error)
	GetGatewayServiceByName(name string) (PaymentGatewayService, error)
}

type PaymentReconciler interface {
	Apply(ctx context.Context, notification *models.PaymentNotification) error
}
