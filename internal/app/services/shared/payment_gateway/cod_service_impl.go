package payment_gateway

import (
	"context"
	"hospital-billing-service/internal/app/contracts"
	"hospital-billing-service/internal/app/models"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

// codService backs cash collected at the counter; there is nothing to
// redirect to and no gateway to call us back.
type codService struct {
	Log *zap.Logger
}

func NewCODService(logger *zap.Logger) contracts.PaymentGatewayService {
	return &codService{
		Log: logger,
	}
}

func (s *codService) Method() models.PaymentMethod {
	return models.PaymentMethodCash
}

func (s *codService) CreatePaymentURL(ctx context.Context, payment *models.Payment) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("codService.CreatePaymentURL called, cash payments have no checkout URL",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentCodeKey, payment.PaymentCode),
	)
	return "", nil
}

func (s *codService) ProcessIPN(ctx context.Context, fields map[string]string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Warn("codService.ProcessIPN called for a method without notifications",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return exceptions.ErrPaymentNotificationUnsupported(nil, constvars.GatewayNameCOD)
}
