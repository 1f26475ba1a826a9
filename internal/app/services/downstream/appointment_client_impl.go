package downstream

import (
	"context"
	"fmt"
	"hospital-billing-service/internal/app/config"
	"hospital-billing-service/internal/app/contracts"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/dto/requests"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"
)

const confirmAppointmentPaymentPath = "/api/v1/internal/appointments/%s/confirm-payment"

var (
	appointmentClientInstance contracts.AppointmentClient
	onceAppointmentClient     sync.Once
)

type appointmentClient struct {
	caller *internalCaller
	Log    *zap.Logger
}

func NewAppointmentClient(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.AppointmentClient {
	onceAppointmentClient.Do(func() {
		appointmentClientInstance = newAppointmentClient(internalConfig, logger)
	})
	return appointmentClientInstance
}

func newAppointmentClient(internalConfig *config.InternalConfig, logger *zap.Logger) *appointmentClient {
	return &appointmentClient{
		caller: &internalCaller{
			Name:          "appointment-service",
			BaseUrl:       internalConfig.Services.AppointmentBaseUrl,
			GatewaySecret: internalConfig.Gateway.Secret,
			HTTPClient: &http.Client{
				Timeout: time.Duration(internalConfig.Services.HTTPTimeoutInSeconds) * time.Second,
			},
			Log: logger,
		},
		Log: logger,
	}
}

func (c *appointmentClient) ConfirmPayment(ctx context.Context, appointmentID string, request *requests.ConfirmAppointmentPayment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("appointmentClient.ConfirmPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return c.caller.post(ctx, fmt.Sprintf(confirmAppointmentPaymentPath, url.PathEscape(appointmentID)), request)
}
