package downstream

import (
	"context"
	"fmt"
	"hospital-billing-service/internal/app/config"
	"hospital-billing-service/internal/app/contracts"
	"hospital-billing-service/internal/pkg/constvars"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"
)

const confirmPrescriptionPaymentPath = "/api/v1/internal/prescriptions/%s/confirm-payment"

var (
	medicineClientInstance contracts.MedicineClient
	onceMedicineClient     sync.Once
)

type medicineClient struct {
	caller *internalCaller
	Log    *zap.Logger
}

func NewMedicineClient(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.MedicineClient {
	onceMedicineClient.Do(func() {
		medicineClientInstance = newMedicineClient(internalConfig, logger)
	})
	return medicineClientInstance
}

func newMedicineClient(internalConfig *config.InternalConfig, logger *zap.Logger) *medicineClient {
	return &medicineClient{
		caller: &internalCaller{
			Name:          "medicine-service",
			BaseUrl:       internalConfig.Services.MedicineBaseUrl,
			GatewaySecret: internalConfig.Gateway.Secret,
			HTTPClient: &http.Client{
				Timeout: time.Duration(internalConfig.Services.HTTPTimeoutInSeconds) * time.Second,
			},
			Log: logger,
		},
		Log: logger,
	}
}

func (c *medicineClient) ConfirmPrescriptionPayment(ctx context.Context, prescriptionID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("medicineClient.ConfirmPrescriptionPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPrescriptionIDKey, prescriptionID),
	)
	return c.caller.post(ctx, fmt.Sprintf(confirmPrescriptionPaymentPath, url.PathEscape(prescriptionID)), nil)
}
