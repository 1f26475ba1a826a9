package downstream

import (
	"context"
	"hospital-billing-service/internal/app/config"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/dto/requests"
	"hospital-billing-service/internal/pkg/exceptions"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestConfig(baseUrl string) *config.InternalConfig {
	return &config.InternalConfig{
		Gateway: config.AppGateway{Secret: "gateway-secret"},
		Services: config.AppServices{
			AppointmentBaseUrl:   baseUrl,
			MedicineBaseUrl:      baseUrl,
			HTTPTimeoutInSeconds: 5,
		},
	}
}

func TestAppointmentClient_ConfirmPayment(t *testing.T) {
	var body requests.ConfirmAppointmentPayment
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/internal/appointments/APT-1/confirm-payment", r.URL.Path)
		assert.Equal(t, "true", r.Header.Get(constvars.HeaderXInternalRequest))
		assert.Equal(t, "gateway-secret", r.Header.Get(constvars.HeaderXGatewaySecret))
		assert.Equal(t, "req-1", r.Header.Get(constvars.HeaderXRequestID))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newAppointmentClient(newTestConfig(server.URL), zap.NewNop())
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")

	err := client.ConfirmPayment(ctx, "APT-1", &requests.ConfirmAppointmentPayment{
		PaymentID: "PAY-1",
		Amount:    decimal.NewFromInt(150000),
	})

	require.NoError(t, err)
	assert.Equal(t, "PAY-1", body.PaymentID)
	assert.True(t, body.Amount.Equal(decimal.NewFromInt(150000)))
}

func TestAppointmentClient_ConfirmPayment_DownstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"already confirmed"}`))
	}))
	defer server.Close()

	client := newAppointmentClient(newTestConfig(server.URL), zap.NewNop())

	err := client.ConfirmPayment(context.Background(), "APT-1", &requests.ConfirmAppointmentPayment{PaymentID: "PAY-1"})

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusBadGateway, customErr.StatusCode)
	assert.Contains(t, customErr.DevMessage, "409")
}

func TestMedicineClient_ConfirmPrescriptionPayment(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, "/api/v1/internal/prescriptions/RX-9/confirm-payment", r.URL.Path)
		assert.Equal(t, "gateway-secret", r.Header.Get(constvars.HeaderXGatewaySecret))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newMedicineClient(newTestConfig(server.URL), zap.NewNop())

	require.NoError(t, client.ConfirmPrescriptionPayment(context.Background(), "RX-9"))
	assert.True(t, called)
}

func TestMedicineClient_Unreachable(t *testing.T) {
	client := newMedicineClient(newTestConfig("http://127.0.0.1:1"), zap.NewNop())

	err := client.ConfirmPrescriptionPayment(context.Background(), "RX-9")

	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.StatusInternalServerError, customErr.StatusCode)
}
