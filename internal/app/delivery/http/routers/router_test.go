package routers

import (
	"hospital-billing-service/internal/app/config"
	"hospital-billing-service/internal/app/contracts/mocks"
	"hospital-billing-service/internal/app/delivery/http/controllers"
	"hospital-billing-service/internal/app/delivery/http/middlewares"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/dto/requests"
	"hospital-billing-service/internal/pkg/dto/responses"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testJWTSecret = "router-test-secret"

func newTestServer(t *testing.T, usecase *mocks.MockPaymentUsecase) *chi.Mux {
	t.Helper()
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:            "api",
			Version:                   "v1",
			CORSAllowedOrigins:        []string{"*"},
			MaxRequests:               100,
			MaxTimeRequestsPerSeconds: 1,
			RequestTimeoutInSeconds:   5,
		},
		JWT:     config.AppJWT{Secret: testJWTSecret},
		Gateway: config.AppGateway{Secret: "gateway-secret"},
	}

	enforcer, err := casbin.NewEnforcer("../../../../../resources/rbac_model.conf", "../../../../../resources/rbac_policy.csv")
	require.NoError(t, err)

	router := chi.NewRouter()
	SetupRoutes(
		router,
		internalConfig,
		middlewares.NewMiddlewares(logger, enforcer, internalConfig),
		&controllers.PaymentController{Log: logger, PaymentUsecase: usecase, InternalConfig: internalConfig},
		&controllers.ReceptionistController{Log: logger, PaymentUsecase: usecase, InternalConfig: internalConfig},
		&controllers.GatewayCallbackController{Log: logger, PaymentUsecase: usecase, InternalConfig: internalConfig},
		controllers.NewHealthController(),
	)
	return router
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user-1",
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return constvars.AuthorizationBearerPrefix + token
}

func TestRouter_PublicRoutes(t *testing.T) {
	usecase := &mocks.MockPaymentUsecase{}
	usecase.On("ProcessIPN", mock.Anything, mock.MatchedBy(func(n *requests.GatewayNotification) bool {
		return n.Gateway == "vnpay" && n.Fields["vnp_TxnRef"] == "PAY-1"
	})).Return(nil)
	server := newTestServer(t, usecase)

	t.Run("health", func(t *testing.T) {
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/billings/health", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("ipn needs no token", func(t *testing.T) {
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/billings/ipn/vnpay?vnp_TxnRef=PAY-1", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		usecase.AssertExpectations(t)
	})

	t.Run("unknown route", func(t *testing.T) {
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), `"success":false`)
	})
}

func TestRouter_ProtectedRoutes(t *testing.T) {
	usecase := &mocks.MockPaymentUsecase{}
	usecase.On("GetPaymentByID", mock.Anything, int64(7)).Return(&responses.Payment{ID: 7}, nil)
	usecase.On("GetTodayPayments", mock.Anything, "").Return([]responses.Payment{}, nil)
	server := newTestServer(t, usecase)

	tests := []struct {
		name          string
		method        string
		path          string
		authorization string
		want          int
	}{
		{"missing token", http.MethodGet, "/api/v1/billings/7", "", http.StatusUnauthorized},
		{"patient reads payment", http.MethodGet, "/api/v1/billings/7", bearer(t, "patient"), http.StatusOK},
		{"patient cannot list today", http.MethodGet, "/api/v1/billings/today", bearer(t, "patient"), http.StatusForbidden},
		{"receptionist lists today", http.MethodGet, "/api/v1/billings/today", bearer(t, "receptionist"), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.authorization != "" {
				req.Header.Set(constvars.HeaderAuthorization, tt.authorization)
			}
			rr := httptest.NewRecorder()

			server.ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestRouter_InternalRequestCreatesPayment(t *testing.T) {
	usecase := &mocks.MockPaymentUsecase{}
	usecase.On("CreatePayment", mock.Anything, mock.Anything).Return(&responses.Payment{PaymentCode: "PAY-1"}, nil)
	server := newTestServer(t, usecase)

	body := `{"payment_type":"LAB_TEST","reference_id":"LAB-1","amount":80000,"payment_method":"VNPAY"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/billings", strings.NewReader(body))
	req.Header.Set(constvars.HeaderXInternalRequest, "true")
	req.Header.Set(constvars.HeaderXGatewaySecret, "gateway-secret")
	req.Header.Set(constvars.HeaderXUserID, "patient-1")
	req.Header.Set(constvars.HeaderXUserRole, constvars.RolePatient)
	rr := httptest.NewRecorder()

	server.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	usecase.AssertExpectations(t)
}
