package controllers

import (
	"context"
	"hospital-billing-service/internal/app/config"
	"hospital-billing-service/internal/app/contracts/mocks"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/dto/requests"
	"hospital-billing-service/internal/pkg/dto/responses"
	"hospital-billing-service/internal/pkg/exceptions"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newTestRouter(usecase *mocks.MockPaymentUsecase) *chi.Mux {
	cfg := &config.InternalConfig{App: config.App{RequestTimeoutInSeconds: 5}}
	payment := newPaymentController(zap.NewNop(), usecase, cfg)
	receptionist := newReceptionistController(zap.NewNop(), usecase, cfg)
	callback := newGatewayCallbackController(zap.NewNop(), usecase, cfg)

	router := chi.NewRouter()
	router.Post("/billings", payment.CreatePayment)
	router.Get("/billings/{id}", payment.GetPaymentByID)
	router.Get("/billings/reference/{referenceId}", payment.GetPaymentByReferenceID)
	router.Post("/billings/{paymentCode}/cancel", payment.CancelPayment)
	router.Post("/billings/cash-payment", receptionist.CreateCashPayment)
	router.Get("/billings/search", receptionist.SearchPayments)
	router.Post("/billings/ipn/{gateway}", callback.ProcessIPN)
	router.Get("/billings/ipn/{gateway}", callback.ProcessIPN)
	router.Get("/billings/return", callback.HandleGatewayReturn)
	return router
}

func TestPaymentController_CreatePayment(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		usecase := &mocks.MockPaymentUsecase{}
		usecase.On("CreatePayment", mock.Anything, mock.MatchedBy(func(req *requests.CreatePayment) bool {
			return req.ReferenceID == "APT-1" && req.Amount.Equal(decimal.NewFromInt(150000))
		})).Return(&responses.Payment{ID: 1, PaymentCode: "PAY-1"}, nil)

		body := `{"payment_type":"APPOINTMENT_FEE","reference_id":"APT-1","amount":150000,"payment_method":"MOMO"}`
		req := httptest.NewRequest(http.MethodPost, "/billings", strings.NewReader(body))
		rr := httptest.NewRecorder()

		newTestRouter(usecase).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"payment_code":"PAY-1"`)
		usecase.AssertExpectations(t)
	})

	t.Run("validation failure", func(t *testing.T) {
		usecase := &mocks.MockPaymentUsecase{}
		body := `{"payment_type":"PARKING","reference_id":"APT-1","amount":1,"payment_method":"MOMO"}`
		req := httptest.NewRequest(http.MethodPost, "/billings", strings.NewReader(body))
		rr := httptest.NewRecorder()

		newTestRouter(usecase).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		usecase.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		usecase := &mocks.MockPaymentUsecase{}
		req := httptest.NewRequest(http.MethodPost, "/billings", strings.NewReader(`{`))
		rr := httptest.NewRecorder()

		newTestRouter(usecase).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestPaymentController_GetPaymentByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		newTestRouter(&mocks.MockPaymentUsecase{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/billings/abc", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		usecase := &mocks.MockPaymentUsecase{}
		usecase.On("GetPaymentByID", mock.Anything, int64(42)).Return(nil, exceptions.ErrPaymentNotFound(nil, "42"))
		rr := httptest.NewRecorder()

		newTestRouter(usecase).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/billings/42", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestPaymentController_GetPaymentByReferenceID(t *testing.T) {
	usecase := &mocks.MockPaymentUsecase{}
	usecase.On("GetPaymentByReferenceID", mock.Anything, "LAB-1", "LAB_TEST").Return(&responses.Payment{PaymentCode: "PAY-9"}, nil)
	rr := httptest.NewRecorder()

	newTestRouter(usecase).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/billings/reference/LAB-1?paymentType=LAB_TEST", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	usecase.AssertExpectations(t)
}

func TestPaymentController_CancelPayment_WithoutBody(t *testing.T) {
	usecase := &mocks.MockPaymentUsecase{}
	usecase.On("CancelPayment", mock.Anything, "PAY-1", &requests.CancelPayment{}).Return(&responses.Payment{PaymentCode: "PAY-1", Status: "CANCELLED"}, nil)
	rr := httptest.NewRecorder()

	newTestRouter(usecase).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/billings/PAY-1/cancel", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	usecase.AssertExpectations(t)
}

func TestReceptionistController_CreateCashPayment_RecordsCollector(t *testing.T) {
	usecase := &mocks.MockPaymentUsecase{}
	usecase.On("CreateCashPayment", mock.Anything, mock.MatchedBy(func(req *requests.CreateCashPayment) bool {
		return req.CollectedBy == "staff-7"
	})).Return(&responses.Payment{PaymentCode: "CASH-1"}, nil)

	body := `{"payment_type":"LAB_TEST","reference_id":"LAB-1","amount":"80000","collected_by":"someone-else"}`
	req := httptest.NewRequest(http.MethodPost, "/billings/cash-payment", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), constvars.CONTEXT_USER_ID_KEY, "staff-7"))
	rr := httptest.NewRecorder()

	newTestRouter(usecase).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	usecase.AssertExpectations(t)
}

func TestReceptionistController_SearchPayments(t *testing.T) {
	t.Run("parses filters and paginates", func(t *testing.T) {
		usecase := &mocks.MockPaymentUsecase{}
		usecase.On("SearchPayments", mock.Anything, mock.MatchedBy(func(req *requests.SearchPayments) bool {
			return req.Status == "COMPLETED" &&
				req.PaymentMethod == "CASH" &&
				req.StartDate != nil && req.StartDate.Day() == 1 &&
				req.EndDate == nil &&
				req.Page == 2 && req.PageSize == 10
		})).Return(&responses.PaymentList{Payments: []responses.Payment{{ID: 11}}, Total: 25}, nil)
		rr := httptest.NewRecorder()

		newTestRouter(usecase).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/billings/search?status=completed&paymentMethod=cash&startDate=2025-01-01&page=2&size=10", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"total":25`)
		assert.Contains(t, rr.Body.String(), `"page":2`)
		usecase.AssertExpectations(t)
	})

	t.Run("bad date", func(t *testing.T) {
		rr := httptest.NewRecorder()
		newTestRouter(&mocks.MockPaymentUsecase{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/billings/search?endDate=yesterday", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("bad status", func(t *testing.T) {
		rr := httptest.NewRecorder()
		newTestRouter(&mocks.MockPaymentUsecase{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/billings/search?status=paid", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGatewayCallbackController_ProcessIPN(t *testing.T) {
	t.Run("json body keeps number literals", func(t *testing.T) {
		usecase := &mocks.MockPaymentUsecase{}
		usecase.On("ProcessIPN", mock.Anything, &requests.GatewayNotification{
			Gateway: "momo",
			Fields: map[string]string{
				"orderId":    "PAY-1",
				"amount":     "100000",
				"resultCode": "0",
				"transId":    "4088878653",
				"extraData":  "",
			},
		}).Return(nil)

		body := `{"orderId":"PAY-1","amount":100000,"resultCode":0,"transId":4088878653,"extraData":null}`
		req := httptest.NewRequest(http.MethodPost, "/billings/ipn/momo", strings.NewReader(body))
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
		rr := httptest.NewRecorder()

		newTestRouter(usecase).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		usecase.AssertExpectations(t)
	})

	t.Run("form body", func(t *testing.T) {
		usecase := &mocks.MockPaymentUsecase{}
		usecase.On("ProcessIPN", mock.Anything, &requests.GatewayNotification{
			Gateway: "vnpay",
			Fields:  map[string]string{"vnp_TxnRef": "PAY-2", "vnp_Amount": "10000000"},
		}).Return(nil)

		form := url.Values{"vnp_TxnRef": {"PAY-2"}, "vnp_Amount": {"10000000"}}
		req := httptest.NewRequest(http.MethodPost, "/billings/ipn/vnpay", strings.NewReader(form.Encode()))
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationForm)
		rr := httptest.NewRecorder()

		newTestRouter(usecase).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		usecase.AssertExpectations(t)
	})

	t.Run("query string", func(t *testing.T) {
		usecase := &mocks.MockPaymentUsecase{}
		usecase.On("ProcessIPN", mock.Anything, &requests.GatewayNotification{
			Gateway: "vnpay",
			Fields:  map[string]string{"vnp_TxnRef": "PAY-3"},
		}).Return(nil)
		rr := httptest.NewRecorder()

		newTestRouter(usecase).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/billings/ipn/vnpay?vnp_TxnRef=PAY-3", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		usecase.AssertExpectations(t)
	})

	t.Run("invalid signature", func(t *testing.T) {
		usecase := &mocks.MockPaymentUsecase{}
		usecase.On("ProcessIPN", mock.Anything, mock.Anything).Return(exceptions.ErrInvalidPaymentSignature(nil, "momo"))

		req := httptest.NewRequest(http.MethodPost, "/billings/ipn/momo", strings.NewReader(`{"orderId":"PAY-1"}`))
		rr := httptest.NewRecorder()

		newTestRouter(usecase).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestGatewayCallbackController_HandleGatewayReturn(t *testing.T) {
	usecase := &mocks.MockPaymentUsecase{}
	usecase.On("HandleGatewayReturn", mock.Anything, map[string]string{"orderId": "PAY-1", "resultCode": "0"}).
		Return("https://hospital.example.com/payment/success?orderId=PAY-1&resultCode=0")
	rr := httptest.NewRecorder()

	newTestRouter(usecase).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/billings/return?orderId=PAY-1&resultCode=0", nil))

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "https://hospital.example.com/payment/success?orderId=PAY-1&resultCode=0", rr.Header().Get("Location"))
}
