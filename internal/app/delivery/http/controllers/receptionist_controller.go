package controllers

import (
	"context"
	"hospital-billing-service/internal/app/config"
	"hospital-billing-service/internal/app/contracts"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/dto/requests"
	"hospital-billing-service/internal/pkg/exceptions"
	"hospital-billing-service/internal/pkg/utils"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ReceptionistController serves the counter endpoints: cash collection,
// bulk settlement and the daily and search listings.
type ReceptionistController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
	InternalConfig *config.InternalConfig
}

var (
	receptionistControllerInstance *ReceptionistController
	onceReceptionistController     sync.Once
)

func NewReceptionistController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase, internalConfig *config.InternalConfig) *ReceptionistController {
	onceReceptionistController.Do(func() {
		receptionistControllerInstance = newReceptionistController(logger, paymentUsecase, internalConfig)
	})
	return receptionistControllerInstance
}

func newReceptionistController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase, internalConfig *config.InternalConfig) *ReceptionistController {
	return &ReceptionistController{
		Log:            logger,
		PaymentUsecase: paymentUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *ReceptionistController) timeout() time.Duration {
	return requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds)
}

// collector names the staff member recorded on counter payments.
func collector(r *http.Request) string {
	if userID := utils.GetUserID(r.Context()); userID != "" {
		return userID
	}
	return utils.GetUserRole(r.Context())
}

func (ctrl *ReceptionistController) CreateCashPayment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("ReceptionistController.CreateCashPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, utils.GetUserID(r.Context())),
	)

	request := new(requests.CreateCashPayment)
	if err := decodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.CollectedBy = collector(r)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	response, err := ctrl.PaymentUsecase.CreateCashPayment(ctx, request)
	if err != nil {
		buildUsecaseError(ctrl.Log, w, requestID, err)
		return
	}

	ctrl.Log.Info("ReceptionistController.CreateCashPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentCodeKey, response.PaymentCode),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PaymentCashCreatedSuccess, response)
}

func (ctrl *ReceptionistController) ProcessBulkPayment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("ReceptionistController.ProcessBulkPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, utils.GetUserID(r.Context())),
	)

	request := new(requests.BulkPayment)
	if err := decodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	request.CollectedBy = collector(r)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	response, err := ctrl.PaymentUsecase.ProcessBulkPayment(ctx, request)
	if err != nil {
		buildUsecaseError(ctrl.Log, w, requestID, err)
		return
	}

	ctrl.Log.Info("ReceptionistController.ProcessBulkPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, response.ProcessedCount),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, response.Message, response)
}

func (ctrl *ReceptionistController) GetTodayPayments(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	status := r.URL.Query().Get("status")
	ctrl.Log.Info("ReceptionistController.GetTodayPayments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentStatusKey, status),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	response, err := ctrl.PaymentUsecase.GetTodayPayments(ctx, status)
	if err != nil {
		buildUsecaseError(ctrl.Log, w, requestID, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentTodaySuccess, response)
}

func (ctrl *ReceptionistController) SearchPayments(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	query := r.URL.Query()
	ctrl.Log.Info("ReceptionistController.SearchPayments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryKey, r.URL.RawQuery),
	)

	request := &requests.SearchPayments{
		Status:        strings.ToUpper(query.Get("status")),
		PaymentMethod: strings.ToUpper(query.Get("paymentMethod")),
		PaymentType:   strings.ToUpper(query.Get("paymentType")),
		Pagination:    *utils.BuildPaginationRequest(r),
	}
	for param, target := range map[string]**time.Time{"startDate": &request.StartDate, "endDate": &request.EndDate} {
		raw := query.Get(param)
		if raw == "" {
			continue
		}
		parsed, err := utils.ParseQueryTime(raw)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseQuery(err, param))
			return
		}
		*target = &parsed
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	result, err := ctrl.PaymentUsecase.SearchPayments(ctx, request)
	if err != nil {
		buildUsecaseError(ctrl.Log, w, requestID, err)
		return
	}

	pagination := utils.BuildPaginationResponse(result.Total, request.Page, request.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.PaymentSearchSuccess, pagination, result.Payments)
}
