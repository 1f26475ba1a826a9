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
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
	InternalConfig *config.InternalConfig
}

var (
	paymentControllerInstance *PaymentController
	oncePaymentController     sync.Once
)

func NewPaymentController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase, internalConfig *config.InternalConfig) *PaymentController {
	oncePaymentController.Do(func() {
		paymentControllerInstance = newPaymentController(logger, paymentUsecase, internalConfig)
	})
	return paymentControllerInstance
}

func newPaymentController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase, internalConfig *config.InternalConfig) *PaymentController {
	return &PaymentController{
		Log:            logger,
		PaymentUsecase: paymentUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *PaymentController) timeout() time.Duration {
	return requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds)
}

func (ctrl *PaymentController) CreatePayment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("PaymentController.CreatePayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, utils.GetUserID(r.Context())),
	)

	request := new(requests.CreatePayment)
	if err := decodeAndValidate(r, request); err != nil {
		ctrl.Log.Error("PaymentController.CreatePayment invalid request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	response, err := ctrl.PaymentUsecase.CreatePayment(ctx, request)
	if err != nil {
		buildUsecaseError(ctrl.Log, w, requestID, err)
		return
	}

	ctrl.Log.Info("PaymentController.CreatePayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentCodeKey, response.PaymentCode),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PaymentCreatedSuccess, response)
}

func (ctrl *PaymentController) GetPaymentByID(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	rawID := chi.URLParam(r, "id")
	ctrl.Log.Info("PaymentController.GetPaymentByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, rawID),
	)

	paymentID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, "id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	response, err := ctrl.PaymentUsecase.GetPaymentByID(ctx, paymentID)
	if err != nil {
		buildUsecaseError(ctrl.Log, w, requestID, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentGetSuccess, response)
}

func (ctrl *PaymentController) GetPaymentByCode(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	paymentCode := chi.URLParam(r, "paymentCode")
	ctrl.Log.Info("PaymentController.GetPaymentByCode called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentCodeKey, paymentCode),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	response, err := ctrl.PaymentUsecase.GetPaymentByCode(ctx, paymentCode)
	if err != nil {
		buildUsecaseError(ctrl.Log, w, requestID, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentGetSuccess, response)
}

func (ctrl *PaymentController) GetPaymentByPrescriptionID(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	prescriptionID := chi.URLParam(r, "prescriptionId")
	ctrl.Log.Info("PaymentController.GetPaymentByPrescriptionID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPrescriptionIDKey, prescriptionID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	response, err := ctrl.PaymentUsecase.GetPaymentByPrescriptionID(ctx, prescriptionID)
	if err != nil {
		buildUsecaseError(ctrl.Log, w, requestID, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentGetSuccess, response)
}

func (ctrl *PaymentController) GetPaymentByReferenceID(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	referenceID := chi.URLParam(r, "referenceId")
	paymentType := r.URL.Query().Get("paymentType")
	ctrl.Log.Info("PaymentController.GetPaymentByReferenceID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferenceIDKey, referenceID),
		zap.String(constvars.LoggingPaymentTypeKey, paymentType),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	response, err := ctrl.PaymentUsecase.GetPaymentByReferenceID(ctx, referenceID, paymentType)
	if err != nil {
		buildUsecaseError(ctrl.Log, w, requestID, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentGetSuccess, response)
}

func (ctrl *PaymentController) GetPaymentByAppointmentID(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	appointmentID := chi.URLParam(r, "appointmentId")
	ctrl.Log.Info("PaymentController.GetPaymentByAppointmentID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	response, err := ctrl.PaymentUsecase.GetPaymentByAppointmentID(ctx, appointmentID)
	if err != nil {
		buildUsecaseError(ctrl.Log, w, requestID, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentGetSuccess, response)
}

func (ctrl *PaymentController) GetOutstandingPayments(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("PaymentController.GetOutstandingPayments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.OutstandingPayments)
	if err := decodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	response, err := ctrl.PaymentUsecase.GetOutstandingPayments(ctx, request)
	if err != nil {
		buildUsecaseError(ctrl.Log, w, requestID, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentOutstandingSuccess, response)
}

func (ctrl *PaymentController) CreateCompositePayment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("PaymentController.CreateCompositePayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, utils.GetUserID(r.Context())),
	)

	request := new(requests.CompositePayment)
	if err := decodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	response, err := ctrl.PaymentUsecase.CreateCompositePayment(ctx, request)
	if err != nil {
		buildUsecaseError(ctrl.Log, w, requestID, err)
		return
	}

	ctrl.Log.Info("PaymentController.CreateCompositePayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(response.Breakdown)),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.PaymentCompositeCreatedSuccess, response)
}

func (ctrl *PaymentController) CancelPayment(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	paymentCode := chi.URLParam(r, "paymentCode")
	ctrl.Log.Info("PaymentController.CancelPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentCodeKey, paymentCode),
		zap.String(constvars.LoggingUserIDKey, utils.GetUserID(r.Context())),
	)

	// The body is optional.
	request := new(requests.CancelPayment)
	if r.ContentLength > 0 {
		if err := decodeAndValidate(r, request); err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, err)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout())
	defer cancel()

	response, err := ctrl.PaymentUsecase.CancelPayment(ctx, paymentCode, request)
	if err != nil {
		buildUsecaseError(ctrl.Log, w, requestID, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentCancelledSuccess, response)
}
