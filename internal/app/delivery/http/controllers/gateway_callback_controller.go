package controllers

import (
	"context"
	"errors"
	"fmt"
	"hospital-billing-service/internal/app/config"
	"hospital-billing-service/internal/app/contracts"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/dto/requests"
	"hospital-billing-service/internal/pkg/exceptions"
	"hospital-billing-service/internal/pkg/utils"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// GatewayCallbackController receives the server-to-server notifications and
// browser returns sent by the payment gateways. Both routes are public; the
// gateway signature is the only authentication.
type GatewayCallbackController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
	InternalConfig *config.InternalConfig
}

var (
	gatewayCallbackControllerInstance *GatewayCallbackController
	onceGatewayCallbackController     sync.Once
)

func NewGatewayCallbackController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase, internalConfig *config.InternalConfig) *GatewayCallbackController {
	onceGatewayCallbackController.Do(func() {
		gatewayCallbackControllerInstance = newGatewayCallbackController(logger, paymentUsecase, internalConfig)
	})
	return gatewayCallbackControllerInstance
}

func newGatewayCallbackController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase, internalConfig *config.InternalConfig) *GatewayCallbackController {
	return &GatewayCallbackController{
		Log:            logger,
		PaymentUsecase: paymentUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *GatewayCallbackController) ProcessIPN(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())
	gateway := chi.URLParam(r, "gateway")

	utils.LogSecurityEvent(ctrl.Log, "payment_notification_received", requestID, "info",
		zap.String(constvars.LoggingPaymentGatewayKey, gateway),
		zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
		zap.String(constvars.LoggingUserAgentKey, r.UserAgent()),
	)

	fields, err := notificationFields(r)
	if err != nil {
		ctrl.Log.Error("GatewayCallbackController.ProcessIPN cannot read notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentGatewayKey, gateway),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	err = ctrl.PaymentUsecase.ProcessIPN(ctx, &requests.GatewayNotification{
		Gateway: gateway,
		Fields:  fields,
	})
	if err != nil {
		ctrl.Log.Error("GatewayCallbackController.ProcessIPN failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentGatewayKey, gateway),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, requestID, err)
		return
	}

	utils.LogBusinessEvent(ctrl.Log, "payment_notification_processed", requestID,
		zap.String(constvars.LoggingPaymentGatewayKey, gateway),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.PaymentIPNProcessedSuccess, nil)
}

func (ctrl *GatewayCallbackController) HandleGatewayReturn(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("GatewayCallbackController.HandleGatewayReturn called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryKey, r.URL.RawQuery),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig.App.RequestTimeoutInSeconds))
	defer cancel()

	target := ctrl.PaymentUsecase.HandleGatewayReturn(ctx, utils.FlattenValues(r.URL.Query()))
	utils.BuildRedirectResponse(w, r, target)
}

// notificationFields reads gateway fields from a JSON body, a form body or
// the query string, in that order of preference.
func notificationFields(r *http.Request) (map[string]string, error) {
	if r.Method == http.MethodGet {
		return utils.FlattenValues(r.URL.Query()), nil
	}

	if strings.HasPrefix(r.Header.Get(constvars.HeaderContentType), constvars.MIMEApplicationForm) {
		if err := r.ParseForm(); err != nil {
			return nil, exceptions.ErrCannotParseForm(err)
		}
		return utils.FlattenValues(r.Form), nil
	}

	var raw map[string]interface{}
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return utils.FlattenValues(r.URL.Query()), nil
		}
		return nil, exceptions.ErrCannotParseJSON(err)
	}

	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		fields[key] = stringifyField(value)
	}
	return fields, nil
}

// stringifyField renders a decoded JSON value the way the gateway signed it.
// Numbers keep their literal text.
func stringifyField(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(encoded)
	}
}
