package exceptions

import (
	"errors"
	"fmt"
	"hospital-billing-service/internal/pkg/constvars"
)

// ErrStalePaymentWrite marks a conditional payment update that matched no
// row because the stored status changed after the payment was read.
var ErrStalePaymentWrite = errors.New("stored payment status changed")

var (
	ErrMissingRequestID = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevMissingRequestID)
	}
	ErrURLParamValidation = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamValidation, paramName))
	}
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrRouteNotFound = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientCannotProcessRequest, constvars.ErrDevRouteNotFound)
	}
	ErrMethodNotAllowed = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusMethodNotAllowed, constvars.ErrClientCannotProcessRequest, constvars.ErrDevMethodNotAllowed)
	}
	ErrTooManyRequests = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusTooManyRequests, constvars.ErrClientTooManyRequests, constvars.ErrClientTooManyRequests)
	}

	// Parse
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotParseForm = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseForm)
	}
	ErrCannotParseQuery = func(err error, param string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevCannotParseQuery, param))
	}

	// Auth
	ErrTokenMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenMissing)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenInvalidOrExpired)
	}
	ErrInvalidGatewaySecret = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevAuthInvalidGatewaySecret)
	}
	ErrRoleForbidden = func(err error, role, method, path string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, fmt.Sprintf(constvars.ErrDevAuthRoleForbidden, role, method, path))
	}
	ErrAuthEnforce = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevAuthEnforce)
	}

	// Postgres DB
	ErrPostgresDBFindData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindData)
	}
	ErrPostgresDBIterateDataset = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDataset)
	}
	ErrPostgresDBUpdateData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateData)
	}
	ErrPostgresDBInsertData = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertData)
	}
	ErrPostgresDBBeginTx = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToBeginTx)
	}
	ErrPostgresDBCommitTx = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToCommitTx)
	}

	// Redis
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrLockerAcquire = func(err error, key string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevLockerAcquire, key))
	}

	// RabbitMQ
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, queueName))
	}

	// HTTP
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevSendHTTPRequest)
	}
	ErrDownstreamStatus = func(err error, downstream string, status int) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevDownstreamStatus, downstream, status))
	}

	// Payments
	ErrPaymentNotFound = func(err error, key string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientPaymentNotFound, fmt.Sprintf(constvars.ErrDevPaymentNotFound, key))
	}
	ErrPaymentAlreadyCompleted = func(err error, key string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientPaymentAlreadyCompleted, fmt.Sprintf(constvars.ErrDevPaymentAlreadyCompleted, key))
	}
	ErrPaymentCannotBeCancelled = func(err error, code, status string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientPaymentCannotBeCancelled, fmt.Sprintf(constvars.ErrDevPaymentCannotBeCancelled, code, status))
	}
	ErrChildPaymentCannotBeCancelled = func(err error, code string, parentID int64) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientChildPaymentCannotBeCancelled, fmt.Sprintf(constvars.ErrDevChildPaymentCannotBeCancelled, code, parentID))
	}
	ErrChildPaymentSettledByParent = func(err error, code string, parentID int64) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientChildPaymentSettledByParent, fmt.Sprintf(constvars.ErrDevChildPaymentSettledByParent, code, parentID))
	}
	ErrPaymentStatusConflict = func(err error, code, expected string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientPaymentStatusConflict, fmt.Sprintf(constvars.ErrDevPaymentStatusConflict, code, expected))
	}
	ErrUnsupportedPaymentMethod = func(err error, method string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientUnsupportedPaymentMethod, fmt.Sprintf(constvars.ErrDevUnsupportedPaymentMethod, method))
	}
	ErrUnsupportedPaymentGateway = func(err error, gateway string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientUnsupportedPaymentGateway, fmt.Sprintf(constvars.ErrDevUnsupportedPaymentGateway, gateway))
	}
	ErrInvalidPaymentSignature = func(err error, gateway string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusUnauthorized, constvars.ErrClientInvalidPaymentSignature, fmt.Sprintf(constvars.ErrDevInvalidPaymentSignature, gateway))
	}
	ErrPaymentNotificationUnsupported = func(err error, gateway string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientPaymentNotificationUnsupported, fmt.Sprintf(constvars.ErrDevPaymentNotificationUnsupported, gateway))
	}
	ErrPaymentNotificationInProgress = func(err error, code string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusConflict, constvars.ErrClientPaymentNotificationInProgress, fmt.Sprintf(constvars.ErrDevPaymentNotificationInProgress, code))
	}
	ErrPaymentAmountMismatch = func(err error, code, expected, notified string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientPaymentAmountMismatch, fmt.Sprintf(constvars.ErrDevPaymentAmountMismatch, code, expected, notified))
	}
	ErrPaymentGatewayRequest = func(err error, gateway string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientPaymentGatewayRequest, fmt.Sprintf(constvars.ErrDevPaymentGatewayRequest, gateway))
	}
	ErrPaymentGatewayRejected = func(err error, gateway, code, message string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadGateway, constvars.ErrClientPaymentGatewayRequest, fmt.Sprintf(constvars.ErrDevPaymentGatewayRejected, gateway, code, message))
	}
	ErrBulkPaymentOnlineMethod = func(err error, code string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientBulkPaymentOnlineMethod, fmt.Sprintf(constvars.ErrDevBulkPaymentOnlineMethod, code))
	}
	ErrBulkPaymentTotalMismatch = func(err error, requested, expected string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientBulkPaymentTotalMismatch, fmt.Sprintf(constvars.ErrDevBulkPaymentTotalMismatch, requested, expected))
	}
	ErrBulkPaymentCodesNotFound = func(err error, codes []string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusNotFound, constvars.ErrClientBulkPaymentCodesNotFound, fmt.Sprintf(constvars.ErrDevBulkPaymentCodesNotFound, codes))
	}
	ErrCompositePaymentMethod = func(err error, method string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCompositePaymentMethod, fmt.Sprintf(constvars.ErrDevCompositePaymentMethod, method))
	}
	ErrCompositePaymentNoOutstanding = func(err error, referenceIDs []string) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientCompositePaymentNoOutstanding, fmt.Sprintf(constvars.ErrDevCompositePaymentNoOutstanding, referenceIDs))
	}
	ErrOutstandingMissingReferenceIDs = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusBadRequest, constvars.ErrClientOutstandingPaymentsMissingRefIDs, constvars.ErrDevOutstandingMissingRefIDs)
	}

	// Default Server
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevServerProcess)
	}
)
