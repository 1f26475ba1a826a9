package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":       "is required",
	"min":            "must be at least %s characters long",
	"max":            "maximum at %s characters long",
	"numeric":        "must be a number",
	"len":            "must be %s characters long",
	"oneof":          "must be one of [%s]",
	"gt":             "must be greater than %s",
	"gte":            "must be greater than or equal to %s",
	"lt":             "must be less than %s",
	"lte":            "must be less than or equal to %s",
	"url":            "must be a valid URL",
	"uuid":           "must be a valid UUID",
	"dive":           "is invalid",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":        true,
	"max":        true,
	"len":        true,
	"oneof":      true,
	"gt":         true,
	"gte":        true,
	"lt":         true,
	"lte":        true,
}

const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientNotAuthorized                 = "you are not authorized to access this resource"
	ErrClientNotLoggedIn                   = "please login to continue"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientTooManyRequests               = "too many requests, please try again later"

	ErrClientPaymentNotFound                  = "payment not found"
	ErrClientPaymentAlreadyCompleted          = "payment has already been completed"
	ErrClientPaymentCannotBeCancelled         = "payment cannot be cancelled in its current status"
	ErrClientChildPaymentCannotBeCancelled    = "payment belongs to a composite payment and cannot be cancelled on its own"
	ErrClientChildPaymentSettledByParent      = "payment belongs to a composite payment and is paid through it"
	ErrClientPaymentStatusConflict            = "payment was updated by another request, please reload and retry"
	ErrClientUnsupportedPaymentMethod         = "unsupported payment method type"
	ErrClientUnsupportedPaymentGateway        = "unsupported payment gateway"
	ErrClientInvalidPaymentSignature          = "invalid payment signature"
	ErrClientPaymentNotificationUnsupported   = "this payment method does not receive notifications"
	ErrClientPaymentNotificationInProgress    = "payment notification is being processed, please retry later"
	ErrClientPaymentAmountMismatch            = "payment amount does not match"
	ErrClientPaymentGatewayRequest            = "payment gateway is unavailable, please try again later"
	ErrClientBulkPaymentOnlineMethod          = "online payments cannot be settled at the counter"
	ErrClientBulkPaymentTotalMismatch         = "total amount does not match the selected payments"
	ErrClientBulkPaymentCodesNotFound         = "some payments were not found"
	ErrClientCompositePaymentMethod           = "composite payment only supports MOMO or VNPAY"
	ErrClientCompositePaymentNoOutstanding    = "there are no outstanding payments to combine"
	ErrClientOutstandingPaymentsMissingRefIDs = "reference ids are required"
)

const (
	ErrDevMissingRequestID       = "request id is missing from context"
	ErrDevCannotParseJSON        = "cannot parse JSON into struct or other data types"
	ErrDevCannotParseForm        = "cannot parse form body"
	ErrDevCannotParseQuery       = "cannot parse query parameter %s"
	ErrDevCannotMarshalJSON      = "cannot marshal data into JSON"
	ErrDevValidationFailed       = "validation failed"
	ErrDevURLParamValidation     = "url param %s is invalid"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevServerProcess          = "server failed to process the request"
	ErrDevRouteNotFound          = "route not found"
	ErrDevMethodNotAllowed       = "method not allowed"

	ErrDevAuthTokenMissing          = "authorization bearer token is missing"
	ErrDevAuthTokenInvalidOrExpired = "authorization token is invalid or expired"
	ErrDevAuthInvalidGatewaySecret  = "internal request carries an invalid gateway secret"
	ErrDevAuthRoleForbidden         = "role %s is not allowed to %s %s"
	ErrDevAuthEnforce               = "failed to evaluate authorization policy"

	ErrDevDBFailedToFindData       = "failed to find data in database"
	ErrDevDBFailedToIterateDataset = "failed to iterate dataset from database"
	ErrDevDBFailedToInsertData     = "failed to insert data to database"
	ErrDevDBFailedToUpdateData     = "failed to update data in database"
	ErrDevDBFailedToBeginTx        = "failed to begin database transaction"
	ErrDevDBFailedToCommitTx       = "failed to commit database transaction"

	ErrDevRedisGetData    = "failed to get data from redis"
	ErrDevRedisSetData    = "failed to set data to redis"
	ErrDevRedisDeleteData = "failed to delete data from redis"

	ErrDevRabbitMQPublishMessage = "failed to publish message to queue %s"

	ErrDevCreateHTTPRequest = "failed to create http request"
	ErrDevSendHTTPRequest   = "failed to send http request"
	ErrDevDownstreamStatus  = "downstream %s responded with status %d"

	ErrDevPaymentNotFound                = "payment %s not found"
	ErrDevPaymentAlreadyCompleted        = "payment %s is already completed"
	ErrDevPaymentCannotBeCancelled       = "payment %s has status %s and cannot be cancelled"
	ErrDevChildPaymentCannotBeCancelled  = "payment %s has parent payment %d"
	ErrDevChildPaymentSettledByParent    = "payment %s is settled through parent payment %d"
	ErrDevPaymentStatusConflict          = "payment %s is no longer %s"
	ErrDevUnsupportedPaymentMethod       = "no gateway registered for payment method %s"
	ErrDevUnsupportedPaymentGateway      = "unknown payment gateway name %s"
	ErrDevInvalidPaymentSignature        = "signature mismatch for %s notification"
	ErrDevPaymentNotificationUnsupported = "gateway %s does not support notifications"
	ErrDevPaymentNotificationInProgress  = "notification lock for payment %s is held"
	ErrDevPaymentAmountMismatch          = "payment %s amount %s does not match notified amount %s"
	ErrDevPaymentGatewayRequest          = "gateway %s request failed"
	ErrDevPaymentGatewayRejected         = "gateway %s rejected request with code %s: %s"
	ErrDevBulkPaymentOnlineMethod        = "bulk payment contains online payment %s"
	ErrDevBulkPaymentTotalMismatch       = "bulk payment total %s does not match expected %s"
	ErrDevBulkPaymentCodesNotFound       = "payment codes not found: %v"
	ErrDevCompositePaymentMethod         = "composite payment method %s is not online"
	ErrDevCompositePaymentNoOutstanding  = "no outstanding payments for references %v"
	ErrDevOutstandingMissingRefIDs       = "outstanding payments requested without reference ids"
	ErrDevLockerAcquire                  = "failed to acquire lock %s"
)
