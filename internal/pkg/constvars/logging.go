package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingQueryParamsKey    = "query_params"
	LoggingResponseKey       = "response"
	LoggingRequestKey        = "request"
	LoggingResponseLengthKey = "response_length"

	LoggingEndpointKey     = "endpoint"
	LoggingMethodKey       = "method"
	LoggingRemoteAddrKey   = "remote_addr"
	LoggingUserAgentKey    = "user_agent"
	LoggingQueryKey        = "query"
	LoggingStatusCodeKey   = "status_code"
	LoggingDurationKey     = "duration"
	LoggingSuccessKey      = "success"
	LoggingOperationKey    = "operation"
	LoggingErrorTypeKey    = "error_type"
	LoggingErrorCodeKey    = "error_code"
	LoggingErrorMessageKey = "error_message"

	LoggingPaymentIDKey       = "payment_id"
	LoggingPaymentCodeKey     = "payment_code"
	LoggingPaymentTypeKey     = "payment_type"
	LoggingPaymentStatusKey   = "payment_status"
	LoggingPaymentMethodKey   = "payment_method"
	LoggingPaymentGatewayKey  = "payment_gateway"
	LoggingReferenceIDKey     = "reference_id"
	LoggingAppointmentIDKey   = "appointment_id"
	LoggingPrescriptionIDKey  = "prescription_id"
	LoggingTransactionIDKey   = "transaction_id"
	LoggingAmountKey          = "amount"
	LoggingCountKey           = "count"
	LoggingUserIDKey          = "user_id"
	LoggingUserRoleKey        = "user_role"
	LoggingQueueKey           = "queue"
	LoggingLockKey            = "lock_key"
	LoggingDownstreamKey      = "downstream"
	LoggingDownstreamURLKey   = "downstream_url"
	LoggingGatewayResultKey   = "gateway_result_code"
	LoggingGatewayResponseKey = "gateway_response"
)
