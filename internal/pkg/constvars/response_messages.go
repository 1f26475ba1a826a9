package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"
	ResponseHealthy = "billing service is healthy"

	// Payment messages
	PaymentCreatedSuccess             = "payment created successfully"
	PaymentCashCreatedSuccess         = "cash payment recorded successfully"
	PaymentIPNProcessedSuccess        = "payment notification processed successfully"
	PaymentGetSuccess                 = "get payment successfully"
	PaymentSearchSuccess              = "search payments successfully"
	PaymentTodaySuccess               = "get today payments successfully"
	PaymentOutstandingSuccess         = "get outstanding payments successfully"
	PaymentBulkProcessedSuccess       = "bulk payment processed successfully"
	PaymentBulkAllCompleted           = "All payments are already completed"
	PaymentCompositeCreatedSuccess    = "composite payment created successfully"
	PaymentCancelledSuccess           = "payment cancelled successfully"
	PaymentNoOutstandingForComposite  = "no outstanding payments for the given references"
	PaymentGatewayMomoOrderRejected   = "momo rejected the payment request"
	PaymentGatewayRequestUnsuccessful = "payment gateway request was not successful"
)
