package constvars

import "time"

const (
	ResourcePayments = "billings"
)

const (
	PaymentCodeCashPrefix      = "CASH-"
	PaymentCodeCompositePrefix = "COMP-"
	PaymentNoteSeparator       = " | "
	PaymentDefaultExpiry       = 15 * time.Minute
	PaymentDefaultExpiryBatch  = 100
	FrontendPaymentResultPath  = "/payment/success"
)

// Lock keys guarding notification processing and the expiry worker.
const (
	PaymentIPNLockKeyFormat    = "billing:ipn:%s"
	PaymentIPNLockTTL          = 30 * time.Second
	PaymentExpiryLeaderLock    = "billing:expiry:leader"
	PaymentExpiryLeaderLockTTL = 50 * time.Second
)

const (
	GatewayNameMomo  = "momo"
	GatewayNameVNPay = "vnpay"
	GatewayNameCash  = "cash"
	GatewayNameCOD   = "cod"
)

const (
	MomoResultCodeSuccess         = "0"
	VNPayResponseCodeSuccess      = "00"
	VNPayTransactionStatusSuccess = "00"
	VNPayDateTimeLayout           = "20060102150405"
	VNPaySecureHashField          = "vnp_SecureHash"
	VNPaySecureHashTypeField      = "vnp_SecureHashType"
	VNPayTxnRefField              = "vnp_TxnRef"
	MomoSignatureField            = "signature"
	DefaultClientIP               = "127.0.0.1"
)

const (
	OrderInfoAppointmentFee = "Thanh toan phi kham benh - %s"
	OrderInfoLabTest        = "Thanh toan xet nghiem - %s"
	OrderInfoPrescription   = "Thanh toan don thuoc - %s"
	OrderInfoComposite      = "Thanh toan tong hop - %s"
	OrderInfoOther          = "Thanh toan dich vu y te - %s"
)

const (
	PaymentNoteCollectedBy      = "Collected by: %s"
	PaymentNoteBulkPayment      = "Bulk payment: %s"
	PaymentNoteCancelled        = "Cancelled: %s"
	PaymentNoteDefaultCancel    = "Cancelled by user"
	PaymentNoteParentCanceled   = "Cancelled with composite payment %s"
	PaymentNoteExpired          = "Expired at %s"
	PaymentNoteCompositeDefault = "Composite payment for appointment %s"
)
