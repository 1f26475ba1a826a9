package payment_gateway

import (
	"context"
	"fmt"
	"hospital-billing-service/internal/app/config"
	"hospital-billing-service/internal/app/contracts"
	"hospital-billing-service/internal/app/models"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/exceptions"
	"hospital-billing-service/internal/pkg/utils"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type vnpayService struct {
	Config     config.AppVNPay
	Reconciler contracts.PaymentReconciler
	Location   *time.Location
	Log        *zap.Logger
	now        func() time.Time
}

func NewVNPayService(internalConfig *config.InternalConfig, reconciler contracts.PaymentReconciler, logger *zap.Logger) contracts.PaymentGatewayService {
	return &vnpayService{
		Config:     internalConfig.VNPay,
		Reconciler: reconciler,
		Location:   utils.LoadLocation(internalConfig.App.Timezone),
		Log:        logger,
		now:        time.Now,
	}
}

func (s *vnpayService) Method() models.PaymentMethod {
	return models.PaymentMethodVNPay
}

func (s *vnpayService) amountFactor() int64 {
	if s.Config.AmountFactor <= 0 {
		return 100
	}
	return int64(s.Config.AmountFactor)
}

func (s *vnpayService) CreatePaymentURL(ctx context.Context, payment *models.Payment) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("vnpayService.CreatePaymentURL called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentCodeKey, payment.PaymentCode),
	)

	params := s.buildCreateParams(payment, utils.GetClientIPFromContext(ctx))
	query := buildVNPayQuery(params)
	secureHash := hmacSHA512Hex(s.Config.SecretKey, buildVNPayHashData(params))
	paymentURL := s.Config.PayUrl + "?" + query + "&" + constvars.VNPaySecureHashField + "=" + secureHash

	s.Log.Info("vnpayService.CreatePaymentURL succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentCodeKey, payment.PaymentCode),
	)
	return paymentURL, nil
}

func (s *vnpayService) buildCreateParams(payment *models.Payment, clientIP string) map[string]string {
	createdAt := s.now().In(s.Location)
	expireAt := createdAt.Add(time.Duration(s.Config.ExpireInMinutes) * time.Minute)

	params := map[string]string{
		"vnp_Version":    s.Config.Version,
		"vnp_Command":    s.Config.Command,
		"vnp_TmnCode":    s.Config.TmnCode,
		"vnp_Amount":     strconv.FormatInt(payment.Amount.IntPart()*s.amountFactor(), 10),
		"vnp_CurrCode":   s.Config.CurrCode,
		"vnp_TxnRef":     payment.PaymentCode,
		"vnp_OrderInfo":  buildOrderInfo(payment),
		"vnp_OrderType":  s.Config.OrderType,
		"vnp_Locale":     s.Config.Locale,
		"vnp_ReturnUrl":  s.Config.ReturnUrl,
		"vnp_IpAddr":     clientIP,
		"vnp_CreateDate": createdAt.Format(constvars.VNPayDateTimeLayout),
		"vnp_ExpireDate": expireAt.Format(constvars.VNPayDateTimeLayout),
	}
	if s.Config.BankCode != "" {
		params["vnp_BankCode"] = s.Config.BankCode
	}
	return params
}

func (s *vnpayService) ProcessIPN(ctx context.Context, fields map[string]string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("vnpayService.ProcessIPN called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentCodeKey, fields[constvars.VNPayTxnRefField]),
		zap.String(constvars.LoggingGatewayResultKey, fields["vnp_ResponseCode"]),
	)

	received := fields[constvars.VNPaySecureHashField]
	signed := make(map[string]string, len(fields))
	for key, value := range fields {
		if key == constvars.VNPaySecureHashField || key == constvars.VNPaySecureHashTypeField {
			continue
		}
		signed[key] = value
	}

	expected := hmacSHA512Hex(s.Config.SecretKey, buildVNPayHashData(signed))
	if !signaturesEqual(expected, received) {
		utils.LogSecurityEvent(s.Log, "payment_signature_invalid", requestID, "high",
			zap.String(constvars.LoggingPaymentGatewayKey, constvars.GatewayNameVNPay),
			zap.String(constvars.LoggingPaymentCodeKey, fields[constvars.VNPayTxnRefField]),
		)
		return exceptions.ErrInvalidPaymentSignature(nil, constvars.GatewayNameVNPay)
	}

	notification := &models.PaymentNotification{
		Gateway:       models.PaymentMethodVNPay,
		PaymentCode:   fields[constvars.VNPayTxnRefField],
		TransactionID: fields["vnp_TransactionNo"],
		Success: fields["vnp_ResponseCode"] == constvars.VNPayResponseCodeSuccess &&
			fields["vnp_TransactionStatus"] == constvars.VNPayTransactionStatusSuccess,
		ResultCode: fields["vnp_ResponseCode"],
	}
	if rawAmount := fields["vnp_Amount"]; rawAmount != "" {
		amount, err := decimal.NewFromString(rawAmount)
		if err != nil {
			s.Log.Error("vnpayService.ProcessIPN error parsing amount",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAmountKey, rawAmount),
				zap.Error(err),
			)
			return exceptions.ErrInputValidation(fmt.Errorf("invalid amount %q: %w", rawAmount, err))
		}
		amount = amount.Div(decimal.NewFromInt(s.amountFactor()))
		notification.Amount = &amount
	}

	return s.Reconciler.Apply(ctx, notification)
}
