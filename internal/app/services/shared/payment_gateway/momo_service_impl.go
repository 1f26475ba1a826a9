package payment_gateway

import (
	"bytes"
	"context"
	"fmt"
	"hospital-billing-service/internal/app/config"
	"hospital-billing-service/internal/app/contracts"
	"hospital-billing-service/internal/app/models"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/exceptions"
	"hospital-billing-service/internal/pkg/utils"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type momoService struct {
	Config     config.AppMomo
	Reconciler contracts.PaymentReconciler
	HTTPClient *http.Client
	Log        *zap.Logger
}

type momoCreateRequest struct {
	PartnerCode string `json:"partnerCode"`
	PartnerName string `json:"partnerName,omitempty"`
	StoreID     string `json:"storeId,omitempty"`
	RequestID   string `json:"requestId"`
	Amount      int64  `json:"amount"`
	OrderID     string `json:"orderId"`
	OrderInfo   string `json:"orderInfo"`
	RedirectUrl string `json:"redirectUrl"`
	IpnUrl      string `json:"ipnUrl"`
	Lang        string `json:"lang,omitempty"`
	RequestType string `json:"requestType"`
	ExtraData   string `json:"extraData"`
	Signature   string `json:"signature"`
}

type momoCreateResponse struct {
	PartnerCode  string         `json:"partnerCode"`
	OrderID      string         `json:"orderId"`
	RequestID    string         `json:"requestId"`
	Amount       int64          `json:"amount"`
	ResponseTime int64          `json:"responseTime"`
	Message      string         `json:"message"`
	ResultCode   momoResultCode `json:"resultCode"`
	PayUrl       string         `json:"payUrl"`
	Deeplink     string         `json:"deeplink"`
	QrCodeUrl    string         `json:"qrCodeUrl"`
}

// momoResultCode accepts the result code as either a JSON number or string.
type momoResultCode string

func (c *momoResultCode) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "null" {
		raw = ""
	}
	*c = momoResultCode(raw)
	return nil
}

func NewMomoService(internalConfig *config.InternalConfig, reconciler contracts.PaymentReconciler, logger *zap.Logger) contracts.PaymentGatewayService {
	return &momoService{
		Config:     internalConfig.Momo,
		Reconciler: reconciler,
		HTTPClient: &http.Client{
			Timeout: time.Duration(internalConfig.App.PaymentGatewayRequestTimeoutInSeconds) * time.Second,
		},
		Log: logger,
	}
}

func (s *momoService) Method() models.PaymentMethod {
	return models.PaymentMethodMomo
}

func (s *momoService) CreatePaymentURL(ctx context.Context, payment *models.Payment) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("momoService.CreatePaymentURL called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentCodeKey, payment.PaymentCode),
	)

	request := s.buildCreateRequest(payment)
	body, err := json.Marshal(request)
	if err != nil {
		s.Log.Error("momoService.CreatePaymentURL error marshaling request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, s.Config.ApiEndpoint, bytes.NewReader(body))
	if err != nil {
		s.Log.Error("momoService.CreatePaymentURL error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSONCharsetUTF8)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		s.Log.Error("momoService.CreatePaymentURL error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrPaymentGatewayRequest(err, constvars.GatewayNameMomo)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		s.Log.Error("momoService.CreatePaymentURL error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", exceptions.ErrPaymentGatewayRequest(err, constvars.GatewayNameMomo)
	}

	var result momoCreateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		s.Log.Error("momoService.CreatePaymentURL error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(err),
		)
		return "", exceptions.ErrPaymentGatewayRequest(err, constvars.GatewayNameMomo)
	}

	if string(result.ResultCode) != constvars.MomoResultCodeSuccess || result.PayUrl == "" {
		s.Log.Error("momoService.CreatePaymentURL gateway rejected request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentCodeKey, payment.PaymentCode),
			zap.String(constvars.LoggingGatewayResultKey, string(result.ResultCode)),
			zap.String(constvars.LoggingGatewayResponseKey, result.Message),
		)
		return "", exceptions.ErrPaymentGatewayRejected(nil, constvars.GatewayNameMomo, string(result.ResultCode), result.Message)
	}

	s.Log.Info("momoService.CreatePaymentURL succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentCodeKey, payment.PaymentCode),
	)
	return result.PayUrl, nil
}

func (s *momoService) buildCreateRequest(payment *models.Payment) *momoCreateRequest {
	request := &momoCreateRequest{
		PartnerCode: s.Config.PartnerCode,
		PartnerName: s.Config.PartnerName,
		StoreID:     s.Config.StoreID,
		RequestID:   payment.PaymentCode,
		Amount:      payment.Amount.IntPart(),
		OrderID:     payment.PaymentCode,
		OrderInfo:   buildOrderInfo(payment),
		RedirectUrl: s.Config.RedirectUrl,
		IpnUrl:      s.Config.IpnUrl,
		Lang:        s.Config.Lang,
		RequestType: s.Config.RequestType,
		ExtraData:   "",
	}
	request.Signature = hmacSHA256Hex(s.Config.SecretKey, s.buildCreateSignaturePayload(request))
	return request
}

// buildCreateSignaturePayload lists the fields in the fixed order MoMo
// expects for the create call.
func (s *momoService) buildCreateSignaturePayload(request *momoCreateRequest) string {
	return "accessKey=" + s.Config.AccessKey +
		"&amount=" + strconv.FormatInt(request.Amount, 10) +
		"&extraData=" + request.ExtraData +
		"&ipnUrl=" + request.IpnUrl +
		"&orderId=" + request.OrderID +
		"&orderInfo=" + request.OrderInfo +
		"&partnerCode=" + request.PartnerCode +
		"&redirectUrl=" + request.RedirectUrl +
		"&requestId=" + request.RequestID +
		"&requestType=" + request.RequestType
}

// buildIPNSignaturePayload signs every received field except the signature,
// plus the merchant's access key and partner code.
func (s *momoService) buildIPNSignaturePayload(fields map[string]string) string {
	signed := make(map[string]string, len(fields)+1)
	for key, value := range fields {
		if key == constvars.MomoSignatureField {
			continue
		}
		signed[key] = value
	}
	signed["accessKey"] = s.Config.AccessKey
	signed["partnerCode"] = s.Config.PartnerCode
	return buildRawSignature(signed)
}

func (s *momoService) ProcessIPN(ctx context.Context, fields map[string]string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("momoService.ProcessIPN called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("order_id", fields["orderId"]),
		zap.String(constvars.LoggingGatewayResultKey, fields["resultCode"]),
	)

	expected := hmacSHA256Hex(s.Config.SecretKey, s.buildIPNSignaturePayload(fields))
	if !signaturesEqual(expected, fields[constvars.MomoSignatureField]) {
		utils.LogSecurityEvent(s.Log, "payment_signature_invalid", requestID, "high",
			zap.String(constvars.LoggingPaymentGatewayKey, constvars.GatewayNameMomo),
			zap.String("order_id", fields["orderId"]),
		)
		return exceptions.ErrInvalidPaymentSignature(nil, constvars.GatewayNameMomo)
	}

	paymentCode := fields["requestId"]
	if paymentCode == "" {
		paymentCode = fields["orderId"]
	}

	notification := &models.PaymentNotification{
		Gateway:       models.PaymentMethodMomo,
		PaymentCode:   paymentCode,
		TransactionID: fields["transId"],
		Success:       fields["resultCode"] == constvars.MomoResultCodeSuccess,
		ResultCode:    fields["resultCode"],
	}
	if rawAmount := fields["amount"]; rawAmount != "" {
		amount, err := decimal.NewFromString(rawAmount)
		if err != nil {
			s.Log.Error("momoService.ProcessIPN error parsing amount",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAmountKey, rawAmount),
				zap.Error(err),
			)
			return exceptions.ErrInputValidation(fmt.Errorf("invalid amount %q: %w", rawAmount, err))
		}
		notification.Amount = &amount
	}

	return s.Reconciler.Apply(ctx, notification)
}
