package payments

import (
	"context"
	"fmt"
	"hospital-billing-service/internal/app/config"
	"hospital-billing-service/internal/app/contracts"
	"hospital-billing-service/internal/app/models"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/dto/requests"
	"hospital-billing-service/internal/pkg/dto/responses"
	"hospital-billing-service/internal/pkg/exceptions"
	"hospital-billing-service/internal/pkg/utils"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type paymentUsecase struct {
	PaymentRepository contracts.PaymentRepository
	GatewayFactory    contracts.PaymentGatewayFactory
	Notifier          contracts.PaymentNotifier
	InternalConfig    *config.InternalConfig
	Location          *time.Location
	Log               *zap.Logger
	now               func() time.Time
}

var (
	paymentUsecaseInstance contracts.PaymentUsecase
	oncePaymentUsecase     sync.Once
)

func NewPaymentUsecase(
	paymentRepository contracts.PaymentRepository,
	gatewayFactory contracts.PaymentGatewayFactory,
	notifier contracts.PaymentNotifier,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	oncePaymentUsecase.Do(func() {
		paymentUsecaseInstance = newPaymentUsecase(paymentRepository, gatewayFactory, notifier, internalConfig, logger)
	})
	return paymentUsecaseInstance
}

func newPaymentUsecase(
	paymentRepository contracts.PaymentRepository,
	gatewayFactory contracts.PaymentGatewayFactory,
	notifier contracts.PaymentNotifier,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) *paymentUsecase {
	return &paymentUsecase{
		PaymentRepository: paymentRepository,
		GatewayFactory:    gatewayFactory,
		Notifier:          notifier,
		InternalConfig:    internalConfig,
		Location:          utils.LoadLocation(internalConfig.App.Timezone),
		Log:               logger,
		now:               time.Now,
	}
}

func (uc *paymentUsecase) paymentExpiry() time.Duration {
	if uc.InternalConfig.App.PaymentExpiredTimeInMinutes <= 0 {
		return constvars.PaymentDefaultExpiry
	}
	return time.Duration(uc.InternalConfig.App.PaymentExpiredTimeInMinutes) * time.Minute
}

// findExistingPayment returns the most recent payment that a new request for
// the same obligation would duplicate. Appointment fees are keyed by
// appointment, everything else by reference and type.
func (uc *paymentUsecase) findExistingPayment(ctx context.Context, paymentType models.PaymentType, referenceID string, appointmentID *string) (*models.Payment, error) {
	if paymentType == models.PaymentTypeAppointmentFee {
		key := referenceID
		if appointmentID != nil && *appointmentID != "" {
			key = *appointmentID
		}
		return uc.PaymentRepository.FindLatestByAppointmentAndType(ctx, key, paymentType)
	}
	return uc.PaymentRepository.FindLatestByReferenceAndType(ctx, referenceID, paymentType)
}

func (uc *paymentUsecase) newPayment(code string, paymentType models.PaymentType, referenceID string, appointmentID *string) *models.Payment {
	now := uc.now()
	expiredAt := now.Add(uc.paymentExpiry())
	payment := &models.Payment{
		PaymentCode: code,
		PaymentType: paymentType,
		ReferenceID: referenceID,
		Status:      models.PaymentStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		ExpiredAt:   &expiredAt,
	}

	switch {
	case appointmentID != nil && *appointmentID != "":
		id := *appointmentID
		payment.AppointmentID = &id
	case paymentType == models.PaymentTypeAppointmentFee:
		id := referenceID
		payment.AppointmentID = &id
	}
	if paymentType == models.PaymentTypePrescription {
		id := referenceID
		payment.PrescriptionID = &id
	}
	return payment
}

func appendDescription(payment *models.Payment, note string) {
	description := utils.AppendNote(payment.Description, note)
	payment.Description = &description
}

func (uc *paymentUsecase) CreatePayment(ctx context.Context, request *requests.CreatePayment) (*responses.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.CreatePayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentTypeKey, request.PaymentType),
		zap.String(constvars.LoggingReferenceIDKey, request.ReferenceID),
		zap.String(constvars.LoggingPaymentMethodKey, request.PaymentMethod),
	)

	method, ok := models.ParsePaymentMethod(request.PaymentMethod)
	if !ok {
		return nil, exceptions.ErrUnsupportedPaymentMethod(nil, request.PaymentMethod)
	}
	paymentType := models.PaymentType(request.PaymentType)

	existing, err := uc.findExistingPayment(ctx, paymentType, request.ReferenceID, request.AppointmentID)
	if err != nil {
		uc.Log.Error("paymentUsecase.CreatePayment error looking up existing payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case models.PaymentStatusCompleted:
			uc.Log.Warn("paymentUsecase.CreatePayment obligation already paid",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPaymentCodeKey, existing.PaymentCode),
			)
			return nil, exceptions.ErrPaymentAlreadyCompleted(nil, request.ReferenceID)
		case models.PaymentStatusPending, models.PaymentStatusProcessing:
			uc.Log.Info("paymentUsecase.CreatePayment returning in-flight payment",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPaymentCodeKey, existing.PaymentCode),
				zap.String(constvars.LoggingPaymentStatusKey, string(existing.Status)),
			)
			return responses.NewPayment(existing), nil
		}
	}

	gateway, err := uc.GatewayFactory.GetGatewayService(method)
	if err != nil {
		return nil, err
	}

	payment := uc.newPayment(utils.GeneratePaymentCode(""), paymentType, request.ReferenceID, request.AppointmentID)
	payment.Amount = request.Amount
	payment.PaymentMethod = method
	payment.Description = request.Description

	if err := uc.PaymentRepository.Create(ctx, payment); err != nil {
		uc.Log.Error("paymentUsecase.CreatePayment error saving payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	paymentURL, err := gateway.CreatePaymentURL(ctx, payment)
	if err != nil {
		uc.Log.Error("paymentUsecase.CreatePayment error creating gateway URL",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentCodeKey, payment.PaymentCode),
			zap.Error(err),
		)
		payment.Status = models.PaymentStatusFailed
		payment.UpdatedAt = uc.now()
		if updateErr := uc.PaymentRepository.Update(ctx, payment); updateErr != nil {
			uc.Log.Error("paymentUsecase.CreatePayment error marking payment failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(updateErr),
			)
		}
		return nil, err
	}

	if paymentURL != "" {
		payment.PaymentURL = &paymentURL
	}
	if method.IsOnline() {
		payment.Status = models.PaymentStatusProcessing
	}
	payment.UpdatedAt = uc.now()
	if err := uc.PaymentRepository.Update(ctx, payment); err != nil {
		uc.Log.Error("paymentUsecase.CreatePayment error updating payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "payment_created", requestID,
		zap.String(constvars.LoggingPaymentCodeKey, payment.PaymentCode),
		zap.String(constvars.LoggingPaymentTypeKey, string(payment.PaymentType)),
		zap.String(constvars.LoggingPaymentMethodKey, string(payment.PaymentMethod)),
		zap.String(constvars.LoggingAmountKey, payment.Amount.String()),
	)
	return responses.NewPayment(payment), nil
}

func (uc *paymentUsecase) CreateCashPayment(ctx context.Context, request *requests.CreateCashPayment) (*responses.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.CreateCashPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentTypeKey, request.PaymentType),
		zap.String(constvars.LoggingReferenceIDKey, request.ReferenceID),
		zap.String(constvars.LoggingUserIDKey, request.CollectedBy),
	)

	paymentType := models.PaymentType(request.PaymentType)
	existing, err := uc.findExistingPayment(ctx, paymentType, request.ReferenceID, request.AppointmentID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == models.PaymentStatusCompleted {
		return nil, exceptions.ErrPaymentAlreadyCompleted(nil, request.ReferenceID)
	}
	// A linked child is already part of its parent's checkout total.
	if existing != nil && existing.Status.IsOutstanding() && existing.IsChild() {
		uc.Log.Warn("paymentUsecase.CreateCashPayment payment is settled through its composite parent",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentCodeKey, existing.PaymentCode),
			zap.Int64("parent_payment_id", *existing.ParentPaymentID),
		)
		return nil, exceptions.ErrChildPaymentSettledByParent(nil, existing.PaymentCode, *existing.ParentPaymentID)
	}

	note := fmt.Sprintf(constvars.PaymentNoteCollectedBy, request.CollectedBy)
	if request.Notes != nil && strings.TrimSpace(*request.Notes) != "" {
		note = *request.Notes + constvars.PaymentNoteSeparator + note
	}
	now := uc.now()

	var payment *models.Payment
	if existing != nil && existing.Status.IsOutstanding() {
		payment = existing
		payment.Status = models.PaymentStatusCompleted
		payment.PaymentMethod = models.PaymentMethodCash
		payment.PaidAt = &now
		payment.UpdatedAt = now
		appendDescription(payment, note)
		if err := uc.PaymentRepository.Update(ctx, payment); err != nil {
			return nil, err
		}
	} else {
		payment = uc.newPayment(utils.GeneratePaymentCode(constvars.PaymentCodeCashPrefix), paymentType, request.ReferenceID, request.AppointmentID)
		payment.Amount = request.Amount
		payment.PaymentMethod = models.PaymentMethodCash
		payment.Status = models.PaymentStatusCompleted
		payment.PaidAt = &now
		payment.ExpiredAt = nil
		payment.Description = &note
		if err := uc.PaymentRepository.Create(ctx, payment); err != nil {
			return nil, err
		}
	}

	utils.LogBusinessEvent(uc.Log, "cash_payment_collected", requestID,
		zap.String(constvars.LoggingPaymentCodeKey, payment.PaymentCode),
		zap.String(constvars.LoggingAmountKey, payment.Amount.String()),
		zap.String(constvars.LoggingUserIDKey, request.CollectedBy),
	)

	uc.Notifier.NotifyPaymentCompleted(ctx, payment)
	return responses.NewPayment(payment), nil
}

func (uc *paymentUsecase) ProcessIPN(ctx context.Context, notification *requests.GatewayNotification) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.ProcessIPN called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentGatewayKey, notification.Gateway),
	)

	gateway, err := uc.GatewayFactory.GetGatewayServiceByName(notification.Gateway)
	if err != nil {
		return err
	}
	return gateway.ProcessIPN(ctx, notification.Fields)
}

// HandleGatewayReturn replays the browser return as a notification, in case
// the server-to-server call never arrived, and always hands back the
// frontend result page.
func (uc *paymentUsecase) HandleGatewayReturn(ctx context.Context, params map[string]string) string {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	gatewayName := constvars.GatewayNameMomo
	if params[constvars.VNPayTxnRefField] != "" {
		gatewayName = constvars.GatewayNameVNPay
	}
	uc.Log.Info("paymentUsecase.HandleGatewayReturn called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentGatewayKey, gatewayName),
	)

	err := uc.ProcessIPN(ctx, &requests.GatewayNotification{
		Gateway: gatewayName,
		Fields:  params,
	})
	if err != nil {
		uc.Log.Warn("paymentUsecase.HandleGatewayReturn replaying notification failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentGatewayKey, gatewayName),
			zap.Error(err),
		)
	}

	query := url.Values{}
	for key, value := range params {
		query.Set(key, value)
	}
	target := strings.TrimRight(uc.InternalConfig.App.FrontendUrl, "/") + constvars.FrontendPaymentResultPath
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}
	return target
}
