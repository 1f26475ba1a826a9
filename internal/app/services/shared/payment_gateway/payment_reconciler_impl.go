package payment_gateway

import (
	"context"
	"fmt"
	"hospital-billing-service/internal/app/contracts"
	"hospital-billing-service/internal/app/models"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/exceptions"
	"hospital-billing-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

// paymentReconciler applies verified gateway notifications to stored
// payments. It is shared by every online gateway so that MoMo and VNPay
// settle composite payments the same way.
type paymentReconciler struct {
	PaymentRepository contracts.PaymentRepository
	Locker            contracts.LockerService
	Notifier          contracts.PaymentNotifier
	Log               *zap.Logger
	now               func() time.Time
}

func NewPaymentReconciler(
	paymentRepository contracts.PaymentRepository,
	locker contracts.LockerService,
	notifier contracts.PaymentNotifier,
	logger *zap.Logger,
) contracts.PaymentReconciler {
	return &paymentReconciler{
		PaymentRepository: paymentRepository,
		Locker:            locker,
		Notifier:          notifier,
		Log:               logger,
		now:               time.Now,
	}
}

func (r *paymentReconciler) Apply(ctx context.Context, notification *models.PaymentNotification) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	r.Log.Info("paymentReconciler.Apply called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentGatewayKey, string(notification.Gateway)),
		zap.String(constvars.LoggingPaymentCodeKey, notification.PaymentCode),
		zap.Bool(constvars.LoggingSuccessKey, notification.Success),
	)

	lockKey := fmt.Sprintf(constvars.PaymentIPNLockKeyFormat, notification.PaymentCode)
	acquired, lockValue, err := r.Locker.TryLock(ctx, lockKey, constvars.PaymentIPNLockTTL)
	if err != nil {
		r.Log.Error("paymentReconciler.Apply error acquiring notification lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLockKey, lockKey),
			zap.Error(err),
		)
		return exceptions.ErrLockerAcquire(err, lockKey)
	}
	if !acquired {
		r.Log.Warn("paymentReconciler.Apply notification already being processed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentCodeKey, notification.PaymentCode),
		)
		return exceptions.ErrPaymentNotificationInProgress(nil, notification.PaymentCode)
	}
	defer func() {
		if err := r.Locker.Unlock(ctx, lockKey, lockValue); err != nil {
			r.Log.Warn("paymentReconciler.Apply error releasing notification lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingLockKey, lockKey),
				zap.Error(err),
			)
		}
	}()

	payment, err := r.PaymentRepository.FindByPaymentCode(ctx, notification.PaymentCode)
	if err != nil {
		return err
	}
	if payment == nil {
		r.Log.Warn("paymentReconciler.Apply payment not found",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentCodeKey, notification.PaymentCode),
		)
		return exceptions.ErrPaymentNotFound(nil, notification.PaymentCode)
	}

	if payment.Status == models.PaymentStatusCompleted {
		r.Log.Info("paymentReconciler.Apply payment already completed, ignoring duplicate notification",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentCodeKey, payment.PaymentCode),
		)
		return nil
	}

	// Gateways only ever charge the integer part of the amount.
	if notification.Amount != nil && !notification.Amount.Equal(payment.Amount.Truncate(0)) {
		utils.LogSecurityEvent(r.Log, "payment_amount_mismatch", requestID, "high",
			zap.String(constvars.LoggingPaymentCodeKey, payment.PaymentCode),
			zap.String("expected_amount", payment.Amount.String()),
			zap.String("notified_amount", notification.Amount.String()),
		)
		return exceptions.ErrPaymentAmountMismatch(nil, payment.PaymentCode, payment.Amount.String(), notification.Amount.String())
	}

	if notification.Success && !payment.Status.IsOutstanding() {
		r.Log.Warn("paymentReconciler.Apply success notification for a closed payment, settling it anyway",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentCodeKey, payment.PaymentCode),
			zap.String(constvars.LoggingPaymentStatusKey, string(payment.Status)),
		)
	}

	now := r.now()
	status := models.PaymentStatusFailed
	if notification.Success {
		status = models.PaymentStatusCompleted
	}
	settle(payment, status, notification.TransactionID, now)
	updated := []*models.Payment{payment}

	var children []*models.Payment
	if payment.IsComposite() {
		childPayments, err := r.PaymentRepository.FindByParentID(ctx, payment.ID)
		if err != nil {
			return err
		}
		for i := range childPayments {
			child := &childPayments[i]
			if child.Status == models.PaymentStatusCompleted {
				continue
			}
			settle(child, status, notification.TransactionID, now)
			children = append(children, child)
		}
		updated = append(updated, children...)
	}

	if err := r.PaymentRepository.UpdateMany(ctx, updated); err != nil {
		return err
	}

	utils.LogBusinessEvent(r.Log, "payment_notification_applied", requestID,
		zap.String(constvars.LoggingPaymentCodeKey, payment.PaymentCode),
		zap.String(constvars.LoggingPaymentStatusKey, string(status)),
		zap.String(constvars.LoggingTransactionIDKey, notification.TransactionID),
		zap.Int(constvars.LoggingCountKey, len(children)),
	)

	if !notification.Success {
		return nil
	}
	if payment.IsComposite() {
		for _, child := range children {
			r.Notifier.NotifyPaymentCompleted(ctx, child)
		}
		return nil
	}
	r.Notifier.NotifyPaymentCompleted(ctx, payment)
	return nil
}

func settle(payment *models.Payment, status models.PaymentStatus, transactionID string, now time.Time) {
	payment.Status = status
	payment.UpdatedAt = now
	if transactionID != "" {
		txn := transactionID
		payment.TransactionID = &txn
	}
	if status == models.PaymentStatusCompleted {
		paidAt := now
		payment.PaidAt = &paidAt
	}
}
