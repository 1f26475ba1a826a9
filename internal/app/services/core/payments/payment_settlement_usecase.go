package payments

import (
	"context"
	"errors"
	"fmt"
	"hospital-billing-service/internal/app/models"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/dto/requests"
	"hospital-billing-service/internal/pkg/dto/responses"
	"hospital-billing-service/internal/pkg/exceptions"
	"hospital-billing-service/internal/pkg/utils"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type compositeMetadataItem struct {
	PaymentID   int64           `json:"paymentId"`
	PaymentCode string          `json:"paymentCode"`
	PaymentType string          `json:"paymentType"`
	ReferenceID string          `json:"referenceId"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty"`
}

type compositeMetadata struct {
	Breakdown []compositeMetadataItem `json:"breakdown"`
	ItemCount int                     `json:"itemCount"`
}

func uniqueCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	result := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if _, ok := seen[code]; ok || code == "" {
			continue
		}
		seen[code] = struct{}{}
		result = append(result, code)
	}
	return result
}

// ProcessBulkPayment settles several counter payments at once. The requested
// total must match what the listed payments add up to, including the ones
// already paid, so the cashier's sum is checked against the whole bill.
func (uc *paymentUsecase) ProcessBulkPayment(ctx context.Context, request *requests.BulkPayment) (*responses.BulkPayment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.ProcessBulkPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Strings("payment_codes", request.PaymentCodes),
		zap.String(constvars.LoggingAmountKey, request.TotalAmount.String()),
	)

	method := models.PaymentMethodCash
	if request.PaymentMethod != "" {
		parsed, ok := models.ParsePaymentMethod(request.PaymentMethod)
		if !ok || parsed.IsOnline() {
			return nil, exceptions.ErrUnsupportedPaymentMethod(nil, request.PaymentMethod)
		}
		method = parsed
	}

	codes := uniqueCodes(request.PaymentCodes)
	payments, err := uc.PaymentRepository.FindByPaymentCodes(ctx, codes)
	if err != nil {
		return nil, err
	}

	found := make(map[string]struct{}, len(payments))
	for _, payment := range payments {
		found[payment.PaymentCode] = struct{}{}
	}
	var missing []string
	for _, code := range codes {
		if _, ok := found[code]; !ok {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		return nil, exceptions.ErrBulkPaymentCodesNotFound(nil, missing)
	}

	var unpaid, paid []*models.Payment
	unpaidSum, paidSum := decimal.Zero, decimal.Zero
	for i := range payments {
		payment := &payments[i]
		if payment.PaymentMethod.IsOnline() {
			return nil, exceptions.ErrBulkPaymentOnlineMethod(nil, payment.PaymentCode)
		}
		switch {
		case payment.Status.IsOutstanding():
			if payment.IsChild() {
				return nil, exceptions.ErrChildPaymentSettledByParent(nil, payment.PaymentCode, *payment.ParentPaymentID)
			}
			unpaid = append(unpaid, payment)
			unpaidSum = unpaidSum.Add(payment.Amount)
		case payment.Status == models.PaymentStatusCompleted:
			paid = append(paid, payment)
			paidSum = paidSum.Add(payment.Amount)
		}
	}

	result := &responses.BulkPayment{
		ProcessedCount:       0,
		SkippedCount:         len(paid),
		TotalProcessedAmount: decimal.Zero,
		TotalSkippedAmount:   paidSum,
		ProcessedCodes:       []string{},
		SkippedCodes:         codesOf(paid),
	}

	if len(unpaid) == 0 {
		result.Message = constvars.PaymentBulkAllCompleted
		return result, nil
	}

	if grandTotal := unpaidSum.Add(paidSum); !grandTotal.Equal(request.TotalAmount) {
		return nil, exceptions.ErrBulkPaymentTotalMismatch(nil, request.TotalAmount.String(), grandTotal.String())
	}

	note := fmt.Sprintf(constvars.PaymentNoteCollectedBy, request.CollectedBy)
	if request.Notes != nil && strings.TrimSpace(*request.Notes) != "" {
		note = *request.Notes + constvars.PaymentNoteSeparator + note
	}
	note = fmt.Sprintf(constvars.PaymentNoteBulkPayment, note)

	now := uc.now()
	for _, payment := range unpaid {
		paidAt := now
		payment.Status = models.PaymentStatusCompleted
		payment.PaymentMethod = method
		payment.PaidAt = &paidAt
		payment.UpdatedAt = now
		appendDescription(payment, note)
	}
	if err := uc.PaymentRepository.UpdateMany(ctx, unpaid); err != nil {
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "bulk_payment_processed", requestID,
		zap.Int(constvars.LoggingCountKey, len(unpaid)),
		zap.String(constvars.LoggingAmountKey, unpaidSum.String()),
		zap.String(constvars.LoggingUserIDKey, request.CollectedBy),
	)

	for _, payment := range unpaid {
		uc.Notifier.NotifyPaymentCompleted(ctx, payment)
	}

	result.Message = constvars.PaymentBulkProcessedSuccess
	result.ProcessedCount = len(unpaid)
	result.TotalProcessedAmount = unpaidSum
	result.ProcessedCodes = codesOf(unpaid)
	return result, nil
}

func codesOf(payments []*models.Payment) []string {
	codes := make([]string, 0, len(payments))
	for _, payment := range payments {
		codes = append(codes, payment.PaymentCode)
	}
	return codes
}

// CreateCompositePayment bundles the outstanding payments of a visit under a
// single online checkout. The children are linked to the new parent and
// follow its outcome.
func (uc *paymentUsecase) CreateCompositePayment(ctx context.Context, request *requests.CompositePayment) (*responses.CompositePayment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.CreateCompositePayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
		zap.Strings("reference_ids", request.ReferenceIDs),
		zap.String(constvars.LoggingPaymentMethodKey, request.PaymentMethod),
	)

	method, ok := models.ParsePaymentMethod(request.PaymentMethod)
	if !ok || !method.IsOnline() {
		return nil, exceptions.ErrCompositePaymentMethod(nil, request.PaymentMethod)
	}

	outstanding, err := uc.PaymentRepository.FindOutstandingForComposite(ctx, request.ReferenceIDs)
	if err != nil {
		return nil, err
	}
	if len(outstanding) == 0 {
		return nil, exceptions.ErrCompositePaymentNoOutstanding(nil, request.ReferenceIDs)
	}

	gateway, err := uc.GatewayFactory.GetGatewayService(method)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	metadata := compositeMetadata{
		Breakdown: make([]compositeMetadataItem, 0, len(outstanding)),
		ItemCount: len(outstanding),
	}
	breakdown := make([]responses.CompositePaymentItem, 0, len(outstanding))
	for _, child := range outstanding {
		total = total.Add(child.Amount)
		metadata.Breakdown = append(metadata.Breakdown, compositeMetadataItem{
			PaymentID:   child.ID,
			PaymentCode: child.PaymentCode,
			PaymentType: string(child.PaymentType),
			ReferenceID: child.ReferenceID,
			Amount:      child.Amount,
			Description: child.Description,
		})
		breakdown = append(breakdown, responses.CompositePaymentItem{
			PaymentCode: child.PaymentCode,
			PaymentType: string(child.PaymentType),
			ReferenceID: child.ReferenceID,
			Amount:      child.Amount,
		})
	}

	appointmentID := request.AppointmentID
	parent := uc.newPayment(utils.GeneratePaymentCode(constvars.PaymentCodeCompositePrefix), models.PaymentTypeComposite, appointmentID, &appointmentID)
	parent.Amount = total
	parent.PaymentMethod = method
	description := fmt.Sprintf(constvars.PaymentNoteCompositeDefault, appointmentID)
	if request.Description != nil && strings.TrimSpace(*request.Description) != "" {
		description = *request.Description
	}
	parent.Description = &description

	encoded, err := json.Marshal(metadata)
	if err != nil {
		uc.Log.Warn("paymentUsecase.CreateCompositePayment error encoding metadata",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		encoded = []byte("{}")
	}
	metadataJSON := string(encoded)
	parent.Metadata = &metadataJSON

	if err := uc.PaymentRepository.Create(ctx, parent); err != nil {
		return nil, err
	}

	paymentURL, err := gateway.CreatePaymentURL(ctx, parent)
	if err != nil {
		uc.Log.Error("paymentUsecase.CreateCompositePayment error creating gateway URL",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentCodeKey, parent.PaymentCode),
			zap.Error(err),
		)
		parent.Status = models.PaymentStatusFailed
		parent.UpdatedAt = uc.now()
		if updateErr := uc.PaymentRepository.Update(ctx, parent); updateErr != nil {
			uc.Log.Error("paymentUsecase.CreateCompositePayment error marking payment failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(updateErr),
			)
		}
		return nil, err
	}

	now := uc.now()
	parent.PaymentURL = &paymentURL
	parent.Status = models.PaymentStatusProcessing
	parent.UpdatedAt = now

	updated := make([]*models.Payment, 0, len(outstanding)+1)
	updated = append(updated, parent)
	for i := range outstanding {
		child := &outstanding[i]
		parentID := parent.ID
		child.ParentPaymentID = &parentID
		child.Status = models.PaymentStatusProcessing
		child.UpdatedAt = now
		updated = append(updated, child)
	}
	if err := uc.PaymentRepository.UpdateMany(ctx, updated); err != nil {
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "composite_payment_created", requestID,
		zap.String(constvars.LoggingPaymentCodeKey, parent.PaymentCode),
		zap.String(constvars.LoggingAmountKey, total.String()),
		zap.Int(constvars.LoggingCountKey, len(outstanding)),
	)

	return &responses.CompositePayment{
		Payment:     responses.NewPayment(parent),
		PaymentURL:  paymentURL,
		TotalAmount: total,
		Breakdown:   breakdown,
	}, nil
}

func (uc *paymentUsecase) CancelPayment(ctx context.Context, paymentCode string, request *requests.CancelPayment) (*responses.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.CancelPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentCodeKey, paymentCode),
	)

	payment, err := uc.PaymentRepository.FindByPaymentCode(ctx, paymentCode)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(nil, paymentCode)
	}
	if !payment.Status.IsOutstanding() {
		return nil, exceptions.ErrPaymentCannotBeCancelled(nil, paymentCode, string(payment.Status))
	}
	if payment.IsChild() {
		return nil, exceptions.ErrChildPaymentCannotBeCancelled(nil, paymentCode, *payment.ParentPaymentID)
	}

	reason := constvars.PaymentNoteDefaultCancel
	if request != nil && request.Reason != nil && strings.TrimSpace(*request.Reason) != "" {
		reason = *request.Reason
	}

	now := uc.now()
	payment.Status = models.PaymentStatusCancelled
	payment.UpdatedAt = now
	appendDescription(payment, fmt.Sprintf(constvars.PaymentNoteCancelled, reason))
	updated := []*models.Payment{payment}

	if payment.IsComposite() {
		children, err := uc.PaymentRepository.FindByParentID(ctx, payment.ID)
		if err != nil {
			return nil, err
		}
		for i := range children {
			child := &children[i]
			if !child.Status.IsOutstanding() {
				continue
			}
			child.Status = models.PaymentStatusCancelled
			child.UpdatedAt = now
			appendDescription(child, fmt.Sprintf(constvars.PaymentNoteParentCanceled, payment.PaymentCode))
			updated = append(updated, child)
		}
	}

	if err := uc.PaymentRepository.UpdateMany(ctx, updated); err != nil {
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "payment_cancelled", requestID,
		zap.String(constvars.LoggingPaymentCodeKey, payment.PaymentCode),
		zap.Int(constvars.LoggingCountKey, len(updated)-1),
	)
	return responses.NewPayment(payment), nil
}

// ExpireStalePayments closes top-level payments whose checkout window has
// passed, together with the children of expired composites. Each payment is
// written on its own so that one settled concurrently is skipped without
// holding back the rest of the batch.
func (uc *paymentUsecase) ExpireStalePayments(ctx context.Context, now time.Time) (int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	batchSize := uc.InternalConfig.Worker.PaymentExpiryBatchSize
	if batchSize <= 0 {
		batchSize = constvars.PaymentDefaultExpiryBatch
	}

	stale, err := uc.PaymentRepository.FindExpirable(ctx, now, batchSize)
	if err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	note := fmt.Sprintf(constvars.PaymentNoteExpired, now.In(uc.Location).Format(time.RFC3339))
	expired, withChildren, skipped := 0, 0, 0
	for i := range stale {
		payment := &stale[i]
		payment.Status = models.PaymentStatusExpired
		payment.UpdatedAt = now
		appendDescription(payment, note)
		updated := []*models.Payment{payment}

		if payment.IsComposite() {
			children, err := uc.PaymentRepository.FindByParentID(ctx, payment.ID)
			if err != nil {
				return expired, err
			}
			for j := range children {
				child := &children[j]
				if !child.Status.IsOutstanding() {
					continue
				}
				child.Status = models.PaymentStatusExpired
				child.UpdatedAt = now
				appendDescription(child, note)
				updated = append(updated, child)
			}
		}

		if err := uc.PaymentRepository.UpdateMany(ctx, updated); err != nil {
			if errors.Is(err, exceptions.ErrStalePaymentWrite) {
				uc.Log.Info("paymentUsecase.ExpireStalePayments payment changed before expiry, skipping",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingPaymentCodeKey, payment.PaymentCode),
				)
				skipped++
				continue
			}
			return expired, err
		}
		expired++
		withChildren += len(updated)
	}

	uc.Log.Info("paymentUsecase.ExpireStalePayments expired payments",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, expired),
		zap.Int("including_children", withChildren),
		zap.Int("skipped", skipped),
	)
	return expired, nil
}
