package payments

import (
	"context"
	"hospital-billing-service/internal/app/models"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/dto/requests"
	"hospital-billing-service/internal/pkg/dto/responses"
	"hospital-billing-service/internal/pkg/exceptions"
	"hospital-billing-service/internal/pkg/utils"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (uc *paymentUsecase) GetPaymentByID(ctx context.Context, paymentID int64) (*responses.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.GetPaymentByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingPaymentIDKey, paymentID),
	)

	payment, err := uc.PaymentRepository.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(nil, strconv.FormatInt(paymentID, 10))
	}
	return responses.NewPayment(payment), nil
}

func (uc *paymentUsecase) GetPaymentByCode(ctx context.Context, paymentCode string) (*responses.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.GetPaymentByCode called",
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
	return responses.NewPayment(payment), nil
}

func (uc *paymentUsecase) GetPaymentByPrescriptionID(ctx context.Context, prescriptionID string) (*responses.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.GetPaymentByPrescriptionID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPrescriptionIDKey, prescriptionID),
	)

	payment, err := uc.PaymentRepository.FindLatestByPrescription(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(nil, prescriptionID)
	}
	return responses.NewPayment(payment), nil
}

func (uc *paymentUsecase) GetPaymentByReferenceID(ctx context.Context, referenceID string, paymentType string) (*responses.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.GetPaymentByReferenceID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferenceIDKey, referenceID),
		zap.String(constvars.LoggingPaymentTypeKey, paymentType),
	)

	var (
		payment *models.Payment
		err     error
	)
	if paymentType != "" {
		payment, err = uc.PaymentRepository.FindLatestByReferenceAndType(ctx, referenceID, models.PaymentType(strings.ToUpper(paymentType)))
	} else {
		payment, err = uc.PaymentRepository.FindLatestByReference(ctx, referenceID)
	}
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(nil, referenceID)
	}
	return responses.NewPayment(payment), nil
}

// GetPaymentByAppointmentID prefers the appointment fee and falls back to
// whatever was billed against the appointment id last.
func (uc *paymentUsecase) GetPaymentByAppointmentID(ctx context.Context, appointmentID string) (*responses.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.GetPaymentByAppointmentID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	payment, err := uc.PaymentRepository.FindLatestByAppointmentAndType(ctx, appointmentID, models.PaymentTypeAppointmentFee)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		payment, err = uc.PaymentRepository.FindLatestByReference(ctx, appointmentID)
		if err != nil {
			return nil, err
		}
	}
	if payment == nil {
		return nil, exceptions.ErrPaymentNotFound(nil, appointmentID)
	}
	return responses.NewPayment(payment), nil
}

func (uc *paymentUsecase) SearchPayments(ctx context.Context, request *requests.SearchPayments) (*responses.PaymentList, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.SearchPayments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentStatusKey, request.Status),
		zap.String(constvars.LoggingPaymentMethodKey, request.PaymentMethod),
		zap.String(constvars.LoggingPaymentTypeKey, request.PaymentType),
	)

	filter := &models.PaymentFilter{
		StartDate:     request.StartDate,
		EndDate:       request.EndDate,
		Status:        models.PaymentStatus(request.Status),
		PaymentMethod: models.PaymentMethod(request.PaymentMethod),
		PaymentType:   models.PaymentType(request.PaymentType),
		Limit:         request.PageSize,
		Offset:        request.Offset(),
	}

	payments, total, err := uc.PaymentRepository.Search(ctx, filter)
	if err != nil {
		uc.Log.Error("paymentUsecase.SearchPayments error searching payments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("paymentUsecase.SearchPayments succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(payments)),
	)
	return &responses.PaymentList{
		Payments: responses.NewPayments(payments),
		Total:    total,
	}, nil
}

func (uc *paymentUsecase) GetTodayPayments(ctx context.Context, status string) ([]responses.Payment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.GetTodayPayments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentStatusKey, status),
	)

	start, end := utils.DayRange(uc.now().In(uc.Location))
	payments, err := uc.PaymentRepository.FindCreatedBetween(ctx, start, end, models.PaymentStatus(strings.ToUpper(status)))
	if err != nil {
		return nil, err
	}
	return responses.NewPayments(payments), nil
}

// GetOutstandingPayments treats the first reference id as the appointment
// and reports everything billed against it.
func (uc *paymentUsecase) GetOutstandingPayments(ctx context.Context, request *requests.OutstandingPayments) (*responses.OutstandingPayments, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.GetOutstandingPayments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Strings("reference_ids", request.ReferenceIDs),
	)

	if len(request.ReferenceIDs) == 0 {
		return nil, exceptions.ErrOutstandingMissingReferenceIDs(nil)
	}
	appointmentID := request.ReferenceIDs[0]

	payments, err := uc.PaymentRepository.FindAllByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	result := &responses.OutstandingPayments{
		AppointmentID: appointmentID,
		TotalUnpaid:   decimal.Zero,
		TotalPaid:     decimal.Zero,
		Unpaid:        []responses.Payment{},
		Paid:          []responses.Payment{},
	}
	for i := range payments {
		payment := &payments[i]
		switch {
		case payment.Status.IsOutstanding():
			result.TotalUnpaid = result.TotalUnpaid.Add(payment.Amount)
			result.Unpaid = append(result.Unpaid, *responses.NewPayment(payment))
		case payment.Status == models.PaymentStatusCompleted:
			result.TotalPaid = result.TotalPaid.Add(payment.Amount)
			result.Paid = append(result.Paid, *responses.NewPayment(payment))
		}
	}
	result.UnpaidCount = len(result.Unpaid)
	result.PaidCount = len(result.Paid)

	uc.Log.Info("paymentUsecase.GetOutstandingPayments succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.Int("unpaid_count", result.UnpaidCount),
		zap.Int("paid_count", result.PaidCount),
	)
	return result, nil
}
