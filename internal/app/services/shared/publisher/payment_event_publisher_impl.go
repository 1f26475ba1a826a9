package publisher

import (
	"context"
	"hospital-billing-service/internal/app/contracts"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/dto/requests"
	"hospital-billing-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// amqpPublisher is the slice of *amqp091.Channel the publisher uses.
type amqpPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type paymentEventPublisher struct {
	Channel      amqpPublisher
	LabTestQueue string
	Log          *zap.Logger
}

func NewPaymentEventPublisher(rabbitMQConnection *amqp091.Connection, labTestQueue string, logger *zap.Logger) (contracts.PaymentEventPublisher, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}
	return newPaymentEventPublisher(channel, labTestQueue, logger), nil
}

func newPaymentEventPublisher(channel amqpPublisher, labTestQueue string, logger *zap.Logger) *paymentEventPublisher {
	return &paymentEventPublisher{
		Channel:      channel,
		LabTestQueue: labTestQueue,
		Log:          logger,
	}
}

func (p *paymentEventPublisher) PublishLabTestPaymentConfirmed(ctx context.Context, event *requests.LabTestPaymentConfirmed) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.Log.Info("paymentEventPublisher.PublishLabTestPaymentConfirmed called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingReferenceIDKey, event.LabTestID),
		zap.String(constvars.LoggingPaymentCodeKey, event.PaymentCode),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	headers := amqp091.Table{
		"message_type":     "JSON",
		"event_type":       "lab_test.payment_confirmed",
		"requeue_strategy": "DROP",
	}

	message := amqp091.Publishing{
		ContentType:   constvars.MIMEApplicationJSON,
		Body:          body,
		DeliveryMode:  amqp091.Persistent,
		Priority:      0,
		Headers:       headers,
		CorrelationId: requestID,
	}

	err = p.Channel.PublishWithContext(ctx, "", p.LabTestQueue, false, false, message)
	if err != nil {
		p.Log.Error("paymentEventPublisher.PublishLabTestPaymentConfirmed error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueKey, p.LabTestQueue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, p.LabTestQueue)
	}

	return nil
}
