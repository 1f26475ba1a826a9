package payment_gateway

import (
	"hospital-billing-service/internal/app/contracts"
	"hospital-billing-service/internal/app/models"
	"hospital-billing-service/internal/pkg/exceptions"
)

type paymentGatewayFactory struct {
	gateways map[models.PaymentMethod]contracts.PaymentGatewayService
}

// NewPaymentGatewayFactory registers each gateway under the method it reports.
// A later gateway for the same method replaces an earlier one.
func NewPaymentGatewayFactory(gateways ...contracts.PaymentGatewayService) contracts.PaymentGatewayFactory {
	registry := make(map[models.PaymentMethod]contracts.PaymentGatewayService, len(gateways))
	for _, gateway := range gateways {
		registry[gateway.Method()] = gateway
	}
	return &paymentGatewayFactory{
		gateways: registry,
	}
}

func (f *paymentGatewayFactory) GetGatewayService(method models.PaymentMethod) (contracts.PaymentGatewayService, error) {
	gateway, ok := f.gateways[method]
	if !ok {
		return nil, exceptions.ErrUnsupportedPaymentMethod(nil, string(method))
	}
	return gateway, nil
}

// GetGatewayServiceByName resolves gateway path segments such as "momo",
// "vnpay", "cash" or "cod".
func (f *paymentGatewayFactory) GetGatewayServiceByName(name string) (contracts.PaymentGatewayService, error) {
	method, ok := models.ParsePaymentMethod(name)
	if !ok {
		return nil, exceptions.ErrUnsupportedPaymentGateway(nil, name)
	}
	gateway, ok := f.gateways[method]
	if !ok {
		return nil, exceptions.ErrUnsupportedPaymentGateway(nil, name)
	}
	return gateway, nil
}
