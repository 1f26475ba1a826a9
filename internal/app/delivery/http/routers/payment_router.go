package routers

import (
	"hospital-billing-service/internal/app/delivery/http/controllers"
	"hospital-billing-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	paymentController *controllers.PaymentController,
	receptionistController *controllers.ReceptionistController,
	gatewayCallbackController *controllers.GatewayCallbackController,
	healthController *controllers.HealthController,
) {
	router.Get("/health", healthController.Liveness)
	router.Post("/ipn/{gateway}", gatewayCallbackController.ProcessIPN)
	router.Get("/ipn/{gateway}", gatewayCallbackController.ProcessIPN)
	router.Get("/return", gatewayCallbackController.HandleGatewayReturn)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Use(middlewares.Authorize)

		r.Post("/", paymentController.CreatePayment)
		r.Get("/code/{paymentCode}", paymentController.GetPaymentByCode)
		r.Get("/prescription/{prescriptionId}", paymentController.GetPaymentByPrescriptionID)
		r.Get("/reference/{referenceId}", paymentController.GetPaymentByReferenceID)
		r.Get("/appointment/{appointmentId}", paymentController.GetPaymentByAppointmentID)
		r.Post("/outstanding", paymentController.GetOutstandingPayments)
		r.Post("/composite", paymentController.CreateCompositePayment)
		r.Post("/{paymentCode}/cancel", paymentController.CancelPayment)

		r.Post("/cash-payment", receptionistController.CreateCashPayment)
		r.Post("/bulk-payment", receptionistController.ProcessBulkPayment)
		r.Get("/today", receptionistController.GetTodayPayments)
		r.Get("/search", receptionistController.SearchPayments)

		r.Get("/{id}", paymentController.GetPaymentByID)
	})
}
