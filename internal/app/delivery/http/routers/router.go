package routers

import (
	"fmt"
	"hospital-billing-service/internal/app/config"
	"hospital-billing-service/internal/app/delivery/http/controllers"
	"hospital-billing-service/internal/app/delivery/http/middlewares"
	"hospital-billing-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	paymentController *controllers.PaymentController,
	receptionistController *controllers.ReceptionistController,
	gatewayCallbackController *controllers.GatewayCallbackController,
	healthController *controllers.HealthController,
) {
	corsOptions := cors.Options{
		AllowedOrigins: internalConfig.App.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			constvars.HeaderAccept,
			constvars.HeaderAuthorization,
			constvars.HeaderContentType,
			constvars.HeaderXRequestID,
		},
		ExposedHeaders:   []string{"Link", constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.RateLimiter())
	router.Use(middlewares.ClientIP)

	router.NotFound(middlewares.NotFound)
	router.MethodNotAllowed(middlewares.MethodNotAllowed)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/"+constvars.ResourcePayments, func(r chi.Router) {
				attachPaymentRoutes(r, middlewares, paymentController, receptionistController, gatewayCallbackController, healthController)
			})
		})
	})
}
