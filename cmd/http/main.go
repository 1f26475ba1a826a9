package main

import (
	"context"
	"hospital-billing-service/cmd/migration"
	"hospital-billing-service/internal/app/config"
	"hospital-billing-service/internal/app/delivery/http/controllers"
	"hospital-billing-service/internal/app/delivery/http/middlewares"
	"hospital-billing-service/internal/app/delivery/http/routers"
	"hospital-billing-service/internal/app/drivers/authorization"
	"hospital-billing-service/internal/app/drivers/database"
	"hospital-billing-service/internal/app/drivers/logger"
	"hospital-billing-service/internal/app/drivers/messaging"
	"hospital-billing-service/internal/app/services/core/payments"
	"hospital-billing-service/internal/app/services/downstream"
	"hospital-billing-service/internal/app/services/shared/locker"
	"hospital-billing-service/internal/app/services/shared/payment_gateway"
	"hospital-billing-service/internal/app/services/shared/publisher"
	"hospital-billing-service/internal/app/services/shared/redis"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	// Amounts travel as JSON numbers, matching what the gateways and the
	// other hospital services send.
	decimal.MarshalJSONWithoutQuotes = true

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	postgres := database.NewPostgresDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	if err := messaging.DeclareDurableQueues(rabbitMQ, internalConfig.RabbitMQ.LabTestPaymentQueue); err != nil {
		log.Fatalf("Error declaring RabbitMQ queues: %v", err)
	}

	migration.Run(postgres, internalConfig.Migrations.Dir)

	chiRouter := chi.NewRouter()
	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		Postgres:       postgres,
		Redis:          redisClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQ,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	bootstrapingTheApp(workerCtx, bootstrap)

	server := &http.Server{
		Addr:              net.JoinHostPort(internalConfig.App.Address, internalConfig.App.Port),
		Handler:           chiRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Billing service listening", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	stopWorker()
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error releasing resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(ctx context.Context, bootstrap *config.Bootstrap) {
	log := bootstrap.Logger
	internalConfig := bootstrap.InternalConfig

	// Shared infrastructure
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, log)
	eventPublisher, err := publisher.NewPaymentEventPublisher(bootstrap.RabbitMQ, internalConfig.RabbitMQ.LabTestPaymentQueue, log)
	if err != nil {
		log.Fatal("Error opening RabbitMQ channel", zap.Error(err))
	}

	// Downstream services
	appointmentClient := downstream.NewAppointmentClient(internalConfig, log)
	medicineClient := downstream.NewMedicineClient(internalConfig, log)

	// Payments
	paymentRepository := payments.NewPaymentPostgresRepository(bootstrap.Postgres, log)
	paymentNotifier := payments.NewPaymentNotifier(appointmentClient, medicineClient, eventPublisher, log)
	paymentReconciler := payment_gateway.NewPaymentReconciler(paymentRepository, lockerService, paymentNotifier, log)
	gatewayFactory := payment_gateway.NewPaymentGatewayFactory(
		payment_gateway.NewMomoService(internalConfig, paymentReconciler, log),
		payment_gateway.NewVNPayService(internalConfig, paymentReconciler, log),
		payment_gateway.NewCODService(log),
	)
	paymentUsecase := payments.NewPaymentUsecase(paymentRepository, gatewayFactory, paymentNotifier, internalConfig, log)

	// Expiry worker
	expiryWorker := payments.NewExpiryWorker(log, internalConfig, lockerService, paymentUsecase)
	expiryWorker.Start(ctx)
	bootstrap.WorkerStop = expiryWorker.Stop

	// HTTP
	enforcer := authorization.NewCasbinEnforcer(internalConfig)
	middlewares := middlewares.NewMiddlewares(log, enforcer, internalConfig)
	paymentController := controllers.NewPaymentController(log, paymentUsecase, internalConfig)
	receptionistController := controllers.NewReceptionistController(log, paymentUsecase, internalConfig)
	gatewayCallbackController := controllers.NewGatewayCallbackController(log, paymentUsecase, internalConfig)
	healthController := controllers.NewHealthController()

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares,
		paymentController,
		receptionistController,
		gatewayCallbackController,
		healthController,
	)
}
