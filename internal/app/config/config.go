package config

import (
	"hospital-billing-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Postgres: Postgres{
			Host:            utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:            utils.GetEnvString("POSTGRES_PORT", "5432"),
			Username:        utils.GetEnvString("POSTGRES_USERNAME", "postgres"),
			Password:        utils.GetEnvString("POSTGRES_PASSWORD", "postgres"),
			DbName:          utils.GetEnvString("POSTGRES_DB_NAME", "billing"),
			SSLMode:         utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
			MaxOpenConns:    utils.GetEnvInt("POSTGRES_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    utils.GetEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: utils.GetEnvInt("POSTGRES_CONN_MAX_LIFETIME_IN_MINUTES", 30),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                                   utils.GetEnvString("APP_ENV", "development"),
			Port:                                  utils.GetEnvString("APP_PORT", "8086"),
			Version:                               utils.GetEnvString("APP_VERSION", "v1"),
			Address:                               utils.GetEnvString("APP_ADDRESS", "0.0.0.0"),
			Timezone:                              utils.GetEnvString("APP_TIMEZONE", "Asia/Ho_Chi_Minh"),
			EndpointPrefix:                        utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			FrontendUrl:                           utils.GetEnvString("APP_FRONTEND_URL", "http://localhost:3000"),
			CORSAllowedOrigins:                    utils.GetEnvStringSlice("APP_CORS_ALLOWED_ORIGINS", []string{"*"}),
			MaxRequests:                           utils.GetEnvInt("APP_MAX_REQUEST", 100),
			MaxTimeRequestsPerSeconds:             utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			ShutdownTimeoutInSeconds:              utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestTimeoutInSeconds:               utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 15),
			PaymentExpiredTimeInMinutes:           utils.GetEnvInt("APP_PAYMENT_EXPIRED_TIME_IN_MINUTES", 15),
			PaymentGatewayRequestTimeoutInSeconds: utils.GetEnvInt("APP_PAYMENT_GATEWAY_REQUEST_TIMEOUT_IN_SECONDS", 30),
		},
		JWT: AppJWT{
			Secret: utils.GetEnvString("JWT_SECRET", ""),
		},
		Gateway: AppGateway{
			Secret: utils.GetEnvString("GATEWAY_SECRET", ""),
		},
		RabbitMQ: AppRabbitMQ{
			LabTestPaymentQueue: utils.GetEnvString("APP_RABBITMQ_LAB_TEST_PAYMENT_QUEUE", "billing.lab_test.payment_confirmed"),
		},
		Momo: AppMomo{
			PartnerCode: utils.GetEnvString("MOMO_PARTNER_CODE", ""),
			AccessKey:   utils.GetEnvString("MOMO_ACCESS_KEY", ""),
			SecretKey:   utils.GetEnvString("MOMO_SECRET_KEY", ""),
			ApiEndpoint: utils.GetEnvString("MOMO_API_ENDPOINT", "https://test-payment.momo.vn/v2/gateway/api/create"),
			RedirectUrl: utils.GetEnvString("MOMO_REDIRECT_URL", "http://localhost:8086/api/v1/billings/return"),
			IpnUrl:      utils.GetEnvString("MOMO_IPN_URL", "http://localhost:8086/api/v1/billings/ipn/momo"),
			RequestType: utils.GetEnvString("MOMO_REQUEST_TYPE", "captureWallet"),
			PartnerName: utils.GetEnvString("MOMO_PARTNER_NAME", "Smart Health App"),
			StoreID:     utils.GetEnvString("MOMO_STORE_ID", "SmartHealthStore"),
			Lang:        utils.GetEnvString("MOMO_LANG", "vi"),
		},
		VNPay: AppVNPay{
			Version:         utils.GetEnvString("VNPAY_VERSION", "2.1.0"),
			Command:         utils.GetEnvString("VNPAY_COMMAND", "pay"),
			TmnCode:         utils.GetEnvString("VNPAY_TMN_CODE", ""),
			AmountFactor:    utils.GetEnvInt("VNPAY_AMOUNT_FACTOR", 100),
			CurrCode:        utils.GetEnvString("VNPAY_CURR_CODE", "VND"),
			BankCode:        utils.GetEnvString("VNPAY_BANK_CODE", ""),
			Locale:          utils.GetEnvString("VNPAY_LOCALE", "vn"),
			ReturnUrl:       utils.GetEnvString("VNPAY_RETURN_URL", "http://localhost:8086/api/v1/billings/return"),
			SecretKey:       utils.GetEnvString("VNPAY_SECRET_KEY", ""),
			PayUrl:          utils.GetEnvString("VNPAY_PAY_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"),
			OrderType:       utils.GetEnvString("VNPAY_ORDER_TYPE", "billpayment"),
			ExpireInMinutes: utils.GetEnvInt("VNPAY_EXPIRE_IN_MINUTES", 15),
		},
		Services: AppServices{
			AppointmentBaseUrl:   utils.GetEnvString("APPOINTMENT_SERVICE_BASE_URL", "http://localhost:8083"),
			MedicineBaseUrl:      utils.GetEnvString("MEDICINE_SERVICE_BASE_URL", "http://localhost:8084"),
			HTTPTimeoutInSeconds: utils.GetEnvInt("DOWNSTREAM_HTTP_TIMEOUT_IN_SECONDS", 10),
		},
		Worker: AppWorker{
			PaymentExpiryCronSpec:  utils.GetEnvString("PAYMENT_EXPIRY_CRON_SPEC", "@every 1m"),
			PaymentExpiryBatchSize: utils.GetEnvInt("PAYMENT_EXPIRY_BATCH_SIZE", 200),
		},
		RBAC: AppRBAC{
			ModelPath:  utils.GetEnvString("RBAC_MODEL_PATH", "resources/rbac_model.conf"),
			PolicyPath: utils.GetEnvString("RBAC_POLICY_PATH", "resources/rbac_policy.csv"),
		},
		Migrations: AppMigrations{
			Dir: utils.GetEnvString("MIGRATIONS_DIR", "internal/migration"),
		},
	}
}
