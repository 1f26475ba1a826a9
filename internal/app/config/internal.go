package config

type InternalConfig struct {
	App        App
	JWT        AppJWT
	Gateway    AppGateway
	RabbitMQ   AppRabbitMQ
	Momo       AppMomo
	VNPay      AppVNPay
	Services   AppServices
	Worker     AppWorker
	RBAC       AppRBAC
	Migrations AppMigrations
}

type App struct {
	Env                                   string
	Port                                  string
	Version                               string
	Address                               string
	Timezone                              string
	EndpointPrefix                        string
	FrontendUrl                           string
	CORSAllowedOrigins                    []string
	MaxRequests                           int
	MaxTimeRequestsPerSeconds             int
	ShutdownTimeoutInSeconds              int
	RequestTimeoutInSeconds               int
	PaymentExpiredTimeInMinutes           int
	PaymentGatewayRequestTimeoutInSeconds int
}

type AppJWT struct {
	Secret string
}

// AppGateway holds the shared secret the API gateway attaches to requests it
// has already authenticated.
type AppGateway struct {
	Secret string
}

type AppRabbitMQ struct {
	LabTestPaymentQueue string
}

type AppMomo struct {
	PartnerCode string
	AccessKey   string
	SecretKey   string
	ApiEndpoint string
	RedirectUrl string
	IpnUrl      string
	RequestType string
	PartnerName string
	StoreID     string
	Lang        string
}

type AppVNPay struct {
	Version         string
	Command         string
	TmnCode         string
	AmountFactor    int
	CurrCode        string
	BankCode        string
	Locale          string
	ReturnUrl       string
	SecretKey       string
	PayUrl          string
	OrderType       string
	ExpireInMinutes int
}

type AppServices struct {
	AppointmentBaseUrl   string
	MedicineBaseUrl      string
	HTTPTimeoutInSeconds int
}

type AppWorker struct {
	PaymentExpiryCronSpec  string
	PaymentExpiryBatchSize int
}

type AppRBAC struct {
	ModelPath  string
	PolicyPath string
}

type AppMigrations struct {
	Dir string
}
