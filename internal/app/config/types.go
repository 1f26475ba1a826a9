package config

type (
	DriverConfig struct {
		Postgres Postgres
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
	}
	Postgres struct {
		Host            string
		Port            string
		Username        string
		Password        string
		DbName          string
		SSLMode         string
		MaxOpenConns    int
		MaxIdleConns    int
		ConnMaxLifetime int
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
)
