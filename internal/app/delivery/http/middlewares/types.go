package middlewares

import (
	"hospital-billing-service/internal/app/config"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	Enforcer       *casbin.Enforcer
	InternalConfig *config.InternalConfig
}

func NewMiddlewares(logger *zap.Logger, enforcer *casbin.Enforcer, internalConfig *config.InternalConfig) *Middlewares {
	return &Middlewares{
		Log:            logger,
		Enforcer:       enforcer,
		InternalConfig: internalConfig,
	}
}
