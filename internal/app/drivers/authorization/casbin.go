package authorization

import (
	"hospital-billing-service/internal/app/config"
	"log"

	"github.com/casbin/casbin/v2"
)

func NewCasbinEnforcer(internalConfig *config.InternalConfig) *casbin.Enforcer {
	enforcer, err := casbin.NewEnforcer(internalConfig.RBAC.ModelPath, internalConfig.RBAC.PolicyPath)
	if err != nil {
		log.Fatalf("Failed to load RBAC policy: %v", err)
	}
	log.Println("Successfully loaded RBAC policy")
	return enforcer
}
