package middlewares

import (
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/exceptions"
	"hospital-billing-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// Authorize checks the authenticated role against the RBAC policy for the
// request method and path. It must run after Authenticate.
func (m *Middlewares) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := utils.GetUserRole(r.Context())

		allowed, err := m.Enforcer.Enforce(role, r.Method, r.URL.Path)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrAuthEnforce(err))
			return
		}
		if !allowed {
			m.Log.Warn("Middlewares.Authorize access denied",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String(constvars.LoggingUserIDKey, utils.GetUserID(r.Context())),
				zap.String(constvars.LoggingUserRoleKey, role),
				zap.String(constvars.LoggingMethodKey, r.Method),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleForbidden(nil, role, r.Method, r.URL.Path))
			return
		}
		next.ServeHTTP(w, r)
	})
}
