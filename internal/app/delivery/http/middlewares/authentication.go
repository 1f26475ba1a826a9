package middlewares

import (
	"context"
	"crypto/subtle"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/exceptions"
	"hospital-billing-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authenticate resolves the caller. Requests already authenticated by the API
// gateway carry the internal marker, the shared secret and the forwarded
// identity headers. Everything else must present a Bearer token.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		if strings.EqualFold(r.Header.Get(constvars.HeaderXInternalRequest), "true") {
			secret := r.Header.Get(constvars.HeaderXGatewaySecret)
			expected := m.InternalConfig.Gateway.Secret
			if expected == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(expected)) != 1 {
				utils.LogSecurityEvent(m.Log, "invalid_gateway_secret", requestID, "high",
					zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
					zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				)
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidGatewaySecret(nil))
				return
			}

			role := strings.ToUpper(strings.TrimSpace(r.Header.Get(constvars.HeaderXUserRole)))
			if role == "" {
				role = constvars.RoleInternal
			}
			next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), r.Header.Get(constvars.HeaderXUserID), role)))
			return
		}

		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimPrefix(authHeader, constvars.AuthorizationBearerPrefix)
		claims, err := utils.ParseAccessToken(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), claims.UserID, strings.ToUpper(claims.Role))))
	})
}

func withPrincipal(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, constvars.CONTEXT_USER_ID_KEY, userID)
	return context.WithValue(ctx, constvars.CONTEXT_USER_ROLE_KEY, role)
}
