package utils

import (
	"context"
	"time"

	"hospital-billing-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

func LogBusinessEvent(logger *zap.Logger, event string, requestID string, fields ...zap.Field) {
	allFields := []zap.Field{
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("business_event", event),
		zap.Time("timestamp", time.Now()),
	}
	allFields = append(allFields, fields...)

	logger.Info("Business event occurred", allFields...)
}

func LogSecurityEvent(logger *zap.Logger, event string, requestID string, severity string, fields ...zap.Field) {
	allFields := []zap.Field{
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("security_event", event),
		zap.String("severity", severity),
		zap.Time("timestamp", time.Now()),
	}
	allFields = append(allFields, fields...)

	logger.Warn("Security event detected", allFields...)
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}

func GetClientIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(constvars.CONTEXT_CLIENT_IP_KEY).(string); ok && ip != "" {
		return ip
	}
	return constvars.DefaultClientIP
}

func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(constvars.CONTEXT_USER_ID_KEY).(string)
	return userID
}

func GetUserRole(ctx context.Context) string {
	role, _ := ctx.Value(constvars.CONTEXT_USER_ROLE_KEY).(string)
	return role
}
