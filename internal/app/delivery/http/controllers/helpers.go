package controllers

import (
	"context"
	"errors"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/exceptions"
	"hospital-billing-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const defaultRequestTimeout = 15 * time.Second

func requestTimeout(seconds int) time.Duration {
	if seconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(seconds) * time.Second
}

// decodeAndValidate parses a JSON body into request and runs its validation
// tags.
func decodeAndValidate(r *http.Request, request interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	if err := utils.ValidateStruct(request); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}

func buildUsecaseError(log *zap.Logger, w http.ResponseWriter, requestID string, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	log.Debug("Usecase returned error",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(err),
	)
	utils.BuildErrorResponse(log, w, err)
}
