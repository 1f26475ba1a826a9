package downstream

import (
	"bytes"
	"context"
	"fmt"
	"hospital-billing-service/internal/pkg/constvars"
	"hospital-billing-service/internal/pkg/exceptions"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// internalCaller posts to sibling services through their internal API,
// presenting the same trust headers the API gateway would.
type internalCaller struct {
	Name          string
	BaseUrl       string
	GatewaySecret string
	HTTPClient    *http.Client
	Log           *zap.Logger
}

func (c *internalCaller) post(ctx context.Context, path string, payload any) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	url := c.BaseUrl + path

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return exceptions.ErrCannotMarshalJSON(err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, url, body)
	if err != nil {
		c.Log.Error("internalCaller.post error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDownstreamKey, c.Name),
			zap.Error(err),
		)
		return exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderXInternalRequest, "true")
	req.Header.Set(constvars.HeaderXGatewaySecret, c.GatewaySecret)
	if requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("internalCaller.post error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDownstreamKey, c.Name),
			zap.String(constvars.LoggingDownstreamURLKey, url),
			zap.Error(err),
		)
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.Log.Error("internalCaller.post downstream returned non-2xx status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDownstreamKey, c.Name),
			zap.String(constvars.LoggingDownstreamURLKey, url),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.ByteString(constvars.LoggingResponseKey, respBody),
		)
		return exceptions.ErrDownstreamStatus(fmt.Errorf("%s", respBody), c.Name, resp.StatusCode)
	}

	c.Log.Info("internalCaller.post succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDownstreamKey, c.Name),
		zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
	)
	return nil
}
