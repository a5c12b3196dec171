package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/moecatalyst/moechat/internal/errors"
	"github.com/moecatalyst/moechat/internal/logging"
)

// chatRequest is the body sent to the endpoint
type chatRequest struct {
	Message string `json:"message"`
}

// Send posts one message and returns the assistant text.
//
// An empty string with a nil error means the endpoint answered successfully
// but without usable text; callers show their fallback message then.
// Transport failures, non-2xx statuses and bodies that are not JSON are
// returned as errors from the internal/errors package.
func (c *Client) Send(ctx context.Context, message string) (string, error) {
	if c.IsClosed() {
		return "", fmt.Errorf("client is closed")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	payload, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("failed to build payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	requestID := logging.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = logging.NewRequestID()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	log := c.logger.With().
		Str("request_id", requestID).
		Str("endpoint", c.endpoint).
		Logger()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Dur("duration", logging.Since(start)).Msg("chat request failed")
		return "", apierrors.NewNetworkError("send message", c.endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		log.Warn().
			Int("status", resp.StatusCode).
			Dur("duration", logging.Since(start)).
			Msg("chat request returned non-success status")
		return "", apierrors.NewAPIErrorWithBody(resp.StatusCode, c.endpoint, "chat request failed", string(errorBody))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		log.Warn().Err(err).Msg("reading chat response failed")
		return "", apierrors.NewNetworkError("read response", c.endpoint, err)
	}
	if len(body) > maxResponseBytes {
		log.Warn().Int("limit", maxResponseBytes).Msg("chat response too large")
		return "", apierrors.NewParseError(fmt.Sprintf("response exceeds %d bytes", maxResponseBytes), "")
	}

	reply, err := parseReply(body)
	if err != nil {
		log.Warn().Err(err).Int("bytes", len(body)).Msg("chat response could not be parsed")
		return "", err
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", logging.Since(start)).
		Bool("empty", reply == "").
		Msg("chat request completed")

	return reply, nil
}

// parseReply extracts the response field from a JSON body.
//
// Values that a browser client would treat as falsy (missing, null, false,
// 0, "") yield an empty reply. Other non-string values are returned as
// their JSON text.
func parseReply(body []byte) (string, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return "", apierrors.NewParseError("empty response body", "")
	}
	if !gjson.ValidBytes(body) {
		return "", apierrors.NewParseError("response body is not valid JSON", "")
	}

	root := gjson.ParseBytes(body)
	if root.Type == gjson.Null {
		return "", apierrors.NewParseError("response body is null", "")
	}
	if !root.IsObject() {
		return "", nil
	}

	field := root.Get(PathResponse)
	switch field.Type {
	case gjson.Null, gjson.False:
		return "", nil
	case gjson.Number:
		if field.Num == 0 {
			return "", nil
		}
		return field.String(), nil
	case gjson.String:
		return field.Str, nil
	case gjson.True:
		return "true", nil
	default:
		return strings.TrimSpace(field.Raw), nil
	}
}
