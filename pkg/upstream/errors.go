package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	appErrors "github.com/noah-isme/research-admin-gateway/pkg/errors"
)

// transportError marks failures where no HTTP response was received.
type transportError struct {
	err error
}

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

// Normalize folds any error into the single {message} shape the UI renders:
// an HTTP error response keeps the backend's message, a missing response
// becomes "no response received from server", and anything else keeps its own message.
func Normalize(err error) error {
	if err == nil {
		return nil
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	var transport *transportError
	if errors.As(err, &transport) {
		if errors.Is(err, context.Canceled) {
			return appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, 499, "request cancelled")
		}
		return appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, appErrors.ErrUpstreamUnavailable.Message)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, err.Error())
}

func responseError(status int, body []byte) *appErrors.Error {
	message := extractMessage(body)
	if message == "" {
		message = strings.TrimSpace(fmt.Sprintf("%d %s", status, http.StatusText(status)))
	}
	code, gatewayStatus := classifyStatus(status)
	return appErrors.New(code, gatewayStatus, message)
}

func classifyStatus(status int) (string, int) {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return appErrors.ErrValidation.Code, status
	case http.StatusUnauthorized:
		return appErrors.ErrUnauthorized.Code, status
	case http.StatusForbidden:
		return appErrors.ErrForbidden.Code, status
	case http.StatusNotFound:
		return appErrors.ErrNotFound.Code, status
	case http.StatusConflict:
		return appErrors.ErrConflict.Code, status
	}
	if status >= http.StatusInternalServerError {
		return appErrors.ErrUpstream.Code, http.StatusBadGateway
	}
	return appErrors.ErrUpstream.Code, status
}

// extractMessage reads message, error or error.message from a JSON error body.
func extractMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"message", "error"} {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		var text string
		if err := json.Unmarshal(raw, &text); err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &nested); err == nil && strings.TrimSpace(nested.Message) != "" {
			return strings.TrimSpace(nested.Message)
		}
	}
	return ""
}
