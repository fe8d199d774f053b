package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrAuthRequired is returned before any network access when an endpoint
// needs a stored auth token and none is present.
var ErrAuthRequired = errors.New("client: authentication required")

// Error is a non-2xx API response. Raw preserves the server payload verbatim
// so call sites can branch on backend-specific codes (e.g. insufficient
// credits) without the client layer interpreting them.
type Error struct {
	StatusCode int
	Code       string
	Message    string
	Raw        json.RawMessage
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an API error with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// IsCode reports whether err is an API error carrying the given server code.
func IsCode(err error, code string) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// parseError translates a non-2xx response body into an *Error. Bodies that
// are not JSON degrade to the raw text as the message.
func parseError(body []byte, statusCode int) error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Code    string `json:"code"`
	}

	apiErr := &Error{
		StatusCode: statusCode,
		Raw:        json.RawMessage(body),
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = "request failed"
		}
		return apiErr
	}

	apiErr.Code = payload.Code

	msg := payload.Message
	if msg == "" {
		msg = payload.Error
	}
	if msg == "" {
		msg = payload.Code
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	apiErr.Message = msg

	return apiErr
}
