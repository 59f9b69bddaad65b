package embeddings

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/oracle/oci-go-sdk/v65/common"
)

// Error type constants for classification
const (
	ErrTypeTimeout   = "timeout"
	ErrTypeNetwork   = "network"
	ErrTypeAuth      = "auth"
	ErrTypeThrottled = "throttled"
	ErrTypeRequest   = "request"
	ErrTypeService   = "service"
	ErrTypeUnknown   = "unknown"
)

// ClassifyError inspects an error and returns its type classification.
// It is used for metric labels and trace records; the error itself is never altered.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrTypeTimeout
	}

	if serviceErr, ok := common.IsServiceError(err); ok {
		switch code := serviceErr.GetHTTPStatusCode(); {
		case code == http.StatusUnauthorized || code == http.StatusForbidden:
			return ErrTypeAuth
		case code == http.StatusTooManyRequests:
			return ErrTypeThrottled
		case code == http.StatusRequestTimeout || code == http.StatusGatewayTimeout:
			return ErrTypeTimeout
		case code >= 400 && code < 500:
			return ErrTypeRequest
		default:
			return ErrTypeService
		}
	}

	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return ErrTypeNetwork
	}

	errStrLower := strings.ToLower(err.Error())
	if strings.Contains(errStrLower, "timeout") || strings.Contains(errStrLower, "deadline exceeded") {
		return ErrTypeTimeout
	}
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "connection reset") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "dial tcp") {
		return ErrTypeNetwork
	}

	return ErrTypeUnknown
}
