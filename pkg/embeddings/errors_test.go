package embeddings

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
)

// fakeServiceError implements common.ServiceError
type fakeServiceError struct {
	status int
	code   string
}

func (e fakeServiceError) Error() string {
	return fmt.Sprintf("Error returned by GenerativeAiInference Service. Http Status Code: %d. Error Code: %s", e.status, e.code)
}
func (e fakeServiceError) GetHTTPStatusCode() int  { return e.status }
func (e fakeServiceError) GetMessage() string      { return e.code }
func (e fakeServiceError) GetCode() string         { return e.code }
func (e fakeServiceError) GetOpcRequestID() string { return "req-1" }

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"deadline", context.DeadlineExceeded, ErrTypeTimeout},
		{"wrapped deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), ErrTypeTimeout},
		{"canceled", context.Canceled, ErrTypeTimeout},
		{"unauthorized", fakeServiceError{401, "NotAuthenticated"}, ErrTypeAuth},
		{"forbidden", fakeServiceError{403, "NotAuthorizedOrNotFound"}, ErrTypeAuth},
		{"throttled", fakeServiceError{429, "TooManyRequests"}, ErrTypeThrottled},
		{"gateway timeout", fakeServiceError{504, "GatewayTimeout"}, ErrTypeTimeout},
		{"bad request", fakeServiceError{400, "InvalidParameter"}, ErrTypeRequest},
		{"internal", fakeServiceError{500, "InternalServerError"}, ErrTypeService},
		{"net op", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")}, ErrTypeNetwork},
		{"no such host", errors.New("lookup inference.example: no such host"), ErrTypeNetwork},
		{"timeout text", errors.New("i/o timeout"), ErrTypeTimeout},
		{"other", errors.New("something odd"), ErrTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.want {
				t.Errorf("ClassifyError(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
