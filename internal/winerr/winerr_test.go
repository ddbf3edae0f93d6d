package winerr

import (
	"errors"
	"fmt"
	"testing"
)

// TestExitCode tests the error-to-exit-code contract used by automation
func TestExitCode(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		want   int
		reason string
	}{
		{
			name:   "nil error",
			err:    nil,
			want:   ExitSuccess,
			reason: "successful command completion must map to 0",
		},
		{
			name:   "service already running",
			err:    New("start service", ServiceAlreadyRunning, errors.New("scm")),
			want:   ExitServiceState,
			reason: "service state conflicts map to 2",
		},
		{
			name:   "service exists",
			err:    New("install service", ServiceExists, errors.New("scm")),
			want:   ExitServiceState,
			reason: "installing twice is a state conflict, not a generic failure",
		},
		{
			name:   "service does not exist",
			err:    New("uninstall service", ServiceDoesNotExist, errors.New("scm")),
			want:   ExitServiceState,
			reason: "uninstalling an absent service is a state conflict",
		},
		{
			name:   "service not active",
			err:    New("stop service", ServiceNotActive, errors.New("scm")),
			want:   ExitServiceState,
			reason: "stopping a stopped service is a state conflict",
		},
		{
			name:   "publisher not trusted",
			err:    New("install driver", PublisherNotTrusted, errors.New("setupapi")),
			want:   ExitTrustOrDeletePends,
			reason: "driver trust failures map to 3",
		},
		{
			name:   "trust not established",
			err:    New("install driver", TrustNotEstablished, errors.New("setupapi")),
			want:   ExitTrustOrDeletePends,
			reason: "driver trust failures map to 3",
		},
		{
			name:   "marked for delete",
			err:    New("install service", ServiceMarkedForDelete, errors.New("scm")),
			want:   ExitTrustOrDeletePends,
			reason: "delete pending reboot maps to 3",
		},
		{
			name:   "unlisted system code",
			err:    New("install service", 5, errors.New("access denied")),
			want:   ExitFailure,
			reason: "any undistinguished system code is a generic failure",
		},
		{
			name:   "zero code",
			err:    New("install service", 0, errors.New("unknown")),
			want:   ExitFailure,
			reason: "an error with no system code is still a failure",
		},
		{
			name:   "plain error",
			err:    errors.New("something broke"),
			want:   ExitFailure,
			reason: "errors without a system code are generic failures",
		},
		{
			name:   "wrapped Error",
			err:    fmt.Errorf("dispatch: %w", New("start service", ServiceAlreadyRunning, nil)),
			want:   ExitServiceState,
			reason: "the boundary unwraps to find the system code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d: %s", got, tt.want, tt.reason)
			}
		})
	}
}

// TestErrorMessage tests Error formatting and unwrapping
func TestErrorMessage(t *testing.T) {
	inner := errors.New("access is denied")
	err := New("start service", 5, inner)

	if !errors.Is(err, inner) {
		t.Error("New() must wrap the underlying error for errors.Is")
	}

	msg := err.Error()
	for _, part := range []string{"start service", "access is denied", "5"} {
		if indexOf(msg, part) < 0 {
			t.Errorf("Error() = %q, want it to contain %q", msg, part)
		}
	}

	bare := New("stop service", ServiceNotActive, nil)
	if indexOf(bare.Error(), "1062") < 0 {
		t.Errorf("Error() without cause = %q, want the system code included", bare.Error())
	}
}

// indexOf returns the index of substr in s, or -1
func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
