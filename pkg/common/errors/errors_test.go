package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestCommonErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrClosed", ErrClosed, "resource is closed"},
		{"ErrCapacityExceeded", ErrCapacityExceeded, "capacity exceeded"},
		{"ErrInvalidConfiguration", ErrInvalidConfiguration, "invalid configuration"},
		{"ErrAborted", ErrAborted, "stream aborted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("error should not be nil")
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"closed error", ErrClosed, true},
		{"capacity exceeded", ErrCapacityExceeded, true},
		{"aborted", ErrAborted, true},
		{"invalid configuration", ErrInvalidConfiguration, false},
		{"random error", errors.New("random"), false},
		{"wrapped capacity", &OperationError{Cause: ErrCapacityExceeded}, true},
		{"wrapped aborted", &OperationError{Cause: ErrAborted}, true},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTerminal(tt.err); got != tt.want {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsOverflow(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"capacity exceeded", ErrCapacityExceeded, true},
		{"wrapped capacity", &OperationError{Cause: ErrCapacityExceeded}, true},
		{"closed error", ErrClosed, false},
		{"random error", errors.New("random"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOverflow(tt.err); got != tt.want {
				t.Errorf("IsOverflow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "without hint",
			err: &ValidationError{
				Module: "bridge",
				Field:  "maxStackedBuffers",
				Value:  -1,
				Reason: "must be positive",
			},
			want: "bridge: invalid maxStackedBuffers=-1 (must be positive)",
		},
		{
			name: "with hint",
			err: &ValidationError{
				Module: "reader",
				Field:  "highWaterMark",
				Value:  0,
				Reason: "must be positive",
				Hint:   "use a value greater than 0",
			},
			want: "reader: invalid highWaterMark=0 (must be positive) - use a value greater than 0",
		},
		{
			name: "string value",
			err: &ValidationError{
				Module: "redispush",
				Field:  "channel",
				Value:  "",
				Reason: "cannot be empty",
			},
			want: "redispush: invalid channel= (cannot be empty)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	verr := &ValidationError{
		Module: "test",
		Field:  "field",
		Value:  0,
		Reason: "test",
	}

	if verr.Unwrap() != ErrInvalidConfiguration {
		t.Errorf("Unwrap() = %v, want ErrInvalidConfiguration", verr.Unwrap())
	}

	if !errors.Is(verr, ErrInvalidConfiguration) {
		t.Error("ValidationError should wrap ErrInvalidConfiguration")
	}
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			"validation error",
			&ValidationError{Module: "test", Field: "field", Value: 0, Reason: "test"},
			true,
		},
		{
			"wrapped validation error",
			&OperationError{Cause: &ValidationError{Module: "test", Field: "field", Value: 0, Reason: "test"}},
			true,
		},
		{"operation error", &OperationError{Cause: errors.New("test")}, false},
		{"standard error", errors.New("test"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidationError(tt.err); got != tt.want {
				t.Errorf("IsValidationError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{
			name: "without context",
			err: &OperationError{
				Module:    "bridge",
				Operation: "Attach",
				Cause:     errors.New("already attached"),
			},
			want: "bridge.Attach failed: already attached",
		},
		{
			name: "with context",
			err: &OperationError{
				Module:    "redispush",
				Operation: "Subscribe",
				Cause:     errors.New("connection refused"),
				Context:   "channel events",
			},
			want: "redispush.Subscribe failed: connection refused (channel events)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	opErr := &OperationError{
		Module:    "test",
		Operation: "test",
		Cause:     cause,
	}

	if opErr.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", opErr.Unwrap(), cause)
	}

	if !errors.Is(opErr, cause) {
		t.Error("OperationError should wrap the cause error")
	}
}

func TestErrorMessages(t *testing.T) {
	t.Run("ValidationError message components", func(t *testing.T) {
		err := NewValidationError("bridge", "maxStackedBuffers", 42, "must be less than the hard cap").
			WithHint("use a value between 1 and 25")

		msg := err.Error()

		expectedParts := []string{"bridge", "maxStackedBuffers", "42", "must be less than the hard cap", "use a value between 1 and 25"}
		for _, part := range expectedParts {
			if !strings.Contains(msg, part) {
				t.Errorf("error message should contain %q, got %q", part, msg)
			}
		}
	})

	t.Run("OperationError message components", func(t *testing.T) {
		err := NewOperationError("redispush", "Subscribe", errors.New("connection refused")).
			WithContext("server unreachable")

		msg := err.Error()

		expectedParts := []string{"redispush", "Subscribe", "connection refused", "server unreachable"}
		for _, part := range expectedParts {
			if !strings.Contains(msg, part) {
				t.Errorf("error message should contain %q, got %q", part, msg)
			}
		}
	})
}
