package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err: &AppError{
				Code:    ErrCodeParsing,
				Message: "malformed envelope",
			},
			want: "malformed envelope",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeCommunication,
				Message: "call job info api",
				Cause:   errors.New("connection refused"),
			},
			want: "call job info api: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := Wrap(cause, ErrCodeInternal, "wrapped")

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause through Unwrap")
	}
}

func TestWrap_NilError(t *testing.T) {
	if err := Wrap(nil, ErrCodeInternal, "ignored"); err != nil {
		t.Errorf("Wrap(nil, ...) = %v, want nil", err)
	}
	if err := Wrapf(nil, ErrCodeInternal, "ignored %d", 1); err != nil {
		t.Errorf("Wrapf(nil, ...) = %v, want nil", err)
	}
}

func TestCodePredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
		want bool
	}{
		{"communication matches", Communication("net down"), IsCommunication, true},
		{"communicationf matches", Communicationf("status %d", 502), IsCommunication, true},
		{"parsing matches", Parsing("bad xml"), IsParsing, true},
		{"conflict matches", Conflict("duplicate"), IsConflict, true},
		{"internal matches", Internal("boom"), IsInternal, true},
		{"wrong code", Parsing("bad xml"), IsCommunication, false},
		{"plain error", errors.New("plain"), IsParsing, false},
		{"nil error", nil, IsConflict, false},
		{"wrapped once", fmt.Errorf("outer: %w", Conflict("duplicate")), IsConflict, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pred(tt.err); got != tt.want {
				t.Errorf("predicate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(Parsing("bad xml")); got != ErrCodeParsing {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeParsing)
	}
	if got := GetCode(errors.New("plain")); got != ErrorCode("") {
		t.Errorf("GetCode on plain error = %v, want empty", got)
	}
}
