package errors

import (
	stdErrors "errors"
	"testing"
)

func TestRetryable(t *testing.T) {
	tests := []struct {
		code      Code
		retryable bool
	}{
		{code: CodeValidation},
		{code: CodeNotFound},
		{code: CodeConflict},
		{code: CodeInvariant},
		{code: CodeInternal, retryable: true},
		{code: CodeDependency, retryable: true},
	}

	for _, tt := range tests {
		if got := Retryable(tt.code); got != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, got)
		}
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing cart")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing cart" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	detail := map[string]any{"field": "cart"}
	base.WithDetails(detail)
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodeInvariant, "two categories active")
	if got := As(err); got == nil || got.Code() != CodeInvariant {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}
