package errors

import (
	"fmt"
	"testing"
)

func TestVarwatchError_Error(t *testing.T) {
	err := &VarwatchError{
		Code:    ErrComputation,
		Status:  500,
		Message: "alignment failed",
	}

	expected := "COMPUTATION_FAILED: alignment failed"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewMissingInput(t *testing.T) {
	err := NewMissingInput()

	if err.Code != ErrMissingInput {
		t.Errorf("Code = %q, want %q", err.Code, ErrMissingInput)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	// The message is part of the external contract.
	if err.Message != "Reference or sample sequence missing." {
		t.Errorf("Message = %q, want %q", err.Message, "Reference or sample sequence missing.")
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("reference form field unreadable")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "reference form field unreadable" {
		t.Errorf("Message = %q, want %q", err.Message, "reference form field unreadable")
	}
}

func TestNewSequenceTooLarge(t *testing.T) {
	err := NewSequenceTooLarge("sample", 15000, 10000)

	if err.Code != ErrSequenceTooLarge {
		t.Errorf("Code = %q, want %q", err.Code, ErrSequenceTooLarge)
	}
	if err.Status != 413 {
		t.Errorf("Status = %d, want 413", err.Status)
	}
	if err.Details["side"] != "sample" {
		t.Errorf("Details[side] = %v, want %q", err.Details["side"], "sample")
	}
	if err.Details["actual_chars"] != 15000 {
		t.Errorf("Details[actual_chars] = %v, want 15000", err.Details["actual_chars"])
	}
	if err.Details["max_chars"] != 10000 {
		t.Errorf("Details[max_chars] = %v, want 10000", err.Details["max_chars"])
	}
}

func TestNewRateLimited(t *testing.T) {
	err := NewRateLimited()

	if err.Code != ErrRateLimited {
		t.Errorf("Code = %q, want %q", err.Code, ErrRateLimited)
	}
	if err.Status != 429 {
		t.Errorf("Status = %d, want 429", err.Status)
	}
}

func TestNewComputation(t *testing.T) {
	t.Run("with error", func(t *testing.T) {
		err := NewComputation(fmt.Errorf("aligned pair length mismatch"))

		if err.Code != ErrComputation {
			t.Errorf("Code = %q, want %q", err.Code, ErrComputation)
		}
		if err.Status != 500 {
			t.Errorf("Status = %d, want 500", err.Status)
		}
		if err.Message != "aligned pair length mismatch" {
			t.Errorf("Message = %q, want %q", err.Message, "aligned pair length mismatch")
		}
	})

	t.Run("with nil", func(t *testing.T) {
		err := NewComputation(nil)

		if err.Message != "analysis failed" {
			t.Errorf("Message = %q, want %q", err.Message, "analysis failed")
		}
	})
}

func TestIs(t *testing.T) {
	t.Run("matching code", func(t *testing.T) {
		err := NewMissingInput()
		if !Is(err, ErrMissingInput) {
			t.Error("Is() = false, want true")
		}
	})

	t.Run("non-matching code", func(t *testing.T) {
		err := NewMissingInput()
		if Is(err, ErrComputation) {
			t.Error("Is() = true, want false")
		}
	})

	t.Run("non-VarwatchError", func(t *testing.T) {
		err := fmt.Errorf("plain error")
		if Is(err, ErrMissingInput) {
			t.Error("Is() = true, want false for non-VarwatchError")
		}
	})

	t.Run("wrapped VarwatchError", func(t *testing.T) {
		inner := NewSequenceTooLarge("reference", 2, 1)
		wrapped := fmt.Errorf("analyze: %w", inner)
		if !Is(wrapped, ErrSequenceTooLarge) {
			t.Error("Is() = false, want true for wrapped VarwatchError")
		}
		if Is(wrapped, ErrRateLimited) {
			t.Error("Is() = true, want false for wrong code on wrapped VarwatchError")
		}
	})
}
