package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppErrorUnwrap(t *testing.T) {
	err := Newf(ErrInvalidInput, 2, "pattern length %d exceeds text length %d", 5, 3)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("errors.Is(err, ErrInvalidInput) = false")
	}
	want := "invalid input: pattern length 5 exceeds text length 3"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{ErrInvalidInput, 2},
		{ErrTrialBudgetExhausted, 3},
		{ErrInternal, 1},
		{fmt.Errorf("wrapped: %w", ErrInvalidInput), 2},
		{New(ErrTrialBudgetExhausted, 3, "no majority"), 3},
		{errors.New("unrelated"), 1},
	}
	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
