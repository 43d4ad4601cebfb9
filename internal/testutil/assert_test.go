package testutil

import (
	"errors"
	"fmt"
	"testing"
)

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"plain string", []interface{}{"context"}, "context"},
		{"format string", []interface{}{"row %d of %s", 3, "pass"}, "row 3 of pass"},
		{"non-string arg", []interface{}{42}, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMessage(tt.args...); got != tt.want {
				t.Errorf("formatMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssertEqual_Passes(t *testing.T) {
	AssertEqual(t, []int{1, 2}, []int{1, 2})
	AssertEqual(t, "same", "same", "with context %d", 1)
}

func TestAssertErrorIs_Passes(t *testing.T) {
	sentinel := errors.New("sentinel")
	AssertErrorIs(t, fmt.Errorf("outer: %w", sentinel), sentinel)
}
