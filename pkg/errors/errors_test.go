package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	plain := New(ErrCodeInvalidNetlist, "line %d: short card", 3)
	if got, want := plain.Error(), "INVALID_NETLIST: line 3: short card"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := Wrap(ErrCodeStore, errors.New("disk full"), "persist run %s", "r1")
	if got, want := wrapped.Error(), "STORE_ERROR: persist run r1: disk full"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapPreservesChain(t *testing.T) {
	cause := errors.New("bson marshal")
	err := Wrap(ErrCodeStore, cause, "persist run")

	if !errors.Is(err, cause) {
		t.Error("errors.Is lost the wrapped cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap() did not return the cause")
	}
}

func TestCodeMatching(t *testing.T) {
	inner := New(ErrCodeInvalidNetlist, "bad card")
	outer := Wrap(ErrCodeInternal, inner, "layout failed")

	cases := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"direct match", inner, ErrCodeInvalidNetlist, true},
		{"different code", inner, ErrCodeStore, false},
		{"outermost code matches", outer, ErrCodeInternal, true},
		{"inner code shadowed by outer", outer, ErrCodeInvalidNetlist, false},
		{"plain error", errors.New("plain"), ErrCodeInternal, false},
		{"nil error", nil, ErrCodeInternal, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Is(tc.err, tc.code); got != tc.want {
				t.Errorf("Is(%v, %s) = %v, want %v", tc.err, tc.code, got, tc.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeRunNotFound, "missing")); got != ErrCodeRunNotFound {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeRunNotFound)
	}
	if got := GetCode(fmt.Errorf("fetch: %w", New(ErrCodeTimeout, "slow"))); got != ErrCodeTimeout {
		t.Errorf("GetCode(wrapped) = %q, want %q", got, ErrCodeTimeout)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "check the netlist path")); got != "check the netlist path" {
		t.Errorf("UserMessage() = %q, want message without code prefix", got)
	}
	if got := UserMessage(errors.New("open /x: no such file")); got != "open /x: no such file" {
		t.Errorf("UserMessage(plain) = %q, want error text unchanged", got)
	}
}
