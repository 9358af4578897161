package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMissingAsset, "missing asset: %s", "assets/a.png")

	if err.Code != ErrCodeMissingAsset {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMissingAsset)
	}

	if err.Message != "missing asset: assets/a.png" {
		t.Errorf("Message = %v, want %v", err.Message, "missing asset: assets/a.png")
	}

	expected := "MISSING_ASSET: missing asset: assets/a.png"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeDecode, cause, "decode png")

	if err.Code != ErrCodeDecode {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeDecode)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeMissingAsset, "test"),
			code:     ErrCodeMissingAsset,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeMissingAsset, "test"),
			code:     ErrCodeDecode,
			expected: false,
		},
		{
			name:     "wrapped by fmt",
			err:      fmt.Errorf("target: %w", New(ErrCodeDecode, "inner")),
			code:     ErrCodeDecode,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeMissingAsset,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeMissingAsset,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSentinelMatching(t *testing.T) {
	sentinel := Sentinel(ErrCodeRegistryNotFound)
	err := fmt.Errorf("load: %w", New(ErrCodeRegistryNotFound, "registry not found: %s", "runtime/registry.json"))

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is(err, sentinel) = false, want true")
	}
	if errors.Is(err, Sentinel(ErrCodeMissingAsset)) {
		t.Error("errors.Is matched a sentinel with a different code")
	}
	if errors.Is(New(ErrCodeMissingAsset, "a"), New(ErrCodeMissingAsset, "b")) {
		t.Error("errors.Is matched errors with different messages")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeEncode, "x")); got != ErrCodeEncode {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeEncode)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode() = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeMissingAsset, "missing asset: a.png"), "missing asset: a.png"},
		{"coded with cause", Wrap(ErrCodeDecode, errors.New("bad header"), "decode a.png"), "decode a.png: bad header"},
		{"plain", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
