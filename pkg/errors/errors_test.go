package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidCanvas, "bad canvas: %s", "banner")

	if err.Code != ErrCodeInvalidCanvas {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidCanvas)
	}

	if err.Message != "bad canvas: banner" {
		t.Errorf("Message = %v, want %v", err.Message, "bad canvas: banner")
	}

	expected := "INVALID_CANVAS: bad canvas: banner"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeIO, cause, "write banner.svg")

	if err.Code != ErrCodeIO {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeIO)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "IO_ERROR: write banner.svg: disk full"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
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
			err:      New(ErrCodeRender, "test"),
			code:     ErrCodeRender,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeRender, "test"),
			code:     ErrCodeIO,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeRender, New(ErrCodeIO, "inner"), "outer"),
			code:     ErrCodeRender,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      wrapf(New(ErrCodeInvalidCanvas, "inner")),
			code:     ErrCodeInvalidCanvas,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
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

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidEngine, "test"), ErrCodeInvalidEngine},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsConfiguration(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(ErrCodeInvalidCanvas, "x"), true},
		{New(ErrCodeInvalidManifest, "x"), true},
		{New(ErrCodeInvalidName, "x"), true},
		{New(ErrCodeInvalidEngine, "x"), true},
		{New(ErrCodeIO, "x"), false},
		{New(ErrCodeRender, "x"), false},
		{errors.New("plain"), false},
	}

	for _, tt := range tests {
		if got := IsConfiguration(tt.err); got != tt.want {
			t.Errorf("IsConfiguration(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func wrapf(err error) error {
	return &wrapper{err}
}

type wrapper struct{ err error }

func (w *wrapper) Error() string { return "context: " + w.err.Error() }
func (w *wrapper) Unwrap() error { return w.err }
