package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{New(ErrCodeInvalidConfig, "outer radius %v exceeds frame", 400), "INVALID_CONFIG: outer radius 400 exceeds frame"},
		{Wrap(ErrCodeInvalidStats, errors.New("unexpected EOF"), "decode %s", "stats.json"), "INVALID_STATS: decode stats.json: unexpected EOF"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(ErrCodeRenderFailed, cause, "rsvg-convert")
	if errors.Unwrap(err) != cause || !errors.Is(err, cause) {
		t.Error("Wrap should expose its cause to the errors package")
	}
}

func TestCodeLookup(t *testing.T) {
	stdWrapped := fmt.Errorf("load statistics: %w", New(ErrCodeFileNotFound, "stats.json"))

	tests := []struct {
		name string
		err  error
		code Code
	}{
		{"direct", New(ErrCodeInvalidFormat, "gif"), ErrCodeInvalidFormat},
		{"outermost code wins", Wrap(ErrCodeInvalidStats, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeInvalidStats},
		{"through fmt.Errorf", stdWrapped, ErrCodeFileNotFound},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if Is(tt.err, ErrCodeTimeout) {
				t.Error("Is should not match an unrelated code")
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(Wrap(ErrCodeInvalidConfig, errors.New("x"), "width must be positive")); got != "width must be positive" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidStats, "bad"), 400},
		{New(ErrCodeInvalidConfig, "bad"), 400},
		{New(ErrCodeInvalidColor, "bad"), 400},
		{New(ErrCodeFileNotFound, "missing"), 404},
		{New(ErrCodeUnsupported, "pdf"), 415},
		{New(ErrCodeTimeout, "slow"), 504},
		{Wrap(ErrCodeRenderFailed, errors.New("exit 1"), "convert"), 500},
		{errors.New("plain"), 500},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
