package types

import (
	"errors"
	"strings"
	"testing"
)

func TestFetchErrorUnwrap(t *testing.T) {
	err := &FetchError{URL: "https://example.com", StatusCode: 503, Err: ErrEmptyResponse}

	if !errors.Is(err, ErrEmptyResponse) {
		t.Error("FetchError must unwrap to its cause")
	}
	if msg := err.Error(); !strings.Contains(msg, "503") || !strings.Contains(msg, "example.com") {
		t.Errorf("Error() = %q", msg)
	}
}

func TestStorageErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &StorageError{Backend: "csv", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("StorageError must unwrap to its cause")
	}
	if msg := err.Error(); !strings.Contains(msg, "csv") {
		t.Errorf("Error() = %q", msg)
	}
}

func TestStubHasText(t *testing.T) {
	if (&Stub{}).HasText() {
		t.Error("empty stub must not report text")
	}
	if !(&Stub{Text: "body"}).HasText() {
		t.Error("stub with body must report text")
	}
}
