package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrNoWebsites    = errors.New("no websites configured")
	ErrUnknownSite   = errors.New("no rule registered for site")
	ErrEmptyResponse = errors.New("empty response body")
	ErrInvalidURL    = errors.New("invalid URL")
	ErrNoContent     = errors.New("no matching content element")
)

// FetchError wraps errors that occur while fetching a page or document.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError wraps errors that occur while parsing a listing or article page.
type ParseError struct {
	Site string
	URL  string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error for %s (site=%q): %v", e.URL, e.Site, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StorageError wraps errors from the record store and its backends.
type StorageError struct {
	Backend string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s): %v", e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
