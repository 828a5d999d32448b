// Package errors provides structured error types for snappy.
// These errors carry the operation that failed and a coarse category so
// callers can decide whether a failure is a storage miss or a fetch failure.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// OpLoadIdentity is the operation reading the stored identity.
const OpLoadIdentity Op = "storage.LoadIdentity"

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindNetwork
	KindConfig
	KindStorage
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindNetwork:
		return "network error"
	case KindConfig:
		return "configuration error"
	case KindStorage:
		return "storage error"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for snappy.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// GetOp returns the Op of an error, or "" if it has none.
func GetOp(err error) Op {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return ""
}

// Storage errors

// StorageMiss reports that nothing is stored under key.
func StorageMiss(key string) error {
	return E(Op("storage.Get"), KindNotFound, fmt.Sprintf("no value stored under %q", key))
}

func StorageOpenFailed(dir string, err error) error {
	return E(Op("storage.Open"), KindStorage, fmt.Sprintf("failed to open store at %s", dir), err)
}

func IdentityCorrupt(key string, err error) error {
	return E(OpLoadIdentity, KindInvalid, fmt.Sprintf("stored identity under %q is not valid JSON", key), err)
}

// Remote service errors

// FetchFailed wraps a transport failure talking to the message service.
func FetchFailed(op Op, url string, err error) error {
	return E(op, KindNetwork, fmt.Sprintf("request to %s failed", url), err)
}

// UnexpectedStatus reports a non-2xx response from the message service.
func UnexpectedStatus(op Op, url string, status int) error {
	return E(op, KindNetwork, fmt.Sprintf("%s returned status %d", url, status))
}

func DecodeFailed(op Op, url string, err error) error {
	return E(op, KindInvalid, fmt.Sprintf("failed to decode response from %s", url), err)
}

func RequestTimeout(op Op, url string, err error) error {
	return E(op, KindTimeout, fmt.Sprintf("request to %s timed out", url), err)
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}
