package flyweight

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry operations.
var (
	// ErrInvalidKey indicates a key was rejected by the registry's validator.
	ErrInvalidKey = errors.New("invalid flyweight key")

	// ErrDuplicate indicates Seed was called for a key that already has a payload.
	ErrDuplicate = errors.New("flyweight already registered")
)

// Sentinel errors for snapshot operations.
var (
	// ErrNilStore indicates Dump or Warm was called with a nil store.
	ErrNilStore = errors.New("snapshot store is nil")

	// ErrNilCodec indicates Dump or Warm was called with a nil codec.
	ErrNilCodec = errors.New("snapshot codec is nil")
)

// InvalidKeyError reports a key rejected by the validator.
// The key never enters the registry and no payload is constructed.
type InvalidKeyError struct {
	// Key is the rejected key.
	Key any
	// Err is the validator's error.
	Err error
}

// Error implements the error interface.
func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid key %v: %v", e.Key, e.Err)
}

// Unwrap returns ErrInvalidKey for errors.Is support.
func (e *InvalidKeyError) Unwrap() error {
	return ErrInvalidKey
}

// SnapshotError wraps errors from snapshot operations.
type SnapshotError struct {
	// Registry is the name of the registry being dumped or warmed.
	Registry string
	// Op is the operation that failed ("encode", "decode", "save", "load", "list").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *SnapshotError) Error() string {
	return fmt.Sprintf("snapshot %s for registry %s: %v", e.Op, e.Registry, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *SnapshotError) Unwrap() error {
	return e.Err
}
