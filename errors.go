package bos

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat marks structurally invalid input: a rejected type
	// tag, a malformed container, or nesting beyond the configured maximum.
	ErrInvalidFormat = errors.New("bos: invalid format")

	// ErrTruncated marks a read that would run past the declared envelope
	// size, including a declared size larger than the supplied buffer.
	ErrTruncated = errors.New("bos: truncated input")

	// ErrTooLarge is returned by Serialize when the encoding does not fit
	// the 32-bit envelope size field.
	ErrTooLarge = errors.New("bos: encoded size exceeds envelope limit")
)

// DecodeError reports where and why decoding stopped. It wraps one of the
// sentinel errors above, so errors.Is(err, bos.ErrTruncated) etc. works.
type DecodeError struct {
	Offset uint32 // byte offset into the envelope, header included
	Kind   error  // ErrInvalidFormat or ErrTruncated
	Detail string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v at offset %d: %s", e.Kind, e.Offset, e.Detail)
}

func (e *DecodeError) Unwrap() error { return e.Kind }

func errInvalid(off uint32, format string, args ...any) error {
	return &DecodeError{Offset: off, Kind: ErrInvalidFormat, Detail: fmt.Sprintf(format, args...)}
}

func errTruncated(off uint32, format string, args ...any) error {
	return &DecodeError{Offset: off, Kind: ErrTruncated, Detail: fmt.Sprintf(format, args...)}
}
