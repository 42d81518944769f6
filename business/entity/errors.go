package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidFrame        = errors.New("invalid frame delimiter")
	ErrIllegalByte         = errors.New("illegal byte in frame")
	ErrTruncated           = errors.New("truncated data")
	ErrChecksum            = errors.New("checksum mismatch")
	ErrWrongPacketData     = errors.New("wrong packet data")
	ErrMaxDepth            = errors.New("maximum dissection depth exceeded")
	ErrUnknownProtocol     = errors.New("unknown protocol")
	ErrUnresolvedDissector = errors.New("unresolved next dissector")
	ErrDuplicateDissector  = errors.New("dissector already registered")
	ErrInvalidHex          = errors.New("invalid hex data")
	ErrFrameTooLarge       = errors.New("frame exceeds maximum size")
	ErrUnknownFormat       = errors.New("unknown format")
	ErrValidation          = errors.New("validation error")
)

// DecodeError structural decode failure. Offset is relative to the bytes handed
// to the failing dissector, Path lists dissectors from the root to the failing one.
type DecodeError struct {
	Dissector string
	Offset    int
	Path      []string
	Err       error
}

// NewDecodeError creates DecodeError
func NewDecodeError(dissector string, offset int, err error) *DecodeError {
	return &DecodeError{
		Dissector: dissector,
		Offset:    offset,
		Err:       err,
	}
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("%s: %v at offset %d", e.Dissector, e.Err, e.Offset)
	if len(e.Path) > 1 {
		msg += " (" + strings.Join(e.Path, " > ") + ")"
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// AsDecodeError extracts DecodeError from the error chain
func AsDecodeError(err error) (*DecodeError, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
