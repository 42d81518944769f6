// Package tlv type-length-value decoders of Thread TLVs and Thread Network Data TLVs
package tlv

import (
	"github.com/forest33/shark/business/entity"
	"github.com/forest33/shark/pkg/cursor"
)

const (
	// ExtendedLengthEscape length byte announcing a big-endian uint16 length
	ExtendedLengthEscape = 0xFF
)

// Options TLV encoding variant
type Options struct {
	// ExtendedLength enables the 0xFF length escape
	ExtendedLength bool
	// StableFlag splits the low bit of the type byte into the stable flag
	StableFlag bool
}

// Entry decoded TLV. Value aliases the input.
type Entry struct {
	Offset int
	Type   uint8
	Stable bool
	Length int
	Value  []byte
}

// Decode decodes back-to-back TLVs until data is exhausted. The offset of a
// DecodeError is the offset of the record that could not be decoded.
func Decode(id string, data []byte, opts Options) ([]Entry, error) {
	var (
		c       = cursor.New(data)
		entries = make([]Entry, 0, 4)
	)

	for !c.Empty() {
		e := Entry{Offset: c.Offset()}

		typ, err := c.Uint8()
		if err != nil {
			return nil, entity.NewDecodeError(id, e.Offset, err)
		}
		if opts.StableFlag {
			e.Type = typ >> 1
			e.Stable = typ&0x01 != 0
		} else {
			e.Type = typ
		}

		length, err := c.Uint8()
		if err != nil {
			return nil, entity.NewDecodeError(id, e.Offset, err)
		}
		e.Length = int(length)
		if opts.ExtendedLength && length == ExtendedLengthEscape {
			ext, err := c.Uint16BE()
			if err != nil {
				return nil, entity.NewDecodeError(id, e.Offset, err)
			}
			e.Length = int(ext)
		}

		if e.Value, err = c.Bytes(e.Length); err != nil {
			return nil, entity.NewDecodeError(id, e.Offset, err)
		}

		entries = append(entries, e)
	}

	return entries, nil
}
