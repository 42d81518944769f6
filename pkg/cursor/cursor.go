// Package cursor read-only front-consuming view over a byte slice
package cursor

import (
	"encoding/binary"

	"github.com/forest33/shark/business/entity"
)

const (
	// PackedUintMaxLength maximum encoded length of a packed unsigned integer
	PackedUintMaxLength = 3
)

// Cursor reads values from the front of a byte slice. Returned slices alias the input.
type Cursor struct {
	data []byte
	off  int
}

// New creates Cursor
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Offset returns number of consumed bytes
func (c *Cursor) Offset() int {
	return c.off
}

// Len returns number of unread bytes
func (c *Cursor) Len() int {
	return len(c.data) - c.off
}

// Empty reports whether all bytes were consumed
func (c *Cursor) Empty() bool {
	return c.off >= len(c.data)
}

// Peek returns the next byte without consuming it
func (c *Cursor) Peek() (byte, error) {
	if c.Empty() {
		return 0, entity.ErrTruncated
	}
	return c.data[c.off], nil
}

// Uint8 reads one byte
func (c *Cursor) Uint8() (uint8, error) {
	if c.Len() < 1 {
		return 0, entity.ErrTruncated
	}
	v := c.data[c.off]
	c.off++
	return v, nil
}

// Uint16LE reads little-endian uint16
func (c *Cursor) Uint16LE() (uint16, error) {
	b, err := c.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint16BE reads big-endian uint16
func (c *Cursor) Uint16BE() (uint16, error) {
	b, err := c.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// Uint32BE reads big-endian uint32
func (c *Cursor) Uint32BE() (uint32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Bytes reads n bytes
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if n < 0 || c.Len() < n {
		return nil, entity.ErrTruncated
	}
	b := c.data[c.off : c.off+n : c.off+n]
	c.off += n
	return b, nil
}

// Rest consumes and returns all unread bytes
func (c *Cursor) Rest() []byte {
	b := c.data[c.off:]
	c.off = len(c.data)
	return b
}

// Skip advances the cursor by n bytes
func (c *Cursor) Skip(n int) error {
	_, err := c.Bytes(n)
	return err
}

// PackedUint reads a packed unsigned integer: up to two bytes carry seven value bits
// each with the high bit as continuation flag, a third byte is taken whole and shifted by 14.
func (c *Cursor) PackedUint() (uint32, error) {
	b0, err := c.Uint8()
	if err != nil {
		return 0, err
	}
	if b0 < 0x80 {
		return uint32(b0), nil
	}

	v := uint32(b0 & 0x7f)
	b1, err := c.Uint8()
	if err != nil {
		return 0, err
	}
	if b1 < 0x80 {
		return v | uint32(b1)<<7, nil
	}

	v |= uint32(b1&0x7f) << 7
	b2, err := c.Uint8()
	if err != nil {
		return 0, err
	}
	return v + uint32(b2)<<14, nil
}
