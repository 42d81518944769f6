// Package hdlc HDLC-lite link framing used on the host to co-processor serial line
package hdlc

import (
	"encoding/binary"

	"github.com/forest33/shark/business/entity"
	"github.com/forest33/shark/pkg/crc16"
)

const (
	FlagSequence   = 0x7E
	ControlEscape  = 0x7D
	EscapeXor      = 0x20
	XON            = 0x11
	XOFF           = 0x13
	VendorSpecific = 0xF8

	fcsLength = 2
)

// Config dissector options
type Config struct {
	// StrictChecksum fails the frame on FCS mismatch instead of attaching a warning
	StrictChecksum bool `mapstructure:"strictChecksum"`
}

// New creates HDLC dissector
func New(cfg *Config) *entity.Dissector {
	if cfg == nil {
		cfg = &Config{}
	}
	return &entity.Dissector{
		ID:   entity.ProtoHDLC,
		Name: "HDLC",
		Decode: func(data []byte, _ *entity.Record) (*entity.Layer, error) {
			return decode(cfg, data)
		},
		Nexts: []entity.NextCandidate{
			{ID: entity.ProtoSpinel},
		},
	}
}

func decode(cfg *Config, data []byte) (*entity.Layer, error) {
	unstuffed, err := Unstuff(data)
	if err != nil {
		return nil, err
	}
	if len(unstuffed) < fcsLength {
		return nil, entity.NewDecodeError(entity.ProtoHDLC, len(data)-1, entity.ErrTruncated)
	}

	var (
		n        = len(unstuffed) - fcsLength
		payload  = unstuffed[:n:n]
		expected = binary.LittleEndian.Uint16(unstuffed[n:])
		actual   = crc16.Checksum(payload)
	)

	r := entity.NewRecord().
		Set("payload", payload).
		Set("fcs", expected)

	if actual != expected {
		if cfg.StrictChecksum {
			return nil, entity.NewDecodeError(entity.ProtoHDLC, len(data)-1-fcsLength, entity.ErrChecksum)
		}
		r.Warn(entity.WarningIntegrity, "bad FCS %#04x, computed %#04x", expected, actual)
	}

	return entity.Single(r), nil
}

// Unstuff validates the frame delimiters and removes byte stuffing. The result
// still carries the FCS trailer.
func Unstuff(data []byte) ([]byte, error) {
	end := len(data) - 1
	if len(data) < 2 || data[0] != FlagSequence || data[end] != FlagSequence {
		return nil, entity.NewDecodeError(entity.ProtoHDLC, 0, entity.ErrInvalidFrame)
	}

	out := make([]byte, 0, len(data))
	for i := 1; i < end; i++ {
		switch data[i] {
		case ControlEscape:
			if i+1 >= end {
				return nil, entity.NewDecodeError(entity.ProtoHDLC, i, entity.ErrTruncated)
			}
			i++
			out = append(out, data[i]^EscapeXor)
		case FlagSequence:
		case XON, XOFF, VendorSpecific:
			return nil, entity.NewDecodeError(entity.ProtoHDLC, i, entity.ErrIllegalByte)
		default:
			out = append(out, data[i])
		}
	}

	return out, nil
}
