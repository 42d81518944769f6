// Package coap CoAP (RFC 7252) message dissector
package coap

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/plgd-dev/go-coap/v3/message"
	"github.com/plgd-dev/go-coap/v3/udp/coder"

	"github.com/forest33/shark/business/entity"
	"github.com/forest33/shark/pkg/cursor"
)

const (
	Version       = 1
	PayloadMarker = 0xFF

	headerLength   = 4
	maxTokenLength = 8
	maxOptions     = 32

	extendedOneByte  = 13
	extendedTwoBytes = 14
	extendedReserved = 15
)

type valueFormat uint8

const (
	formatOpaque valueFormat = iota
	formatString
	formatUint
)

type option struct {
	name   string
	format valueFormat
	// separator joins repeated values into one string
	separator string
}

var options = map[message.OptionID]option{
	message.IfMatch:       {name: "If-Match"},
	message.URIHost:       {name: "Uri-Host", format: formatString},
	message.ETag:          {name: "ETag"},
	message.IfNoneMatch:   {name: "If-None-Match"},
	message.Observe:       {name: "Observe", format: formatUint},
	message.URIPort:       {name: "Uri-Port", format: formatUint},
	message.LocationPath:  {name: "Location-Path", format: formatString, separator: "/"},
	message.URIPath:       {name: "Uri-Path", format: formatString, separator: "/"},
	message.ContentFormat: {name: "Content-Format", format: formatUint},
	message.MaxAge:        {name: "Max-Age", format: formatUint},
	message.URIQuery:      {name: "Uri-Query", format: formatString, separator: "&"},
	message.Accept:        {name: "Accept", format: formatUint},
	message.LocationQuery: {name: "Location-Query", format: formatString, separator: "&"},
	message.Block2:        {name: "Block2", format: formatUint},
	message.Block1:        {name: "Block1", format: formatUint},
	message.Size2:         {name: "Size2", format: formatUint},
	message.ProxyURI:      {name: "Proxy-Uri", format: formatString},
	message.ProxyScheme:   {name: "Proxy-Scheme", format: formatString},
	message.Size1:         {name: "Size1", format: formatUint},
}

var types = [...]string{"CON", "NON", "ACK", "RST"}

var codeNames = map[uint8]string{
	0x01: "GET",
	0x02: "POST",
	0x03: "PUT",
	0x04: "DELETE",
	0x41: "Created",
	0x42: "Deleted",
	0x43: "Valid",
	0x44: "Changed",
	0x45: "Content",
	0x5F: "Continue",
	0x80: "Bad Request",
	0x81: "Unauthorized",
	0x82: "Bad Option",
	0x83: "Forbidden",
	0x84: "Not Found",
	0x85: "Method Not Allowed",
	0x86: "Not Acceptable",
	0x8C: "Precondition Failed",
	0x8D: "Request Entity Too Large",
	0x8F: "Unsupported Content-Format",
	0xA0: "Internal Server Error",
	0xA1: "Not Implemented",
	0xA2: "Bad Gateway",
	0xA3: "Service Unavailable",
	0xA4: "Gateway Timeout",
	0xA5: "Proxying Not Supported",
}

// New creates CoAP dissector
func New() *entity.Dissector {
	return &entity.Dissector{
		ID:     entity.ProtoCoAP,
		Name:   "CoAP",
		Decode: decode,
		Nexts: []entity.NextCandidate{
			{ID: entity.ProtoThreadTLV, Match: entity.FieldPresent{Field: "payload"}},
		},
	}
}

// CodeString formats a message code in the c.dd notation
func CodeString(code uint8) string {
	return fmt.Sprintf("%d.%02d", code>>5, code&0x1F)
}

// OptionName returns name of the option number
func OptionName(number uint16) string {
	if opt, ok := options[message.OptionID(number)]; ok {
		return opt.name
	}
	return fmt.Sprintf("Option-%d", number)
}

func decode(data []byte, _ *entity.Record) (*entity.Layer, error) {
	if len(data) != 0 && data[0]>>6 != Version {
		return nil, entity.NewDecodeError(entity.ProtoCoAP, 0, errors.Wrapf(entity.ErrWrongPacketData, "unsupported version %d", data[0]>>6))
	}

	msg := message.Message{Options: make(message.Options, 0, maxOptions)}
	if _, err := coder.DefaultCoder.Decode(data, &msg); err != nil {
		offset, cause := locate(data)
		return nil, entity.NewDecodeError(entity.ProtoCoAP, offset, errors.Wrap(cause, err.Error()))
	}

	code := uint8(msg.Code)
	r := entity.NewRecord().
		Set("version", uint8(Version)).
		Set("type", types[int(msg.Type)&0x03]).
		Set("code", CodeString(code))
	if name, ok := codeNames[code]; ok {
		r.Set("code_name", name)
	}
	r.Set("message_id", uint16(msg.MessageID)).
		Set("token", []byte(msg.Token))

	if opts := optionsRecord(msg.Options); len(opts.Fields()) != 0 {
		r.Set("options", opts)
	}
	if len(msg.Payload) != 0 {
		r.Set("payload", msg.Payload)
	}

	return entity.Single(r), nil
}

// optionsRecord renders options in wire order, repeated path and query options joined
func optionsRecord(opts message.Options) *entity.Record {
	var (
		r      = entity.NewRecord()
		joined = make(map[string][]string)
	)

	for _, o := range opts {
		opt, ok := options[o.ID]
		if !ok {
			r.Set(OptionName(uint16(o.ID)), o.Value)
			continue
		}

		switch opt.format {
		case formatString:
			if opt.separator != "" {
				joined[opt.name] = append(joined[opt.name], string(o.Value))
				r.Set(opt.name, strings.Join(joined[opt.name], opt.separator))
			} else {
				r.Set(opt.name, string(o.Value))
			}
		case formatUint:
			r.Set(opt.name, uintValue(o.Value))
		default:
			r.Set(opt.name, o.Value)
		}
	}

	return r
}

// locate walks the message layout to find where a rejected message goes wrong
func locate(data []byte) (int, error) {
	c := cursor.New(data)
	if c.Len() < headerLength {
		return c.Len(), entity.ErrTruncated
	}
	b, _ := c.Uint8()
	if err := c.Skip(headerLength - 1); err != nil {
		return c.Offset(), err
	}
	if b>>6 != Version {
		return 0, entity.ErrWrongPacketData
	}
	tkl := int(b & 0x0F)
	if tkl > maxTokenLength {
		return 0, entity.ErrWrongPacketData
	}
	if err := c.Skip(tkl); err != nil {
		return c.Offset(), entity.ErrTruncated
	}

	for !c.Empty() {
		start := c.Offset()
		b, _ := c.Uint8()
		if b == PayloadMarker {
			break
		}
		if b>>4 == extendedReserved || b&0x0F == extendedReserved {
			return start, entity.ErrWrongPacketData
		}
		if _, err := extended(c, b>>4); err != nil {
			return c.Offset(), entity.ErrTruncated
		}
		length, err := extended(c, b&0x0F)
		if err != nil {
			return c.Offset(), entity.ErrTruncated
		}
		if err := c.Skip(int(length)); err != nil {
			return c.Offset(), entity.ErrTruncated
		}
	}

	return 0, entity.ErrWrongPacketData
}

// extended resolves the 13/14 extended encodings of option delta and length nibbles
func extended(c *cursor.Cursor, nibble uint8) (uint32, error) {
	switch nibble {
	case extendedOneByte:
		v, err := c.Uint8()
		return uint32(v) + 13, err
	case extendedTwoBytes:
		v, err := c.Uint16BE()
		return uint32(v) + 269, err
	}
	return uint32(nibble), nil
}

func uintValue(b []byte) uint32 {
	var v uint32
	for _, x := range b {
		v = v<<8 | uint32(x)
	}
	return v
}
