// Package spinel Spinel host to network co-processor protocol
package spinel

import (
	"github.com/forest33/shark/business/entity"
	"github.com/forest33/shark/pkg/cursor"
)

// Command codes
const (
	CmdNoop     uint32 = 0
	CmdReset    uint32 = 1
	CmdGet      uint32 = 2
	CmdSet      uint32 = 3
	CmdInsert   uint32 = 4
	CmdRemove   uint32 = 5
	CmdChanged  uint32 = 6
	CmdInserted uint32 = 7
	CmdRemoved  uint32 = 8
)

const (
	CommandUnknown = "unknown"
)

type command struct {
	name     string
	property bool
	value    bool
}

var commands = map[uint32]command{
	CmdNoop:     {name: "noop"},
	CmdReset:    {name: "reset"},
	CmdGet:      {name: "get", property: true},
	CmdSet:      {name: "set", property: true, value: true},
	CmdInsert:   {name: "insert", property: true, value: true},
	CmdRemove:   {name: "remove", property: true, value: true},
	CmdChanged:  {name: "changed", property: true, value: true},
	CmdInserted: {name: "inserted", property: true, value: true},
	CmdRemoved:  {name: "removed", property: true, value: true},
}

// valueDecoder decodes the structured value of a property
type valueDecoder func(c *cursor.Cursor) (*entity.Record, error)

var valueDecoders = map[uint32]valueDecoder{
	PropLastStatus:        decodeLastStatus,
	PropStreamRaw:         decodeStreamRaw,
	PropStreamNet:         decodeStreamNet,
	PropStreamNetInsecure: decodeStreamNet,
}

// Config dissector options
type Config struct {
	// RawValues disables structured decoding of property values
	RawValues bool `mapstructure:"rawValues"`
}

// New creates Spinel dissector
func New(cfg *Config) *entity.Dissector {
	if cfg == nil {
		cfg = &Config{}
	}
	return &entity.Dissector{
		ID:   entity.ProtoSpinel,
		Name: "Spinel",
		Decode: func(data []byte, _ *entity.Record) (*entity.Layer, error) {
			r, err := decode(cfg, data)
			if err != nil {
				return nil, err
			}
			return entity.Single(r), nil
		},
		Payload: payload,
		Nexts: []entity.NextCandidate{
			{
				ID:    entity.ProtoIPv6,
				Match: entity.In("property", PropertyName(PropStreamNet), PropertyName(PropStreamNetInsecure)),
			},
			{
				ID: entity.ProtoNetDataTLV,
				Match: entity.In("property",
					PropertyName(PropThreadNetworkData),
					PropertyName(PropThreadStableNetworkData),
					PropertyName(PropThreadLeaderNetworkData),
					PropertyName(PropThreadStableLeaderNetworkData),
				),
			},
		},
	}
}

func decode(cfg *Config, data []byte) (*entity.Record, error) {
	var (
		c = cursor.New(data)
		r = entity.NewRecord()
	)

	h, err := c.Uint8()
	if err != nil {
		return nil, entity.NewDecodeError(entity.ProtoSpinel, c.Offset(), err)
	}
	r.Set("header", entity.NewRecord().
		Set("flag", h>>6).
		Set("iid", (h>>4)&0x03).
		Set("tid", h&0x0F))

	offset := c.Offset()
	code, err := c.PackedUint()
	if err != nil {
		return nil, entity.NewDecodeError(entity.ProtoSpinel, offset, err)
	}

	cmd, ok := commands[code]
	if !ok {
		r.Set("command", CommandUnknown).Set("command_id", code)
		r.Warn(entity.WarningUnknown, "unknown command %d", code)
		return r, nil
	}
	r.Set("command", cmd.name)

	if !cmd.property {
		return r, nil
	}

	offset = c.Offset()
	prop, err := c.PackedUint()
	if err != nil {
		return nil, entity.NewDecodeError(entity.ProtoSpinel, offset, err)
	}
	r.Set("property", PropertyName(prop)).Set("property_id", prop)

	if !cmd.value {
		return r, nil
	}

	if dec, ok := valueDecoders[prop]; ok && !cfg.RawValues {
		value, err := dec(c)
		if err != nil {
			return nil, entity.NewDecodeError(entity.ProtoSpinel, c.Offset(), err)
		}
		r.Set("value", value)
		return r, nil
	}

	r.Set("value", c.Rest())

	return r, nil
}

// payload returns the embedded datagram of stream properties or the raw value
func payload(r *entity.Record) ([]byte, bool) {
	if value, ok := r.Nested("value"); ok {
		return value.Bytes("payload")
	}
	return r.Bytes("value")
}

func decodeLastStatus(c *cursor.Cursor) (*entity.Record, error) {
	status, err := c.PackedUint()
	if err != nil {
		return nil, err
	}

	r := entity.NewRecord().
		Set("status", status).
		Set("status_name", StatusName(status))
	if !c.Empty() {
		r.Set("metadata", c.Rest())
	}

	return r, nil
}

func decodeStreamRaw(c *cursor.Cursor) (*entity.Record, error) {
	length, err := c.Uint16LE()
	if err != nil {
		return nil, err
	}
	frame, err := c.Bytes(int(length))
	if err != nil {
		return nil, err
	}
	channel, err := c.Uint8()
	if err != nil {
		return nil, err
	}
	lqi, err := c.Uint8()
	if err != nil {
		return nil, err
	}

	return entity.NewRecord().
		Set("length", length).
		Set("payload", frame).
		Set("channel", channel).
		Set("lqi", lqi), nil
}

func decodeStreamNet(c *cursor.Cursor) (*entity.Record, error) {
	length, err := c.Uint16LE()
	if err != nil {
		return nil, err
	}
	datagram, err := c.Bytes(int(length))
	if err != nil {
		return nil, err
	}

	r := entity.NewRecord().
		Set("length", length).
		Set("payload", datagram)
	if !c.Empty() {
		r.Set("metadata", c.Rest())
	}

	return r, nil
}
