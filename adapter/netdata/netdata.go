// Package netdata decoders of Thread Network Data TLV values
package netdata

import (
	"github.com/forest33/shark/adapter/tlv"
	"github.com/forest33/shark/business/entity"
	"github.com/forest33/shark/pkg/cursor"
)

const (
	borderRouterEntryLength = 4
	hasRouteEntryLength     = 3

	// ThreadEnterpriseNumber implied enterprise number of services with the T flag set
	ThreadEnterpriseNumber = 44970
)

// subTLVs chains a value of nested Network Data TLVs
var subTLVs = []entity.NextCandidate{
	{ID: entity.ProtoNetDataTLV, Match: entity.FieldPresent{Field: "value"}},
}

// NewPrefix creates dissector of the Prefix TLV
func NewPrefix() *entity.Dissector {
	return &entity.Dissector{
		ID:           entity.ProtoNetDataPrefix,
		Name:         "NetworkData:PrefixTlv",
		PayloadField: tlv.PayloadField,
		Decode:       single(entity.ProtoNetDataPrefix, decodePrefix),
		Nexts:        subTLVs,
	}
}

// NewService creates dissector of the Service TLV
func NewService() *entity.Dissector {
	return &entity.Dissector{
		ID:           entity.ProtoNetDataService,
		Name:         "NetworkData:Service",
		PayloadField: tlv.PayloadField,
		Decode:       single(entity.ProtoNetDataService, decodeService),
		Nexts:        subTLVs,
	}
}

// NewServer creates dissector of the Server TLV
func NewServer() *entity.Dissector {
	return &entity.Dissector{
		ID:     entity.ProtoNetDataServer,
		Name:   "NetworkData:Server",
		Decode: single(entity.ProtoNetDataServer, decodeServer),
	}
}

// NewLowpanContext creates dissector of the 6LoWPAN Context TLV
func NewLowpanContext() *entity.Dissector {
	return &entity.Dissector{
		ID:     entity.ProtoNetDataLowpanContext,
		Name:   "NetworkData:6LoWPANTlv",
		Decode: single(entity.ProtoNetDataLowpanContext, decodeLowpanContext),
	}
}

// NewBorderRouter creates dissector of the Border Router TLV
func NewBorderRouter() *entity.Dissector {
	return &entity.Dissector{
		ID:     entity.ProtoNetDataBorderRouter,
		Name:   "NetworkData:BorderRouterTlv",
		Decode: many(entity.ProtoNetDataBorderRouter, borderRouterEntryLength, decodeBorderRouter),
	}
}

// NewHasRoute creates dissector of the Has Route TLV
func NewHasRoute() *entity.Dissector {
	return &entity.Dissector{
		ID:     entity.ProtoNetDataHasRoute,
		Name:   "NetworkData:HasRouteTlv",
		Decode: many(entity.ProtoNetDataHasRoute, hasRouteEntryLength, decodeHasRoute),
	}
}

func single(id string, dec func(c *cursor.Cursor) (*entity.Record, error)) entity.DecodeFunc {
	return func(data []byte, _ *entity.Record) (*entity.Layer, error) {
		c := cursor.New(data)
		r, err := dec(c)
		if err != nil {
			return nil, entity.NewDecodeError(id, c.Offset(), err)
		}
		return entity.Single(r), nil
	}
}

// many decodes a sequence of fixed size entries
func many(id string, size int, dec func(entry []byte) *entity.Record) entity.DecodeFunc {
	return func(data []byte, _ *entity.Record) (*entity.Layer, error) {
		c := cursor.New(data)
		records := make([]*entity.Record, 0, len(data)/size)
		for !c.Empty() {
			offset := c.Offset()
			entry, err := c.Bytes(size)
			if err != nil {
				return nil, entity.NewDecodeError(id, offset, err)
			}
			records = append(records, dec(entry))
		}
		return entity.Many(records...), nil
	}
}

func decodePrefix(c *cursor.Cursor) (*entity.Record, error) {
	domainID, err := c.Uint8()
	if err != nil {
		return nil, err
	}
	length, err := c.Uint8()
	if err != nil {
		return nil, err
	}
	prefix, err := c.Bytes((int(length) + 7) / 8)
	if err != nil {
		return nil, err
	}

	r := entity.NewRecord().
		Set("domain_id", domainID).
		Set("prefix_length", length).
		Set("prefix", prefix)
	if !c.Empty() {
		r.Set("value", c.Rest())
	}

	return r, nil
}

func decodeService(c *cursor.Cursor) (*entity.Record, error) {
	flags, err := c.Uint8()
	if err != nil {
		return nil, err
	}

	t := flags >> 7
	r := entity.NewRecord().
		Set("T", t).
		Set("reserved", (flags>>4)&0x07).
		Set("s_id", flags&0x0F)

	if t == 0 {
		en, err := c.Uint32BE()
		if err != nil {
			return nil, err
		}
		r.Set("s_enterprise_number", en)
	} else {
		r.Set("s_enterprise_number", uint32(ThreadEnterpriseNumber))
	}

	length, err := c.Uint8()
	if err != nil {
		return nil, err
	}
	data, err := c.Bytes(int(length))
	if err != nil {
		return nil, err
	}
	r.Set("s_service_data", data)

	if !c.Empty() {
		r.Set("value", c.Rest())
	}

	return r, nil
}

func decodeServer(c *cursor.Cursor) (*entity.Record, error) {
	rloc16, err := c.Uint16BE()
	if err != nil {
		return nil, err
	}
	return entity.NewRecord().
		Set("s_server_16", rloc16).
		Set("s_server_data", c.Rest()), nil
}

func decodeLowpanContext(c *cursor.Cursor) (*entity.Record, error) {
	b, err := c.Bytes(2)
	if err != nil {
		return nil, err
	}
	return entity.NewRecord().
		Set("reserved", b[0]>>5).
		Set("cid_compress", (b[0]>>4)&0x01).
		Set("cid", b[0]&0x0F).
		Set("context_length", b[1]), nil
}

func decodeBorderRouter(b []byte) *entity.Record {
	return entity.NewRecord().
		Set("rloc16", uint16(b[0])<<8|uint16(b[1])).
		Set("preference", b[2]>>6).
		Set("preferred", (b[2]>>5)&0x01).
		Set("slaac", (b[2]>>4)&0x01).
		Set("dhcp", (b[2]>>3)&0x01).
		Set("configure", (b[2]>>2)&0x01).
		Set("default", (b[2]>>1)&0x01).
		Set("on_mesh", b[2]&0x01).
		Set("nd_dns", b[3]>>7).
		Set("reserved", b[3]&0x7F)
}

func decodeHasRoute(b []byte) *entity.Record {
	return entity.NewRecord().
		Set("rloc16", uint16(b[0])<<8|uint16(b[1])).
		Set("preference", b[2]>>6).
		Set("reserved", b[2]&0x3F)
}
