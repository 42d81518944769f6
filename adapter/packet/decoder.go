// Package packet IPv6, ICMPv6 and UDP dissectors built on gopacket layers
package packet

import (
	"encoding/binary"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/forest33/shark/business/entity"
)

const (
	IPv6HeaderLength   = 40
	UDPHeaderLength    = 8
	ICMPv6HeaderLength = 4

	extHeaderMinLength = 2
)

// extension headers sharing the generic next header/length layout
var ipv6Extensions = map[layers.IPProtocol]struct{}{
	layers.IPProtocolIPv6HopByHop:    {},
	layers.IPProtocolIPv6Routing:     {},
	layers.IPProtocolIPv6Fragment:    {},
	layers.IPProtocolIPv6Destination: {},
}

// NewIPv6 creates IPv6 dissector
func NewIPv6() *entity.Dissector {
	return &entity.Dissector{
		ID:     entity.ProtoIPv6,
		Name:   "IPv6",
		Decode: decodeIPv6,
		Nexts: []entity.NextCandidate{
			{ID: entity.ProtoUDP, Match: entity.Eq("protocol", uint8(layers.IPProtocolUDP))},
			{ID: entity.ProtoICMPv6, Match: entity.Eq("protocol", uint8(layers.IPProtocolICMPv6))},
		},
	}
}

// NewUDP creates UDP dissector
func NewUDP() *entity.Dissector {
	return &entity.Dissector{
		ID:     entity.ProtoUDP,
		Name:   "UDP",
		Decode: decodeUDP,
		Nexts: []entity.NextCandidate{
			{
				ID:    entity.ProtoCoAP,
				Match: entity.AnyOf{entity.Eq("sport", entity.PortCoAP), entity.Eq("dport", entity.PortCoAP)},
			},
			{
				ID:    entity.ProtoMLE,
				Match: entity.AllOf{entity.Eq("sport", entity.PortMLE), entity.Eq("dport", entity.PortMLE)},
			},
		},
	}
}

// NewICMPv6 creates ICMPv6 dissector
func NewICMPv6() *entity.Dissector {
	return &entity.Dissector{
		ID:     entity.ProtoICMPv6,
		Name:   "ICMPv6",
		Decode: decodeICMPv6,
	}
}

func decodeIPv6(data []byte, _ *entity.Record) (*entity.Layer, error) {
	if len(data) < IPv6HeaderLength {
		return nil, entity.NewDecodeError(entity.ProtoIPv6, len(data), entity.ErrTruncated)
	}
	if data[0]>>4 != 6 {
		return nil, entity.NewDecodeError(entity.ProtoIPv6, 0, entity.ErrWrongPacketData)
	}

	// gopacket decodes only the fixed header, extension headers are walked below
	hdr := make([]byte, IPv6HeaderLength)
	copy(hdr, data)
	hdr[6] = byte(layers.IPProtocolNoNextHeader)
	// a zero payload length reads as a jumbogram without Hop-by-Hop
	length := binary.BigEndian.Uint16(data[4:6])
	if length == 0 {
		hdr[5] = 1
	}

	var ip6 layers.IPv6
	if err := ip6.DecodeFromBytes(hdr, gopacket.NilDecodeFeedback); err != nil {
		return nil, entity.NewDecodeError(entity.ProtoIPv6, 0, entity.ErrWrongPacketData)
	}
	ip6.NextHeader = layers.IPProtocol(data[6])
	ip6.Length = length

	body := data[IPv6HeaderLength:]
	if int(ip6.Length) > len(body) {
		return nil, entity.NewDecodeError(entity.ProtoIPv6, len(data), entity.ErrTruncated)
	}
	body = body[:ip6.Length]

	var (
		offset  = IPv6HeaderLength
		next    = ip6.NextHeader
		headers = make([]*entity.Record, 0, 2)
	)
	for {
		if _, ok := ipv6Extensions[next]; !ok {
			break
		}
		if len(body) < extHeaderMinLength || len(body) < (int(body[1])+1)*8 {
			return nil, entity.NewDecodeError(entity.ProtoIPv6, offset, entity.ErrTruncated)
		}

		var ext layers.IPv6ExtensionSkipper
		if err := ext.DecodeFromBytes(body, gopacket.NilDecodeFeedback); err != nil {
			return nil, entity.NewDecodeError(entity.ProtoIPv6, offset, entity.ErrWrongPacketData)
		}
		headers = append(headers, entity.NewRecord().
			Set("type", uint8(next)).
			Set("type_name", next.String()).
			Set("length", body[1]).
			Set("value", ext.Contents[extHeaderMinLength:]))

		offset += len(ext.Contents)
		next = ext.NextHeader
		body = ext.Payload
	}

	r := entity.NewRecord().
		Set("header", entity.NewRecord().
			Set("version", ip6.Version).
			Set("traffic_class", ip6.TrafficClass).
			Set("flow_label", ip6.FlowLabel).
			Set("length", ip6.Length).
			Set("next_header", uint8(ip6.NextHeader)).
			Set("hop_limit", ip6.HopLimit).
			Set("src", ip6.SrcIP.String()).
			Set("dst", ip6.DstIP.String()))
	if len(headers) != 0 {
		r.Set("headers", headers)
	}
	r.Set("protocol", uint8(next)).
		Set("protocol_name", next.String()).
		Set("payload", body)

	return entity.Single(r), nil
}

func decodeUDP(data []byte, _ *entity.Record) (*entity.Layer, error) {
	if len(data) < UDPHeaderLength {
		return nil, entity.NewDecodeError(entity.ProtoUDP, len(data), entity.ErrTruncated)
	}

	var udp layers.UDP
	if err := udp.DecodeFromBytes(data, gopacket.NilDecodeFeedback); err != nil {
		return nil, entity.NewDecodeError(entity.ProtoUDP, 4, entity.ErrWrongPacketData)
	}

	return entity.Single(entity.NewRecord().
		Set("sport", uint16(udp.SrcPort)).
		Set("dport", uint16(udp.DstPort)).
		Set("length", udp.Length).
		Set("chksum", udp.Checksum).
		Set("payload", udp.Payload)), nil
}

func decodeICMPv6(data []byte, _ *entity.Record) (*entity.Layer, error) {
	if len(data) < ICMPv6HeaderLength {
		return nil, entity.NewDecodeError(entity.ProtoICMPv6, len(data), entity.ErrTruncated)
	}

	var icmp layers.ICMPv6
	if err := icmp.DecodeFromBytes(data, gopacket.NilDecodeFeedback); err != nil {
		return nil, entity.NewDecodeError(entity.ProtoICMPv6, 0, entity.ErrWrongPacketData)
	}

	return entity.Single(entity.NewRecord().
		Set("type", icmp.TypeCode.Type()).
		Set("code", icmp.TypeCode.Code()).
		Set("type_name", icmp.TypeCode.String()).
		Set("checksum", icmp.Checksum).
		Set("payload", icmp.Payload)), nil
}
