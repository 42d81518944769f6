package packet

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/forest33/shark/business/entity"
)

var (
	linkLocal = []byte{0xFE, 0x80, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x01}
	allNodes  = []byte{0xFF, 0x02, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x01}
)

func ipv6(next byte, body []byte) []byte {
	b := []byte{0x6A, 0xB1, 0x23, 0x45, byte(len(body) >> 8), byte(len(body)), next, 0xFF}
	b = append(b, linkLocal...)
	b = append(b, allNodes...)
	return append(b, body...)
}

func udp(sport, dport uint16, payload []byte) []byte {
	length := UDPHeaderLength + len(payload)
	b := []byte{byte(sport >> 8), byte(sport), byte(dport >> 8), byte(dport), byte(length >> 8), byte(length), 0x12, 0x34}
	return append(b, payload...)
}

func TestIPv6Header(t *testing.T) {
	body := udp(entity.PortMLE, entity.PortMLE, []byte{0xFF, 0x00})
	layer, err := NewIPv6().Decode(ipv6(17, body), nil)
	if err != nil {
		t.Fatal(err)
	}
	r := layer.First()

	h, ok := r.Nested("header")
	if !ok {
		t.Fatal("no header")
	}
	got := make(map[string]interface{})
	for _, f := range h.Fields() {
		got[f.Name] = f.Value
	}
	want := map[string]interface{}{
		"version":       uint8(6),
		"traffic_class": uint8(0xAB),
		"flow_label":    uint32(0x12345),
		"length":        uint16(len(body)),
		"next_header":   uint8(17),
		"hop_limit":     uint8(0xFF),
		"src":           "fe80::1",
		"dst":           "ff02::1",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}

	if r.Has("headers") {
		t.Error("unexpected extension headers")
	}
	if p, _ := r.Bytes("payload"); !bytes.Equal(p, body) {
		t.Errorf("wrong payload % x", p)
	}
	if next, ok := NewIPv6().NextFor(r); !ok || next != entity.ProtoUDP {
		t.Errorf("wrong next dissector %q", next)
	}
}

func TestIPv6EmptyPayload(t *testing.T) {
	data := append(ipv6(59, nil), 0xDE, 0xAD)
	layer, err := NewIPv6().Decode(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	r := layer.First()

	h, ok := r.Nested("header")
	if !ok {
		t.Fatal("no header")
	}
	if length, _ := h.Uint("length"); length != 0 {
		t.Errorf("wrong length %d", length)
	}
	if hop, _ := h.Uint("hop_limit"); hop != 0xFF {
		t.Errorf("wrong hop limit %d", hop)
	}
	if src, _ := h.Str("src"); src != "fe80::1" {
		t.Errorf("wrong source %q", src)
	}
	if proto, _ := r.Uint("protocol"); proto != 59 {
		t.Errorf("wrong protocol %d", proto)
	}
	if p, _ := r.Bytes("payload"); len(p) != 0 {
		t.Errorf("unexpected payload % x", p)
	}
	if _, ok := NewIPv6().NextFor(r); ok {
		t.Error("no next header must be a leaf")
	}
}

func TestIPv6ExtensionHeaders(t *testing.T) {
	dstOpts := []byte{17, 0x00, 0x01, 0x04, 0x00, 0x00, 0x00, 0x00}
	body := append(dstOpts, udp(5683, 49152, nil)...)

	layer, err := NewIPv6().Decode(ipv6(60, body), nil)
	if err != nil {
		t.Fatal(err)
	}
	r := layer.First()

	v, ok := r.Get("headers")
	if !ok {
		t.Fatal("no extension headers")
	}
	headers := v.([]*entity.Record)
	if len(headers) != 1 {
		t.Fatalf("wrong number of extension headers %d", len(headers))
	}
	if typ, _ := headers[0].Uint("type"); typ != 60 {
		t.Errorf("wrong extension type %d", typ)
	}
	if value, _ := headers[0].Bytes("value"); !bytes.Equal(value, dstOpts[2:]) {
		t.Errorf("wrong extension value % x", value)
	}
	if proto, _ := r.Uint("protocol"); proto != 17 {
		t.Errorf("wrong protocol %d", proto)
	}
	if p, _ := r.Bytes("payload"); len(p) != UDPHeaderLength {
		t.Errorf("wrong payload % x", p)
	}
}

func TestIPv6Errors(t *testing.T) {
	tests := map[string]struct {
		data   []byte
		err    error
		offset int
	}{
		"short header":        {data: make([]byte, 20), err: entity.ErrTruncated, offset: 20},
		"not version 6":       {data: append([]byte{0x45}, make([]byte, 39)...), err: entity.ErrWrongPacketData},
		"payload length":      {data: ipv6(17, []byte{0x01})[:IPv6HeaderLength], err: entity.ErrTruncated, offset: IPv6HeaderLength},
		"truncated extension": {data: ipv6(43, []byte{17, 0x01, 0, 0, 0, 0, 0, 0}), err: entity.ErrTruncated, offset: IPv6HeaderLength},
	}

	for name, tc := range tests {
		_, err := NewIPv6().Decode(tc.data, nil)
		if !errors.Is(err, tc.err) {
			t.Errorf("%s: expected %v, got %v", name, tc.err, err)
			continue
		}
		if de, _ := entity.AsDecodeError(err); de.Offset != tc.offset {
			t.Errorf("%s: wrong offset %d", name, de.Offset)
		}
	}
}

func TestICMPv6(t *testing.T) {
	d := NewIPv6()
	layer, err := d.Decode(ipv6(58, []byte{0x80, 0x00, 0xAB, 0xCD, 0x00, 0x01}), nil)
	if err != nil {
		t.Fatal(err)
	}
	r := layer.First()
	if next, ok := d.NextFor(r); !ok || next != entity.ProtoICMPv6 {
		t.Fatalf("wrong next dissector %q", next)
	}

	payload, _ := d.PayloadOf(r)
	layer, err = NewICMPv6().Decode(payload, r)
	if err != nil {
		t.Fatal(err)
	}
	icmp := layer.First()
	if typ, _ := icmp.Uint("type"); typ != 128 {
		t.Errorf("wrong type %d", typ)
	}
	if sum, _ := icmp.Uint("checksum"); sum != 0xABCD {
		t.Errorf("wrong checksum %#x", sum)
	}
	if p, _ := icmp.Bytes("payload"); !bytes.Equal(p, []byte{0x00, 0x01}) {
		t.Errorf("wrong payload % x", p)
	}
}

func TestUDPNext(t *testing.T) {
	tests := map[string]struct {
		sport, dport uint16
		next         string
	}{
		"coap destination": {sport: 49152, dport: 5683, next: entity.ProtoCoAP},
		"coap source":      {sport: 5683, dport: 49152, next: entity.ProtoCoAP},
		"mle":              {sport: 19788, dport: 19788, next: entity.ProtoMLE},
		"mle one side":     {sport: 19788, dport: 49152},
		"other":            {sport: 1000, dport: 2000},
	}

	d := NewUDP()
	for name, tc := range tests {
		layer, err := d.Decode(udp(tc.sport, tc.dport, []byte{0x01}), nil)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		next, ok := d.NextFor(layer.First())
		if ok != (tc.next != "") || next != tc.next {
			t.Errorf("%s: wrong next dissector %q", name, next)
		}
	}
}

func TestUDPFields(t *testing.T) {
	layer, err := NewUDP().Decode(udp(19788, 19788, []byte{0xFF, 0x00}), nil)
	if err != nil {
		t.Fatal(err)
	}
	r := layer.First()
	for name, want := range map[string]uint64{"sport": 19788, "dport": 19788, "length": 10, "chksum": 0x1234} {
		if got, _ := r.Uint(name); got != want {
			t.Errorf("%s: got %d, expected %d", name, got, want)
		}
	}
	if p, _ := r.Bytes("payload"); !bytes.Equal(p, []byte{0xFF, 0x00}) {
		t.Errorf("wrong payload % x", p)
	}
}

func TestUDPTruncated(t *testing.T) {
	_, err := NewUDP().Decode([]byte{0x4D, 0x4C, 0x4D}, nil)
	if !errors.Is(err, entity.ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}
