package mle

import (
	"bytes"
	"errors"
	"testing"

	"github.com/forest33/shark/business/entity"
)

func TestUnsecured(t *testing.T) {
	d := New()
	layer, err := d.Decode([]byte{0xFF, 0x09, 0x01, 0x01, 0x03}, nil)
	if err != nil {
		t.Fatal(err)
	}
	r := layer.First()

	if name, _ := r.Str("command_name"); name != "Parent Request" {
		t.Errorf("wrong command name %q", name)
	}
	if p, _ := r.Bytes("payload"); !bytes.Equal(p, []byte{0x01, 0x01, 0x03}) {
		t.Errorf("wrong payload % x", p)
	}
	if next, ok := d.NextFor(r); !ok || next != entity.ProtoThreadTLV {
		t.Errorf("wrong next dissector %q", next)
	}
}

func TestSecuredIsLeaf(t *testing.T) {
	d := New()
	layer, err := d.Decode([]byte{0x00, 0x15, 0xAA, 0xBB}, nil)
	if err != nil {
		t.Fatal(err)
	}
	r := layer.First()
	if s, _ := r.Bytes("secured"); !bytes.Equal(s, []byte{0x15, 0xAA, 0xBB}) {
		t.Errorf("wrong secured data % x", s)
	}
	if _, ok := d.NextFor(r); ok {
		t.Error("secured message must be a leaf")
	}
}

func TestUnknownCommandAndSuite(t *testing.T) {
	tests := map[string][]byte{
		"command": {0xFF, 0x30},
		"suite":   {0x07, 0x01},
	}
	for name, data := range tests {
		layer, err := New().Decode(data, nil)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		r := layer.First()
		if len(r.Warnings) != 1 || r.Warnings[0].Kind != entity.WarningUnknown {
			t.Errorf("%s: expected unknown warning, got %v", name, r.Warnings)
		}
	}
}

func TestTruncated(t *testing.T) {
	for _, data := range [][]byte{{}, {0xFF}} {
		_, err := New().Decode(data, nil)
		if !errors.Is(err, entity.ErrTruncated) {
			t.Errorf("% x: expected ErrTruncated, got %v", data, err)
		}
	}
}

func TestCommandName(t *testing.T) {
	tests := map[uint8]string{0: "Link Request", 4: "Advertisement", 17: "Discovery Response", 18: "unknown(18)"}
	for cmd, want := range tests {
		if got := CommandName(cmd); got != want {
			t.Errorf("%d: got %q, expected %q", cmd, got, want)
		}
	}
}
