package server

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/forest33/shark/business/entity"
	"github.com/forest33/shark/pkg/format"
	"github.com/forest33/shark/pkg/logger"
)

type dissectorStub struct {
	frames [][]byte
	err    error
}

func (d *dissectorStub) Dissect(protocol string, data []byte) (*entity.Dissection, error) {
	if d.err != nil {
		return nil, d.err
	}
	d.frames = append(d.frames, data)

	r := entity.NewRecord().Set("size", len(data))
	r.Dissector = &entity.Dissector{ID: protocol, Name: "Stub"}
	return &entity.Dissection{
		Protocol: protocol,
		Root:     entity.NewRecord().Set("length", len(data)),
		Layer:    entity.Single(r),
	}, nil
}

func newServer(d entity.PacketDissector, sink *bytes.Buffer) *Server {
	return New(&Config{Protocol: entity.ProtoSpinel}, logger.NewNop(), d, format.NewText(format.Options{}), sink)
}

func TestHandle(t *testing.T) {
	var (
		sink bytes.Buffer
		d    = &dissectorStub{}
		s    = newServer(d, &sink)
	)

	if err := s.handle([]byte{0x81, 0x02, 0x71}); err != nil {
		t.Fatal(err)
	}
	if err := s.handle([]byte("80 06 00 72\n")); err != nil {
		t.Fatal(err)
	}

	want := [][]byte{{0x81, 0x02, 0x71}, {0x80, 0x06, 0x00, 0x72}}
	if diff := cmp.Diff(want, d.frames); diff != "" {
		t.Errorf("frames mismatch (-want +got):\n%s", diff)
	}
	if got := strings.Count(sink.String(), "[Stub]"); got != 2 {
		t.Errorf("expected two rendered dissections, got %d:\n%s", got, sink.String())
	}
	if diff := cmp.Diff(Stat{Received: 2, Bytes: 15}, s.Stat()); diff != "" {
		t.Errorf("stat mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleErrors(t *testing.T) {
	var sink bytes.Buffer

	s := newServer(&dissectorStub{err: entity.NewDecodeError(entity.ProtoSpinel, 1, entity.ErrTruncated)}, &sink)
	if err := s.handle([]byte{0x81}); !errors.Is(err, entity.ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}

	s = newServer(&dissectorStub{}, &sink)
	if err := s.handle([]byte("zz")); err == nil {
		t.Error("expected hex error")
	}
	if sink.Len() != 0 {
		t.Errorf("unexpected output %q", sink.String())
	}
}
