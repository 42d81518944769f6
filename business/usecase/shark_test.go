package usecase

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/forest33/shark/adapter/registry"
	"github.com/forest33/shark/business/entity"
	"github.com/forest33/shark/pkg/config"
	"github.com/forest33/shark/pkg/crc16"
	"github.com/forest33/shark/pkg/logger"
	"github.com/forest33/shark/pkg/structs"
)

type testRegistry map[string]*entity.Dissector

func (r testRegistry) Resolve(id string) (*entity.Dissector, error) {
	d, ok := r[id]
	if !ok {
		return nil, entity.ErrUnknownProtocol
	}
	return d, nil
}

func (r testRegistry) IDs() []string {
	ids := make([]string, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	return ids
}

func dissectionConfig(root string, tolerant bool, maxDepth int) *entity.DissectionConfig {
	return &entity.DissectionConfig{
		RootProtocol: root,
		Tolerant:     structs.Ref(tolerant),
		MaxDepth:     maxDepth,
	}
}

func newUseCase(t *testing.T, cfg *entity.DissectionConfig, reg dissectorRegistry) *SharkUseCase {
	t.Helper()
	uc, err := NewSharkUseCase(logger.NewNop(), cfg, reg)
	if err != nil {
		t.Fatal(err)
	}
	return uc
}

func builtinUseCase(t *testing.T, tolerant bool) *SharkUseCase {
	t.Helper()
	reg, err := registry.New(logger.NewNop(), nil)
	if err != nil {
		t.Fatal(err)
	}
	return newUseCase(t, dissectionConfig(entity.ProtoHDLC, tolerant, 32), reg)
}

// leaf dissector recording the bytes it was given
func leaf(id string) *entity.Dissector {
	return &entity.Dissector{
		ID:   id,
		Name: id,
		Decode: func(data []byte, _ *entity.Record) (*entity.Layer, error) {
			return entity.Single(entity.NewRecord().Set("data", data)), nil
		},
	}
}

func hdlcFrame(payload []byte) []byte {
	fcs := crc16.Checksum(payload)
	raw := append(append([]byte{}, payload...), byte(fcs), byte(fcs>>8))
	out := []byte{0x7E}
	for _, b := range raw {
		switch b {
		case 0x7E, 0x7D, 0x11, 0x13, 0xF8:
			out = append(out, 0x7D, b^0x20)
		default:
			out = append(out, b)
		}
	}
	return append(out, 0x7E)
}

func TestNextLayerSelection(t *testing.T) {
	root := &entity.Dissector{
		ID: "test/root",
		Decode: func(data []byte, _ *entity.Record) (*entity.Layer, error) {
			return entity.Single(entity.NewRecord().
				Set("kind", data[0]).
				Set("payload", data[1:])), nil
		},
		Nexts: []entity.NextCandidate{
			{ID: "test/one", Match: entity.Eq("kind", 1)},
			{ID: "test/two", Match: entity.In("kind", 2, 3)},
			{ID: "test/first", Match: entity.In("kind", 3)},
			{ID: "test/fallback", Match: entity.PredicateFunc(func(r *entity.Record) bool {
				kind, _ := r.Uint("kind")
				return kind < 10
			})},
		},
	}
	reg := testRegistry{
		root.ID:         root,
		"test/one":      leaf("test/one"),
		"test/two":      leaf("test/two"),
		"test/first":    leaf("test/first"),
		"test/fallback": leaf("test/fallback"),
	}
	uc := newUseCase(t, dissectionConfig(root.ID, false, 32), reg)

	tests := map[string]struct {
		data []byte
		next string
	}{
		"exact":         {data: []byte{1, 0xAA}, next: "test/one"},
		"first match":   {data: []byte{3, 0xAA}, next: "test/two"},
		"fallback":      {data: []byte{7, 0xAA}, next: "test/fallback"},
		"no match leaf": {data: []byte{42, 0xAA}},
	}

	for name, tc := range tests {
		ds, err := uc.Dissect("", tc.data)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		r := ds.Layer.First()
		if tc.next == "" {
			if r.Child != nil {
				t.Errorf("%s: expected leaf, got child %s", name, r.Child.First().Dissector.ID)
			}
			continue
		}
		child := r.Child.First()
		if child == nil || child.Dissector.ID != tc.next {
			t.Errorf("%s: wrong child dissector", name)
			continue
		}
		if data, _ := child.Bytes("data"); !cmp.Equal(data, []byte{0xAA}) {
			t.Errorf("%s: wrong payload % x", name, data)
		}
		if child.Parent != r {
			t.Errorf("%s: child parent is not the producing record", name)
		}
	}
}

func TestManyLayerChildren(t *testing.T) {
	root := &entity.Dissector{
		ID: "test/many",
		Decode: func(data []byte, _ *entity.Record) (*entity.Layer, error) {
			records := make([]*entity.Record, 0, len(data))
			for _, b := range data {
				records = append(records, entity.NewRecord().Set("payload", []byte{b}))
			}
			return entity.Many(records...), nil
		},
		Nexts: []entity.NextCandidate{{ID: "test/leaf"}},
	}
	reg := testRegistry{root.ID: root, "test/leaf": leaf("test/leaf")}
	uc := newUseCase(t, dissectionConfig(root.ID, false, 32), reg)

	ds, err := uc.Dissect(root.ID, []byte{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if ds.Layer.Kind != entity.LayerMany || ds.Layer.Len() != 3 {
		t.Fatalf("wrong layer %v/%d", ds.Layer.Kind, ds.Layer.Len())
	}
	for i, r := range ds.Layer.Records {
		if r.Parent != ds.Root {
			t.Errorf("%d: parent is not the capture root", i)
		}
		if data, _ := r.Child.First().Bytes("data"); !cmp.Equal(data, []byte{byte(i + 1)}) {
			t.Errorf("%d: wrong child payload % x", i, data)
		}
	}
	if n, _ := ds.Root.Uint("length"); n != 3 {
		t.Errorf("wrong root length %d", n)
	}
}

func TestLineage(t *testing.T) {
	netData := []byte{
		0x03, 0x10, // prefix, stable
		0x00, 0x40, 0xFD, 0x00, 0x0D, 0xB8, 0x00, 0x00, 0x00, 0x00,
		0x05, 0x04, // border router, stable
		0xFC, 0x00, 0x73, 0x80,
	}
	spinel := append([]byte{0x80, 0x06, 0x56}, netData...)

	uc := builtinUseCase(t, false)
	ds, err := uc.Dissect(entity.ProtoHDLC, hdlcFrame(spinel))
	if err != nil {
		t.Fatal(err)
	}

	var (
		ids     []string
		records []*entity.Record
	)
	ds.Layer.Walk(func(r *entity.Record, depth int) bool {
		if depth != len(ids) {
			t.Errorf("%s: wrong depth %d", r.Dissector.ID, depth)
		}
		ids = append(ids, r.Dissector.ID)
		records = append(records, r)
		return true
	})

	want := []string{
		entity.ProtoHDLC,
		entity.ProtoSpinel,
		entity.ProtoNetDataTLV,
		entity.ProtoNetDataPrefix,
		entity.ProtoNetDataTLV,
		entity.ProtoNetDataBorderRouter,
	}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("dissector chain mismatch (-want +got):\n%s", diff)
	}

	if records[0].Parent != ds.Root {
		t.Error("first layer must be parented by the capture root")
	}
	for i := 1; i < len(records); i++ {
		if records[i].Parent != records[i-1] {
			t.Errorf("%s: parent is not the record whose payload produced it", ids[i])
		}
	}
	if n := len(records[len(records)-1].Lineage()); n != len(records) {
		t.Errorf("wrong lineage length %d", n)
	}

	prefix := records[3]
	if p, _ := prefix.Bytes("prefix"); !cmp.Equal(p, netData[4:12]) {
		t.Errorf("wrong prefix % x", p)
	}
	if pref, _ := records[5].Uint("preference"); pref != 1 {
		t.Errorf("wrong border router preference %d", pref)
	}
	if len(ds.Warnings) != 0 {
		t.Errorf("unexpected warnings %v", ds.Warnings)
	}
}

func TestChecksumWarning(t *testing.T) {
	frame := hdlcFrame([]byte{0x81, 0x02, 0x71})
	frame[1] = 0x82

	ds, err := builtinUseCase(t, false).Dissect("", frame)
	if err != nil {
		t.Fatal(err)
	}
	if len(ds.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", ds.Warnings)
	}
	w := ds.Warnings[0]
	if w.Kind != entity.WarningIntegrity || w.Dissector != entity.ProtoHDLC {
		t.Errorf("wrong warning %+v", w)
	}
	if cmd, _ := ds.Layer.First().Child.First().Str("command"); cmd != "get" {
		t.Errorf("payload not dissected further, command %q", cmd)
	}
}

func TestDecodeErrorPropagates(t *testing.T) {
	frame := hdlcFrame([]byte{0x80, 0x06, 0x71, 0x05, 0x00, 0x41})

	_, err := builtinUseCase(t, false).Dissect(entity.ProtoHDLC, frame)
	if !errors.Is(err, entity.ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	de, ok := entity.AsDecodeError(err)
	if !ok {
		t.Fatalf("expected DecodeError, got %T", err)
	}
	if de.Dissector != entity.ProtoSpinel || de.Offset != 5 {
		t.Errorf("wrong error location %s@%d", de.Dissector, de.Offset)
	}
	if diff := cmp.Diff([]string{entity.ProtoHDLC, entity.ProtoSpinel}, de.Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestTolerant(t *testing.T) {
	frame := hdlcFrame([]byte{0x80, 0x06, 0x71, 0x05, 0x00, 0x41})

	ds, err := builtinUseCase(t, true).Dissect(entity.ProtoHDLC, frame)
	if err != nil {
		t.Fatal(err)
	}
	r := ds.Layer.First()
	if r.Child != nil {
		t.Error("failed child must not be attached")
	}
	if len(ds.Warnings) != 1 || ds.Warnings[0].Kind != entity.WarningDecode || ds.Warnings[0].Dissector != entity.ProtoSpinel {
		t.Errorf("expected decode warning from spinel, got %v", ds.Warnings)
	}
}

func TestRootErrorIsNeverTolerated(t *testing.T) {
	_, err := builtinUseCase(t, true).Dissect(entity.ProtoHDLC, []byte{0x01, 0x7E})
	if !errors.Is(err, entity.ErrInvalidFrame) {
		t.Errorf("expected ErrInvalidFrame, got %v", err)
	}
}

func TestMaxDepth(t *testing.T) {
	loop := &entity.Dissector{
		ID: "test/loop",
		Decode: func(data []byte, _ *entity.Record) (*entity.Layer, error) {
			return entity.Single(entity.NewRecord().Set("payload", data)), nil
		},
		Nexts: []entity.NextCandidate{{ID: "test/loop"}},
	}
	uc := newUseCase(t, dissectionConfig(loop.ID, false, 4), testRegistry{loop.ID: loop})

	_, err := uc.Dissect("", []byte{0x01})
	if !errors.Is(err, entity.ErrMaxDepth) {
		t.Fatalf("expected ErrMaxDepth, got %v", err)
	}
	if de, _ := entity.AsDecodeError(err); len(de.Path) != 5 {
		t.Errorf("wrong path %v", de.Path)
	}
}

func TestUnknownProtocol(t *testing.T) {
	_, err := builtinUseCase(t, false).Dissect("net/tcp", []byte{0x00})
	if !errors.Is(err, entity.ErrUnknownProtocol) {
		t.Errorf("expected ErrUnknownProtocol, got %v", err)
	}
}

func TestUnresolvedNext(t *testing.T) {
	root := &entity.Dissector{
		ID: "test/root",
		Decode: func(data []byte, _ *entity.Record) (*entity.Layer, error) {
			return entity.Single(entity.NewRecord().Set("payload", data)), nil
		},
		Nexts: []entity.NextCandidate{{ID: "test/missing"}},
	}
	uc := newUseCase(t, dissectionConfig(root.ID, true, 32), testRegistry{root.ID: root})

	_, err := uc.Dissect("", []byte{0x01})
	if !errors.Is(err, entity.ErrUnresolvedDissector) {
		t.Errorf("expected ErrUnresolvedDissector, got %v", err)
	}
}

func TestStreamNetChain(t *testing.T) {
	udp := []byte{0x4D, 0x4C, 0x4D, 0x4C, 0x00, 0x0D, 0x00, 0x00, 0xFF, 0x09, 0x01, 0x01, 0x0F}
	ip6 := []byte{0x60, 0x00, 0x00, 0x00, 0x00, byte(len(udp)), 17, 0xFF}
	ip6 = append(ip6, make([]byte, 32)...)
	ip6 = append(ip6, udp...)
	value := append([]byte{byte(len(ip6)), 0x00}, ip6...)
	spinel := append([]byte{0x80, 0x06, 0x72}, value...)

	ds, err := builtinUseCase(t, false).Dissect(entity.ProtoHDLC, hdlcFrame(spinel))
	if err != nil {
		t.Fatal(err)
	}

	var ids []string
	ds.Layer.Walk(func(r *entity.Record, _ int) bool {
		ids = append(ids, r.Dissector.ID)
		return true
	})
	want := []string{
		entity.ProtoHDLC,
		entity.ProtoSpinel,
		entity.ProtoIPv6,
		entity.ProtoUDP,
		entity.ProtoMLE,
		entity.ProtoThreadTLV,
	}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("dissector chain mismatch (-want +got):\n%s", diff)
	}
}

func TestProtocols(t *testing.T) {
	protocols := builtinUseCase(t, false).Protocols()
	for _, p := range protocols {
		if p.ID == entity.ProtoHDLC {
			if diff := cmp.Diff([]string{entity.ProtoSpinel}, p.Nexts); diff != "" {
				t.Errorf("hdlc nexts mismatch (-want +got):\n%s", diff)
			}
			return
		}
	}
	t.Errorf("hdlc not listed in %d protocols", len(protocols))
}

func TestConfigReload(t *testing.T) {
	uc := builtinUseCase(t, false)
	frame := hdlcFrame([]byte{0x80, 0x06, 0x71, 0x05, 0x00, 0x41})

	uc.onConfigChanged(&entity.SharkConfig{Dissection: dissectionConfig(entity.ProtoHDLC, true, 32)})
	if _, err := uc.Dissect("", frame); err != nil {
		t.Errorf("tolerant settings not applied: %v", err)
	}

	if err := uc.SetConfig(dissectionConfig(entity.ProtoHDLC, false, 0)); !errors.Is(err, entity.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestConfigFileReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), entity.DefaultConfigFileName)
	write := func(data string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(data), 0600); err != nil {
			t.Fatal(err)
		}
	}
	write("Dissection:\n  rootProtocol: thread/hdlc\n  tolerant: false\n  maxDepth: 32\n")

	cfg := &entity.SharkConfig{}
	h, err := config.Load(path, cfg)
	if err != nil {
		t.Fatal(err)
	}
	reg, err := registry.New(logger.NewNop(), nil)
	if err != nil {
		t.Fatal(err)
	}
	uc := newUseCase(t, cfg.Dissection, reg)
	if err := uc.Watch(h); err != nil {
		t.Fatal(err)
	}

	// truncated STREAM_RAW value, fails unless tolerant
	frame := hdlcFrame([]byte{0x80, 0x06, 0x71, 0x05, 0x00, 0x41})

	write("Dissection:\n  rootProtocol: thread/hdlc\n  tolerant: true\n  maxDepth: 5000\n")
	if err := h.Reload(); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Dissect("", frame); !errors.Is(err, entity.ErrTruncated) {
		t.Errorf("rejected settings applied, got %v", err)
	}
	if cfg.Dissection.MaxDepth != 32 || *cfg.Dissection.Tolerant {
		t.Errorf("loaded config modified by reload: %+v", cfg.Dissection)
	}

	write("Dissection:\n  rootProtocol: net/tcp\n  tolerant: true\n  maxDepth: 32\n")
	if err := h.Reload(); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Dissect("", frame); !errors.Is(err, entity.ErrTruncated) {
		t.Errorf("unknown root applied, got %v", err)
	}

	write("Dissection:\n  rootProtocol: thread/hdlc\n  tolerant: true\n  maxDepth: 32\n")
	if err := h.Reload(); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Dissect("", frame); err != nil {
		t.Errorf("valid settings not applied: %v", err)
	}
}
