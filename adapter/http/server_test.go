package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/forest33/shark/adapter/registry"
	"github.com/forest33/shark/business/entity"
	"github.com/forest33/shark/business/usecase"
	"github.com/forest33/shark/pkg/logger"
	"github.com/forest33/shark/pkg/structs"
)

func newServer(t *testing.T) *Server {
	t.Helper()
	log := logger.NewNop()

	reg, err := registry.New(log, nil)
	if err != nil {
		t.Fatal(err)
	}
	uc, err := usecase.NewSharkUseCase(log, &entity.DissectionConfig{
		RootProtocol: entity.ProtoSpinel,
		Tolerant:     structs.Ref(false),
		MaxDepth:     32,
	}, reg)
	if err != nil {
		t.Fatal(err)
	}

	s, err := New(&Config{ShowWarnings: true}, log, uc)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func do(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestProtocols(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/api/v1/protocols", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("wrong status %d", rec.Code)
	}

	var resp []*entity.ProtocolInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, p := range resp {
		if p.ID == entity.ProtoSpinel {
			found = true
			if diff := cmp.Diff([]string{entity.ProtoIPv6, entity.ProtoNetDataTLV}, p.Nexts); diff != "" {
				t.Errorf("spinel nexts mismatch (-want +got):\n%s", diff)
			}
		}
	}
	if !found {
		t.Error("spinel not listed")
	}
}

func TestDissect(t *testing.T) {
	rec := do(t, newServer(t), http.MethodPost, "/api/v1/dissect", map[string]string{
		"data": "80 06 00 72",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("wrong status %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Protocol string `json:"protocol"`
		Layer    struct {
			Records []struct {
				Name   string                 `json:"name"`
				Fields map[string]interface{} `json:"fields"`
			} `json:"records"`
		} `json:"layer"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Protocol != entity.ProtoSpinel {
		t.Errorf("wrong protocol %q", resp.Protocol)
	}
	r := resp.Layer.Records[0]
	if r.Name != "Spinel" || r.Fields["command"] != "changed" {
		t.Errorf("wrong record %+v", r)
	}
	value := r.Fields["value"].(map[string]interface{})
	if value["status_name"] != "RESET_SOFTWARE" {
		t.Errorf("wrong value %v", value)
	}
}

func TestDissectErrors(t *testing.T) {
	s := newServer(t)

	tests := map[string]struct {
		body      interface{}
		status    int
		dissector string
		offset    int
	}{
		"bad hex":        {body: map[string]string{"data": "8"}, status: http.StatusBadRequest},
		"missing data":   {body: map[string]string{"protocol": entity.ProtoSpinel}, status: http.StatusBadRequest},
		"unknown proto":  {body: map[string]string{"protocol": "net/tcp", "data": "00"}, status: http.StatusNotFound},
		"decode failure": {body: map[string]string{"protocol": entity.ProtoHDLC, "data": "7e 01 11 7e"}, status: http.StatusUnprocessableEntity, dissector: entity.ProtoHDLC, offset: 2},
	}

	for name, tc := range tests {
		rec := do(t, s, http.MethodPost, "/api/v1/dissect", tc.body)
		if rec.Code != tc.status {
			t.Errorf("%s: wrong status %d: %s", name, rec.Code, rec.Body.String())
			continue
		}
		var resp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if resp.Error == "" {
			t.Errorf("%s: empty error", name)
		}
		if tc.dissector != "" && (resp.Dissector != tc.dissector || resp.Offset == nil || *resp.Offset != tc.offset) {
			t.Errorf("%s: wrong error location %+v", name, resp)
		}
	}
}
