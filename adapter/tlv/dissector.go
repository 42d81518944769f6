package tlv

import (
	"fmt"

	"github.com/forest33/shark/business/entity"
)

const (
	PayloadField = "value"
)

// Thread Network Data TLV types
const (
	TypeHasRoute          uint8 = 0
	TypePrefix            uint8 = 1
	TypeBorderRouter      uint8 = 2
	TypeLowpanContext     uint8 = 3
	TypeCommissioningData uint8 = 4
	TypeService           uint8 = 5
	TypeServer            uint8 = 6
)

var networkDataTypeNames = map[uint8]string{
	TypeHasRoute:          "has_route",
	TypePrefix:            "prefix",
	TypeBorderRouter:      "border_router",
	TypeLowpanContext:     "6lowpan_context",
	TypeCommissioningData: "commissioning_data",
	TypeService:           "service",
	TypeServer:            "server",
}

// NetworkDataTypeName returns name of the Network Data TLV type
func NetworkDataTypeName(t uint8) string {
	if name, ok := networkDataTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", t)
}

// NewThread creates dissector of Thread TLVs (MeshCoP, MLE, CoAP payloads)
func NewThread() *entity.Dissector {
	opts := Options{ExtendedLength: true}
	return &entity.Dissector{
		ID:           entity.ProtoThreadTLV,
		Name:         "Tlv",
		PayloadField: PayloadField,
		Decode: func(data []byte, _ *entity.Record) (*entity.Layer, error) {
			entries, err := Decode(entity.ProtoThreadTLV, data, opts)
			if err != nil {
				return nil, err
			}
			records := make([]*entity.Record, 0, len(entries))
			for _, e := range entries {
				records = append(records, entity.NewRecord().
					Set("type", e.Type).
					Set("length", e.Length).
					Set("value", e.Value))
			}
			return entity.Many(records...), nil
		},
	}
}

// NewNetworkData creates dissector of Thread Network Data TLVs
func NewNetworkData() *entity.Dissector {
	opts := Options{StableFlag: true}
	return &entity.Dissector{
		ID:           entity.ProtoNetDataTLV,
		Name:         "NetworkData:Tlv",
		PayloadField: PayloadField,
		Decode: func(data []byte, _ *entity.Record) (*entity.Layer, error) {
			entries, err := Decode(entity.ProtoNetDataTLV, data, opts)
			if err != nil {
				return nil, err
			}
			records := make([]*entity.Record, 0, len(entries))
			for _, e := range entries {
				records = append(records, entity.NewRecord().
					Set("type", e.Type).
					Set("type_name", NetworkDataTypeName(e.Type)).
					Set("stable", e.Stable).
					Set("length", e.Length).
					Set("value", e.Value))
			}
			return entity.Many(records...), nil
		},
		Nexts: []entity.NextCandidate{
			{ID: entity.ProtoNetDataService, Match: entity.Eq("type", TypeService)},
			{ID: entity.ProtoNetDataPrefix, Match: entity.Eq("type", TypePrefix)},
			{ID: entity.ProtoNetDataBorderRouter, Match: entity.Eq("type", TypeBorderRouter)},
			{ID: entity.ProtoNetDataLowpanContext, Match: entity.Eq("type", TypeLowpanContext)},
			{ID: entity.ProtoNetDataHasRoute, Match: entity.Eq("type", TypeHasRoute)},
			{ID: entity.ProtoNetDataServer, Match: entity.Eq("type", TypeServer)},
			{ID: entity.ProtoThreadTLV, Match: entity.Eq("type", TypeCommissioningData)},
		},
	}
}
