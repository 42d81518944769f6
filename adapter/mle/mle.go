// Package mle Thread Mesh Link Establishment dissector
package mle

import (
	"fmt"

	"github.com/forest33/shark/business/entity"
	"github.com/forest33/shark/pkg/cursor"
)

// Security suites
const (
	SecuritySuiteSecured   uint8 = 0
	SecuritySuiteNoSecured uint8 = 255
)

var commandNames = []string{
	"Link Request",
	"Link Accept",
	"Link Accept And Request",
	"Link Reject",
	"Advertisement",
	"Update",
	"Update Request",
	"Data Request",
	"Data Response",
	"Parent Request",
	"Parent Response",
	"Child ID Request",
	"Child ID Response",
	"Child Update Request",
	"Child Update Response",
	"Announce",
	"Discovery Request",
	"Discovery Response",
}

// CommandName returns name of the MLE command
func CommandName(cmd uint8) string {
	if int(cmd) < len(commandNames) {
		return commandNames[cmd]
	}
	return fmt.Sprintf("unknown(%d)", cmd)
}

// New creates MLE dissector. Only unsecured messages carry decodable TLVs.
func New() *entity.Dissector {
	return &entity.Dissector{
		ID:     entity.ProtoMLE,
		Name:   "MLE",
		Decode: decode,
		Nexts: []entity.NextCandidate{
			{
				ID: entity.ProtoThreadTLV,
				Match: entity.AllOf{
					entity.Eq("security_suite", SecuritySuiteNoSecured),
					entity.FieldPresent{Field: "payload"},
				},
			},
		},
	}
}

func decode(data []byte, _ *entity.Record) (*entity.Layer, error) {
	c := cursor.New(data)

	suite, err := c.Uint8()
	if err != nil {
		return nil, entity.NewDecodeError(entity.ProtoMLE, c.Offset(), err)
	}
	r := entity.NewRecord().Set("security_suite", suite)

	switch suite {
	case SecuritySuiteNoSecured:
		cmd, err := c.Uint8()
		if err != nil {
			return nil, entity.NewDecodeError(entity.ProtoMLE, c.Offset(), err)
		}
		r.Set("command", cmd).Set("command_name", CommandName(cmd))
		if int(cmd) >= len(commandNames) {
			r.Warn(entity.WarningUnknown, "unknown command %d", cmd)
		}
		if !c.Empty() {
			r.Set("payload", c.Rest())
		}
	case SecuritySuiteSecured:
		r.Set("secured", c.Rest())
	default:
		r.Set("secured", c.Rest())
		r.Warn(entity.WarningUnknown, "unknown security suite %d", suite)
	}

	return entity.Single(r), nil
}
