package entity

import (
	"github.com/google/uuid"
)

const (
	WarningIntegrity WarningKind = "integrity"
	WarningUnknown   WarningKind = "unknown"
	WarningDecode    WarningKind = "decode"
)

// WarningKind category of a non-fatal diagnostic
type WarningKind string

// Warning non-fatal diagnostic attached to a record
type Warning struct {
	Kind      WarningKind
	Dissector string
	Message   string
}

func (w Warning) String() string {
	return string(w.Kind) + ": " + w.Message
}

// Dissection result of one top-level dissection
type Dissection struct {
	ID       uuid.UUID
	Protocol string
	Root     *Record
	Layer    *Layer
	Warnings []Warning
}

// PacketDissector dissects raw frames starting from the given protocol
type PacketDissector interface {
	Dissect(protocol string, data []byte) (*Dissection, error)
}

// Walk visits every record of the layer depth-first, each record before its child layer
func (l *Layer) Walk(fn func(r *Record, depth int) bool) {
	l.walk(fn, 0)
}

func (l *Layer) walk(fn func(r *Record, depth int) bool, depth int) bool {
	if l == nil {
		return true
	}
	for _, r := range l.Records {
		if !fn(r, depth) {
			return false
		}
		if !r.Child.walk(fn, depth+1) {
			return false
		}
	}
	return true
}

// CollectWarnings gathers warnings of the whole tree in depth-first order
func (l *Layer) CollectWarnings() []Warning {
	var ws []Warning
	l.Walk(func(r *Record, _ int) bool {
		ws = append(ws, r.Warnings...)
		return true
	})
	return ws
}
