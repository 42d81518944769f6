package entity

const (
	DefaultPayloadField = "payload"
)

// DecodeFunc decodes one protocol layer. parent is the record whose payload is being decoded.
type DecodeFunc func(data []byte, parent *Record) (*Layer, error)

// PayloadFunc extracts the bytes handed to the next dissector
type PayloadFunc func(r *Record) ([]byte, bool)

// Dissector protocol decoder with its layer chaining rules
type Dissector struct {
	ID           string
	Name         string
	Decode       DecodeFunc
	PayloadField string
	Payload      PayloadFunc
	Nexts        []NextCandidate
}

// NextCandidate names a dissector for the payload and the condition under which it applies.
// A nil Match always applies.
type NextCandidate struct {
	ID    string
	Match Predicate
}

// DissectorResolver looks up dissectors by identifier
type DissectorResolver interface {
	Resolve(id string) (*Dissector, error)
}

// IsLeaf reports whether the dissector never chains into another one
func (d *Dissector) IsLeaf() bool {
	return len(d.Nexts) == 0
}

// NextFor returns the identifier of the first candidate accepting the record
func (d *Dissector) NextFor(r *Record) (string, bool) {
	for _, n := range d.Nexts {
		if n.Match == nil || n.Match.Match(r) {
			return n.ID, true
		}
	}
	return "", false
}

// PayloadOf returns the payload of the record produced by this dissector
func (d *Dissector) PayloadOf(r *Record) ([]byte, bool) {
	if d.Payload != nil {
		return d.Payload(r)
	}
	field := d.PayloadField
	if field == "" {
		field = DefaultPayloadField
	}
	return r.Bytes(field)
}
