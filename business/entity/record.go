package entity

import (
	"fmt"
	"reflect"
)

// LayerKind distinguishes a single decoded record from a sequence of sibling records
type LayerKind uint8

const (
	LayerSingle LayerKind = iota + 1
	LayerMany
)

func (k LayerKind) String() string {
	switch k {
	case LayerSingle:
		return "single"
	case LayerMany:
		return "many"
	}
	return fmt.Sprintf("LayerKind(%d)", uint8(k))
}

// Layer output of one dissector invocation
type Layer struct {
	Kind    LayerKind
	Records []*Record
}

// Single creates a layer holding one record
func Single(r *Record) *Layer {
	return &Layer{Kind: LayerSingle, Records: []*Record{r}}
}

// Many creates a layer holding an ordered sequence of records
func Many(records ...*Record) *Layer {
	if records == nil {
		records = []*Record{}
	}
	return &Layer{Kind: LayerMany, Records: records}
}

// First returns the first record of the layer or nil
func (l *Layer) First() *Record {
	if l == nil || len(l.Records) == 0 {
		return nil
	}
	return l.Records[0]
}

// Len returns number of records
func (l *Layer) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Records)
}

// Field named decoded value
type Field struct {
	Name  string
	Value interface{}
}

// Record decoded protocol element. Field order is the order fields were decoded in.
// Parent points to the record whose payload produced this record, Child holds the
// dissection of this record's own payload.
type Record struct {
	Dissector *Dissector
	Parent    *Record
	Child     *Layer
	Warnings  []Warning
	fields    []Field
}

// NewRecord creates an empty record
func NewRecord() *Record {
	return &Record{fields: make([]Field, 0, 8)}
}

// Set adds a field or replaces the value of an existing one
func (r *Record) Set(name string, value interface{}) *Record {
	for i := range r.fields {
		if r.fields[i].Name == name {
			r.fields[i].Value = value
			return r
		}
	}
	r.fields = append(r.fields, Field{Name: name, Value: value})
	return r
}

// Get returns field value
func (r *Record) Get(name string) (interface{}, bool) {
	if r == nil {
		return nil, false
	}
	for i := range r.fields {
		if r.fields[i].Name == name {
			return r.fields[i].Value, true
		}
	}
	return nil, false
}

// Has reports whether the field exists and holds a non-nil value
func (r *Record) Has(name string) bool {
	v, ok := r.Get(name)
	if !ok || v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// Fields returns fields in decode order
func (r *Record) Fields() []Field {
	return r.fields
}

// Bytes returns field value as a byte slice
func (r *Record) Bytes(name string) ([]byte, bool) {
	v, ok := r.Get(name)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

// Uint returns an unsigned integer field value
func (r *Record) Uint(name string) (uint64, bool) {
	v, ok := r.Get(name)
	if !ok {
		return 0, false
	}
	u, _, ok := toInteger(v)
	return u, ok
}

// Str returns a string field value
func (r *Record) Str(name string) (string, bool) {
	v, ok := r.Get(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Nested returns a nested record field value
func (r *Record) Nested(name string) (*Record, bool) {
	v, ok := r.Get(name)
	if !ok {
		return nil, false
	}
	n, ok := v.(*Record)
	return n, ok && n != nil
}

// Name returns display name of the dissector which produced the record
func (r *Record) Name() string {
	if r.Dissector == nil {
		return ""
	}
	return r.Dissector.Name
}

// Warn attaches a non-fatal diagnostic to the record
func (r *Record) Warn(kind WarningKind, format string, args ...interface{}) {
	w := Warning{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
	if r.Dissector != nil {
		w.Dissector = r.Dissector.ID
	}
	r.Warnings = append(r.Warnings, w)
}

// Lineage returns the chain of ancestors starting from the direct parent
func (r *Record) Lineage() []*Record {
	var chain []*Record
	for p := r.Parent; p != nil; p = p.Parent {
		chain = append(chain, p)
	}
	return chain
}

// toInteger converts any integer kind to its unsigned representation.
// The second result reports a negative signed value.
func toInteger(v interface{}) (uint64, bool, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		return uint64(i), i < 0, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), false, true
	}
	return 0, false, false
}

func valueEqual(a, b interface{}) bool {
	ua, na, oka := toInteger(a)
	ub, nb, okb := toInteger(b)
	if oka && okb {
		return ua == ub && na == nb
	}
	return reflect.DeepEqual(a, b)
}
