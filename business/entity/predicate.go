package entity

// Predicate decides whether a next dissector applies to a decoded record
type Predicate interface {
	Match(r *Record) bool
}

// FieldEquals matches when the field holds the value. Integer kinds compare by value.
type FieldEquals struct {
	Field string
	Value interface{}
}

func (p FieldEquals) Match(r *Record) bool {
	v, ok := r.Get(p.Field)
	return ok && valueEqual(v, p.Value)
}

// FieldIn matches when the field holds any of the values
type FieldIn struct {
	Field  string
	Values []interface{}
}

func (p FieldIn) Match(r *Record) bool {
	v, ok := r.Get(p.Field)
	if !ok {
		return false
	}
	for _, want := range p.Values {
		if valueEqual(v, want) {
			return true
		}
	}
	return false
}

// FieldPresent matches when the field exists and is not nil
type FieldPresent struct {
	Field string
}

func (p FieldPresent) Match(r *Record) bool {
	return r.Has(p.Field)
}

// AllOf matches when every predicate matches
type AllOf []Predicate

func (p AllOf) Match(r *Record) bool {
	for _, m := range p {
		if !m.Match(r) {
			return false
		}
	}
	return true
}

// AnyOf matches when at least one predicate matches
type AnyOf []Predicate

func (p AnyOf) Match(r *Record) bool {
	for _, m := range p {
		if m.Match(r) {
			return true
		}
	}
	return false
}

// PredicateFunc adapts a pure function over the record
type PredicateFunc func(r *Record) bool

func (f PredicateFunc) Match(r *Record) bool {
	return f(r)
}

// In is a shorthand for FieldIn
func In(field string, values ...interface{}) FieldIn {
	return FieldIn{Field: field, Values: values}
}

// Eq is a shorthand for FieldEquals
func Eq(field string, value interface{}) FieldEquals {
	return FieldEquals{Field: field, Value: value}
}
