package format

import (
	"bytes"
	"encoding/hex"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/forest33/shark/business/entity"
	"github.com/forest33/shark/pkg/structs"
)

// Document serializable view of a dissection
type Document struct {
	ID       string     `json:"id" yaml:"id"`
	Protocol string     `json:"protocol" yaml:"protocol"`
	Length   int        `json:"length" yaml:"length"`
	Layer    *Layer     `json:"layer" yaml:"layer"`
	Warnings []*Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Layer serializable dissector output
type Layer struct {
	Kind    string    `json:"kind" yaml:"kind"`
	Records []*Record `json:"records" yaml:"records"`
}

// Record serializable record
type Record struct {
	Dissector string     `json:"dissector" yaml:"dissector"`
	Name      string     `json:"name" yaml:"name"`
	Fields    Fields     `json:"fields" yaml:"fields"`
	Warnings  []*Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Child     *Layer     `json:"child,omitempty" yaml:"child,omitempty"`
}

// Warning serializable warning
type Warning struct {
	Kind      string `json:"kind" yaml:"kind"`
	Dissector string `json:"dissector" yaml:"dissector"`
	Message   string `json:"message" yaml:"message"`
}

// Fields ordered field list encoded as an object
type Fields []entity.Field

// JSON formatter
type JSON struct {
	opts Options
}

// YAML formatter
type YAML struct {
	opts Options
}

// NewDocument creates serializable view of the dissection
func NewDocument(ds *entity.Dissection, showWarnings bool) *Document {
	doc := &Document{
		ID:       ds.ID.String(),
		Protocol: ds.Protocol,
		Layer:    newLayer(ds.Layer, showWarnings),
	}
	if n, ok := ds.Root.Uint("length"); ok {
		doc.Length = int(n)
	}
	if showWarnings && len(ds.Warnings) != 0 {
		doc.Warnings = structs.Map(ds.Warnings, newWarning)
	}
	return doc
}

func newLayer(l *entity.Layer, showWarnings bool) *Layer {
	if l == nil {
		return nil
	}
	return &Layer{
		Kind: l.Kind.String(),
		Records: structs.Map(l.Records, func(r *entity.Record) *Record {
			rec := &Record{
				Name:   recordName(r),
				Fields: r.Fields(),
				Child:  newLayer(r.Child, showWarnings),
			}
			if r.Dissector != nil {
				rec.Dissector = r.Dissector.ID
			}
			if showWarnings && len(r.Warnings) != 0 {
				rec.Warnings = structs.Map(r.Warnings, newWarning)
			}
			return rec
		}),
	}
}

func newWarning(w entity.Warning) *Warning {
	return &Warning{Kind: string(w.Kind), Dissector: w.Dissector, Message: w.Message}
}

// documentValue converts a field value to its serializable form
func documentValue(v interface{}) interface{} {
	switch x := v.(type) {
	case []byte:
		return hex.EncodeToString(x)
	case *entity.Record:
		return Fields(x.Fields())
	case []*entity.Record:
		return structs.Map(x, func(r *entity.Record) Fields { return r.Fields() })
	}
	return v
}

func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fld := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(fld.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(documentValue(fld.Value))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f Fields) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, fld := range f {
		value := &yaml.Node{}
		if err := value.Encode(documentValue(fld.Value)); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: fld.Name},
			value)
	}
	return node, nil
}

// NewJSON creates JSON formatter
func NewJSON(opts Options) *JSON {
	return &JSON{opts: opts}
}

func (f *JSON) Format(w io.Writer, ds *entity.Dissection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(ds, f.opts.ShowWarnings))
}

// NewYAML creates YAML formatter
func NewYAML(opts Options) *YAML {
	return &YAML{opts: opts}
}

func (f *YAML) Format(w io.Writer, ds *entity.Dissection) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(ds, f.opts.ShowWarnings)); err != nil {
		return err
	}
	return enc.Close()
}
