// Package format renders dissection trees as text, JSON or YAML
package format

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/forest33/shark/business/entity"
)

// Formatter writes a dissection
type Formatter interface {
	Format(w io.Writer, ds *entity.Dissection) error
}

// Options rendering settings
type Options struct {
	Color        bool
	ShowWarnings bool
}

// New creates formatter by name
func New(format string, opts Options) (Formatter, error) {
	switch format {
	case entity.OutputFormatText:
		return &Text{opts: opts}, nil
	case entity.OutputFormatJSON:
		return &JSON{opts: opts}, nil
	case entity.OutputFormatYAML:
		return &YAML{opts: opts}, nil
	}
	return nil, errors.Wrap(entity.ErrUnknownFormat, format)
}

// Value renders a scalar field value
func Value(v interface{}) string {
	switch x := v.(type) {
	case []byte:
		return "0x" + hex.EncodeToString(x)
	case nil:
		return "-"
	}
	return fmt.Sprint(v)
}

func recordName(r *entity.Record) string {
	if r.Dissector == nil {
		return ""
	}
	if r.Dissector.Name != "" {
		return r.Dissector.Name
	}
	return r.Dissector.ID
}
