package format

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"

	"github.com/forest33/shark/business/entity"
)

const indent = "  "

// Text human readable indented tree
type Text struct {
	opts Options
}

type printer struct {
	w    *bufio.Writer
	opts Options
	err  error
}

// NewText creates text formatter
func NewText(opts Options) *Text {
	return &Text{opts: opts}
}

func (f *Text) Format(w io.Writer, ds *entity.Dissection) error {
	p := &printer{w: bufio.NewWriter(w), opts: f.opts}
	p.layer(ds.Layer, 0)
	if p.err != nil {
		return p.err
	}
	return p.w.Flush()
}

func (p *printer) layer(l *entity.Layer, depth int) {
	if l == nil {
		return
	}
	for _, r := range l.Records {
		p.record(r, depth)
	}
}

func (p *printer) record(r *entity.Record, depth int) {
	prefix := strings.Repeat(indent, depth)

	p.printf("%s%s\n", prefix, p.paint(color.Cyan, "["+recordName(r)+"]"))
	p.fields(r.Fields(), depth)

	if p.opts.ShowWarnings {
		for _, w := range r.Warnings {
			p.printf("%s%s\n", prefix, p.paint(color.Yellow, fmt.Sprintf("! %s: %s", w.Kind, w.Message)))
		}
	}

	p.layer(r.Child, depth+1)
}

func (p *printer) fields(fields []entity.Field, depth int) {
	prefix := strings.Repeat(indent, depth)

	for _, f := range fields {
		switch v := f.Value.(type) {
		case *entity.Record:
			p.printf("%s%s:\n", prefix, f.Name)
			p.fields(v.Fields(), depth+1)
		case []*entity.Record:
			for i, n := range v {
				p.printf("%s%s[%d]:\n", prefix, f.Name, i)
				p.fields(n.Fields(), depth+1)
			}
		default:
			p.printf("%s%s: %s\n", prefix, f.Name, Value(f.Value))
		}
	}
}

func (p *printer) paint(c color.Color, s string) string {
	if !p.opts.Color {
		return s
	}
	return c.Sprint(s)
}

func (p *printer) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
