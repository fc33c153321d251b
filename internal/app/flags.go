package app

import (
	"github.com/andyballingall/cppfmt/internal/report"
)

// outputValue is a pflag.Value restricted to the summary formats the report
// package can render.
type outputValue report.Output

func (o *outputValue) String() string {
	return string(*o)
}

func (o *outputValue) Set(v string) error {
	out, err := report.ParseOutput(v)
	if err != nil {
		return err
	}
	*o = outputValue(out)
	return nil
}

func (o *outputValue) Type() string {
	return "<text|json>"
}

// pathValue is a plain string flag whose help text shows what kind of path
// it expects.
type pathValue struct {
	path string
	kind string
}

func newPathValue(kind string) *pathValue {
	return &pathValue{kind: kind}
}

func (p *pathValue) String() string {
	return p.path
}

func (p *pathValue) Set(v string) error {
	p.path = v
	return nil
}

func (p *pathValue) Type() string {
	return "<" + p.kind + ">"
}
