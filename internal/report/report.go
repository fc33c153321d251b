package report

import (
	"fmt"
	"strings"

	"github.com/andyballingall/cppfmt/internal/format"
)

// Output names a summary format.
type Output string

const (
	Text Output = "text"
	JSON Output = "json"
)

// Outputs lists the formats New accepts.
func Outputs() []Output {
	return []Output{Text, JSON}
}

// ParseOutput validates s as an Output.
func ParseOutput(s string) (Output, error) {
	for _, o := range Outputs() {
		if string(o) == s {
			return o, nil
		}
	}
	names := make([]string, 0, len(Outputs()))
	for _, o := range Outputs() {
		names = append(names, "'"+string(o)+"'")
	}
	return "", fmt.Errorf("must be %s, got %q", strings.Join(names, " or "), s)
}

// New returns the reporter for o. Verbose and colour only affect text output.
func New(o Output, verbose, colour bool) format.Reporter {
	if o == JSON {
		return &JSONReporter{}
	}
	return &TextReporter{Verbose: verbose, UseColour: colour}
}
