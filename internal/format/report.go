package format

import (
	"time"

	"github.com/hashicorp/go-multierror"
)

// Result is the outcome of formatting one file.
type Result struct {
	Path     string
	Err      error
	Duration time.Duration
}

// OK reports whether the formatter succeeded on the file.
func (r Result) OK() bool {
	return r.Err == nil
}

// Report collects the results of a dispatch run in invocation order.
type Report struct {
	StartTime time.Time
	EndTime   time.Time
	Style     string
	Results   []Result
}

// NewReport creates an empty Report for the given style.
func NewReport(style string) *Report {
	return &Report{Style: style}
}

// Add appends a result.
func (r *Report) Add(res Result) {
	r.Results = append(r.Results, res)
}

// Succeeded returns the results of files that were formatted.
func (r *Report) Succeeded() []Result {
	return r.filter(true)
}

// Failed returns the results of files the formatter failed on.
func (r *Report) Failed() []Result {
	return r.filter(false)
}

func (r *Report) filter(ok bool) []Result {
	var out []Result
	for _, res := range r.Results {
		if res.OK() == ok {
			out = append(out, res)
		}
	}
	return out
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Err returns every failure folded into a *multierror.Error, or nil if all
// files were formatted.
func (r *Report) Err() error {
	var merr *multierror.Error
	for _, res := range r.Results {
		if res.Err != nil {
			merr = multierror.Append(merr, res.Err)
		}
	}
	return merr.ErrorOrNil()
}
