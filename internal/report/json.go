// Package report renders dispatch summaries for cppfmt.
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/andyballingall/cppfmt/internal/format"
)

// JSONReporter implements format.Reporter for JSON output.
type JSONReporter struct{}

type jsonResult struct {
	Path     string `json:"path"`
	Status   string `json:"status"`
	Duration string `json:"duration"`
	Error    string `json:"error,omitempty"`
}

type jsonOutput struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  string `json:"duration"`
	Style     string `json:"style"`
	Stats     struct {
		Total     int `json:"total"`
		Formatted int `json:"formatted"`
		Failed    int `json:"failed"`
	} `json:"stats"`
	Results []jsonResult `json:"results"`
}

const (
	statusFormatted = "formatted"
	statusFailed    = "failed"
)

func (jr *JSONReporter) Write(w io.Writer, r *format.Report) error {
	out := jsonOutput{
		StartTime: r.StartTime.Format(time.RFC3339),
		EndTime:   r.EndTime.Format(time.RFC3339),
		Duration:  r.Duration().String(),
		Style:     r.Style,
		Results:   make([]jsonResult, 0, len(r.Results)),
	}

	for _, res := range r.Results {
		item := jsonResult{
			Path:     res.Path,
			Status:   statusFormatted,
			Duration: res.Duration.String(),
		}
		if res.Err != nil {
			item.Status = statusFailed
			item.Error = res.Err.Error()
			out.Stats.Failed++
		} else {
			out.Stats.Formatted++
		}
		out.Results = append(out.Results, item)
	}
	out.Stats.Total = len(r.Results)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
