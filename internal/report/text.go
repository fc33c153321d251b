package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/andyballingall/cppfmt/internal/format"
)

// TextReporter implements format.Reporter for plain text output.
type TextReporter struct {
	Verbose   bool
	UseColour bool
}

type palette struct {
	ok, fail, grey, white, bold *color.Color
}

func (tr *TextReporter) palette() palette {
	p := palette{
		ok:    color.New(color.FgGreen),
		fail:  color.New(color.FgRed),
		grey:  color.New(color.FgHiBlack),
		white: color.New(color.FgWhite),
		bold:  color.New(color.FgWhite, color.Bold),
	}
	for _, c := range []*color.Color{p.ok, p.fail, p.grey, p.white, p.bold} {
		if tr.UseColour {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (tr *TextReporter) Write(w io.Writer, r *format.Report) error {
	p := tr.palette()
	divider := strings.Repeat("-", 40)

	fmt.Fprintf(w, "%s\n", divider)
	fmt.Fprint(w, p.bold.Sprint("CPPFMT REPORT"), "\n\n")
	fmt.Fprintf(w, "%s %s\n", p.grey.Sprint("Started: "), p.white.Sprint(r.StartTime.Format("15:04:05")))
	fmt.Fprintf(w, "%s %s\n", p.grey.Sprint("Duration:"), p.white.Sprint(r.Duration().String()))
	fmt.Fprintf(w, "%s %s\n", p.grey.Sprint("Style:   "), p.white.Sprint(r.Style))
	fmt.Fprintf(w, "%s\n", divider)

	for _, res := range r.Results {
		if res.OK() {
			if tr.Verbose {
				fmt.Fprintf(w, "%s %s %s\n", p.ok.Sprint("[ OK ]"), res.Path, p.grey.Sprintf("(%s)", res.Duration))
			}
			continue
		}
		fmt.Fprintf(w, "%s %s\n", p.fail.Sprint("[FAIL]"), p.fail.Sprint(res.Path))
		fmt.Fprintf(w, "    %v\n", res.Err)
	}

	formatted := len(r.Succeeded())
	failed := len(r.Failed())
	if tr.Verbose || failed > 0 {
		fmt.Fprintf(w, "%s\n", divider)
	}

	stats := fmt.Sprintf("%d formatted, %d failed", formatted, failed)
	statsColour := p.ok
	if failed > 0 {
		statsColour = p.fail
	}
	statsColour.Add(color.Bold)
	fmt.Fprintf(w, "%s%s\n", p.bold.Sprint("Summary: "), statsColour.Sprint(stats))
	fmt.Fprintf(w, "%s\n", divider)

	return nil
}
