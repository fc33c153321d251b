package report

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/andyballingall/cppfmt/internal/format"
)

func sampleReport() *format.Report {
	start := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	r := format.NewReport("google")
	r.StartTime = start
	r.EndTime = start.Add(1500 * time.Millisecond)
	r.Add(format.Result{Path: "src/a.cpp", Duration: 200 * time.Millisecond})
	r.Add(format.Result{Path: "src/broken.cpp", Err: errors.New("clang-format failed on src/broken.cpp: exit status 1")})
	r.Add(format.Result{Path: "include/b.hpp", Duration: 100 * time.Millisecond})
	return r
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	t.Run("failures and summary", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, (&TextReporter{}).Write(&buf, sampleReport()))

		out := buf.String()
		assert.Contains(t, out, "CPPFMT REPORT")
		assert.Contains(t, out, "09:30:00")
		assert.Contains(t, out, "1.5s")
		assert.Contains(t, out, "google")
		assert.Contains(t, out, "[FAIL] src/broken.cpp")
		assert.Contains(t, out, "exit status 1")
		assert.Contains(t, out, "Summary: 2 formatted, 1 failed")
		assert.NotContains(t, out, "src/a.cpp", "successes are hidden unless verbose")
		assert.NotContains(t, out, "\033[", "no colour codes when colour is off")
	})

	t.Run("verbose lists successes", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, (&TextReporter{Verbose: true}).Write(&buf, sampleReport()))

		out := buf.String()
		assert.Contains(t, out, "[ OK ] src/a.cpp")
		assert.Contains(t, out, "[ OK ] include/b.hpp")
	})

	t.Run("colour", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, (&TextReporter{UseColour: true}).Write(&buf, sampleReport()))
		assert.Contains(t, buf.String(), "\033[")
	})

	t.Run("empty run", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, (&TextReporter{}).Write(&buf, format.NewReport("llvm")))
		assert.Contains(t, buf.String(), "Summary: 0 formatted, 0 failed")
	})
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	t.Run("stats and results", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, (&JSONReporter{}).Write(&buf, sampleReport()))

		raw := buf.Bytes()
		require.True(t, gjson.ValidBytes(raw))
		assert.Equal(t, "google", gjson.GetBytes(raw, "style").String())
		assert.Equal(t, "2026-10-14T09:30:00Z", gjson.GetBytes(raw, "startTime").String())
		assert.Equal(t, "1.5s", gjson.GetBytes(raw, "duration").String())
		assert.Equal(t, int64(3), gjson.GetBytes(raw, "stats.total").Int())
		assert.Equal(t, int64(2), gjson.GetBytes(raw, "stats.formatted").Int())
		assert.Equal(t, int64(1), gjson.GetBytes(raw, "stats.failed").Int())
		assert.Equal(t, "src/a.cpp", gjson.GetBytes(raw, "results.0.path").String())
		assert.Equal(t, "failed", gjson.GetBytes(raw, "results.1.status").String())
		assert.Contains(t, gjson.GetBytes(raw, "results.1.error").String(), "exit status 1")
		assert.False(t, gjson.GetBytes(raw, "results.0.error").Exists())
	})

	t.Run("empty run has an empty results array", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		require.NoError(t, (&JSONReporter{}).Write(&buf, format.NewReport("google")))
		assert.True(t, gjson.GetBytes(buf.Bytes(), "results").IsArray())
		assert.Equal(t, int64(0), gjson.GetBytes(buf.Bytes(), "stats.total").Int())
	})
}

func TestParseOutput(t *testing.T) {
	t.Parallel()

	for _, o := range Outputs() {
		got, err := ParseOutput(string(o))
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}

	_, err := ParseOutput("xml")
	assert.EqualError(t, err, `must be 'text' or 'json', got "xml"`)
}

func TestNew(t *testing.T) {
	t.Parallel()

	assert.IsType(t, &JSONReporter{}, New(JSON, true, true))
	assert.Equal(t, &TextReporter{Verbose: true, UseColour: false}, New(Text, true, false))
	assert.IsType(t, &TextReporter{}, New("", false, false))
}
