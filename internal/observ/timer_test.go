package observ

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("discover")
	tm.End(idx, "3 files")
	_ = tm.Measure("check", func() error { return errors.New("boom") })
	tm.End(42, "ignored")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(report.Phases))
	}
	if report.Phases[0].Note != "3 files" || report.Phases[1].Note != "failed" {
		t.Errorf("notes = %q, %q", report.Phases[0].Note, report.Phases[1].Note)
	}
	sum := report.Phases[0].DurationMS + report.Phases[1].DurationMS
	if report.TotalMS != sum {
		t.Errorf("total = %v, want %v", report.TotalMS, sum)
	}
}

func TestWriteSummary(t *testing.T) {
	tm := NewTimer()
	tm.End(tm.Begin("config"), "")
	var buf bytes.Buffer
	tm.WriteSummary(&buf)
	out := buf.String()
	if !strings.HasPrefix(out, "timings:\n  config") || !strings.Contains(out, "total") {
		t.Fatalf("summary:\n%s", out)
	}
}

func TestEmptyReport(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Fatalf("report = %+v", r)
	}
}
