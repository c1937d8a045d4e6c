package diag

import (
	"bytes"
	"testing"
)

func TestConsoleReporterPrefixes(t *testing.T) {
	var buf bytes.Buffer
	r := &ConsoleReporter{W: &buf}

	r.Advisoryf("scanned %d entries", 3)
	r.Successf("animation saved: %s", "wave.json")
	r.Failuref("invalid JSON in %s", "bad.json")

	want := "Note: scanned 3 entries\n" +
		"animation saved: wave.json\n" +
		"Warning: invalid JSON in bad.json\n"
	if buf.String() != want {
		t.Errorf("output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestRecorderCapturesByTier(t *testing.T) {
	r := &Recorder{}
	r.Advisoryf("a")
	r.Successf("s %d", 1)
	r.Failuref("f")

	if len(r.Advisory) != 1 || r.Advisory[0] != "a" {
		t.Errorf("Advisory = %v", r.Advisory)
	}
	if len(r.Successes) != 1 || r.Successes[0] != "s 1" {
		t.Errorf("Successes = %v", r.Successes)
	}
	if len(r.Failures) != 1 || r.Failures[0] != "f" {
		t.Errorf("Failures = %v", r.Failures)
	}
}
