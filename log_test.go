package wirescape

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(&buf, "warn")
	if err != nil {
		t.Fatal(err)
	}

	log.Info("hidden")
	log.Warn("shown", "width", 800)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %q", out)
	}
	for _, want := range []string{"msg=shown", "component=wirescape", "width=800"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"debug", "INFO", "", " warn ", "warning", "error"} {
		if _, err := parseLevel(name); err != nil {
			t.Errorf("parseLevel(%q): %v", name, err)
		}
	}
	if _, err := parseLevel("verbose"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("parseLevel(verbose) = %v, want ErrInvalidConfig", err)
	}
	if _, err := NewLogger(&bytes.Buffer{}, "verbose"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewLogger(verbose) = %v, want ErrInvalidConfig", err)
	}
}
