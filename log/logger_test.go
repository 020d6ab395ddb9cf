package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)
	SetLevel(Notice)

	logger := New("test")
	logger.Debugf("hidden %d", 1)
	logger.Noticef("visible %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden 1") {
		t.Fatalf("expected debug message to be filtered; got %q", out)
	}
	if !strings.Contains(out, "visible 2") || !strings.Contains(out, "[test]") {
		t.Fatalf("expected notice message tagged with module name; got %q", out)
	}

	SetLevel(Debug)
	defer SetLevel(Notice)
	buf.Reset()
	logger.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Fatalf("expected debug message after raising verbosity; got %q", buf.String())
	}
}

func TestModuleLevel(t *testing.T) {
	SetLevel(Notice)
	SetModuleLevel("chatty", Debug)
	defer SetModuleLevel("chatty", Notice)

	if !IsEnabledFor("chatty", Debug) {
		t.Fatal("expected debug level to be enabled for module chatty")
	}
	if IsEnabledFor("quiet", Debug) {
		t.Fatal("expected debug level to be disabled for module quiet")
	}
}
