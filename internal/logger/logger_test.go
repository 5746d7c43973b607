package logger

import (
	"bytes"
	"os"
	"testing"
)

// reset restores the package defaults after a test.
func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestLevels_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("resolving %q", "nomint")
	Info("loaded %d flows", 12)
	Warn("flow excluded")
	Section("Query Resolution")

	want := "[DEBUG] resolving \"nomint\"\n" +
		"[INFO] loaded 12 flows\n" +
		"[WARN] flow excluded\n" +
		"\n=== Query Resolution ===\n"
	if buf.String() != want {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestLevels_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")

	if buf.Len() > 0 {
		t.Errorf("expected no output when verbose is disabled, got %q", buf.String())
	}
}

func TestError_AlwaysPrints(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Error("load failed: %v", os.ErrNotExist)

	if buf.String() != "[ERROR] load failed: file does not exist\n" {
		t.Errorf("unexpected error output: %q", buf.String())
	}
}

func TestConcurrentAccess(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(n int) {
			SetVerbose(true)
			Debug("concurrent %d", n)
			IsVerbose()
			SetVerbose(false)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
	// Test passes if the race detector stays quiet.
}
