package logger

import (
	"errors"
	"os"
	"testing"
)

func TestOutputWriterFallsBackToStdout(t *testing.T) {
	if w := outputWriter(nil, errors.New("open failed")); w != os.Stdout {
		t.Errorf("expected stdout fallback on open error, got %T", w)
	}
	if w := outputWriter(nil, nil); w != os.Stdout {
		t.Errorf("expected stdout fallback on nil file, got %T", w)
	}
}

func TestOutputWriterTeesToFile(t *testing.T) {
	logFile, err := os.CreateTemp(t.TempDir(), "app_*.log")
	if err != nil {
		t.Fatal(err)
	}
	defer logFile.Close()

	w := outputWriter(logFile, nil)
	if w == os.Stdout {
		t.Fatal("expected a tee writer, got stdout alone")
	}
	if _, err := w.Write([]byte("reservation created\n")); err != nil {
		t.Errorf("write failed: %v", err)
	}
}
