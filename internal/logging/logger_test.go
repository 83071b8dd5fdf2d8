package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/qdiff/internal/logging"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"case insensitive DEBUG", "DEBUG", log.DebugLevel},
		{"case insensitive Info", "Info", log.InfoLevel},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			logger := logging.New(testCase.level)
			if logger == nil {
				t.Fatal("New returned nil logger")
			}

			if logger.GetLevel() != testCase.expected {
				t.Errorf("expected level %v, got %v", testCase.expected, logger.GetLevel())
			}
		})
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()

	logger := logging.Default()
	if logger == nil {
		t.Fatal("Default returned nil logger")
	}
}

func TestSetLevel(t *testing.T) {
	// Not parallel because it modifies global state.

	// Save original and restore after test.
	original := logging.Default()
	defer logging.SetDefault(original)

	// Create a fresh logger for testing.
	testLogger := logging.New("info")
	logging.SetDefault(testLogger)

	logging.SetLevel("debug")
	if logging.Default().GetLevel() != log.DebugLevel {
		t.Error("SetLevel to debug failed")
	}

	logging.SetLevel("error")
	if logging.Default().GetLevel() != log.ErrorLevel {
		t.Error("SetLevel to error failed")
	}
}

func TestSetDefault(t *testing.T) {
	// Not parallel because it modifies global state.

	original := logging.Default()
	defer logging.SetDefault(original)

	newLogger := logging.New("error")
	logging.SetDefault(newLogger)

	if logging.Default() != newLogger {
		t.Error("SetDefault did not change the default logger")
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "debug")

	logger.Debug("opened input", logging.FieldFile, "a.bin", logging.FieldSize, 42)

	out := buf.String()
	if !strings.Contains(out, "qdiff") {
		t.Errorf("expected prefix in %q", out)
	}
	if !strings.Contains(out, "opened input") || !strings.Contains(out, "file=a.bin") {
		t.Errorf("expected message and field in %q", out)
	}

	buf.Reset()
	logging.NewWithWriter(&buf, "warn").Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	logger := logging.New("error")
	ctx := logging.WithLogger(context.Background(), logger)

	if logging.FromContext(ctx) != logger {
		t.Error("FromContext did not return the attached logger")
	}
	if logging.FromContext(context.Background()) == nil {
		t.Error("FromContext without a logger should fall back to the default")
	}
}

func TestWithFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := logging.NewWithWriter(&buf, "debug")
	ctx := logging.WithLogger(context.Background(), base)

	if logging.WithFields(ctx) != ctx {
		t.Error("WithFields without keyvals should return ctx unchanged")
	}

	scoped := logging.WithFields(ctx, logging.FieldFile, "b.bin")
	logging.FromContext(scoped).Debug("opened input")
	if out := buf.String(); !strings.Contains(out, "file=b.bin") {
		t.Errorf("expected scoped field in %q", out)
	}

	buf.Reset()
	logging.FromContext(ctx).Debug("parent entry")
	if out := buf.String(); strings.Contains(out, "file=b.bin") {
		t.Errorf("parent logger should not carry scoped field, got %q", out)
	}
}
