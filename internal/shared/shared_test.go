package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestLogger(t *testing.T) {
	t.Run("NewLogger writes to provided writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello", "key", "value")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output to contain message, got %q", buf.String())
		}
		if !strings.Contains(buf.String(), "key=value") {
			t.Errorf("expected log output to contain key/value, got %q", buf.String())
		}
	})

	t.Run("NewFileLogger creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "agenda.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("failed to create file logger: %v", err)
		}
		logger.Info("written to file")

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}
		if !strings.Contains(string(content), "written to file") {
			t.Errorf("expected log file to contain message, got %q", content)
		}
	})

	t.Run("ParseLogLevel", func(t *testing.T) {
		tc := []struct {
			in   string
			want log.Level
		}{
			{"", log.InfoLevel},
			{"debug", log.DebugLevel},
			{" WARN ", log.WarnLevel},
			{"error", log.ErrorLevel},
			{"nonsense", log.InfoLevel},
		}

		for _, tt := range tc {
			if got := ParseLogLevel(tt.in); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		}
	})
}

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := GenerateID()
		parsed, err := uuid.Parse(id)
		if err != nil {
			t.Fatalf("GenerateID returned invalid uuid %q: %v", id, err)
		}
		if parsed.Version() != 4 {
			t.Errorf("expected v4 uuid, got version %d", parsed.Version())
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}
