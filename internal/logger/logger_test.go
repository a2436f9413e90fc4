package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/deppfellow/filesubmit/internal/config"
	"github.com/deppfellow/filesubmit/internal/logger"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{in: "debug", want: zerolog.DebugLevel},
		{in: "info", want: zerolog.InfoLevel},
		{in: "warn", want: zerolog.WarnLevel},
		{in: "error", want: zerolog.ErrorLevel},
		{in: "", want: zerolog.InfoLevel},
		{in: "verbose", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := logger.ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewLoggerWithWriterJSON(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Environment = "production"
	cfg.Logging.Level = "warn"

	var buf bytes.Buffer
	log := logger.NewLoggerWithWriter(cfg, logger.NewLoggerService(cfg), &buf)

	log.Info().Msg("dropped")
	log.Warn().Str("file_name", "report.txt").Msg("kept")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %s", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}

	want := map[string]string{
		"message":     "kept",
		"level":       "warn",
		"service":     config.ServiceName,
		"environment": "production",
		"file_name":   "report.txt",
	}
	for key, val := range want {
		if entry[key] != val {
			t.Errorf("%s = %v, want %q", key, entry[key], val)
		}
	}
}

func TestLoggerServiceDisabled(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()

	ls := logger.NewLoggerService(cfg)
	if ls.GetApplication() != nil {
		t.Fatal("expected no New Relic application without a license key")
	}

	// Must be safe without an agent, including on a nil service.
	ls.RecordCustomEvent("Test", map[string]interface{}{"k": "v"})
	ls.Shutdown()

	var nilService *logger.LoggerService
	if nilService.GetApplication() != nil {
		t.Fatal("nil service must report no application")
	}
}

func TestLoggerServiceEnabled(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.NewRelic.LicenseKey = strings.Repeat("0", 40)
	cfg.NewRelic.AppLogForwardingEnabled = false

	ls := logger.NewLoggerService(cfg)
	if ls.GetApplication() == nil {
		t.Fatal("expected a New Relic application with a license key")
	}

	ls.RecordCustomEvent("Test", map[string]interface{}{"k": "v"})
	ls.GetApplication().Shutdown(0)
}

func TestWithTraceContextNilTransaction(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	log := logger.WithTraceContext(base, nil)
	log.Info().Msg("hello")

	if bytes.Contains(buf.Bytes(), []byte("trace.id")) {
		t.Errorf("unexpected trace id in %s", buf.String())
	}
}
