package cli

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerTimestampFormat(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("tick")

	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).Match(buf.Bytes()) {
		t.Errorf("log line missing centisecond timestamp prefix: %q", buf.String())
	}
}

func TestNewLoggerLevelFilter(t *testing.T) {
	cases := []struct {
		name string
		min  log.Level
		emit log.Level
		want bool
	}{
		{"debug suppressed at info", log.InfoLevel, log.DebugLevel, false},
		{"info passes at info", log.InfoLevel, log.InfoLevel, true},
		{"debug passes at debug", log.DebugLevel, log.DebugLevel, true},
		{"warn suppressed at error", log.ErrorLevel, log.WarnLevel, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			newLogger(&buf, tc.min).Log(tc.emit, "probe")

			if got := buf.Len() > 0; got != tc.want {
				t.Errorf("output written = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("routed 7 wires")

	out := buf.String()
	if !strings.Contains(out, "routed 7 wires") {
		t.Fatalf("done() output missing message: %q", out)
	}
	if !strings.Contains(out, "took=") {
		t.Errorf("done() output missing elapsed field: %q", out)
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	logger := log.New(io.Discard)
	ctx := withLogger(context.Background(), logger)

	if got := loggerFromContext(ctx); got != logger {
		t.Error("loggerFromContext returned a different logger than was stored")
	}
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext without a stored logger should fall back to the default")
	}
}
