package yagve

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

var allLevels = []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}

// useLogger installs l for the duration of the test.
func useLogger(t *testing.T, l *slog.Logger) {
	t.Helper()
	prev := Logger()
	SetLogger(l)
	t.Cleanup(func() { SetLogger(prev) })
}

func TestNopHandler(t *testing.T) {
	var h slog.Handler = nopHandler{}
	for _, level := range allLevels {
		if h.Enabled(context.Background(), level) {
			t.Errorf("Enabled(%v) = true", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("Handle = %v", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.Int("frames", 1)}).(nopHandler); !ok {
		t.Error("WithAttrs left the nop handler")
	}
	if _, ok := h.WithGroup("engine").(nopHandler); !ok {
		t.Error("WithGroup left the nop handler")
	}
}

func TestLoggerSilentByDefault(t *testing.T) {
	useLogger(t, nil)
	for _, level := range allLevels {
		if Logger().Enabled(context.Background(), level) {
			t.Errorf("default logger enabled at %v", level)
		}
	}
}

func TestSetLoggerCapturesOutput(t *testing.T) {
	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	useLogger(t, custom)

	if Logger() != custom {
		t.Fatal("Logger() did not return the installed logger")
	}
	Logger().Debug("Framerate: 60.000 fps")
	if !strings.Contains(buf.String(), "Framerate: 60.000 fps") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestSetLoggerNil(t *testing.T) {
	useLogger(t, slog.Default())
	SetLogger(nil)
	if l := Logger(); l == nil || l.Enabled(context.Background(), slog.LevelError) {
		t.Errorf("SetLogger(nil) left %v, want a disabled logger", l)
	}
}

func TestLoggerConcurrentSwap(t *testing.T) {
	useLogger(t, nil)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("frame presented")
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkDisabledLog(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("frame presented", "frames", 1)
	}
}
