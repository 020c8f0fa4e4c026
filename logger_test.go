package refraction

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger enabled for %v", level)
		}
	}
}

func TestSetLoggerCapturesSkippedShapes(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	c := NewCanvas(uniform(10, 10, gray), CanvasConfig{
		Background: BackgroundAverage,
		Shapes:     []ShapeFactory{RectangleFactory(Box(0, 0, 2.5, 2), NoRotation, red)},
	}, WithErrorPolicy(PolicySkip))
	if _, err := c.Render(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"background selected", "shape skipped"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelWarn) {
		t.Errorf("SetLogger(nil) did not restore the silent logger")
	}
}
