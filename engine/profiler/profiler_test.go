package profiler

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestProfilerReportsAtInterval(t *testing.T) {
	var buf bytes.Buffer
	clock := time.Unix(0, 0)
	p := NewProfiler(
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		WithInterval(time.Second),
		WithClock(func() time.Time { return clock }),
	)

	for i := range 49 {
		clock = clock.Add(20 * time.Millisecond)
		p.Observe(time.Duration(i) * time.Microsecond)
		if p.Tick() {
			t.Fatalf("reported early at tick %d", i)
		}
	}
	clock = clock.Add(20 * time.Millisecond)
	p.Observe(500 * time.Microsecond)
	if !p.Tick() {
		t.Fatal("Expected a report after one second")
	}

	out := buf.String()
	for _, want := range []string{"frame stats", "component=profiler", "tps=50", "update_max=500µs"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in %q", want, out)
		}
	}

	buf.Reset()
	clock = clock.Add(20 * time.Millisecond)
	if p.Tick() || buf.Len() != 0 {
		t.Error("the next tick starts a new interval")
	}
}
