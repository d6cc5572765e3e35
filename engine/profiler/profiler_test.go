package profiler

import (
	"testing"
	"time"
)

func TestProfilerReportsOncePerInterval(t *testing.T) {
	clock := time.Unix(1000, 0)
	p := NewProfiler("render")
	p.now = func() time.Time { return clock }
	p.lastTime = clock

	reports := 0
	for i := 0; i < 130; i++ {
		clock = clock.Add(time.Second / 60)
		if p.Tick() {
			reports++
		}
	}

	if reports != 2 {
		t.Fatalf("expected 2 reports over about two seconds, got %d", reports)
	}
	if rate := p.Last().Rate; rate < 59 || rate > 61 {
		t.Errorf("expected a rate near 60/s, got %f", rate)
	}
}

func TestProfilerQuietBeforeInterval(t *testing.T) {
	clock := time.Unix(0, 0)
	p := NewProfiler("tick")
	p.now = func() time.Time { return clock }
	p.lastTime = clock

	for i := 0; i < 10; i++ {
		clock = clock.Add(10 * time.Millisecond)
		if p.Tick() {
			t.Fatal("profiler reported before its interval elapsed")
		}
	}
	if p.Last() != (Stats{}) {
		t.Errorf("expected zero stats before the first report, got %+v", p.Last())
	}
}
