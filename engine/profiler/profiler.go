package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-gesture/common"
)

// Stats is one reporting window of a Profiler.
type Stats struct {
	Rate        float64 // events per second
	HeapMB      float64
	AllocRateMB float64 // MB allocated per second
	NumGC       uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// Profiler tracks the rate of a recurring event (engine ticks, rendered frames) together with
// memory statistics, and logs them through the shared logger at a fixed interval.
type Profiler struct {
	name           string
	count          int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats

	now func() time.Time
}

// NewProfiler creates a new Profiler reporting once per second.
//
// Parameters:
//   - name: label attached to every log record, e.g. "tick" or "render"
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(name string) *Profiler {
	p := &Profiler{
		name:           name,
		updateInterval: time.Second,
		now:            time.Now,
	}
	p.lastTime = p.now()
	return p
}

// Tick records one event. When the update interval has elapsed it logs rate, heap usage,
// allocation rate and GC pauses at Info level.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.count++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)

	s := Stats{
		Rate:        float64(p.count) / elapsed.Seconds(),
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		NumGC:       p.memStats.NumGC,
	}
	if s.NumGC > 0 {
		// PauseNs is a circular buffer of the last 256 pauses
		s.LastPauseUs = p.memStats.PauseNs[(s.NumGC-1)%256] / 1000

		startIdx := p.lastGCCount
		if s.NumGC-startIdx > 256 {
			startIdx = s.NumGC - 256
		}
		for i := startIdx; i < s.NumGC; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > s.MaxPauseUs {
				s.MaxPauseUs = pause
			}
		}
	}

	common.Logger().Info("profiler",
		"name", p.name,
		"rate", s.Rate,
		"heap_mb", s.HeapMB,
		"alloc_rate_mb", s.AllocRateMB,
		"gc", s.NumGC,
		"gc_last_us", s.LastPauseUs,
		"gc_max_us", s.MaxPauseUs,
		"sys_mb", s.SysMB,
	)

	p.count = 0
	p.lastTime = currentTime
	p.lastGCCount = s.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.last = s
	return true
}

// Last returns the most recently reported window.
//
// Returns:
//   - Stats: zero until the first report
func (p *Profiler) Last() Stats {
	return p.last
}
