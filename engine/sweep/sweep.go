package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gesture/common"
	"github.com/Carmen-Shannon/oxy-gesture/engine/config"
	"gopkg.in/yaml.v3"
)

// Sweeper simulates many momentum releases in parallel to compare damping rates offline.
type Sweeper interface {
	// Run simulates every case and returns the results in case order.
	// Cases that have not started when ctx is cancelled are skipped and the context error
	// is returned alongside the partial report.
	//
	// Parameters:
	//   - ctx: cancellation for the sweep
	//   - cases: the cases to simulate
	//
	// Returns:
	//   - *Report: the sweep report
	//   - error: joined simulation errors or the context error
	Run(ctx context.Context, cases []Case) (*Report, error)

	// Workers returns the number of pool workers.
	//
	// Returns:
	//   - int: worker count
	Workers() int

	// TimeStep returns the simulated frame time.
	//
	// Returns:
	//   - float64: seconds per frame
	TimeStep() float64

	// MaxFrames returns the frame budget of a single simulation.
	//
	// Returns:
	//   - int: frames
	MaxFrames() int
}

// Report is the YAML document written by the sweep tool.
type Report struct {
	Config      *config.Config `yaml:"config"`
	TimeStep    float64        `yaml:"time_step"`
	MaxFrames   int            `yaml:"max_frames"`
	Results     []Result       `yaml:"results"`
	Unsettled   int            `yaml:"unsettled"`
	ElapsedSecs float64        `yaml:"elapsed_seconds"`
}

type sweeperImpl struct {
	cfg         *config.Config
	workers     int
	dt          float64
	maxDuration float64
	pool        worker.DynamicWorkerPool
}

var _ Sweeper = &sweeperImpl{}

// NewSweeper creates a sweeper for the camera and controller described by cfg.
// Defaults: one worker per spare CPU, a 1/60 s time step and 30 s of simulated time per case.
//
// Parameters:
//   - cfg: base configuration, nil means config.Default()
//   - options: functional options to configure the sweeper
//
// Returns:
//   - Sweeper: the newly created sweeper
func NewSweeper(cfg *config.Config, options ...SweeperBuilderOption) Sweeper {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &sweeperImpl{
		cfg:         cfg,
		workers:     max(runtime.NumCPU()-1, 1),
		dt:          1.0 / 60,
		maxDuration: 30,
	}

	for _, option := range options {
		option(s)
	}

	s.pool = worker.NewDynamicWorkerPool(s.workers, 256, 1*time.Second)
	return s
}

func (s *sweeperImpl) Run(ctx context.Context, cases []Case) (*Report, error) {
	start := time.Now()
	maxFrames := s.MaxFrames()
	results := make([]Result, len(cases))
	errs := make([]error, len(cases))

	// Each task owns one slot of results and errs, so no locking is needed.
	var wg sync.WaitGroup
	for i, c := range cases {
		wg.Add(1)
		idx, cCap := i, c
		s.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()

				if err := ctx.Err(); err != nil {
					errs[idx] = err
					return nil, err
				}
				r, err := Simulate(s.cfg, cCap, s.dt, maxFrames)
				if err != nil {
					errs[idx] = fmt.Errorf("case %d: %w", idx, err)
					return nil, err
				}
				results[idx] = r
				return r, nil
			},
		})
	}
	wg.Wait()

	report := &Report{
		Config:      s.cfg,
		TimeStep:    s.dt,
		MaxFrames:   maxFrames,
		Results:     results,
		ElapsedSecs: time.Since(start).Seconds(),
	}
	for _, r := range results {
		if !r.Settled {
			report.Unsettled++
		}
	}

	common.Logger().Info("sweep finished",
		"cases", len(cases),
		"unsettled", report.Unsettled,
		"workers", s.workers,
		"elapsed", time.Since(start),
	)

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, errors.Join(errs...)
}

func (s *sweeperImpl) Workers() int {
	return s.workers
}

func (s *sweeperImpl) TimeStep() float64 {
	return s.dt
}

func (s *sweeperImpl) MaxFrames() int {
	return int(math.Ceil(s.maxDuration / s.dt))
}

// Write encodes the report as YAML.
//
// Parameters:
//   - w: destination
//
// Returns:
//   - error: encoding or write error
func (r *Report) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}
