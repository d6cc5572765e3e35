// Command momentum-sweep simulates fling and pinch releases over a grid of damping rates and
// speeds and writes how long each takes to settle as YAML.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-gesture/common"
	"github.com/Carmen-Shannon/oxy-gesture/engine/config"
	"github.com/Carmen-Shannon/oxy-gesture/engine/sweep"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "momentum-sweep:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("momentum-sweep", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML tuning file (defaults when empty)")
	gestures := fs.String("gestures", "fling,pinch", "comma-separated gestures to simulate")
	dampings := fs.String("damping", "2,4,6,8", "comma-separated damping rates per second")
	speeds := fs.String("speeds", "100,500,1000,3000", "comma-separated release speeds")
	dt := fs.Float64("dt", 1.0/60, "simulated frame time in seconds")
	maxDuration := fs.Float64("max-duration", 30, "simulated seconds per case")
	workers := fs.Int("workers", 0, "worker count (0 uses the spare CPUs)")
	out := fs.String("out", "", "report file (stdout when empty)")
	verbose := fs.Bool("v", false, "log progress to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	common.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}

	dampingRates, err := parseFloats(*dampings)
	if err != nil {
		return fmt.Errorf("-damping: %w", err)
	}
	speedValues, err := parseFloats(*speeds)
	if err != nil {
		return fmt.Errorf("-speeds: %w", err)
	}
	cases := sweep.Grid(splitList(*gestures), dampingRates, speedValues)
	if len(cases) == 0 {
		return fmt.Errorf("nothing to simulate")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := sweep.NewSweeper(cfg,
		sweep.WithWorkers(*workers),
		sweep.WithTimeStep(*dt),
		sweep.WithMaxDuration(*maxDuration),
	)
	report, err := s.Run(ctx, cases)
	if err != nil {
		return err
	}

	if *out == "" {
		return report.Write(stdout)
	}
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := report.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func parseFloats(s string) ([]float64, error) {
	items := splitList(s)
	values := make([]float64, 0, len(items))
	for _, item := range items {
		v, err := strconv.ParseFloat(item, 64)
		if err != nil {
			return nil, err
		}
		if v < 0 {
			return nil, fmt.Errorf("%g must not be negative", v)
		}
		values = append(values, v)
	}
	return values, nil
}
