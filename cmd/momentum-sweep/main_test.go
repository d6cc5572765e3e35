package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-gesture/common"
	"github.com/Carmen-Shannon/oxy-gesture/engine/sweep"
	"gopkg.in/yaml.v3"
)

func TestRunWritesReport(t *testing.T) {
	t.Cleanup(func() { common.SetLogger(nil) })

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tuning.yaml")
	if err := os.WriteFile(cfgPath, []byte("camera:\n  zoom: 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	err := run([]string{"-config", cfgPath, "-gestures", "fling", "-damping", "3, 6", "-speeds", "800", "-workers", "2"}, &stdout)
	if err != nil {
		t.Fatal(err)
	}

	var report sweep.Report
	if err := yaml.Unmarshal(stdout.Bytes(), &report); err != nil {
		t.Fatal(err)
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	if report.Config.Camera.Zoom != 12 {
		t.Errorf("config file not applied, zoom %f", report.Config.Camera.Zoom)
	}
	if report.Results[0].Damping != 3 || report.Results[1].Damping != 6 {
		t.Errorf("unexpected cases: %+v", report.Results)
	}
}

func TestRunWritesFile(t *testing.T) {
	t.Cleanup(func() { common.SetLogger(nil) })

	out := filepath.Join(t.TempDir(), "report.yaml")
	var stdout bytes.Buffer
	if err := run([]string{"-gestures", "pinch", "-damping", "6", "-speeds", "2", "-out", out}, &stdout); err != nil {
		t.Fatal(err)
	}
	if stdout.Len() != 0 {
		t.Errorf("nothing should be printed when -out is set, got %q", stdout.String())
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "gesture: pinch") {
		t.Errorf("unexpected report:\n%s", data)
	}
}

func TestRunRejectsBadInput(t *testing.T) {
	t.Cleanup(func() { common.SetLogger(nil) })

	testCases := map[string][]string{
		"BadDamping":     {"-damping", "fast"},
		"NegativeSpeed":  {"-speeds", "-5"},
		"EmptyGrid":      {"-gestures", ""},
		"UnknownFlag":    {"-verbose"},
		"MissingConfig":  {"-config", filepath.Join(t.TempDir(), "nope.yaml")},
		"UnknownGesture": {"-gestures", "swipe"},
	}

	for name, args := range testCases {
		args := args
		t.Run(name, func(t *testing.T) {
			var stdout bytes.Buffer
			if err := run(args, &stdout); err == nil {
				t.Errorf("expected an error for %v", args)
			}
		})
	}
}
