package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/birdayz/blockflow"
	"github.com/birdayz/blockflow/blocks"
	"github.com/birdayz/blockflow/kblock"
	"github.com/birdayz/blockflow/pkg/log"
)

type filter = kblock.Node[float64, float64]

func lowPass(ids kblock.IDAllocator, name string, fc, fs float64) *filter {
	w := 2 * math.Pi * fc / fs
	alpha := w / (1 + w)
	return kblock.MustNew[float64, float64](ids,
		kblock.Shape{Inputs: kblock.Delays{1}, Outputs: kblock.Delays{1}},
		func(n *filter, staged []float64) ([]float64, error) {
			staged[0] = alpha*n.Input(0) + (1-alpha)*n.Output(0, 0)
			return staged, nil
		},
		kblock.WithName(name),
	)
}

func main() {
	var (
		stages   = flag.Int("stages", 5, "number of filter stages")
		ticks    = flag.Int("ticks", 200, "number of ticks to run")
		cutoff   = flag.Float64("cutoff", 50, "cutoff frequency in Hz")
		rate     = flag.Float64("rate", 1000, "sample rate in Hz")
		parallel = flag.Bool("parallel", false, "run independent blocks in parallel")
	)
	flag.Parse()

	if err := run(*stages, *ticks, *cutoff, *rate, *parallel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(stages, ticks int, cutoff, rate float64, parallel bool) error {
	logger := log.NewLogr()
	ids := kblock.NewSequence()

	reg := prometheus.NewRegistry()
	c := blockflow.NewCollection(ids,
		blockflow.WithName("cascade"),
		blockflow.WithLogr(logger),
		blockflow.WithMultithreading(parallel),
		blockflow.WithMetrics(reg),
	)

	step, err := blocks.NewSource(ids, func(tick uint64) float64 {
		if tick < 10 {
			return 0
		}
		return 1
	}, kblock.WithName("step"))
	if err != nil {
		return err
	}
	if err := c.Add(step); err != nil {
		return err
	}

	prev := step.Port()
	for i := 0; i < stages; i++ {
		f := lowPass(ids, fmt.Sprintf("lpf-%d", i+1), cutoff, rate)
		if err := f.In(0).At(0).Connect(prev); err != nil {
			return err
		}
		if err := c.Add(f); err != nil {
			return err
		}
		prev = f.Out(0).At(0)
	}

	probe, err := blocks.NewProbe[float64](ids, 0, kblock.WithName("probe"))
	if err != nil {
		return err
	}
	if err := probe.Attach(prev); err != nil {
		return err
	}
	if err := c.Add(probe); err != nil {
		return err
	}

	if err := c.Validate(); err != nil {
		return err
	}

	for i := 0; i < ticks; i++ {
		if err := c.UpdateAndLatchTopologically(); err != nil {
			return err
		}
	}

	ranks, err := c.Ranks()
	if err != nil {
		return err
	}
	logger.Info("Cascade finished", "ticks", c.TickCount(), "ranks", len(ranks), "recomputes", c.SortCount())

	for _, s := range probe.Samples() {
		if s.Tick%10 == 0 {
			fmt.Printf("%4d %.6f\n", s.Tick, s.Value)
		}
	}
	return nil
}
