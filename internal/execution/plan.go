package execution

import (
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Plan tells how the items of one batch are dispatched.
type Plan struct {
	// Parallel runs the items of a batch on separate goroutines.
	Parallel bool
	// Workers bounds the number of goroutines of a batch. Zero or less means
	// one goroutine per item.
	Workers int
}

// RunRanks runs the phases for every item, rank by rank. Each phase runs
// over the whole rank before the next phase starts, and a rank starts only
// after every item of the previous rank returned. The first error stops the
// run; in parallel mode items of the failing phase that already started
// still complete.
func RunRanks[T any](ranks [][]T, p Plan, phases ...func(T) error) error {
	for i, rank := range ranks {
		for _, fn := range phases {
			if err := RunAll(rank, p, fn); err != nil {
				return fmt.Errorf("rank %d: %w", i, err)
			}
		}
	}
	return nil
}

// RunAll runs fn for every item and returns the first error.
func RunAll[T any](items []T, p Plan, fn func(T) error) error {
	if !p.Parallel || len(items) < 2 {
		for _, item := range items {
			if err := fn(item); err != nil {
				return err
			}
		}
		return nil
	}

	grp := errgroup.Group{}
	if p.Workers > 0 {
		grp.SetLimit(p.Workers)
	}
	for _, item := range items {
		grp.Go(func() error {
			return fn(item)
		})
	}
	return grp.Wait()
}

// RunEach runs fn for every item regardless of failures and returns all
// errors combined.
func RunEach[T any](items []T, p Plan, fn func(T) error) error {
	if !p.Parallel || len(items) < 2 {
		var err error
		for _, item := range items {
			err = multierr.Append(err, fn(item))
		}
		return err
	}

	errs := make([]error, len(items))
	grp := errgroup.Group{}
	if p.Workers > 0 {
		grp.SetLimit(p.Workers)
	}
	for i, item := range items {
		grp.Go(func() error {
			errs[i] = fn(item)
			return nil
		})
	}
	_ = grp.Wait()

	// Combine in item order so the result does not depend on scheduling.
	return multierr.Combine(errs...)
}
