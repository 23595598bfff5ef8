package blocks

import (
	"slices"
	"sync"

	"github.com/birdayz/blockflow/kblock"
)

// Sample is a value recorded by a Probe.
type Sample[T any] struct {
	// Tick is the number of updates the probe ran before consuming Value.
	Tick  uint64
	Value T
}

// Probe records the value of the port it is connected to, once per Update.
// Nothing is recorded while the probe is unwired. It has one input of depth
// 1 and no outputs; the input takes the name of the probed port.
type Probe[T any] struct {
	*kblock.Node[T, T]

	mu      sync.Mutex
	limit   int
	samples []Sample[T]
}

// NewProbe creates a probe keeping the last limit samples. A limit of zero or
// less keeps all samples.
func NewProbe[T any](ids kblock.IDAllocator, limit int, opts ...kblock.Option) (*Probe[T], error) {
	p := &Probe[T]{limit: limit}

	n, err := kblock.New[T, T](ids, kblock.Shape{Inputs: kblock.Delays{1}},
		func(n *kblock.Node[T, T], staged []T) ([]T, error) {
			if n.In(0).At(0).ConnectedFrom() != nil {
				p.record(Sample[T]{Tick: n.UpdateCount(), Value: n.Input(0)})
			}
			return staged, nil
		},
		opts...,
	)
	if err != nil {
		return nil, err
	}
	p.Node = n
	n.Adopt(p)

	in := n.In(0).At(0)
	n.Subscribe(func(ev kblock.Event) {
		if ev.Kind == kblock.Connected && ev.To == kblock.Endpoint(in) {
			in.SetName(ev.From.Name())
		}
	})
	return p, nil
}

// MustProbe is like NewProbe but panics on error.
func MustProbe[T any](ids kblock.IDAllocator, limit int, opts ...kblock.Option) *Probe[T] {
	p, err := NewProbe[T](ids, limit, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Attach connects the probe to out.
func (p *Probe[T]) Attach(out *kblock.Port[T]) error {
	return p.In(0).At(0).Connect(out)
}

// Detach disconnects the probe.
func (p *Probe[T]) Detach() error {
	return p.In(0).At(0).Disconnect()
}

func (p *Probe[T]) record(s Sample[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.samples = append(p.samples, s)
	if p.limit > 0 && len(p.samples) > p.limit {
		p.samples = slices.Delete(p.samples, 0, len(p.samples)-p.limit)
	}
}

// Samples returns the recorded samples, oldest first.
func (p *Probe[T]) Samples() []Sample[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.samples)
}

// Last returns the most recent sample.
func (p *Probe[T]) Last() (Sample[T], bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.samples) == 0 {
		return Sample[T]{}, false
	}
	return p.samples[len(p.samples)-1], true
}

// Reset drops all samples.
func (p *Probe[T]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.samples = nil
}
