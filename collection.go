package blockflow

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/birdayz/blockflow/internal/execution"
	"github.com/birdayz/blockflow/kblock"
	"github.com/birdayz/blockflow/kdag"
)

var (
	_ kblock.Runner     = (*Collection)(nil)
	_ kblock.Observable = (*Collection)(nil)
)

// Collection is an ordered set of members that are stepped together. A member
// is a leaf block or a nested *Collection.
//
// UpdateAndLatchTopologically runs every leaf reachable from the collection
// once per tick, in dependency order derived from the port connections. The
// order is computed lazily and cached until membership or wiring of a
// contained leaf changes.
//
// Update, LatchOutputs and UpdateAndLatch run the direct members in insertion
// order without looking at dependencies.
type Collection struct {
	id   kblock.ID
	name string
	ids  kblock.IDAllocator
	log  logr.Logger
	reg  prometheus.Registerer

	multithreading atomic.Bool
	workers        int
	metrics        *metrics

	mu      sync.Mutex
	members []kblock.Runner
	cancels []func()
	dirty   bool
	flat    []kblock.Runner
	ranks   [][]kblock.Runner
	sorts   uint64

	ticks atomic.Uint64

	observers kblock.Observers
}

// NewCollection creates an empty collection.
func NewCollection(ids kblock.IDAllocator, opts ...Option) *Collection {
	c := &Collection{
		id:    ids.Next(),
		ids:   ids,
		log:   logr.Discard(),
		dirty: true,
	}
	c.name = fmt.Sprintf("Collection_%d", c.id)

	for _, opt := range opts {
		opt(c)
	}

	c.log = c.log.WithValues("collection", c.name)
	c.metrics = newMetrics(c.reg, c.name, c.log)
	return c
}

func (c *Collection) ID() kblock.ID { return c.id }
func (c *Collection) Name() string  { return c.name }

func (c *Collection) String() string {
	return c.name
}

// Multithreading reports whether independent members run in parallel.
func (c *Collection) Multithreading() bool {
	return c.multithreading.Load()
}

// SetMultithreading switches parallel execution on or off. It takes effect
// with the next tick.
func (c *Collection) SetMultithreading(enabled bool) {
	c.multithreading.Store(enabled)
}

// Add appends members. Adding a collection that contains c, directly or
// nested, fails with ErrSelfReference and adds nothing.
func (c *Collection) Add(members ...kblock.Runner) error {
	for _, m := range members {
		if err := c.checkMember(m); err != nil {
			return err
		}
	}

	c.mu.Lock()
	for _, m := range members {
		c.members = append(c.members, m)
		c.cancels = append(c.cancels, c.watch(m))
	}
	c.dirty = true
	c.mu.Unlock()

	c.log.V(1).Info("Members added", "count", len(members))
	c.observers.Emit(kblock.Event{Kind: kblock.MembershipChanged})
	return nil
}

// MustAdd is like Add but panics on error.
func (c *Collection) MustAdd(members ...kblock.Runner) {
	if err := c.Add(members...); err != nil {
		panic(err)
	}
}

// Insert places m at position i. Valid positions are 0 to Len().
func (c *Collection) Insert(i int, m kblock.Runner) error {
	if err := c.checkMember(m); err != nil {
		return err
	}

	c.mu.Lock()
	if i < 0 || i > len(c.members) {
		n := len(c.members)
		c.mu.Unlock()
		return fmt.Errorf("%w: insert at %d into %s with %d members", ErrIndexOutOfRange, i, c.name, n)
	}
	c.members = slices.Insert(c.members, i, m)
	c.cancels = slices.Insert(c.cancels, i, c.watch(m))
	c.dirty = true
	c.mu.Unlock()

	c.observers.Emit(kblock.Event{Kind: kblock.MembershipChanged})
	return nil
}

// Remove deletes the first occurrence of m and reports whether m was a
// member. Connections of m are left untouched, see Detach.
func (c *Collection) Remove(m kblock.Runner) bool {
	c.mu.Lock()
	i := slices.Index(c.members, m)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	cancel := c.cancels[i]
	c.members = slices.Delete(c.members, i, i+1)
	c.cancels = slices.Delete(c.cancels, i, i+1)
	c.dirty = true
	c.mu.Unlock()

	cancel()
	c.log.V(1).Info("Member removed", "member", m.Name())
	c.observers.Emit(kblock.Event{Kind: kblock.MembershipChanged})
	return true
}

// Detach removes m like Remove and severs every connection between the
// leaves of m and the leaves remaining in c, as well as the connections the
// leaves of m read from. It returns the number of severed connections.
func (c *Collection) Detach(m kblock.Runner) (int, error) {
	if !c.Remove(m) {
		return 0, nil
	}

	leaves := []kblock.Runner{m}
	if sub, ok := m.(*Collection); ok {
		leaves = sub.Flatten()
	}

	var peers []kblock.Block
	for _, r := range c.Flatten() {
		if b, ok := r.(kblock.Block); ok {
			peers = append(peers, b)
		}
	}

	var (
		severed int
		errs    error
	)
	for _, leaf := range leaves {
		b, ok := leaf.(kblock.Block)
		if !ok {
			continue
		}
		n, err := kblock.Isolate(b, peers...)
		severed += n
		errs = multierr.Append(errs, err)
	}
	return severed, errs
}

// Members returns the direct members in order.
func (c *Collection) Members() []kblock.Runner {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.members)
}

// Len returns the number of direct members.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.members)
}

// Flatten returns every leaf reachable through nested collections once, in
// discovery order.
func (c *Collection) Flatten() []kblock.Runner {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return slices.Clone(c.flat)
	}
	return c.appendLeaves(nil, mapset.NewThreadUnsafeSet[kblock.Runner]())
}

// appendLeaves must be called with c.mu held.
func (c *Collection) appendLeaves(out []kblock.Runner, seen mapset.Set[kblock.Runner]) []kblock.Runner {
	for _, m := range c.members {
		switch m := m.(type) {
		case *Collection:
			m.mu.Lock()
			out = m.appendLeaves(out, seen)
			m.mu.Unlock()
		default:
			if seen.Add(m) {
				out = append(out, m)
			}
		}
	}
	return out
}

// Ranks returns the current execution ranks, recomputing them if needed.
func (c *Collection) Ranks() ([][]kblock.Runner, error) {
	ranks, err := c.schedule()
	if err != nil {
		return nil, err
	}
	out := make([][]kblock.Runner, len(ranks))
	for i, r := range ranks {
		out[i] = slices.Clone(r)
	}
	return out, nil
}

// SortCount returns how often the execution ranks were computed.
func (c *Collection) SortCount() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sorts
}

// TickCount returns the number of completed topological ticks.
func (c *Collection) TickCount() uint64 {
	return c.ticks.Load()
}

// Validate reports dependency cycles among the leaves as kdag.ErrCycleDetected.
func (c *Collection) Validate() error {
	builder := kdag.NewBuilder(c.log)
	if err := builder.Add(c.Flatten()...); err != nil {
		return c.wrap(err)
	}
	dag, err := builder.Build()
	if err != nil {
		return c.wrap(err)
	}
	return c.wrap(dag.GetGraph().Validate())
}

// Subscribe registers fn for membership changes of c and wiring changes of
// every contained leaf.
func (c *Collection) Subscribe(fn func(kblock.Event)) func() {
	return c.observers.Subscribe(fn)
}

// Update runs Update of every direct member. All members run even if some
// fail; the errors are combined.
func (c *Collection) Update() error {
	return c.wrap(execution.RunEach(c.Members(), c.plan(), kblock.Runner.Update))
}

// LatchOutputs runs LatchOutputs of every direct member.
func (c *Collection) LatchOutputs() error {
	return c.wrap(execution.RunEach(c.Members(), c.plan(), kblock.Runner.LatchOutputs))
}

// UpdateAndLatch updates all direct members, then latches all of them. No
// member observes a value published in the same call.
func (c *Collection) UpdateAndLatch() error {
	if err := c.Update(); err != nil {
		return err
	}
	return c.LatchOutputs()
}

// UpdateAndLatchTopologically runs UpdateAndLatch of every leaf in dependency
// order, so a leaf reads the values its producers published in the same
// tick. In multithreaded mode the leaves of one rank run in parallel, all
// of them updated before any of them latches; a leaf reading a same-rank
// producer through an ignored connection sees the previous tick's value. The
// first error aborts the tick.
func (c *Collection) UpdateAndLatchTopologically() error {
	ranks, err := c.schedule()
	if err != nil {
		return c.wrap(err)
	}
	if len(ranks) == 0 {
		return nil
	}

	start := time.Now()
	plan := c.plan()
	phases := []func(kblock.Runner) error{kblock.Runner.UpdateAndLatch}
	if plan.Parallel {
		phases = []func(kblock.Runner) error{kblock.Runner.Update, kblock.Runner.LatchOutputs}
	}
	if err := execution.RunRanks(ranks, plan, phases...); err != nil {
		return c.wrap(err)
	}
	c.ticks.Add(1)
	c.metrics.observeTick(time.Since(start))
	return nil
}

// schedule returns the cached ranks or recomputes them. The returned slices
// are never modified afterwards.
func (c *Collection) schedule() ([][]kblock.Runner, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return c.ranks, nil
	}

	flat := c.appendLeaves(nil, mapset.NewThreadUnsafeSet[kblock.Runner]())
	builder := kdag.NewBuilder(c.log)
	if err := builder.Add(flat...); err != nil {
		return nil, err
	}
	dag, err := builder.Build()
	if err != nil {
		return nil, err
	}

	c.flat = flat
	c.ranks = dag.Ranks()
	c.dirty = false
	c.sorts++
	c.metrics.observeSort(len(flat), len(c.ranks))
	return c.ranks, nil
}

func (c *Collection) plan() execution.Plan {
	return execution.Plan{
		Parallel: c.multithreading.Load(),
		Workers:  c.workers,
	}
}

// checkMember rejects members that would make c contain itself.
func (c *Collection) checkMember(m kblock.Runner) error {
	if m == nil {
		return fmt.Errorf("%s: nil member", c.name)
	}
	sub, ok := m.(*Collection)
	if !ok {
		return nil
	}
	if sub == c || sub.contains(c) {
		return fmt.Errorf("%w: %s into %s", ErrSelfReference, sub.name, c.name)
	}
	return nil
}

// contains reports whether target is nested anywhere inside c.
func (c *Collection) contains(target *Collection) bool {
	for _, m := range c.Members() {
		sub, ok := m.(*Collection)
		if !ok {
			continue
		}
		if sub == target || sub.contains(target) {
			return true
		}
	}
	return false
}

// watch subscribes to m and returns the cancel function. Must be called
// with c.mu held; Subscribe never emits.
func (c *Collection) watch(m kblock.Runner) func() {
	o, ok := m.(kblock.Observable)
	if !ok {
		return func() {}
	}
	return o.Subscribe(c.onEvent)
}

func (c *Collection) onEvent(ev kblock.Event) {
	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()

	c.observers.Emit(ev)
}

func (c *Collection) wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("collection %s: %w", c.name, err)
}

// Union returns a new collection holding the leaves of a followed by the
// leaves of b, each once. The new collection is named after a and b unless
// WithName is given.
func Union(a, b *Collection, opts ...Option) *Collection {
	opts = append([]Option{WithName(a.name + "+" + b.name)}, opts...)
	u := NewCollection(a.ids, opts...)

	seen := mapset.NewThreadUnsafeSet[kblock.Runner]()
	var leaves []kblock.Runner
	for _, m := range slices.Concat(a.Flatten(), b.Flatten()) {
		if seen.Add(m) {
			leaves = append(leaves, m)
		}
	}

	// Leaves are never collections, so Add cannot fail.
	u.MustAdd(leaves...)
	return u
}
