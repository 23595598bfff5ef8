package blockflow

import (
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
)

// Option is a function that configures a Collection
type Option func(*Collection)

// WithName sets the collection name used in logs, errors and metric labels
var WithName = func(name string) Option {
	return func(c *Collection) {
		c.name = name
	}
}

// WithMultithreading enables parallel execution of independent members
var WithMultithreading = func(enabled bool) Option {
	return func(c *Collection) {
		c.multithreading.Store(enabled)
	}
}

// WithWorkersCount bounds the number of goroutines per batch in
// multithreaded mode. Zero means one goroutine per member.
var WithWorkersCount = func(n int) Option {
	return func(c *Collection) {
		c.workers = n
	}
}

// WithLogr sets the logger for the collection
var WithLogr = func(log logr.Logger) Option {
	return func(c *Collection) {
		c.log = log
	}
}

// WithMetrics registers tick and scheduling metrics of the collection with
// reg, labeled with the collection name. Collections of the same name share
// their series.
var WithMetrics = func(reg prometheus.Registerer) Option {
	return func(c *Collection) {
		c.reg = reg
	}
}
