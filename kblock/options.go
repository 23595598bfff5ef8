package kblock

import "github.com/go-logr/logr"

type Option func(*nodeOptions)

type nodeOptions struct {
	name   string
	log    logr.Logger
	driven []int
}

var WithName = func(name string) Option {
	return func(o *nodeOptions) {
		o.name = name
	}
}

var WithLogger = func(log logr.Logger) Option {
	return func(o *nodeOptions) {
		o.log = log
	}
}

// WithDrivenOutputs marks output groups whose current value is supplied by a
// connection instead of the transfer function. Latching still moves their
// history.
var WithDrivenOutputs = func(groups ...int) Option {
	return func(o *nodeOptions) {
		o.driven = append(o.driven, groups...)
	}
}
