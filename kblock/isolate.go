package kblock

import "go.uber.org/multierr"

// Isolate severs every connection b reads from, plus every connection of the
// given peers that reads from b. It returns the number of severed connections
// and all failures.
func Isolate(b Block, peers ...Block) (int, error) {
	var (
		severed int
		errs    error
	)

	cut := func(ep Endpoint) {
		if ep.Upstream() == nil {
			return
		}
		if err := ep.Disconnect(); err != nil {
			errs = multierr.Append(errs, err)
			return
		}
		severed++
	}

	for _, ep := range receiving(b) {
		cut(ep)
	}
	for _, peer := range peers {
		if peer == b {
			continue
		}
		for _, ep := range receiving(peer) {
			if up := ep.Upstream(); up != nil && up.Owner() == b {
				cut(ep)
			}
		}
	}

	return severed, errs
}

// receiving returns all ports of b that can hold a connection.
func receiving(b Block) []Endpoint {
	var eps []Endpoint
	for _, g := range b.InputGroups() {
		eps = append(eps, g...)
	}
	for _, g := range b.OutputGroups() {
		for _, ep := range g {
			if ep.Driven() {
				eps = append(eps, ep)
			}
		}
	}
	return eps
}
