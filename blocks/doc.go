// Package blocks contains general purpose blocks: constants, probes, and
// function backed sources and sinks.
//
// Every block embeds a *kblock.Node and can be added to a collection
// directly.
package blocks
