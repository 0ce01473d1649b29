// Package muxlib builds the canonical catalog of multiplexer
// structures a device needs. Every physical mux instance, whether in
// switch blocks, connection blocks or pb interconnects, maps to one library
// entry keyed by its structural signature, so structurally identical
// muxes across the device share a single implementation.
package muxlib

import (
	"math"

	"github.com/TOM-once/OpenFPGA/pkg/arch"
)

// MuxID identifies one canonical multiplexer structure.
type MuxID int

// InvalidMuxID marks an absent library entry.
const InvalidMuxID MuxID = -1

// Signature is the structural identity of a multiplexer: the circuit
// model implementing it, its input count, and the model's topology.
// Two muxes share a library entry iff their signatures are equal.
type Signature struct {
	Model    arch.CircuitModelID
	Size     int
	Topology arch.MuxTopology
	// Levels is the configured level count for multi-level models,
	// 0 otherwise
	Levels int
}

// Graph is the internal branch structure of one mux entry, derived
// from the topology. Downstream generators walk it to emit pass-gate
// levels and to count configuration memory bits.
type Graph struct {
	// NumLevels is the number of switching stages
	NumLevels int
	// BranchSizes gives the branching factor per level, root first
	BranchSizes []int
	// NumMemBits is the number of configuration bits the mux needs
	NumMemBits int
}

// Entry is one canonical mux structure in the library.
type Entry struct {
	ID        MuxID
	Signature Signature
	Graph     *Graph
}

// Library is the deduplicated mux catalog. Entries are numbered in
// first-seen order, so the same sequence of lookups always yields
// the same IDs.
type Library struct {
	entries []Entry
	index   map[Signature]MuxID
}

// NewLibrary creates an empty mux library.
func NewLibrary() *Library {
	return &Library{index: make(map[Signature]MuxID)}
}

// FindOrAdd returns the canonical ID for a signature, allocating a
// new entry the first time the signature is seen.
func (l *Library) FindOrAdd(sig Signature) MuxID {
	if id, ok := l.index[sig]; ok {
		return id
	}
	id := MuxID(len(l.entries))
	l.entries = append(l.entries, Entry{
		ID:        id,
		Signature: sig,
		Graph:     buildGraph(sig),
	})
	l.index[sig] = id
	return id
}

// Find returns the canonical ID for a signature without allocating,
// or InvalidMuxID when the signature is unknown.
func (l *Library) Find(sig Signature) MuxID {
	if id, ok := l.index[sig]; ok {
		return id
	}
	return InvalidMuxID
}

// NumEntries returns the number of distinct mux structures.
func (l *Library) NumEntries() int {
	return len(l.entries)
}

// Entry returns the entry with the given ID.
func (l *Library) Entry(id MuxID) Entry {
	return l.entries[id]
}

// Entries returns all entries in allocation order.
func (l *Library) Entries() []Entry {
	return l.entries
}

// buildGraph derives the branch structure for a signature.
//   - tree: balanced 2:1 stages, one shared select bit per level
//   - one_level: a flat one-hot stage, one bit per input
//   - multi_level: fixed level count with a uniform branching factor
func buildGraph(sig Signature) *Graph {
	size := sig.Size
	switch sig.Topology {
	case arch.MuxOneLevel:
		return &Graph{NumLevels: 1, BranchSizes: []int{size}, NumMemBits: size}
	case arch.MuxMultiLevel:
		levels := sig.Levels
		if levels < 1 {
			levels = 2
		}
		branch := int(math.Ceil(math.Pow(float64(size), 1.0/float64(levels))))
		if branch < 2 {
			branch = 2
		}
		sizes := make([]int, levels)
		for i := range sizes {
			sizes[i] = branch
		}
		return &Graph{NumLevels: levels, BranchSizes: sizes, NumMemBits: levels * branch}
	default: // tree
		levels := bitsFor(size)
		sizes := make([]int, levels)
		for i := range sizes {
			sizes[i] = 2
		}
		return &Graph{NumLevels: levels, BranchSizes: sizes, NumMemBits: levels}
	}
}

// bitsFor returns ceil(log2(n)), minimum 1.
func bitsFor(n int) int {
	if n <= 2 {
		return 1
	}
	bits := 0
	for v := n - 1; v > 0; v >>= 1 {
		bits++
	}
	return bits
}
