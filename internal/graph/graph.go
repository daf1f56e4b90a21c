// Package graph holds the immutable travel graph the planner searches over:
// star systems connected by undirected jumps.
package graph

import (
	"fmt"
	"sort"
)

// SystemId is the opaque identity of a graph node.
type SystemId int64

// Graph is a symmetric, self-loop-free adjacency list over SystemIds.
// Once built it is never mutated.
type Graph struct {
	adj map[SystemId][]SystemId
}

// Builder accumulates edges before validation. Use Build to produce a Graph.
type Builder struct {
	adj map[SystemId]map[SystemId]struct{}
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{adj: make(map[SystemId]map[SystemId]struct{})}
}

// AddEdge records an undirected jump between a and b in both directions.
// A self-loop (a == b) is rejected at Build time, not here, so callers can
// accumulate edges from an unordered external feed without pre-filtering.
func (b *Builder) AddEdge(a, b2 SystemId) {
	b.touch(a)
	b.touch(b2)
	b.adj[a][b2] = struct{}{}
	b.adj[b2][a] = struct{}{}
}

func (b *Builder) touch(s SystemId) {
	if _, ok := b.adj[s]; !ok {
		b.adj[s] = make(map[SystemId]struct{})
	}
}

// Build validates the accumulated edges and returns a Graph.
// An asymmetric adjacency (which AddEdge can never itself produce, but a
// future alternate constructor might) or a self-loop is reported as
// InvalidGraphError.
func (b *Builder) Build(startingSystem SystemId) (*Graph, error) {
	g := &Graph{adj: make(map[SystemId][]SystemId, len(b.adj))}
	for s, neighbors := range b.adj {
		for n := range neighbors {
			if n == s {
				return nil, &InvalidGraphError{Reason: fmt.Sprintf("system %d has a self-loop", s)}
			}
			if _, ok := b.adj[n][s]; !ok {
				return nil, &InvalidGraphError{Reason: fmt.Sprintf("edge %d->%d is not symmetric", s, n)}
			}
		}
		list := make([]SystemId, 0, len(neighbors))
		for n := range neighbors {
			list = append(list, n)
		}
		sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
		g.adj[s] = list
	}
	if _, ok := g.adj[startingSystem]; !ok {
		return nil, &InvalidGraphError{Reason: fmt.Sprintf("starting system %d is not present in the graph", startingSystem)}
	}
	return g, nil
}

// InvalidGraphError reports a construction-time graph defect: asymmetric
// adjacency, a self-loop, or a missing starting system.
type InvalidGraphError struct {
	Reason string
}

func (e *InvalidGraphError) Error() string {
	return fmt.Sprintf("invalid graph: %s", e.Reason)
}

// Neighbors returns the sorted neighbor list of s, or nil if s is unknown.
// The returned slice must not be mutated by callers.
func (g *Graph) Neighbors(s SystemId) []SystemId {
	return g.adj[s]
}

// Has reports whether s is a known vertex.
func (g *Graph) Has(s SystemId) bool {
	_, ok := g.adj[s]
	return ok
}

// Systems returns every vertex, sorted ascending.
func (g *Graph) Systems() []SystemId {
	out := make([]SystemId, 0, len(g.adj))
	for s := range g.adj {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Degree returns the number of distinct neighbors of s.
func (g *Graph) Degree(s SystemId) int {
	return len(g.adj[s])
}

// Adjacent reports whether a and b are directly connected.
func (g *Graph) Adjacent(a, b SystemId) bool {
	for _, n := range g.adj[a] {
		if n == b {
			return true
		}
	}
	return false
}

// Induced returns the subgraph containing only the given systems and the
// edges between them. Used by the depth-bounded DFS tour resolver, which
// must only wander within the chosen system set.
func (g *Graph) Induced(systems []SystemId) *Graph {
	keep := make(map[SystemId]struct{}, len(systems))
	for _, s := range systems {
		keep[s] = struct{}{}
	}
	sub := &Graph{adj: make(map[SystemId][]SystemId, len(systems))}
	for _, s := range systems {
		var filtered []SystemId
		for _, n := range g.adj[s] {
			if _, ok := keep[n]; ok {
				filtered = append(filtered, n)
			}
		}
		sub.adj[s] = filtered
	}
	return sub
}
