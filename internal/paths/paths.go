// Package paths enumerates simple source-to-sink routes through a task
// graph and ranks them by total duration, surfacing cheap alternatives to
// the critical path for what-if analysis.
package paths

import (
	"sort"

	"github.com/mhalloran/critpath/internal/cpm"
	"github.com/mhalloran/critpath/internal/graph"
)

// TaskRef identifies one task on a path.
type TaskRef struct {
	ID       string
	Name     string
	Duration int
	Resource string
}

// Path is an ordered route from a source task (no dependencies) to a sink
// task (no dependents).
type Path struct {
	Tasks      []TaskRef
	Duration   int
	IsCritical bool // true iff every task on the path is critical
}

// DefaultMaxPaths bounds how many paths Enumerate returns by default.
const DefaultMaxPaths = 5

// maxVisited caps total node expansions across the whole enumeration.
// Dense graphs have combinatorially many simple paths; once the budget is
// spent the result is truncated. Known limitation: on such graphs the
// cheapest paths are not guaranteed to be among those found.
const maxVisited = 50000

// Enumerate walks all simple paths from every root to every leaf, bounded
// by the internal work cap, and returns up to maxPaths of them ordered by
// ascending total duration. result may be nil, in which case no path is
// marked critical. Each call recomputes from scratch.
func Enumerate(g *graph.TaskGraph, result *cpm.Result, maxPaths int) []Path {
	if maxPaths <= 0 {
		maxPaths = DefaultMaxPaths
	}

	sinks := make(map[string]bool, len(g.Leaves))
	for _, id := range g.Leaves {
		sinks[id] = true
	}

	var all []Path
	budget := maxVisited

	var walk func(node string, trail []string)
	walk = func(node string, trail []string) {
		if budget <= 0 {
			return
		}
		budget--

		trail = append(trail, node)
		if sinks[node] {
			all = append(all, buildPath(g, result, trail))
			return
		}
		for _, next := range g.Adj[node] {
			if onTrail(trail, next) {
				continue // cyclic input; the analyzer reports it, we just bound
			}
			walk(next, trail)
		}
	}

	for _, root := range g.Roots {
		walk(root, nil)
	}

	sort.SliceStable(all, func(a, b int) bool {
		return all[a].Duration < all[b].Duration
	})
	if len(all) > maxPaths {
		all = all[:maxPaths]
	}
	return all
}

func onTrail(trail []string, id string) bool {
	for _, t := range trail {
		if t == id {
			return true
		}
	}
	return false
}

func buildPath(g *graph.TaskGraph, result *cpm.Result, trail []string) Path {
	p := Path{
		Tasks:      make([]TaskRef, 0, len(trail)),
		IsCritical: result != nil,
	}
	for _, id := range trail {
		t := g.Tasks[id]
		p.Tasks = append(p.Tasks, TaskRef{
			ID:       id,
			Name:     t.Name,
			Duration: t.Duration,
			Resource: t.Resource,
		})
		p.Duration += t.Duration
		if result != nil {
			ts, ok := result.Tasks[id]
			if !ok || !ts.IsCritical {
				p.IsCritical = false
			}
		}
	}
	return p
}
