package graph

import (
	"fmt"
	"log"
	"sort"

	"github.com/mhalloran/critpath/internal/task"
)

// TaskGraph is a directed graph of tasks; edges point from a dependency to
// the task that depends on it.
type TaskGraph struct {
	Tasks  map[string]*task.Task
	Adj    map[string][]string // dep -> tasks that depend on it
	RevAdj map[string][]string // task -> its dependencies
	Roots  []string            // tasks with no dependencies
	Leaves []string            // tasks nothing depends on

	// Warnings records tolerant-ingestion skips: records with empty ids,
	// unparseable fields, and dependency ids that reference no known task.
	Warnings []string
}

// Build constructs a TaskGraph from raw records. Records that cannot be
// normalized are skipped with a warning, not an error — a whole batch is
// never aborted by one bad row. The graph may contain cycles; cycle
// detection is the analyzer's job, so callers can distinguish "cyclic
// input" from "empty schedule".
func Build(records []task.Record, opts task.Options) *TaskGraph {
	g := &TaskGraph{
		Tasks:  make(map[string]*task.Task),
		Adj:    make(map[string][]string),
		RevAdj: make(map[string][]string),
	}

	var tasks []*task.Task
	for i, rec := range records {
		t, err := task.Normalize(rec, opts)
		if err != nil {
			g.warnf("skipping record %d: %v", i, err)
			continue
		}
		if _, dup := g.Tasks[t.ID]; dup {
			g.warnf("skipping record %d: duplicate task id %q", i, t.ID)
			continue
		}
		g.Tasks[t.ID] = t
		tasks = append(tasks, t)
	}

	// Edges run dependency -> dependent, only between known ids.
	// Dangling dependency ids are ignored rather than erroring.
	edgeSet := make(map[[2]string]bool)
	for _, t := range tasks {
		for _, dep := range t.DependsOn {
			if _, ok := g.Tasks[dep]; !ok {
				g.warnf("task %s: unknown dependency %q ignored", t.ID, dep)
				continue
			}
			key := [2]string{dep, t.ID}
			if edgeSet[key] {
				continue
			}
			edgeSet[key] = true
			g.Adj[dep] = append(g.Adj[dep], t.ID)
			g.RevAdj[t.ID] = append(g.RevAdj[t.ID], dep)
		}
	}

	// Sort adjacency lists for deterministic ordering
	for k := range g.Adj {
		sort.Strings(g.Adj[k])
	}
	for k := range g.RevAdj {
		sort.Strings(g.RevAdj[k])
	}

	for id := range g.Tasks {
		if len(g.RevAdj[id]) == 0 {
			g.Roots = append(g.Roots, id)
		}
		if len(g.Adj[id]) == 0 {
			g.Leaves = append(g.Leaves, id)
		}
	}
	sort.Strings(g.Roots)
	sort.Strings(g.Leaves)

	return g
}

func (g *TaskGraph) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	g.Warnings = append(g.Warnings, msg)
	log.Printf("warning: %s", msg)
}

// TaskCount returns the number of tasks in the graph.
func (g *TaskGraph) TaskCount() int {
	return len(g.Tasks)
}

// Duration returns the task's duration, or 0 for unknown ids.
func (g *TaskGraph) Duration(id string) int {
	if t, ok := g.Tasks[id]; ok {
		return t.Duration
	}
	return 0
}

// DetectCycle returns the cycle path if one exists, or nil if the graph is
// acyclic. Uses DFS with coloring: white (unvisited), gray (in progress),
// black (done).
func (g *TaskGraph) DetectCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make(map[string]int)
	parent := make(map[string]string)

	var dfs func(node string) []string
	dfs = func(node string) []string {
		color[node] = gray
		for _, next := range g.Adj[node] {
			if color[next] == gray {
				// Found a cycle; walk parents back to the entry node.
				cycle := []string{node}
				cur := node
				for cur != next {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return cycle
			}
			if color[next] == white {
				parent[next] = node
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[node] = black
		return nil
	}

	// Sort keys for deterministic detection
	for _, id := range g.SortedIDs() {
		if color[id] == white {
			if cycle := dfs(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// Descendants returns the number of tasks reachable downstream of id,
// excluding id itself. This is the "impact" used for bottleneck ranking.
func (g *TaskGraph) Descendants(id string) int {
	seen := make(map[string]bool)
	stack := append([]string(nil), g.Adj[id]...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		stack = append(stack, g.Adj[n]...)
	}
	return len(seen)
}

// SortedIDs returns all task ids in ascending order.
func (g *TaskGraph) SortedIDs() []string {
	ids := make([]string, 0, len(g.Tasks))
	for id := range g.Tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
