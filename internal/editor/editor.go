// Package editor provides interactive manipulation of a project graph.
// Each Editor owns its own graph instance — the hosting service decides
// whether that lifecycle is per request or per session — so concurrent
// requests never share mutable state.
package editor

import (
	"sort"
	"strings"

	"github.com/mhalloran/critpath/internal/graph"
	"github.com/mhalloran/critpath/internal/task"
)

// Editor holds an editable set of tasks and dependency edges.
type Editor struct {
	tasks map[string]*task.Task
	opts  task.Options
}

// New creates an empty Editor.
func New(opts task.Options) *Editor {
	return &Editor{
		tasks: make(map[string]*task.Task),
		opts:  opts,
	}
}

// AddTask inserts or replaces a task. Empty ids are rejected.
func (e *Editor) AddTask(t task.Task) bool {
	t.ID = strings.TrimSpace(t.ID)
	if t.ID == "" {
		return false
	}
	if t.Name == "" {
		t.Name = "Task " + t.ID
	}
	if t.Duration < 1 {
		t.Duration = 1
	}
	if t.Resource == "" {
		t.Resource = "Unassigned"
	}
	e.tasks[t.ID] = &t
	return true
}

// RemoveTask deletes a task and every edge touching it.
func (e *Editor) RemoveTask(id string) bool {
	if _, ok := e.tasks[id]; !ok {
		return false
	}
	delete(e.tasks, id)
	for _, t := range e.tasks {
		t.DependsOn = without(t.DependsOn, id)
	}
	return true
}

// AddEdge records that target depends on source. Both ids must exist and
// differ; duplicate edges are no-ops.
func (e *Editor) AddEdge(source, target string) bool {
	if source == target {
		return false
	}
	t, ok := e.tasks[target]
	if !ok {
		return false
	}
	if _, ok := e.tasks[source]; !ok {
		return false
	}
	for _, dep := range t.DependsOn {
		if dep == source {
			return true
		}
	}
	t.DependsOn = append(t.DependsOn, source)
	return true
}

// RemoveEdge drops the dependency of target on source.
func (e *Editor) RemoveEdge(source, target string) bool {
	t, ok := e.tasks[target]
	if !ok {
		return false
	}
	before := len(t.DependsOn)
	t.DependsOn = without(t.DependsOn, source)
	return len(t.DependsOn) != before
}

// UpdateTask applies non-zero fields of upd to an existing task.
func (e *Editor) UpdateTask(id string, upd task.Task) bool {
	t, ok := e.tasks[id]
	if !ok {
		return false
	}
	if upd.Name != "" {
		t.Name = upd.Name
	}
	if upd.Duration > 0 {
		t.Duration = upd.Duration
	}
	if upd.Resource != "" {
		t.Resource = upd.Resource
	}
	return true
}

// Graph builds a fresh TaskGraph snapshot of the current editor state,
// ready for analysis. The snapshot is independent of further edits.
func (e *Editor) Graph() *graph.TaskGraph {
	return graph.Build(e.Records(), e.opts)
}

// Records exports the editor contents as raw records in the descriptive
// naming convention, suitable for re-ingestion or serialization.
func (e *Editor) Records() []task.Record {
	ids := make([]string, 0, len(e.tasks))
	for id := range e.tasks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]task.Record, 0, len(ids))
	for _, id := range ids {
		t := e.tasks[id]
		records = append(records, task.Record{
			"Task ID":      t.ID,
			"Task Name":    t.Name,
			"Duration":     t.Duration,
			"Resource":     t.Resource,
			"Dependencies": strings.Join(t.DependsOn, ","),
		})
	}
	return records
}

// TaskCount returns the number of tasks held.
func (e *Editor) TaskCount() int {
	return len(e.tasks)
}

// Validation summarizes the structural health of the edited graph.
type Validation struct {
	IsDAG      bool
	HasCycles  bool
	Nodes      int
	Edges      int
	Components int      // weakly connected components
	Cycle      []string // one offending path when HasCycles
}

// Validate checks the current graph structure.
func (e *Editor) Validate() Validation {
	g := e.Graph()

	edges := 0
	for _, succ := range g.Adj {
		edges += len(succ)
	}

	cycle := g.DetectCycle()
	return Validation{
		IsDAG:      cycle == nil,
		HasCycles:  cycle != nil,
		Nodes:      g.TaskCount(),
		Edges:      edges,
		Components: components(g),
		Cycle:      cycle,
	}
}

// components counts weakly connected components via union over both edge
// directions.
func components(g *graph.TaskGraph) int {
	seen := make(map[string]bool)
	count := 0
	for _, id := range g.SortedIDs() {
		if seen[id] {
			continue
		}
		count++
		stack := []string{id}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if seen[n] {
				continue
			}
			seen[n] = true
			stack = append(stack, g.Adj[n]...)
			stack = append(stack, g.RevAdj[n]...)
		}
	}
	return count
}

func without(list []string, id string) []string {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
