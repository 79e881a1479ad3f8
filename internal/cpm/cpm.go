package cpm

import (
	"math"
	"sort"

	"github.com/mhalloran/critpath/internal/graph"
)

// Analyze performs critical path method analysis on a task graph.
// An empty graph yields a zero-valued Result and no error; a cyclic graph
// yields a *CycleError carrying the offending path.
func Analyze(g *graph.TaskGraph) (*Result, error) {
	result := &Result{
		Tasks: make(map[string]*Schedule),
	}
	if g.TaskCount() == 0 {
		return result, nil
	}

	order, err := topoSort(g)
	if err != nil {
		return nil, err
	}
	result.TopoOrder = order

	for _, id := range order {
		result.Tasks[id] = &Schedule{TaskID: id}
	}

	// Forward pass: ES = max(EF of all predecessors), EF = ES + duration.
	for _, id := range order {
		ts := result.Tasks[id]
		es := 0.0
		for _, pred := range g.RevAdj[id] {
			if ef := result.Tasks[pred].EF; ef > es {
				es = ef
			}
		}
		ts.ES = es
		ts.EF = es + float64(g.Duration(id))
	}

	// Project end is the latest early finish.
	for _, ts := range result.Tasks {
		if ts.EF > result.ProjectDuration {
			result.ProjectDuration = ts.EF
		}
	}

	// Backward pass in reverse topological order. Every successor's LS is
	// already final when a node is visited, so no "unset" sentinel is
	// needed for late times.
	for i := len(order) - 1; i >= 0; i-- {
		id := order[i]
		ts := result.Tasks[id]
		dur := float64(g.Duration(id))

		if len(g.Adj[id]) == 0 {
			ts.LF = result.ProjectDuration
		} else {
			minLS := math.MaxFloat64
			for _, succ := range g.Adj[id] {
				if ls := result.Tasks[succ].LS; ls < minLS {
					minLS = ls
				}
			}
			ts.LF = minLS
		}
		ts.LS = ts.LF - dur

		ts.Slack = ts.LS - ts.ES
		ts.IsCritical = math.Abs(ts.Slack) < epsilon
	}

	// Critical path: critical tasks by ascending early start, ties by id.
	for _, id := range order {
		if result.Tasks[id].IsCritical {
			result.CriticalPath = append(result.CriticalPath, id)
		}
	}
	sort.SliceStable(result.CriticalPath, func(a, b int) bool {
		ta := result.Tasks[result.CriticalPath[a]]
		tb := result.Tasks[result.CriticalPath[b]]
		if ta.ES != tb.ES {
			return ta.ES < tb.ES
		}
		return ta.TaskID < tb.TaskID
	})

	return result, nil
}

// topoSort performs Kahn's algorithm for topological sorting.
func topoSort(g *graph.TaskGraph) ([]string, error) {
	inDegree := make(map[string]int)
	for id := range g.Tasks {
		inDegree[id] = len(g.RevAdj[id])
	}

	// Start with roots (in-degree 0), sorted for determinism
	var queue []string
	for id := range g.Tasks {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	var order []string
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		var newReady []string
		for _, succ := range g.Adj[node] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				newReady = append(newReady, succ)
			}
		}
		sort.Strings(newReady)
		queue = append(queue, newReady...)
	}

	if len(order) != len(g.Tasks) {
		return nil, &CycleError{Cycle: g.DetectCycle()}
	}

	return order, nil
}

// Bottlenecks identifies low-slack, high-fan-out tasks. threshold is the
// slack ceiling as a fraction of project duration (DefaultBottleneckThreshold
// when <= 0); a task qualifies when its slack is within the ceiling and it
// has more than one downstream task. Pure "on critical path" would be too
// narrow — near-critical tasks with wide fan-out also deserve attention.
// Results are ranked by impact descending, then slack ascending.
func Bottlenecks(g *graph.TaskGraph, result *Result, threshold float64) []Bottleneck {
	if result == nil || len(result.Tasks) == 0 {
		return nil
	}
	if threshold <= 0 {
		threshold = DefaultBottleneckThreshold
	}
	slackCeiling := result.ProjectDuration * threshold

	var bottlenecks []Bottleneck
	for _, id := range g.SortedIDs() {
		t := g.Tasks[id]
		ts, ok := result.Tasks[id]
		if !ok || t.Duration <= 0 {
			continue
		}
		impact := g.Descendants(id)
		if ts.Slack > slackCeiling || impact <= 1 {
			continue
		}
		bottlenecks = append(bottlenecks, Bottleneck{
			ID:         id,
			Name:       t.Name,
			Duration:   t.Duration,
			Resource:   t.Resource,
			Impact:     impact,
			Slack:      ts.Slack,
			EarlyStart: ts.ES,
			LateStart:  ts.LS,
		})
	}

	sort.SliceStable(bottlenecks, func(a, b int) bool {
		if bottlenecks[a].Impact != bottlenecks[b].Impact {
			return bottlenecks[a].Impact > bottlenecks[b].Impact
		}
		return bottlenecks[a].Slack < bottlenecks[b].Slack
	})

	return bottlenecks
}
