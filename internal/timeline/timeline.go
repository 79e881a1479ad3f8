// Package timeline projects an analyzed schedule into a chart-ready shape:
// per-task start/finish bars grouped by resource color. It is a pure
// projection — inputs are never mutated and identical input yields
// identical output.
package timeline

import (
	"sort"

	"github.com/mhalloran/critpath/internal/cpm"
	"github.com/mhalloran/critpath/internal/graph"
)

// palette holds the resource colors, assigned in first-seen order and
// cycled when resources outnumber colors.
var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Entry is one task bar on the timeline.
type Entry struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Start    float64 `json:"start"`
	Finish   float64 `json:"finish"`
	Duration int     `json:"duration"`
	Resource string  `json:"resource"`
	Color    string  `json:"color"`
}

// Timeline is the rendering-ready projection of a schedule.
type Timeline struct {
	Tasks           []Entry           `json:"tasks"`
	Resources       []string          `json:"resources"`
	ResourceColors  map[string]string `json:"resource_colors"`
	ProjectDuration float64           `json:"project_duration"`
}

// Build projects the analyzed graph onto a timeline. Tasks are ordered by
// ascending start time (ties by id); each distinct resource gets a stable
// color in first-seen order; ProjectDuration is the latest finish.
func Build(g *graph.TaskGraph, result *cpm.Result) *Timeline {
	tl := &Timeline{
		ResourceColors: make(map[string]string),
	}

	for _, id := range g.SortedIDs() {
		t := g.Tasks[id]
		start := 0.0
		if result != nil {
			if ts, ok := result.Tasks[id]; ok {
				start = ts.ES
			}
		}
		finish := start + float64(t.Duration)

		color, ok := tl.ResourceColors[t.Resource]
		if !ok {
			color = palette[len(tl.ResourceColors)%len(palette)]
			tl.ResourceColors[t.Resource] = color
			tl.Resources = append(tl.Resources, t.Resource)
		}

		tl.Tasks = append(tl.Tasks, Entry{
			ID:       id,
			Name:     t.Name,
			Start:    start,
			Finish:   finish,
			Duration: t.Duration,
			Resource: t.Resource,
			Color:    color,
		})
		if finish > tl.ProjectDuration {
			tl.ProjectDuration = finish
		}
	}

	sort.SliceStable(tl.Tasks, func(a, b int) bool {
		if tl.Tasks[a].Start != tl.Tasks[b].Start {
			return tl.Tasks[a].Start < tl.Tasks[b].Start
		}
		return tl.Tasks[a].ID < tl.Tasks[b].ID
	})

	return tl
}
