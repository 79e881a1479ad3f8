package timeline

import (
	"reflect"
	"testing"

	"github.com/mhalloran/critpath/internal/cpm"
	"github.com/mhalloran/critpath/internal/graph"
	"github.com/mhalloran/critpath/internal/task"
)

func analyzed(t *testing.T, records []task.Record) (*graph.TaskGraph, *cpm.Result) {
	t.Helper()
	g := graph.Build(records, task.Options{})
	result, err := cpm.Analyze(g)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return g, result
}

func TestBuild_Diamond(t *testing.T) {
	g, result := analyzed(t, []task.Record{
		{"task_id": "A", "duration": 2, "Resource": "backend"},
		{"task_id": "B", "duration": 3, "dependencies": "A", "Resource": "backend"},
		{"task_id": "C", "duration": 1, "dependencies": "A", "Resource": "frontend"},
		{"task_id": "D", "duration": 4, "dependencies": "B,C", "Resource": "qa"},
	})

	tl := Build(g, result)

	if tl.ProjectDuration != 9 {
		t.Errorf("expected project duration 9, got %v", tl.ProjectDuration)
	}
	if len(tl.Tasks) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(tl.Tasks))
	}

	// Sorted by start, ties by id: A(0), B(2), C(2), D(5).
	order := make([]string, len(tl.Tasks))
	for i, e := range tl.Tasks {
		order[i] = e.ID
	}
	if !reflect.DeepEqual(order, []string{"A", "B", "C", "D"}) {
		t.Errorf("unexpected order: %v", order)
	}

	for _, e := range tl.Tasks {
		if e.Finish != e.Start+float64(e.Duration) {
			t.Errorf("%s: finish %v != start %v + duration %d", e.ID, e.Finish, e.Start, e.Duration)
		}
	}
	if d := tl.Tasks[3]; d.Start != 5 || d.Finish != 9 {
		t.Errorf("expected D at 5..9, got %v..%v", d.Start, d.Finish)
	}
}

func TestBuild_ResourceColors(t *testing.T) {
	g, result := analyzed(t, []task.Record{
		{"task_id": "a", "duration": 1, "Resource": "dev"},
		{"task_id": "b", "duration": 1, "Resource": "ops", "dependencies": "a"},
		{"task_id": "c", "duration": 1, "Resource": "dev", "dependencies": "b"},
	})

	tl := Build(g, result)

	if !reflect.DeepEqual(tl.Resources, []string{"dev", "ops"}) {
		t.Errorf("expected first-seen resource order [dev ops], got %v", tl.Resources)
	}
	if len(tl.ResourceColors) != 2 {
		t.Fatalf("expected 2 resource colors, got %v", tl.ResourceColors)
	}
	if tl.ResourceColors["dev"] == tl.ResourceColors["ops"] {
		t.Error("expected distinct colors for distinct resources")
	}
	// Same resource, same color, in the entries too.
	var devColors []string
	for _, e := range tl.Tasks {
		if e.Resource == "dev" {
			devColors = append(devColors, e.Color)
		}
	}
	if len(devColors) != 2 || devColors[0] != devColors[1] {
		t.Errorf("expected stable color for dev entries, got %v", devColors)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	records := []task.Record{
		{"task_id": "a", "duration": 2},
		{"task_id": "b", "duration": 3, "dependencies": "a"},
	}
	g, result := analyzed(t, records)

	first := Build(g, result)
	second := Build(g, result)
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical timelines for identical input")
	}
}

func TestBuild_PaletteCycles(t *testing.T) {
	var records []task.Record
	for i := 0; i < 12; i++ {
		records = append(records, task.Record{
			"task_id":  string(rune('a' + i)),
			"duration": 1,
			"Resource": "team-" + string(rune('a'+i)),
		})
	}
	g, result := analyzed(t, records)

	tl := Build(g, result)
	if len(tl.Resources) != 12 {
		t.Fatalf("expected 12 resources, got %d", len(tl.Resources))
	}
	// 12 resources over a 10-color palette: the 11th reuses the 1st color.
	first := tl.ResourceColors[tl.Resources[0]]
	eleventh := tl.ResourceColors[tl.Resources[10]]
	if first != eleventh {
		t.Errorf("expected palette to cycle, got %s vs %s", first, eleventh)
	}
}

func TestBuild_Empty(t *testing.T) {
	g, result := analyzed(t, nil)
	tl := Build(g, result)
	if tl.ProjectDuration != 0 || len(tl.Tasks) != 0 || len(tl.Resources) != 0 {
		t.Errorf("expected empty timeline, got %+v", tl)
	}
}
