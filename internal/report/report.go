package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mhalloran/critpath/internal/cpm"
	"github.com/mhalloran/critpath/internal/graph"
	"github.com/mhalloran/critpath/internal/paths"
	"github.com/mhalloran/critpath/internal/ui"
)

// Reporter renders analysis output for terminals and machines.
type Reporter struct {
	Graph  *graph.TaskGraph
	Result *cpm.Result
}

// New creates a Reporter over an analyzed graph.
func New(g *graph.TaskGraph, result *cpm.Result) *Reporter {
	return &Reporter{Graph: g, Result: result}
}

// PrintSchedule writes the per-task schedule table.
func (r *Reporter) PrintSchedule(w io.Writer) {
	fmt.Fprintf(w, "📋 %s\n", ui.BoldCyan("Project Schedule"))
	fmt.Fprintln(w, ui.Cyan("═══════════════════"))
	fmt.Fprintln(w)

	if r.Graph.TaskCount() == 0 {
		fmt.Fprintf(w, "%s\n", ui.Dim("No tasks provided."))
		return
	}

	fmt.Fprintf(w, "Tasks:     %s\n", ui.Bold(r.Graph.TaskCount()))
	fmt.Fprintf(w, "Duration:  %s units\n", ui.Bold(formatNum(r.Result.ProjectDuration)))
	if len(r.Result.CriticalPath) > 0 {
		fmt.Fprintf(w, "⚡ Critical path: %s\n",
			ui.BoldYellow(strings.Join(r.Result.CriticalPath, " → ")))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s %-10s %-28s %5s %6s %6s %6s %6s %6s\n",
		" ", "ID", "NAME", "DUR", "ES", "EF", "LS", "LF", "SLACK")
	for _, id := range r.Result.TopoOrder {
		t := r.Graph.Tasks[id]
		ts := r.Result.Tasks[id]
		name := t.Name
		if len(name) > 28 {
			name = name[:25] + "..."
		}
		fmt.Fprintf(w, "  %s %-10s %-28s %5d %6s %6s %6s %6s %6s\n",
			ui.Critical(ts.IsCritical),
			ui.BoldMagenta(id), name, t.Duration,
			formatNum(ts.ES), formatNum(ts.EF),
			formatNum(ts.LS), formatNum(ts.LF),
			slackText(ts.Slack))
	}

	if len(r.Graph.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s\n", ui.Yellow(fmt.Sprintf("⚠ %d records skipped during ingestion:", len(r.Graph.Warnings))))
		for _, warn := range r.Graph.Warnings {
			fmt.Fprintf(w, "  %s %s\n", ui.Dim("‣"), ui.Dim(warn))
		}
	}
}

// PrintBottlenecks writes the ranked bottleneck table.
func (r *Reporter) PrintBottlenecks(w io.Writer, bottlenecks []cpm.Bottleneck) {
	fmt.Fprintf(w, "🚧 %s\n", ui.BoldCyan("Bottleneck Tasks"))
	fmt.Fprintln(w, ui.Cyan("═══════════════════"))
	fmt.Fprintln(w)

	if len(bottlenecks) == 0 {
		fmt.Fprintf(w, "%s\n", ui.Dim("No bottlenecks detected."))
		return
	}

	fmt.Fprintf(w, "  %-10s %-28s %-14s %7s %6s %6s %6s\n",
		"ID", "NAME", "RESOURCE", "IMPACT", "SLACK", "ES", "LS")
	for _, b := range bottlenecks {
		name := b.Name
		if len(name) > 28 {
			name = name[:25] + "..."
		}
		fmt.Fprintf(w, "  %-10s %-28s %-14s %7s %6s %6s %6s\n",
			ui.BoldMagenta(b.ID), name, b.Resource,
			ui.BoldRed(b.Impact), slackText(b.Slack),
			formatNum(b.EarlyStart), formatNum(b.LateStart))
	}
}

// PrintPaths writes the alternate-path listing, cheapest first.
func (r *Reporter) PrintPaths(w io.Writer, routes []paths.Path) {
	fmt.Fprintf(w, "🛤  %s\n", ui.BoldCyan("Project Paths"))
	fmt.Fprintln(w, ui.Cyan("═══════════════"))
	fmt.Fprintln(w)

	if len(routes) == 0 {
		fmt.Fprintf(w, "%s\n", ui.Dim("No source-to-sink paths found."))
		return
	}

	for i, p := range routes {
		ids := make([]string, len(p.Tasks))
		for j, t := range p.Tasks {
			ids[j] = t.ID
		}
		marker := " "
		if p.IsCritical {
			marker = ui.BoldYellow("⚡")
		}
		fmt.Fprintf(w, "  %d. %s %s  %s\n", i+1, marker,
			ui.BoldMagenta(strings.Join(ids, " → ")),
			ui.Dim(fmt.Sprintf("[%d units]", p.Duration)))
	}
}

// JSON returns the machine-readable schedule result, the plain-data
// contract a hosting service binds to.
func (r *Reporter) JSON() ([]byte, error) {
	type taskOut struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Duration    int     `json:"duration"`
		Resource    string  `json:"resource"`
		EarlyStart  float64 `json:"early_start"`
		EarlyFinish float64 `json:"early_finish"`
		LateStart   float64 `json:"late_start"`
		LateFinish  float64 `json:"late_finish"`
		Slack       float64 `json:"slack"`
		IsCritical  bool    `json:"is_critical"`
	}

	type output struct {
		Tasks           []taskOut `json:"tasks"`
		CriticalPath    []string  `json:"critical_path"`
		ProjectDuration float64   `json:"project_duration"`
		Warnings        []string  `json:"warnings,omitempty"`
	}

	o := output{
		CriticalPath:    r.Result.CriticalPath,
		ProjectDuration: r.Result.ProjectDuration,
		Warnings:        r.Graph.Warnings,
	}
	for _, id := range r.Result.TopoOrder {
		t := r.Graph.Tasks[id]
		ts := r.Result.Tasks[id]
		o.Tasks = append(o.Tasks, taskOut{
			ID:          id,
			Name:        t.Name,
			Duration:    t.Duration,
			Resource:    t.Resource,
			EarlyStart:  ts.ES,
			EarlyFinish: ts.EF,
			LateStart:   ts.LS,
			LateFinish:  ts.LF,
			Slack:       ts.Slack,
			IsCritical:  ts.IsCritical,
		})
	}

	return json.MarshalIndent(o, "", "  ")
}

// BottlenecksJSON returns the bottleneck ranking as JSON.
func BottlenecksJSON(bottlenecks []cpm.Bottleneck) ([]byte, error) {
	type out struct {
		ID         string  `json:"id"`
		Name       string  `json:"name"`
		Duration   int     `json:"duration"`
		Resource   string  `json:"resource"`
		Impact     int     `json:"impact"`
		Slack      float64 `json:"slack"`
		EarlyStart float64 `json:"early_start"`
		LateStart  float64 `json:"late_start"`
	}
	list := make([]out, 0, len(bottlenecks))
	for _, b := range bottlenecks {
		list = append(list, out(b))
	}
	return json.MarshalIndent(list, "", "  ")
}

// PathsJSON returns the path listing as JSON.
func PathsJSON(routes []paths.Path) ([]byte, error) {
	type taskRef struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Duration int    `json:"duration"`
		Resource string `json:"resource"`
	}
	type out struct {
		Tasks      []taskRef `json:"tasks"`
		Duration   int       `json:"duration"`
		IsCritical bool      `json:"is_critical"`
	}
	list := make([]out, 0, len(routes))
	for _, p := range routes {
		o := out{Duration: p.Duration, IsCritical: p.IsCritical}
		for _, t := range p.Tasks {
			o.Tasks = append(o.Tasks, taskRef(t))
		}
		list = append(list, o)
	}
	return json.MarshalIndent(list, "", "  ")
}

// formatNum renders times without a trailing ".0" for whole values.
func formatNum(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%.2f", f)
}

func slackText(slack float64) string {
	s := formatNum(slack)
	if slack < 1e-6 {
		return ui.Green(s)
	}
	return s
}
