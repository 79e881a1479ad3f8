package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mhalloran/critpath/internal/config"
	"github.com/mhalloran/critpath/internal/cpm"
	"github.com/mhalloran/critpath/internal/graph"
	"github.com/mhalloran/critpath/internal/ingest"
	"github.com/mhalloran/critpath/internal/paths"
	"github.com/mhalloran/critpath/internal/report"
	"github.com/mhalloran/critpath/internal/task"
	"github.com/mhalloran/critpath/internal/timeline"
	"github.com/mhalloran/critpath/internal/ui"
	"github.com/spf13/cobra"
)

var (
	flagInput     string
	flagJSON      bool
	flagWorkday   int
	flagThreshold float64
	flagMaxPaths  int
	flagFormat    string
)

var cfg config.Config

func main() {
	rootCmd := &cobra.Command{
		Use:   "critpath",
		Short: "Critical path analysis for project task graphs",
		Long: `Critpath reads a set of tasks with durations and dependencies,
computes the CPM schedule (earliest/latest start and finish, slack),
and reports the critical path, bottleneck tasks, and alternate routes
through the project.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if !cmd.Flags().Changed("workday") {
				flagWorkday = cfg.WorkdayHours
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flagInput, "input", "i", "", "Task file (.csv or .json); reads stdin when omitted")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")
	rootCmd.PersistentFlags().IntVar(&flagWorkday, "workday", task.DefaultWorkdayHours, "Hours per workday for days-denominated durations")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(bottlenecksCmd())
	rootCmd.AddCommand(pathsCmd())
	rootCmd.AddCommand(timelineCmd())
	rootCmd.AddCommand(vizCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildGraph is shared ingestion logic for all commands.
func buildGraph() (*graph.TaskGraph, error) {
	var (
		records []task.Record
		err     error
	)
	if flagInput == "" {
		data, rerr := io.ReadAll(os.Stdin)
		if rerr != nil {
			return nil, fmt.Errorf("read stdin: %w", rerr)
		}
		records, err = ingest.ReadJSON(data)
	} else {
		records, err = ingest.ReadFile(flagInput)
	}
	if err != nil {
		return nil, err
	}

	return graph.Build(records, task.Options{WorkdayHours: flagWorkday}), nil
}

// analyzeGraph builds and analyzes, rendering cycle errors distinctly from
// valid-but-empty input.
func analyzeGraph() (*graph.TaskGraph, *cpm.Result, error) {
	g, err := buildGraph()
	if err != nil {
		return nil, nil, err
	}

	result, err := cpm.Analyze(g)
	if err != nil {
		var cycleErr *cpm.CycleError
		if errors.As(err, &cycleErr) {
			fmt.Fprintf(os.Stderr, "🔁 %s %s\n", ui.BoldRed("Cycle detected:"),
				ui.BoldMagenta(strings.Join(cycleErr.Cycle, " → ")))
		}
		return nil, nil, err
	}
	return g, result, nil
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Compute the CPM schedule and critical path",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, result, err := analyzeGraph()
			if err != nil {
				return err
			}

			rpt := report.New(g, result)
			if flagJSON {
				data, err := rpt.JSON()
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}
			rpt.PrintSchedule(os.Stdout)
			return nil
		},
	}
}

func bottlenecksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bottlenecks",
		Short: "Rank low-slack, high-impact tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, result, err := analyzeGraph()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("threshold") {
				flagThreshold = cfg.BottleneckThreshold
			}

			bottlenecks := cpm.Bottlenecks(g, result, flagThreshold)
			if flagJSON {
				data, err := report.BottlenecksJSON(bottlenecks)
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}
			report.New(g, result).PrintBottlenecks(os.Stdout, bottlenecks)
			return nil
		},
	}

	cmd.Flags().Float64Var(&flagThreshold, "threshold", cpm.DefaultBottleneckThreshold,
		"Slack ceiling as a fraction of project duration")

	return cmd
}

func pathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "List source-to-sink paths, cheapest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, result, err := analyzeGraph()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("max") {
				flagMaxPaths = cfg.MaxPaths
			}

			routes := paths.Enumerate(g, result, flagMaxPaths)
			if flagJSON {
				data, err := report.PathsJSON(routes)
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}
			report.New(g, result).PrintPaths(os.Stdout, routes)
			return nil
		},
	}

	cmd.Flags().IntVar(&flagMaxPaths, "max", paths.DefaultMaxPaths, "Maximum number of paths to report")

	return cmd
}

func timelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Project the schedule into chart-ready timeline data",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, result, err := analyzeGraph()
			if err != nil {
				return err
			}

			tl := timeline.Build(g, result)
			if flagJSON {
				return outputJSON(tl)
			}

			fmt.Printf("📅 %s\n", ui.BoldCyan("Project Timeline"))
			fmt.Println(ui.Cyan("═══════════════════"))
			fmt.Println()
			for _, e := range tl.Tasks {
				bar := strings.Repeat(" ", int(e.Start)) + strings.Repeat("█", e.Duration)
				fmt.Printf("  %-10s %-14s │%s\n", ui.BoldMagenta(e.ID), e.Resource, bar)
			}
			fmt.Println()
			fmt.Printf("Duration: %s units across %s resources\n",
				ui.Bold(int(tl.ProjectDuration)), ui.Bold(len(tl.Resources)))
			return nil
		},
	}
}

func vizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viz",
		Short: "Print the dependency graph (ascii or dot)",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, result, err := analyzeGraph()
			if err != nil {
				return err
			}

			if flagFormat == "dot" {
				printDOT(g, result)
				return nil
			}
			printASCIIDAG(g, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "ascii", "Output format (ascii, dot)")

	return cmd
}

func printASCIIDAG(g *graph.TaskGraph, result *cpm.Result) {
	fmt.Printf("🔗 %s\n", ui.BoldCyan("Task Dependency Graph"))
	fmt.Println(ui.Cyan("═══════════════════════"))
	fmt.Println()

	for _, id := range result.TopoOrder {
		ts := result.Tasks[id]
		fmt.Printf("  %s [%s] %s\n", ui.Critical(ts.IsCritical), ui.BoldMagenta(id), g.Tasks[id].Name)
		for _, dependent := range g.Adj[id] {
			fmt.Printf("      %s %s\n", ui.Dim("└──→"), ui.Magenta(dependent))
		}
	}
}

func printDOT(g *graph.TaskGraph, result *cpm.Result) {
	fmt.Println("digraph critpath {")
	fmt.Println("  rankdir=LR;")
	fmt.Println("  node [shape=box, style=rounded];")
	fmt.Println()

	for _, id := range g.SortedIDs() {
		t := g.Tasks[id]
		label := fmt.Sprintf("%s\\n%s (%d)", id, t.Name, t.Duration)
		attrs := fmt.Sprintf(`label="%s"`, label)
		if ts, ok := result.Tasks[id]; ok && ts.IsCritical {
			attrs += `, style="rounded,bold", color=red`
		}
		fmt.Printf("  %q [%s];\n", id, attrs)
	}

	fmt.Println()

	for _, from := range g.SortedIDs() {
		for _, to := range g.Adj[from] {
			style := ""
			if result.Tasks[from] != nil && result.Tasks[from].IsCritical &&
				result.Tasks[to] != nil && result.Tasks[to].IsCritical {
				style = ` [color=red, penwidth=2]`
			}
			fmt.Printf("  %q -> %q%s;\n", from, to, style)
		}
	}

	fmt.Println("}")
}

func outputJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
