package cpm

// Result holds the complete critical path analysis. It is created fresh on
// every Analyze call and owned by the caller; consumers treat it read-only.
type Result struct {
	Tasks           map[string]*Schedule
	CriticalPath    []string // critical task ids, ascending early start
	ProjectDuration float64
	TopoOrder       []string
}

// Schedule holds the computed timing attributes for a single task.
type Schedule struct {
	TaskID     string
	ES, EF     float64 // earliest start/finish
	LS, LF     float64 // latest start/finish
	Slack      float64
	IsCritical bool
}

// Bottleneck is a low-slack task whose delay cascades widely downstream.
type Bottleneck struct {
	ID         string
	Name       string
	Duration   int
	Resource   string
	Impact     int // number of downstream tasks
	Slack      float64
	EarlyStart float64
	LateStart  float64
}

// DefaultBottleneckThreshold is the slack threshold as a fraction of total
// project duration below which a task is bottleneck-eligible.
const DefaultBottleneckThreshold = 0.2

// epsilon is the tolerance for classifying zero slack.
const epsilon = 1e-6
