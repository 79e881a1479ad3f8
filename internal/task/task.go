package task

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Record is a raw task record as produced by an ingestion collaborator
// (CSV row, JSON object). Keys follow either the legacy short convention
// (task_id, duration, dependencies) or the descriptive one (Task ID,
// Duration (days), Dependencies); Normalize resolves both.
type Record map[string]any

// Task is the normalized, strongly-typed task record.
type Task struct {
	ID        string
	Name      string
	Duration  int // time units (hours); minimum 1
	Resource  string
	DependsOn []string // ids this task depends on; self-deps already dropped
}

// Options control normalization.
type Options struct {
	// WorkdayHours converts days-denominated durations to hours.
	// Zero means the default of 8.
	WorkdayHours int
}

// DefaultWorkdayHours is the day-to-hour multiplier applied to the
// "Duration (days)" field.
const DefaultWorkdayHours = 8

func (o Options) workday() int {
	if o.WorkdayHours > 0 {
		return o.WorkdayHours
	}
	return DefaultWorkdayHours
}

// Field fallback chains. The first present key wins.
var (
	idKeys       = []string{"Task ID", "task_id"}
	nameKeys     = []string{"Task Name", "task_name"}
	resourceKeys = []string{"Resource", "resource", "assigned_to"}
	depKeys      = []string{"Dependencies", "dependencies"}
	// durationDayKeys are days-denominated and get the workday multiplier;
	// durationUnitKeys are already in the target unit.
	durationDayKeys  = []string{"Duration (days)"}
	durationUnitKeys = []string{"Duration", "duration", "estimated_time"}
)

// Normalize converts a raw record into a Task.
// An empty or whitespace-only id yields ErrEmptyID; an unparseable duration
// yields a *ValidationError. Callers doing batch ingestion should skip such
// records with a warning rather than abort (see graph.Build).
func Normalize(rec Record, opts Options) (*Task, error) {
	id := strings.TrimSpace(stringField(rec, idKeys, ""))
	if id == "" {
		return nil, ErrEmptyID
	}

	name := stringField(rec, nameKeys, "")
	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("Task %s", id)
	}

	duration, err := durationField(rec, opts)
	if err != nil {
		return nil, err
	}

	resource := stringField(rec, resourceKeys, "")
	if strings.TrimSpace(resource) == "" {
		resource = "Unassigned"
	}

	return &Task{
		ID:        id,
		Name:      name,
		Duration:  duration,
		Resource:  resource,
		DependsOn: dependencyField(rec, id),
	}, nil
}

// durationField resolves the duration fallback chain, applying the workday
// multiplier to days-denominated values, then floors and clamps to 1.
func durationField(rec Record, opts Options) (int, error) {
	for _, key := range durationDayKeys {
		v, ok := rec[key]
		if !ok {
			continue
		}
		days, err := toNumber(v)
		if err != nil {
			return 0, &ValidationError{Field: key, Value: v, Reason: "duration is not numeric"}
		}
		return clampDuration(days * float64(opts.workday())), nil
	}
	for _, key := range durationUnitKeys {
		v, ok := rec[key]
		if !ok {
			continue
		}
		n, err := toNumber(v)
		if err != nil {
			return 0, &ValidationError{Field: key, Value: v, Reason: "duration is not numeric"}
		}
		return clampDuration(n), nil
	}
	// No duration field at all: schedulable floor of 1 unit.
	return 1, nil
}

func clampDuration(n float64) int {
	d := int(math.Floor(n))
	if d < 1 {
		return 1
	}
	return d
}

// dependencyField resolves the dependency list. String values may be comma
// or semicolon delimited; list values are accepted as-is. Entries are
// trimmed, empties and self-references dropped.
func dependencyField(rec Record, id string) []string {
	var raw []string
	for _, key := range depKeys {
		v, ok := rec[key]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case string:
			raw = strings.FieldsFunc(val, func(r rune) bool {
				return r == ',' || r == ';'
			})
		case []string:
			raw = val
		case []any:
			for _, item := range val {
				raw = append(raw, coerceString(item))
			}
		}
		break
	}

	var deps []string
	for _, d := range raw {
		d = strings.TrimSpace(d)
		if d == "" || d == id {
			continue
		}
		deps = append(deps, d)
	}
	return deps
}

// stringField returns the first present key's value coerced to a string.
func stringField(rec Record, keys []string, def string) string {
	for _, key := range keys {
		if v, ok := rec[key]; ok {
			return coerceString(v)
		}
	}
	return def
}

// coerceString renders primitive values the way they appear in a CSV cell.
// Numeric ids (a common artifact of spreadsheet exports) become their
// decimal form without a trailing ".0".
func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == math.Trunc(val) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}

func toNumber(v any) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, nil
		}
		return strconv.ParseFloat(s, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
