package cpm

import (
	"fmt"
	"strings"
)

// CycleError reports that the dependency graph is not a DAG. The forward and
// backward passes cannot produce a valid schedule, so analysis stops rather
// than degrading to partial timings.
type CycleError struct {
	Cycle []string // the offending nodes in dependency order
}

func (e *CycleError) Error() string {
	if len(e.Cycle) == 0 {
		return "dependency graph contains a cycle"
	}
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}
