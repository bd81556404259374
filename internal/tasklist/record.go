package tasklist

import "strings"

// Record is the last known view of an open task. The reconciler keeps a
// cached copy per tracked ID so rows that have left the source can still be
// rendered while their exit animation plays.
type Record struct {
	ID       string // Unique, stable identifier
	Title    string // Human-readable name
	Priority int    // Lower sorts earlier
	Project  string // Project key; derived from the ID prefix when empty
}

// ProjectOf derives the project key from a task ID prefix
// (e.g. "auth-42" -> "auth"). IDs without a dash are their own project.
func ProjectOf(id string) string {
	if i := strings.Index(id, "-"); i > 0 {
		return id[:i]
	}
	return id
}
