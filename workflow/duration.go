package workflow

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration renders an elapsed duration for the given stage group.
// Matters still moving ("To Do", "In Progress") render as "-" at zero and
// otherwise carry an "In Progress:" prefix; completed matters render the
// bare components, or the empty string at zero. Components are whole days,
// hours and minutes, with zero components omitted.
func FormatDuration(d time.Duration, stage string) string {
	active := stage == StageToDo || stage == StageInProgress
	if active && d == 0 {
		return "-"
	}

	days := int(d / (24 * time.Hour))
	hours := int(d/time.Hour) % 24
	minutes := int(d/time.Minute) % 60

	parts := make([]string, 0, 3)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}

	out := strings.Join(parts, " ")
	if active {
		return strings.TrimSpace("In Progress: " + out)
	}
	return out
}
