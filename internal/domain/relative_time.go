package domain

import (
	"fmt"
	"time"
)

// FormatRelative renders the age of createdAt (ms since epoch) relative to
// now (ms since epoch) using floor buckets: "Just now", "Nm ago", "Nh ago",
// "Nd ago". Timestamps in the future count as "Just now".
func FormatRelative(createdAt, now int64) string {
	diff := time.Duration(max(0, now-createdAt)) * time.Millisecond

	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int64(diff/time.Minute))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int64(diff/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int64(diff/(24*time.Hour)))
	}
}

