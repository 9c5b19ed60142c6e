package types

import (
	"fmt"
	"time"
)

// RelativeTime renders a unix timestamp relative to now ("just now", "5m ago", "3h ago", "2d ago")
func RelativeTime(now time.Time, unix int64) string {
	diff := now.Unix() - unix
	if diff < 0 {
		diff = 0
	}

	switch {
	case diff < 60:
		return "just now"
	case diff < 3600:
		return fmt.Sprintf("%dm ago", diff/60)
	case diff < 86400:
		return fmt.Sprintf("%dh ago", diff/3600)
	default:
		return fmt.Sprintf("%dd ago", diff/86400)
	}
}
