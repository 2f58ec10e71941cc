package normalize

import (
	"strconv"
	"strings"
)

const maxDurationSegments = 3

// ParseDuration converts a colon separated time string into seconds.
//
// Segments are read right to left as seconds, minutes and hours. Non-string values, empty
// segments, non-numeric segments and more than three segments all yield false.
func ParseDuration(v any) (int, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}

	parts := strings.Split(s, ":")
	if len(parts) > maxDurationSegments {
		return 0, false
	}

	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0, false
		}
		total = total*60 + n
	}

	return total, true
}

// integerSeconds accepts the numeric forms a JSON decoder or a test fixture may produce.
func integerSeconds(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case interface{ Int64() (int64, error) }:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}
