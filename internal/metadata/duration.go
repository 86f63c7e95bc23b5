package metadata

import (
	"fmt"
	"regexp"
	"strconv"
)

var isoDurationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseISODuration converts an ISO 8601 duration such as PT2H55M3S into
// whole seconds.
func ParseISODuration(value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	match := isoDurationPattern.FindStringSubmatch(value)
	if match == nil {
		return 0, fmt.Errorf("unrecognized duration %q", value)
	}
	var seconds int64
	multipliers := []int64{86400, 3600, 60, 1}
	for i, raw := range match[1:] {
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("unrecognized duration %q", value)
		}
		seconds += n * multipliers[i]
	}
	return seconds, nil
}
