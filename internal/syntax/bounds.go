package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// parseBounds parses the text between '{' and '}'. high is -1 when the
// upper bound is open ({m,}).
func parseBounds(body string) (low, high int, err error) {
	lo, hi, hasComma := strings.Cut(body, ",")
	if lo == "" && (!hasComma || hi == "") {
		return 0, 0, fmt.Errorf("empty bounds {%s}", body)
	}

	if lo != "" {
		if low, err = parseCount(lo); err != nil {
			return 0, 0, err
		}
	}
	switch {
	case !hasComma:
		high = low
	case hi == "":
		high = -1
	default:
		if high, err = parseCount(hi); err != nil {
			return 0, 0, err
		}
		if low > high {
			return 0, 0, fmt.Errorf("min %d greater than max %d", low, high)
		}
	}
	return low, high, nil
}

func parseCount(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("bound %q is not a number", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > MaxRepeat {
		return 0, fmt.Errorf("bound %q exceeds %d", s, MaxRepeat)
	}
	return n, nil
}
