package normalizer

import (
	"strconv"
	"strings"

	apperrors "github.com/smeggmann99/arrango-scheduler/core/errors"
)

// parseMinutes accepts either "HH:MM" or a raw non-negative integer number
// of minutes-of-day, per spec.md §4.1.
func parseMinutes(field, raw string) (int, *apperrors.Error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperrors.InvalidInput(field, "must not be empty")
	}
	if strings.Contains(raw, ":") {
		parts := strings.SplitN(raw, ":", 2)
		if len(parts) != 2 {
			return 0, apperrors.InvalidInput(field, "invalid HH:MM value %q", raw)
		}
		h, errH := strconv.Atoi(parts[0])
		m, errM := strconv.Atoi(parts[1])
		if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
			return 0, apperrors.InvalidInput(field, "invalid HH:MM value %q", raw)
		}
		return h*60 + m, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperrors.InvalidInput(field, "must be \"HH:MM\" or a non-negative integer minute value, got %q", raw)
	}
	return n, nil
}
