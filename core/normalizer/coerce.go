package normalizer

import (
	apperrors "github.com/smeggmann99/arrango-scheduler/core/errors"
)

// requirePositiveInt validates that an optional *int field is present and
// strictly positive. Non-integer JSON values never reach here (encoding/json
// would already have failed to decode them into *int), so this only needs
// to check presence and sign/magnitude.
func requirePositiveInt(field string, v *int) (int, *apperrors.Error) {
	if v == nil {
		return 0, apperrors.InvalidInput(field, "is required")
	}
	if *v <= 0 {
		return 0, apperrors.InvalidInput(field, "must be a positive integer, got %d", *v)
	}
	return *v, nil
}

// firstNonEmpty returns the first non-empty string among candidates.
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// firstNonNilInt returns the first non-nil *int among candidates.
func firstNonNilInt(candidates ...*int) *int {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

// dedupeStrings preserves first-seen order while dropping duplicates and
// blanks.
func dedupeStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
