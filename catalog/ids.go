package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// InvalidIDError reports a token that is not a valid item identifier.
type InvalidIDError struct {
	Token string
}

func (e *InvalidIDError) Error() string {
	return "Invalid ID: " + e.Token
}

// ParseIDs parses a comma separated identifier list. Tokens are trimmed and blank
// tokens skipped, so "1, ,2" yields [1 2]. Order and duplicates are preserved.
func ParseIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return []int64{}, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return nil, &InvalidIDError{Token: token}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Distinct reduces ids to unique values keeping first-occurrence order.
func Distinct(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// FormatIDs renders ids as "[1, 2, 3]".
func FormatIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
