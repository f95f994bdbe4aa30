package utils

import "strings"

func StringInSlice(a string, list []string) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

// AppendUniqueFold appends each value of values to list unless an equal
// value (case-insensitively) is already present. Blank values are skipped
// and first-seen order is kept.
func AppendUniqueFold(list []string, values ...string) []string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}

		seen := false
		for _, existing := range list {
			if strings.EqualFold(existing, v) {
				seen = true
				break
			}
		}
		if !seen {
			list = append(list, v)
		}
	}
	return list
}

// SplitAndTrim splits str on sep, dropping blank entries.
func SplitAndTrim(str string, sep string) []string {
	var out []string
	for _, part := range strings.Split(str, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
