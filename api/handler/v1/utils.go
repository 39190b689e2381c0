package v1

import "strings"

// parseCommaSeparatedValues accepts both repeated query parameters and "a,b,c"
func parseCommaSeparatedValues(values []string) []string {
	var result []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
	}
	return result
}
