package utils

import "strings"

// JoinPaths combines URL path fragments into one normalized route.
//
//	JoinPaths("/api/", "/users/") -> "/api/users"
//	JoinPaths("/api", "{id}")     -> "/api/{id}"
//	JoinPaths("", "")             -> ""
//
// Empty (or whitespace-only) fragments are dropped. A non-empty result always
// starts with exactly one slash and never ends with one, except for the root "/".
func JoinPaths(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	if len(parts) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, part := range parts {
		part = strings.Trim(part, "/")
		if part == "" {
			// "/" or "//" contributes nothing but the leading slash
			continue
		}
		sb.WriteByte('/')
		sb.WriteString(part)
	}

	if sb.Len() == 0 {
		return "/"
	}
	return sb.String()
}
