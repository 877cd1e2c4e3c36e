package permission

import (
	"strings"

	"github.com/AiDinaAgustin/microservice-payroll/internal/pkg/validator"
)

// IDPlaceholder replaces id segments in normalized paths.
const IDPlaceholder = ":id"

// NormalizeEndpoint turns a concrete request path into its permission key:
// every UUID or all-digit segment becomes ":id", the query string and a trailing slash are dropped.
//
//	/v1/employees/0190a1b2-.../contracts -> /v1/employees/:id/contracts
func NormalizeEndpoint(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		if validator.IsNumeric(seg) || validator.IsValidUUID(seg) {
			segments[i] = IDPlaceholder
		}
	}

	normalized := strings.Join(segments, "/")
	if len(normalized) > 1 {
		normalized = strings.TrimRight(normalized, "/")
	}
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	return normalized
}

func NormalizeMethod(method string) string {
	return strings.ToUpper(strings.TrimSpace(method))
}
