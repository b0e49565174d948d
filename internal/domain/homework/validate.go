// internal/domain/homework/validate.go
package homework

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Validate checks that payload is an object carrying an integer current_date
// and a homeworks array. It returns nil when every check passes; otherwise the
// first failed check is reported and the rest are skipped.
func Validate(payload any) error {
	m, ok := payload.(map[string]any)
	if !ok {
		return Errorf(KindType, "response should be an object, not %s", typeName(payload))
	}

	_, hasDate := m[KeyCurrentDate]
	_, hasHomeworks := m[KeyHomeworks]
	if !hasDate || !hasHomeworks {
		return Errorf(KindSchema, "one or more expected keys are absent in API response, keys received: [%s]", joinKeys(m))
	}

	if _, ok := asInt64(m[KeyCurrentDate]); !ok {
		return Errorf(KindType, "unexpected type of date in response: %s, integer expected", typeName(m[KeyCurrentDate]))
	}

	if _, ok := m[KeyHomeworks].([]any); !ok {
		return Errorf(KindType, "cannot get list of homeworks, got %s", typeName(m[KeyHomeworks]))
	}

	return nil
}

// asInt64 accepts JSON integer literals and Go integer types only.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := strconv.ParseInt(n.String(), 10, 64)
		return i, err == nil
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func typeName(v any) string {
	switch n := v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case string:
		return "string"
	case json.Number:
		if _, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return "integer"
		}
		return "float"
	case float32, float64:
		return "float"
	case int, int32, int64:
		return "integer"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func joinKeys(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
