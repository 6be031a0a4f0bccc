package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EscapeValue converts a single cell value into a syntactically valid CSV
// field. Nil becomes an empty string, numbers keep their canonical decimal
// form, and any other value is stringified and quoted per RFC 4180 when it
// contains a comma, quote, or line break (both \n and \r trigger quoting).
// It is a total function: it never fails.
func EscapeValue(v any) string {
	if v == nil {
		return ""
	}

	var s string
	switch val := v.(type) {
	case string:
		s = val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case json.Number:
		return val.String()
	case time.Time:
		s = val.Format(time.RFC3339)
	case fmt.Stringer:
		s = val.String()
	default:
		s = fmt.Sprintf("%v", val)
	}

	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
