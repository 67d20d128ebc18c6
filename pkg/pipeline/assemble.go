package pipeline

import (
	"strconv"
	"strings"

	"github.com/telhawk-systems/scannorm/pkg/schema"
)

// Assemble projects a working record onto the exact ordered column list of
// the target schema with final type coercion. Upstream stages may leave the
// integer column stringly-typed; the safe-parse path guarantees it is
// numeric in the output.
func Assemble(rec Record, s *schema.Schema) schema.Row {
	row := make(schema.Row, len(s.Columns))
	for i, col := range s.Columns {
		switch col.Kind {
		case schema.KindInt:
			row[i] = SafeParsePort(rec[col.Name])
		default:
			row[i] = Stringify(rec[col.Name])
		}
	}
	return row
}

// SafeParsePort coerces a value to a valid port number: trimmed,
// empty-to-zero, integer parse with fallback to zero, clamped to the
// 0-65535 range. Never fails.
func SafeParsePort(v any) int32 {
	text := strings.TrimSpace(Stringify(v))
	if text == "" {
		return 0
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 || n > 65535 {
		return 0
	}
	return int32(n)
}
