package pipeline

import (
	"github.com/telhawk-systems/scannorm/pkg/schema"
)

// ApplyDefaults repairs missing required fields in place. Runs strictly
// before enum filtering, so a row is only ever dropped for enum
// non-conformance, never for a repairable gap.
func ApplyDefaults(rec Record, s *schema.Schema) {
	for _, col := range s.Columns {
		if col.Enum != nil && !enumAllowsEmpty(col.Enum) {
			// Filtered enums are never defaulted; membership decides.
			continue
		}
		if v, ok := rec[col.Name]; !ok || v == nil {
			rec[col.Name] = col.Default
		}
	}
}

// PassesEnums reports whether every enumerated column of the record holds a
// member of its value set. Non-members are silently excluded from the
// output; a batch yielding zero passing rows is a valid result.
func PassesEnums(rec Record, s *schema.Schema) bool {
	for _, col := range s.Columns {
		if col.Enum == nil {
			continue
		}
		if !enumMember(col.Enum, Stringify(rec[col.Name])) {
			return false
		}
	}
	return true
}

func enumMember(set []string, v string) bool {
	for _, m := range set {
		if m == v {
			return true
		}
	}
	return false
}

func enumAllowsEmpty(set []string) bool {
	return enumMember(set, "")
}
