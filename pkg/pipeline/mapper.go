package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
)

// Rule maps one target-schema field from a decoded source record. Exactly
// one of the three primitives applies per rule: direct rename, constant
// injection, or regex extraction.
type Rule struct {
	// To is the target-schema field name.
	To string
	// From is the source field for renames and extractions.
	From string
	// Value is the fixed literal for constant rules.
	Value string
	// Pattern, when non-nil, extracts the target field from the source
	// text. The first capture group (or the whole match when there is
	// none) is the value; first match wins.
	Pattern *regexp.Regexp
	// Mandatory marks an extraction whose no-match drops the row instead
	// of yielding an empty string.
	Mandatory bool
	// Const distinguishes an intentional constant from a zero-value rename.
	Const bool
}

// Rename copies the source field verbatim under the target name.
func Rename(from, to string) Rule {
	return Rule{From: from, To: to}
}

// Const injects a fixed literal into the target field.
func Const(to, value string) Rule {
	return Rule{To: to, Value: value, Const: true}
}

// Extract derives the target field from a regex capture over the source
// text. No match yields an empty string.
func Extract(from, to string, pattern *regexp.Regexp) Rule {
	return Rule{From: from, To: to, Pattern: pattern}
}

// MandatoryExtract is Extract, except a row whose source text does not
// match is dropped.
func MandatoryExtract(from, to string, pattern *regexp.Regexp) Rule {
	return Rule{From: from, To: to, Pattern: pattern, Mandatory: true}
}

// Mapper rewrites decoded records into working records carrying
// target-schema field names. It is a generic interpreter over the adapter's
// rule table; rules are applied independently, never by sequential
// consumption of the source text.
type Mapper struct {
	rules []Rule
}

// NewMapper builds a mapper from the adapter's rule table.
func NewMapper(rules []Rule) *Mapper {
	return &Mapper{rules: rules}
}

// Apply maps one record. A failed mandatory extraction returns a row-local
// ErrFieldExtraction; the caller drops the row and continues the batch.
func (m *Mapper) Apply(src Record) (Record, error) {
	out := make(Record, len(m.rules))
	for _, rule := range m.rules {
		switch {
		case rule.Const:
			out[rule.To] = rule.Value
		case rule.Pattern != nil:
			text := Stringify(src[rule.From])
			match := rule.Pattern.FindStringSubmatch(text)
			if match == nil {
				if rule.Mandatory {
					return nil, fmt.Errorf("%w: field %q from %q", ErrFieldExtraction, rule.To, rule.From)
				}
				out[rule.To] = ""
				continue
			}
			if len(match) > 1 {
				out[rule.To] = match[1]
			} else {
				out[rule.To] = match[0]
			}
		default:
			out[rule.To] = src[rule.From]
		}
	}
	return out, nil
}

// Stringify renders a decoded value as text. JSON numbers arrive as
// float64; integral ones must not pick up a fractional suffix.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
