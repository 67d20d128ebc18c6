package pipeline

import (
	"fmt"
	"strings"
)

// Variant is one known top-level shape of a tool's output, paired with the
// extraction strategy that flattens it into records.
type Variant struct {
	// Name identifies the variant in logs and errors.
	Name string
	// Key is the distinguishing top-level key whose presence selects this
	// variant.
	Key string
	// Extract flattens the matched document into source records.
	Extract func(doc map[string]any) []Record
}

// VariantSet dispatches a parsed document to exactly one variant by ordered
// key presence testing. No heuristic scoring; the first matching rule wins.
type VariantSet struct {
	variants []Variant
}

// NewVariantSet constructs a set with the provided variants in match order.
func NewVariantSet(variants ...Variant) *VariantSet {
	return &VariantSet{variants: variants}
}

// Detect returns the records of the first variant whose key is present in
// the document. A document matching no variant is fatal and the error names
// the keys that were expected.
func (vs *VariantSet) Detect(doc map[string]any) ([]Record, error) {
	for _, v := range vs.variants {
		if _, ok := doc[v.Key]; ok {
			return v.Extract(doc), nil
		}
	}
	return nil, fmt.Errorf("%w: expected one of top-level keys [%s]", ErrUnsupportedFormatVariant, strings.Join(vs.keys(), ", "))
}

func (vs *VariantSet) keys() []string {
	keys := make([]string, len(vs.variants))
	for i, v := range vs.variants {
		keys[i] = v.Key
	}
	return keys
}
