package pipeline

import (
	"strings"

	"github.com/telhawk-systems/scannorm/pkg/schema"
)

// LineBreak is the canonical replacement for a line feed in display text.
const LineBreak = "<br/>"

// NormalizeText canonicalizes a working record in place against the target
// schema: display-text fields get line feeds rewritten to the HTML
// line-break marker, enumerated fields are upper-cased. The two passes are
// distinct; case folding never touches free text. Re-running is a no-op
// because normalized text contains no line feeds.
func NormalizeText(rec Record, s *schema.Schema) {
	for _, col := range s.Columns {
		v, ok := rec[col.Name]
		if !ok {
			continue
		}
		if col.DisplayText {
			rec[col.Name] = replaceLineFeeds(Stringify(v))
		}
	}
	for _, col := range s.Columns {
		v, ok := rec[col.Name]
		if !ok {
			continue
		}
		if col.CaseFold {
			rec[col.Name] = strings.ToUpper(strings.TrimSpace(Stringify(v)))
		}
	}
}

func replaceLineFeeds(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\n", LineBreak)
}
