// Package nessus provides the Nessus CSV adapters: vulnerability exports
// map column-for-column, compliance exports decompose the multi-line
// description blob with independent regex passes.
package nessus

import (
	"regexp"

	"github.com/telhawk-systems/scannorm/pkg/adapter"
	"github.com/telhawk-systems/scannorm/pkg/pipeline"
	"github.com/telhawk-systems/scannorm/pkg/schema"
)

// Compliance description blob layout: a "Rule: [Reference]" title line,
// a free-text body, and a trailing "Actual Value:" evidence section. Each
// target field is derived by its own non-overlapping pass.
var (
	nameRe        = regexp.MustCompile(`^([^\n]*?):\s*\[[^\n]*\]`)
	descriptionRe = regexp.MustCompile(`(?s)\A[^\n]*\n+(.*?)\s*(?:\nActual Value:|\z)`)
	evidenceRe    = regexp.MustCompile(`(?s)Actual Value:\s*\n(.*?)\s*\z`)
)

// VAPT returns the adapter for Nessus vulnerability CSV exports
// (CVE, Risk, Host, Port, Name, Description, Solution, Plugin Output,
// VPR Score).
func VAPT() *adapter.Adapter {
	return &adapter.Adapter{
		Name:      "nessus-vapt",
		Format:    adapter.FormatCSV,
		MIMETypes: []string{"text/csv"},
		Schema:    schema.VAPTFinding,
		Rules: []pipeline.Rule{
			pipeline.Rename("cve", "cve"),
			pipeline.Rename("risk", "risk"),
			pipeline.Rename("host", "host"),
			pipeline.Rename("port", "port"),
			pipeline.Rename("name", "name"),
			pipeline.Rename("description", "description"),
			pipeline.Rename("solution", "remediation"),
			pipeline.Rename("plugin_output", "evidence"),
			pipeline.Rename("vpr_score", "vpr_score"),
		},
	}
}

// Compliance returns the adapter for Nessus compliance CSV exports. The
// result column is renamed to status and filtered; risk is the explicit
// absence value the downstream consumer reads as medium.
func Compliance() *adapter.Adapter {
	return &adapter.Adapter{
		Name:      "nessus-compliance",
		Format:    adapter.FormatCSV,
		MIMETypes: []string{"text/csv"},
		Schema:    schema.ComplianceCheck,
		Rules: []pipeline.Rule{
			pipeline.Const("risk", ""),
			pipeline.Rename("host", "host"),
			pipeline.Rename("port", "port"),
			pipeline.Extract("description", "name", nameRe),
			pipeline.Extract("description", "description", descriptionRe),
			pipeline.Extract("description", "evidence", evidenceRe),
			pipeline.Rename("solution", "remediation"),
			pipeline.Rename("risk", "status"),
		},
	}
}
