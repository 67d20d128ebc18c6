// Package burp provides the Burp Suite XML adapter.
package burp

import (
	"github.com/telhawk-systems/scannorm/pkg/adapter"
	"github.com/telhawk-systems/scannorm/pkg/pipeline"
	"github.com/telhawk-systems/scannorm/pkg/schema"
)

// New returns the adapter for Burp Suite Professional/Enterprise XML
// exports. Issues rated Information fall out of the enum filter; Burp does
// not report a port in its XML, so port is fixed at 0.
func New() *adapter.Adapter {
	return &adapter.Adapter{
		Name:      "burpsuite",
		Format:    adapter.FormatXML,
		MIMETypes: []string{"xml", "application/xml", "text/xml", "application/x-xml"},
		XMLItem:   "issue",
		Schema:    schema.VAPTFinding,
		Derive:    derive,
		Rules: []pipeline.Rule{
			pipeline.Const("cve", ""),
			pipeline.Rename("severity", "risk"),
			pipeline.Rename("host", "host"),
			pipeline.Const("port", "0"),
			pipeline.Rename("name", "name"),
			pipeline.Rename("description", "description"),
			pipeline.Rename("remediation", "remediation"),
			pipeline.Rename("requestresponse.request", "evidence"),
			pipeline.Const("vpr_score", ""),
		},
	}
}

// derive resolves the fallback chains Burp exports need: hostname text over
// the ip attribute, issueBackground over issueDetail, remediationBackground
// over remediationDetail.
func derive(rec pipeline.Record) {
	if pipeline.Stringify(rec["host"]) == "" {
		rec["host"] = rec["host.ip"]
	}
	rec["description"] = firstNonEmpty(rec, "issuebackground", "issuedetail")
	rec["remediation"] = firstNonEmpty(rec, "remediationbackground", "remediationdetail")
}

func firstNonEmpty(rec pipeline.Record, keys ...string) string {
	for _, k := range keys {
		if v := pipeline.Stringify(rec[k]); v != "" {
			return v
		}
	}
	return ""
}
