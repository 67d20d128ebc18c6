// Package trivy provides the Trivy JSON adapter. Trivy has emitted two
// top-level layouts over its lifetime; the variant set dispatches on the
// distinguishing root key and each variant flattens its own nesting.
package trivy

import (
	"fmt"

	"github.com/telhawk-systems/scannorm/pkg/adapter"
	"github.com/telhawk-systems/scannorm/pkg/pipeline"
	"github.com/telhawk-systems/scannorm/pkg/schema"
)

// New returns the Trivy scan-report adapter.
func New() *adapter.Adapter {
	return &adapter.Adapter{
		Name:      "trivy",
		Format:    adapter.FormatJSON,
		MIMETypes: []string{"application/json", "json"},
		Schema:    schema.VAPTFinding,
		Variants: pipeline.NewVariantSet(
			pipeline.Variant{Name: "legacy", Key: "vulnerabilities", Extract: extractLegacy},
			pipeline.Variant{Name: "modern", Key: "Results", Extract: extractModern},
		),
		Rules: []pipeline.Rule{
			pipeline.Rename("cve", "cve"),
			pipeline.Rename("risk", "risk"),
			pipeline.Rename("host", "host"),
			pipeline.Rename("port", "port"),
			pipeline.Rename("name", "name"),
			pipeline.Rename("description", "description"),
			pipeline.Rename("remediation", "remediation"),
			pipeline.Rename("evidence", "evidence"),
			pipeline.Rename("vpr_score", "vpr_score"),
		},
	}
}

// extractModern flattens {"Results":[{Target, Vulnerabilities:[...]}]}.
// Results with a null Vulnerabilities array are skipped.
func extractModern(doc map[string]any) []pipeline.Record {
	records := []pipeline.Record{}
	results, _ := doc["Results"].([]any)
	for _, r := range results {
		result, ok := r.(map[string]any)
		if !ok {
			continue
		}
		target := str(result["Target"])
		vulns, ok := result["Vulnerabilities"].([]any)
		if !ok {
			continue
		}
		for _, v := range vulns {
			vuln, ok := v.(map[string]any)
			if !ok {
				continue
			}
			records = append(records, modernRecord(vuln, target))
		}
	}
	return records
}

func modernRecord(vuln map[string]any, target string) pipeline.Record {
	description := str(vuln["Description"])
	if description == "" {
		description = str(vuln["Title"])
	}
	remediation := "No fix available"
	if fixed := str(vuln["FixedVersion"]); fixed != "" {
		remediation = fmt.Sprintf("Upgrade to version %s", fixed)
	}
	return pipeline.Record{
		"cve":         str(vuln["VulnerabilityID"]),
		"risk":        str(vuln["Severity"]),
		"host":        target,
		"port":        "0",
		"name":        str(vuln["PkgName"]),
		"description": description,
		"remediation": remediation,
		"evidence":    "",
		"vpr_score":   "",
	}
}

// extractLegacy flattens the old {"vulnerabilities":[...]} layout, where
// the image and package live under a nested location object and several
// fields have historical aliases.
func extractLegacy(doc map[string]any) []pipeline.Record {
	records := []pipeline.Record{}
	vulns, _ := doc["vulnerabilities"].([]any)
	for _, v := range vulns {
		vuln, ok := v.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, legacyRecord(vuln))
	}
	return records
}

func legacyRecord(vuln map[string]any) pipeline.Record {
	cve := coalesce(vuln, "VulnerabilityID", "id", "cve")
	location, _ := vuln["location"].(map[string]any)
	image := ""
	pkgName := ""
	if location != nil {
		image = str(location["image"])
		if dep, ok := location["dependency"].(map[string]any); ok {
			if pkg, ok := dep["package"].(map[string]any); ok {
				pkgName = str(pkg["name"])
			}
		}
	}
	name := pkgName
	if name == "" {
		name = coalesce(vuln, "PkgName", "name", "message")
	}
	if name == "" {
		name = cve
	}
	remediation := coalesce(vuln, "FixedVersion", "solution")
	if remediation == "" || remediation == "No solution provided" {
		remediation = "No fix available"
	}
	return pipeline.Record{
		"cve":         cve,
		"risk":        coalesce(vuln, "Severity", "severity"),
		"host":        image,
		"port":        "0",
		"name":        name,
		"description": coalesce(vuln, "Description", "description"),
		"remediation": remediation,
		"evidence":    "",
		"vpr_score":   "",
	}
}

func coalesce(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if v := str(m[k]); v != "" {
			return v
		}
	}
	return ""
}

func str(v any) string {
	return pipeline.Stringify(v)
}
