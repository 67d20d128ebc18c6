package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/telhawk-systems/scannorm/pkg/pipeline"
	"github.com/telhawk-systems/scannorm/pkg/schema"
)

func TestApplyDefaultsFillsMissingFields(t *testing.T) {
	rec := pipeline.Record{"risk": "HIGH"}
	pipeline.ApplyDefaults(rec, schema.VAPTFinding)

	assert.Equal(t, "unknown", rec["host"])
	assert.Equal(t, "Unknown Issue", rec["name"])
	assert.Equal(t, "0", rec["port"])
	assert.Equal(t, "", rec["cve"])
	assert.Equal(t, "", rec["vpr_score"])
	assert.Equal(t, "", rec["evidence"])
	assert.Equal(t, "No description provided.", rec["description"])
	assert.Equal(t, "No remediation provided.", rec["remediation"])
}

func TestApplyDefaultsFillsNil(t *testing.T) {
	rec := pipeline.Record{"host": nil, "risk": "LOW"}
	pipeline.ApplyDefaults(rec, schema.VAPTFinding)
	assert.Equal(t, "unknown", rec["host"])
}

func TestApplyDefaultsKeepsPresentValues(t *testing.T) {
	rec := pipeline.Record{"host": "10.0.0.5", "risk": "LOW"}
	pipeline.ApplyDefaults(rec, schema.VAPTFinding)
	assert.Equal(t, "10.0.0.5", rec["host"])
}

func TestApplyDefaultsNeverRepairsFilteredEnums(t *testing.T) {
	rec := pipeline.Record{}
	pipeline.ApplyDefaults(rec, schema.VAPTFinding)
	_, ok := rec["risk"]
	assert.False(t, ok, "a missing risk must fall to the filter, not be defaulted")
}

func TestPassesEnums(t *testing.T) {
	for _, risk := range []string{"CRITICAL", "HIGH", "MEDIUM", "LOW"} {
		assert.True(t, pipeline.PassesEnums(pipeline.Record{"risk": risk}, schema.VAPTFinding), risk)
	}
	assert.False(t, pipeline.PassesEnums(pipeline.Record{"risk": "NONE"}, schema.VAPTFinding))
	assert.False(t, pipeline.PassesEnums(pipeline.Record{"risk": ""}, schema.VAPTFinding))
	assert.False(t, pipeline.PassesEnums(pipeline.Record{}, schema.VAPTFinding))
}

func TestPassesEnumsComplianceAbsentRisk(t *testing.T) {
	rec := pipeline.Record{"risk": "", "status": "PASSED"}
	assert.True(t, pipeline.PassesEnums(rec, schema.ComplianceCheck))

	rec["status"] = "NONE"
	assert.False(t, pipeline.PassesEnums(rec, schema.ComplianceCheck))
}
