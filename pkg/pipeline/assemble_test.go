package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/telhawk-systems/scannorm/pkg/pipeline"
	"github.com/telhawk-systems/scannorm/pkg/schema"
)

func TestSafeParsePort(t *testing.T) {
	cases := []struct {
		in   any
		want int32
	}{
		{"443", 443},
		{" 443 ", 443},
		{"", 0},
		{nil, 0},
		{"not-a-port", 0},
		{"-1", 0},
		{"70000", 0},
		{"0", 0},
		{"65535", 65535},
		{float64(8080), 8080},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, pipeline.SafeParsePort(c.in), "input %v", c.in)
	}
}

func TestAssembleProjectsInSchemaOrder(t *testing.T) {
	rec := pipeline.Record{
		"cve": "CVE-1", "risk": "HIGH", "host": "h", "port": "443",
		"name": "n", "description": "d", "remediation": "r",
		"evidence": "e", "vpr_score": "7.5",
		"stray": "must not appear",
	}
	row := pipeline.Assemble(rec, schema.VAPTFinding)
	assert.Equal(t, schema.Row{"CVE-1", "HIGH", "h", int32(443), "n", "d", "r", "e", "7.5"}, row)
}

func TestAssemblePortIsGenuinelyNumeric(t *testing.T) {
	row := pipeline.Assemble(pipeline.Record{"port": "8080"}, schema.VAPTFinding)
	_, ok := row[3].(int32)
	assert.True(t, ok, "port column must be int32, not a numeric-looking string")
}
