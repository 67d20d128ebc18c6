package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telhawk-systems/scannorm/pkg/pipeline"
)

func TestNormalizeFieldName(t *testing.T) {
	cases := map[string]string{
		"Plugin Output": "plugin_output",
		"VPR Score":     "vpr_score",
		"  Risk ":       "risk",
		"CVE":           "cve",
		"See   Also":    "see_also",
	}
	for in, want := range cases {
		assert.Equal(t, want, pipeline.NormalizeFieldName(in))
	}
}

func TestDecodeCSV(t *testing.T) {
	raw := []byte("CVE,Risk,Plugin Output\nCVE-1,High,out\n,Medium,\"multi\nline\"\n")
	records, err := pipeline.DecodeCSV(raw)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "CVE-1", records[0]["cve"])
	assert.Equal(t, "High", records[0]["risk"])
	assert.Equal(t, "out", records[0]["plugin_output"])
	assert.Equal(t, "", records[1]["cve"])
	assert.Equal(t, "multi\nline", records[1]["plugin_output"])
}

func TestDecodeCSVHeaderOnly(t *testing.T) {
	records, err := pipeline.DecodeCSV([]byte("CVE,Risk\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeCSVEmptyInput(t *testing.T) {
	records, err := pipeline.DecodeCSV(nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeCSVMalformed(t *testing.T) {
	_, err := pipeline.DecodeCSV([]byte("a,b\n\"unterminated\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, pipeline.ErrMalformedInput)
	assert.Contains(t, err.Error(), "csv")
}

func TestDecodeJSONRecordsTopLevelArray(t *testing.T) {
	records, err := pipeline.DecodeJSONRecords([]byte(`[{"a":1},{"a":2}]`), "")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, float64(1), records[0]["a"])
}

func TestDecodeJSONRecordsNamedPath(t *testing.T) {
	records, err := pipeline.DecodeJSONRecords([]byte(`{"results":[{"id":"x"}]}`), "results")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "x", records[0]["id"])
}

func TestDecodeJSONRecordsNullArray(t *testing.T) {
	records, err := pipeline.DecodeJSONRecords([]byte(`{"results":null}`), "results")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeJSONRecordsMalformed(t *testing.T) {
	_, err := pipeline.DecodeJSONRecords([]byte(`{not json`), "results")
	assert.ErrorIs(t, err, pipeline.ErrMalformedInput)
}

func TestDecodeJSONRecordsPathNotArray(t *testing.T) {
	_, err := pipeline.DecodeJSONRecords([]byte(`{"results":{"a":1}}`), "results")
	assert.ErrorIs(t, err, pipeline.ErrMalformedInput)
}

func TestDecodeXML(t *testing.T) {
	raw := []byte(`<issues>
  <issue>
    <severity>High</severity>
    <host ip="10.0.0.9">example.com</host>
    <requestresponse><request>GET /</request></requestresponse>
  </issue>
  <issue>
    <severity>Low</severity>
    <host ip="10.0.0.10"></host>
  </issue>
</issues>`)
	records, err := pipeline.DecodeXML(raw, "issue")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "High", records[0]["severity"])
	assert.Equal(t, "example.com", records[0]["host"])
	assert.Equal(t, "10.0.0.9", records[0]["host.ip"])
	assert.Equal(t, "GET /", records[0]["requestresponse.request"])

	assert.Equal(t, "", records[1]["host"])
	assert.Equal(t, "10.0.0.10", records[1]["host.ip"])
}

func TestDecodeXMLNoItems(t *testing.T) {
	records, err := pipeline.DecodeXML([]byte(`<issues></issues>`), "issue")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeXMLMalformed(t *testing.T) {
	_, err := pipeline.DecodeXML([]byte(`<issues><issue>`), "issue")
	assert.ErrorIs(t, err, pipeline.ErrMalformedInput)
}
