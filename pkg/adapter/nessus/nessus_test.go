package nessus_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telhawk-systems/scannorm/pkg/adapter/nessus"
	"github.com/telhawk-systems/scannorm/pkg/pipeline"
	"github.com/telhawk-systems/scannorm/pkg/schema"
)

const vaptHeader = "CVE,Risk,Host,Port,Name,Description,Solution,Plugin Output,VPR Score\n"

func TestVAPTDirectMapping(t *testing.T) {
	raw := []byte(vaptHeader + `,"High","10.0.0.5","443","TLS","line1` + "\n" + `line2","Fix","Out","7.5"` + "\n")

	result, err := nessus.VAPT().Transform(context.Background(), raw, "text/csv")
	require.NoError(t, err)
	require.Equal(t, 1, result.Set.Len())

	row := result.Set.Rows[0]
	assert.Equal(t, schema.Row{"", "HIGH", "10.0.0.5", int32(443), "TLS", "line1<br/>line2", "Fix", "Out", "7.5"}, row)
}

func TestVAPTDropsRiskNone(t *testing.T) {
	raw := []byte(vaptHeader +
		"CVE-1,None,10.0.0.5,80,Info finding,d,s,o,\n" +
		"CVE-2,Critical,10.0.0.5,80,Real finding,d,s,o,9.1\n")

	result, err := nessus.VAPT().Transform(context.Background(), raw, "text/csv")
	require.NoError(t, err)
	require.Equal(t, 1, result.Set.Len())
	assert.Equal(t, "CVE-2", result.Set.Rows[0][0])
	assert.Equal(t, 1, result.DroppedEnum)
}

func TestVAPTEmptyPortBecomesZero(t *testing.T) {
	raw := []byte(vaptHeader + "CVE-1,Low,10.0.0.5,,n,d,s,o,\n")

	result, err := nessus.VAPT().Transform(context.Background(), raw, "text/csv")
	require.NoError(t, err)
	require.Equal(t, 1, result.Set.Len())
	assert.Equal(t, int32(0), result.Set.Rows[0][3])
}

func TestVAPTRejectsNonCSVMIME(t *testing.T) {
	_, err := nessus.VAPT().Transform(context.Background(), []byte(vaptHeader), "application/json")
	assert.ErrorIs(t, err, pipeline.ErrUnsupportedInputType)
}

const complianceHeader = "CVE,Risk,Host,Port,Name,Description,Solution,Plugin Output,VPR Score\n"

func TestComplianceDescriptionDecomposition(t *testing.T) {
	raw := []byte(complianceHeader +
		`,FAILED,10.0.0.7,0,,"Rule X: [Ref]` + "\n" + `Body text` + "\n" + `Actual Value:` + "\n" + `found=3",Harden it,,` + "\n")

	result, err := nessus.Compliance().Transform(context.Background(), raw, "text/csv")
	require.NoError(t, err)
	require.Equal(t, 1, result.Set.Len())

	row := result.Set.Rows[0]
	require.Equal(t, schema.ComplianceCheck, result.Set.Schema)
	assert.Equal(t, "", row[0], "risk is the explicit absence value")
	assert.Equal(t, "10.0.0.7", row[1])
	assert.Equal(t, int32(0), row[2])
	assert.Equal(t, "Rule X", row[3])
	assert.Equal(t, "Body text", row[4])
	assert.Equal(t, "Harden it", row[5])
	assert.Equal(t, "found=3", row[6])
	assert.Equal(t, "FAILED", row[7])
}

func TestComplianceStatusFilter(t *testing.T) {
	raw := []byte(complianceHeader +
		",PASSED,h,0,,\"R: [a]\nbody\",s,,\n" +
		",None,h,0,,\"R: [a]\nbody\",s,,\n" +
		",WARNING,h,0,,\"R: [a]\nbody\",s,,\n")

	result, err := nessus.Compliance().Transform(context.Background(), raw, "text/csv")
	require.NoError(t, err)
	require.Equal(t, 2, result.Set.Len())
	assert.Equal(t, "PASSED", result.Set.Rows[0][7])
	assert.Equal(t, "WARNING", result.Set.Rows[1][7])
	assert.Equal(t, 1, result.DroppedEnum)
}

func TestComplianceEvidenceAbsent(t *testing.T) {
	raw := []byte(complianceHeader + ",FAILED,h,0,,\"Rule Y: [Ref]\nOnly a body here\",s,,\n")

	result, err := nessus.Compliance().Transform(context.Background(), raw, "text/csv")
	require.NoError(t, err)
	require.Equal(t, 1, result.Set.Len())

	row := result.Set.Rows[0]
	assert.Equal(t, "Rule Y", row[3])
	assert.Equal(t, "Only a body here", row[4])
	assert.Equal(t, "", row[6])
}

func TestComplianceMultiLineEvidenceNormalized(t *testing.T) {
	raw := []byte(complianceHeader + ",FAILED,h,0,,\"R: [a]\nbody\nActual Value:\nline1\nline2\",s,,\n")

	result, err := nessus.Compliance().Transform(context.Background(), raw, "text/csv")
	require.NoError(t, err)
	require.Equal(t, 1, result.Set.Len())
	assert.Equal(t, "line1<br/>line2", result.Set.Rows[0][6])
}
