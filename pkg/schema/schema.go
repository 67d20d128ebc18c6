// Package schema defines the two canonical record schemas every adapter
// normalizes into, and the ordered record sets handed to downstream consumers.
package schema

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Kind is the wire type of a schema column.
type Kind int

const (
	// KindString columns carry text; empty string is the absent value.
	KindString Kind = iota
	// KindInt columns carry an int32; absent or unparsable values become 0.
	KindInt
)

// Column describes one position of a canonical schema.
type Column struct {
	// Name is the canonical field name, fixed per contract.
	Name string
	// Kind selects the final coercion applied by the assembler.
	Kind Kind
	// DisplayText marks free-text fields whose line feeds are rewritten
	// to the HTML line-break marker.
	DisplayText bool
	// CaseFold marks enumerated fields that are upper-cased before
	// membership filtering.
	CaseFold bool
	// Enum, when non-nil, is the closed value set for this column. Rows
	// whose value is not a member are dropped. An empty-string member
	// means the explicit absence value is allowed.
	Enum []string
	// Default repairs a missing value before filtering.
	Default string
}

// Schema is a fixed ordered column list. Column order is a hard contract
// with downstream consumers.
type Schema struct {
	Name    string
	Columns []Column
}

// VAPTFinding is the vulnerability schema: 9 columns, port is the only
// integer column.
var VAPTFinding = &Schema{
	Name: "vapt_finding",
	Columns: []Column{
		{Name: "cve", Kind: KindString, Default: ""},
		{Name: "risk", Kind: KindString, CaseFold: true, Enum: []string{"CRITICAL", "HIGH", "MEDIUM", "LOW"}},
		{Name: "host", Kind: KindString, Default: "unknown"},
		{Name: "port", Kind: KindInt, Default: "0"},
		{Name: "name", Kind: KindString, Default: "Unknown Issue"},
		{Name: "description", Kind: KindString, DisplayText: true, Default: "No description provided."},
		{Name: "remediation", Kind: KindString, DisplayText: true, Default: "No remediation provided."},
		{Name: "evidence", Kind: KindString, DisplayText: true, Default: ""},
		{Name: "vpr_score", Kind: KindString, Default: ""},
	},
}

// ComplianceCheck is the compliance schema: 8 columns, no cve or vpr_score.
// risk may be the explicit absence value; status is the filtered enum.
var ComplianceCheck = &Schema{
	Name: "compliance_check",
	Columns: []Column{
		{Name: "risk", Kind: KindString, CaseFold: true, Enum: []string{"HIGH", "MEDIUM", "LOW", ""}},
		{Name: "host", Kind: KindString, Default: "unknown"},
		{Name: "port", Kind: KindInt, Default: "0"},
		{Name: "name", Kind: KindString, Default: "Unknown Issue"},
		{Name: "description", Kind: KindString, DisplayText: true, Default: "No description provided."},
		{Name: "remediation", Kind: KindString, DisplayText: true, Default: "No remediation provided."},
		{Name: "evidence", Kind: KindString, DisplayText: true, Default: ""},
		{Name: "status", Kind: KindString, CaseFold: true, Enum: []string{"PASSED", "FAILED", "WARNING"}},
	},
}

// ColumnNames returns the ordered column names.
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the column with the given name, or nil.
func (s *Schema) Column(name string) *Column {
	for i := range s.Columns {
		if s.Columns[i].Name == name {
			return &s.Columns[i]
		}
	}
	return nil
}

// Row is one record, values positionally aligned with the schema columns.
// KindInt positions hold int32, all others hold string.
type Row []any

// RecordSet is the ordered output of one pipeline invocation.
type RecordSet struct {
	Schema *Schema
	Rows   []Row
}

// NewRecordSet returns an empty record set for the schema. An empty set is
// a valid, schema-conformant result.
func NewRecordSet(s *Schema) *RecordSet {
	return &RecordSet{Schema: s, Rows: []Row{}}
}

// Len returns the number of rows.
func (rs *RecordSet) Len() int {
	return len(rs.Rows)
}

// MarshalJSON encodes rows as an array of objects with fields emitted in
// schema column order. encoding/json of a map would not preserve order,
// so rows are written field by field.
func (rs *RecordSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range rs.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, col := range rs.Schema.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(col.Name)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			val, err := json.Marshal(row[j])
			if err != nil {
				return nil, fmt.Errorf("marshal %s: %w", col.Name, err)
			}
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// WriteCSV writes the record set as CSV with a header row in schema column
// order.
func (rs *RecordSet) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rs.Schema.ColumnNames()); err != nil {
		return err
	}
	for _, row := range rs.Rows {
		fields := make([]string, len(row))
		for i, v := range row {
			switch t := v.(type) {
			case string:
				fields[i] = t
			case int32:
				fields[i] = strconv.FormatInt(int64(t), 10)
			default:
				fields[i] = fmt.Sprint(v)
			}
		}
		if err := cw.Write(fields); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
