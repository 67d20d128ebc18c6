package pipeline

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Record is one decoded source row: named fields, values still in whatever
// shape the decoder produced.
type Record map[string]any

// NormalizeFieldName canonicalizes a source column name: trimmed,
// case-folded, whitespace runs collapsed to a single underscore. Any header
// variant becomes structurally predictable ("Plugin Output" -> "plugin_output").
func NormalizeFieldName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "_")
}

// DecodeCSV parses delimited text into one record per row, field names taken
// from the normalized header. A header-only or empty input yields zero
// records, not an error.
func DecodeCSV(raw []byte) ([]Record, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: csv: %v", ErrMalformedInput, err)
	}
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = NormalizeFieldName(h)
	}

	var records []Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv: %v", ErrMalformedInput, err)
		}
		rec := make(Record, len(names))
		for i, name := range names {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		records = append(records, rec)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// DecodeJSONDocument parses bytes into a top-level JSON object, for adapters
// that dispatch on top-level keys before extraction.
func DecodeJSONDocument(raw []byte) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrMalformedInput, err)
	}
	return doc, nil
}

// DecodeJSONRecords parses bytes into a flat record slice. With an empty
// path the input must be a top-level array of objects; otherwise the input
// is an object holding the array under the named key. A null or absent
// array yields zero records.
func DecodeJSONRecords(raw []byte, path string) ([]Record, error) {
	var items []any
	if path == "" {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("%w: json: %v", ErrMalformedInput, err)
		}
	} else {
		doc, err := DecodeJSONDocument(raw)
		if err != nil {
			return nil, err
		}
		items, err = arrayAt(doc, path)
		if err != nil {
			return nil, err
		}
	}
	return objectRecords(items), nil
}

func arrayAt(doc map[string]any, path string) ([]any, error) {
	v, ok := doc[path]
	if !ok || v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: json: %q is not an array", ErrMalformedInput, path)
	}
	return items, nil
}

func objectRecords(items []any) []Record {
	records := make([]Record, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, Record(obj))
	}
	return records
}

// DecodeXML extracts one record per occurrence of the named item element.
// Descendant text is flattened under dot-joined element paths and attributes
// under "path.attr"; repeated siblings keep the first value, matching the
// first-match-wins convention of the extraction rules.
func DecodeXML(raw []byte, item string) ([]Record, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	records := []Record{}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: xml: %v", ErrMalformedInput, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != item {
			continue
		}
		rec := Record{}
		if err := flattenElement(dec, start, "", rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// flattenElement consumes the element opened by start, writing descendant
// text and attributes into rec under the given key prefix.
func flattenElement(dec *xml.Decoder, start xml.StartElement, prefix string, rec Record) error {
	for _, attr := range start.Attr {
		setFirst(rec, joinKey(prefix, attr.Name.Local), attr.Value)
	}
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: xml: %v", ErrMalformedInput, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child := joinKey(prefix, t.Name.Local)
			if err := flattenElement(dec, t, child, rec); err != nil {
				return err
			}
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if prefix != "" {
				setFirst(rec, prefix, strings.TrimSpace(text.String()))
			}
			return nil
		}
	}
}

func joinKey(prefix, name string) string {
	name = NormalizeFieldName(name)
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func setFirst(rec Record, key, value string) {
	if _, ok := rec[key]; !ok {
		rec[key] = value
	}
}
