// Package adapter ties a per-tool definition (accepted MIME types, decode
// options, mapping rules) to the shared normalization pipeline behind the
// single Transform entry point the ingestion service calls.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/telhawk-systems/scannorm/internal/logging"
	"github.com/telhawk-systems/scannorm/internal/metrics"
	"github.com/telhawk-systems/scannorm/pkg/pipeline"
	"github.com/telhawk-systems/scannorm/pkg/schema"
)

// Format is the source encoding an adapter decodes.
type Format string

// Supported source formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// Adapter is one tool's normalization definition. The mapping table is
// declarative data; the pipeline stays a single generic interpreter.
type Adapter struct {
	// Name identifies the adapter in the registry, logs, and metrics.
	Name string
	// Format selects the decoder.
	Format Format
	// MIMETypes is the explicit allow-list of declared MIME types.
	// Anything else is rejected before any parsing attempt.
	MIMETypes []string
	// JSONPath names the array holding the records for single-shape JSON
	// input; empty means a top-level array.
	JSONPath string
	// XMLItem is the repeated element carrying one record each.
	XMLItem string
	// Variants dispatches multi-shape JSON payloads. When set it replaces
	// JSONPath extraction.
	Variants *pipeline.VariantSet
	// Rules is the field mapping table.
	Rules []pipeline.Rule
	// Derive is the optional pre-mapping hook for fallback chains the
	// rule primitives cannot express.
	Derive pipeline.Derive
	// Schema is the target contract.
	Schema *schema.Schema
}

// Transform normalizes one raw input into an ordered record set. It either
// returns a fully schema-conformant result (possibly empty) or exactly one
// fatal error describing the structural cause; per-row issues are absorbed
// into the result's drop counts.
func (a *Adapter) Transform(ctx context.Context, raw []byte, declaredMIME string) (*pipeline.Result, error) {
	start := time.Now()
	log := logging.Default().With("adapter", a.Name)

	if !a.acceptsMIME(declaredMIME) {
		metrics.TransformErrors.WithLabelValues(a.Name, errKind(pipeline.ErrUnsupportedInputType)).Inc()
		return nil, fmt.Errorf("%w: %q not in %v", pipeline.ErrUnsupportedInputType, declaredMIME, a.MIMETypes)
	}

	records, err := a.decode(raw)
	if err != nil {
		metrics.TransformErrors.WithLabelValues(a.Name, errKind(err)).Inc()
		return nil, err
	}
	metrics.RowsDecoded.WithLabelValues(a.Name).Add(float64(len(records)))

	result := pipeline.New(a.Schema, a.Rules, a.Derive).Run(ctx, records)

	metrics.RowsEmitted.WithLabelValues(a.Name).Add(float64(result.Set.Len()))
	metrics.RowsDropped.WithLabelValues(a.Name, metrics.ReasonEnum).Add(float64(result.DroppedEnum))
	metrics.RowsDropped.WithLabelValues(a.Name, metrics.ReasonExtraction).Add(float64(result.DroppedExtraction))
	metrics.TransformDuration.WithLabelValues(a.Name).Observe(time.Since(start).Seconds())

	log.DebugContext(ctx, "transform complete",
		"run_id", result.RunID,
		"decoded", len(records),
		"emitted", result.Set.Len(),
		"dropped_enum", result.DroppedEnum,
		"dropped_extraction", result.DroppedExtraction,
	)
	return result, nil
}

func (a *Adapter) acceptsMIME(declared string) bool {
	declared = strings.ToLower(strings.TrimSpace(declared))
	for _, m := range a.MIMETypes {
		if strings.ToLower(m) == declared {
			return true
		}
	}
	return false
}

func (a *Adapter) decode(raw []byte) ([]pipeline.Record, error) {
	switch a.Format {
	case FormatCSV:
		return pipeline.DecodeCSV(raw)
	case FormatJSON:
		if a.Variants != nil {
			doc, err := pipeline.DecodeJSONDocument(raw)
			if err != nil {
				return nil, err
			}
			return a.Variants.Detect(doc)
		}
		return pipeline.DecodeJSONRecords(raw, a.JSONPath)
	case FormatXML:
		return pipeline.DecodeXML(raw, a.XMLItem)
	default:
		return nil, fmt.Errorf("%w: no decoder for format %q", pipeline.ErrUnsupportedInputType, a.Format)
	}
}

func errKind(err error) string {
	switch {
	case errors.Is(err, pipeline.ErrUnsupportedInputType):
		return "unsupported_input_type"
	case errors.Is(err, pipeline.ErrMalformedInput):
		return "malformed_input"
	case errors.Is(err, pipeline.ErrUnsupportedFormatVariant):
		return "unsupported_format_variant"
	default:
		return "other"
	}
}
