// Package pipeline implements the normalization stages every adapter runs
// identically: field mapping, text normalization, defaulting, enum
// filtering, and schema assembly. Decoding and variant detection live here
// too; adapters compose them per tool.
package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/telhawk-systems/scannorm/pkg/schema"
)

// Derive is an optional per-row hook run between extraction and mapping for
// tool-specific derivations the three mapping primitives cannot express
// (fallback chains, computed remediation text). It mutates the source
// record in place.
type Derive func(Record)

// Pipeline runs the shared stage sequence over decoded records. It owns no
// mutable state across invocations; concurrent runs need no coordination.
type Pipeline struct {
	mapper *Mapper
	schema *schema.Schema
	derive Derive
}

// New builds a pipeline for one target schema from an adapter's rule table.
func New(s *schema.Schema, rules []Rule, derive Derive) *Pipeline {
	return &Pipeline{
		mapper: NewMapper(rules),
		schema: s,
		derive: derive,
	}
}

// Result is the outcome of one pipeline invocation. The record set is the
// downstream contract; drop counts are advisory and never part of the set.
type Result struct {
	RunID             string
	Set               *schema.RecordSet
	DroppedEnum       int
	DroppedExtraction int
}

// Run maps, normalizes, defaults, filters, and assembles the decoded
// records. Row-local extraction failures drop the row; nothing here is
// fatal to the batch, and zero surviving rows is a valid result.
func (p *Pipeline) Run(ctx context.Context, records []Record) *Result {
	result := &Result{
		RunID: uuid.NewString(),
		Set:   schema.NewRecordSet(p.schema),
	}
	for _, src := range records {
		if ctx.Err() != nil {
			break
		}
		if p.derive != nil {
			p.derive(src)
		}
		rec, err := p.mapper.Apply(src)
		if err != nil {
			// Only row-local extraction failures come out of the mapper.
			result.DroppedExtraction++
			continue
		}
		NormalizeText(rec, p.schema)
		ApplyDefaults(rec, p.schema)
		if !PassesEnums(rec, p.schema) {
			result.DroppedEnum++
			continue
		}
		result.Set.Rows = append(result.Set.Rows, Assemble(rec, p.schema))
	}
	return result
}
