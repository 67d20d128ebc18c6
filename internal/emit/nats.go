// Package emit hands normalized record sets to downstream ingestion over
// NATS. Only the CLI uses it; the pipeline itself performs no I/O.
package emit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/telhawk-systems/scannorm/pkg/pipeline"
)

// Publisher sends transform results to a NATS subject.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// envelope is the published message shape.
type envelope struct {
	RunID   string          `json:"run_id"`
	Adapter string          `json:"adapter"`
	Schema  string          `json:"schema"`
	Rows    int             `json:"rows"`
	Records json.RawMessage `json:"records"`
}

// Connect dials the NATS server.
func Connect(url, subject string) (*Publisher, error) {
	conn, err := nats.Connect(url, nats.Name("scannorm"))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &Publisher{conn: conn, subject: subject}, nil
}

// Publish sends one transform result and waits for the flush.
func (p *Publisher) Publish(ctx context.Context, adapterName string, result *pipeline.Result) error {
	records, err := result.Set.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	payload, err := json.Marshal(envelope{
		RunID:   result.RunID,
		Adapter: adapterName,
		Schema:  result.Set.Schema.Name,
		Rows:    result.Set.Len(),
		Records: records,
	})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return p.conn.FlushWithContext(ctx)
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
