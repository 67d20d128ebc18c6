package adapter

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/telhawk-systems/scannorm/pkg/pipeline"
	"github.com/telhawk-systems/scannorm/pkg/schema"
)

// Definition is the YAML shape of an adapter whose behavior is pure data.
// Variant dispatch and derive hooks need code and are only available to
// adapters defined in Go.
type Definition struct {
	Name      string           `yaml:"name"`
	Format    string           `yaml:"format"`
	MIMETypes []string         `yaml:"mime_types"`
	Schema    string           `yaml:"schema"`
	JSONPath  string           `yaml:"json_path"`
	XMLItem   string           `yaml:"xml_item"`
	Rules     []RuleDefinition `yaml:"rules"`
}

// RuleDefinition is one mapping rule in a YAML definition. Exactly one of
// from/const applies; pattern turns a from rule into a regex extraction.
type RuleDefinition struct {
	To        string  `yaml:"to"`
	From      string  `yaml:"from"`
	Const     *string `yaml:"const"`
	Pattern   string  `yaml:"pattern"`
	Mandatory bool    `yaml:"mandatory"`
}

// ParseDefinition decodes and compiles a YAML adapter definition.
func ParseDefinition(raw []byte) (*Adapter, error) {
	var def Definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parse adapter definition: %w", err)
	}
	return def.Build()
}

// Build compiles the definition into a usable adapter.
func (d *Definition) Build() (*Adapter, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("adapter definition: missing name")
	}
	target, err := schemaByName(d.Schema)
	if err != nil {
		return nil, err
	}
	format := Format(d.Format)
	switch format {
	case FormatCSV, FormatJSON, FormatXML:
	default:
		return nil, fmt.Errorf("adapter definition %q: unknown format %q", d.Name, d.Format)
	}
	if len(d.MIMETypes) == 0 {
		return nil, fmt.Errorf("adapter definition %q: empty mime allow-list", d.Name)
	}

	rules := make([]pipeline.Rule, 0, len(d.Rules))
	for _, rd := range d.Rules {
		rule, err := rd.build(d.Name)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return &Adapter{
		Name:      d.Name,
		Format:    format,
		MIMETypes: d.MIMETypes,
		JSONPath:  d.JSONPath,
		XMLItem:   d.XMLItem,
		Rules:     rules,
		Schema:    target,
	}, nil
}

func (rd *RuleDefinition) build(adapterName string) (pipeline.Rule, error) {
	if rd.To == "" {
		return pipeline.Rule{}, fmt.Errorf("adapter definition %q: rule missing target field", adapterName)
	}
	if rd.Const != nil {
		return pipeline.Const(rd.To, *rd.Const), nil
	}
	if rd.From == "" {
		return pipeline.Rule{}, fmt.Errorf("adapter definition %q: rule for %q has neither from nor const", adapterName, rd.To)
	}
	if rd.Pattern == "" {
		return pipeline.Rename(rd.From, rd.To), nil
	}
	re, err := regexp.Compile(rd.Pattern)
	if err != nil {
		return pipeline.Rule{}, fmt.Errorf("adapter definition %q: rule for %q: %w", adapterName, rd.To, err)
	}
	if rd.Mandatory {
		return pipeline.MandatoryExtract(rd.From, rd.To, re), nil
	}
	return pipeline.Extract(rd.From, rd.To, re), nil
}

func schemaByName(name string) (*schema.Schema, error) {
	switch name {
	case schema.VAPTFinding.Name:
		return schema.VAPTFinding, nil
	case schema.ComplianceCheck.Name:
		return schema.ComplianceCheck, nil
	default:
		return nil, fmt.Errorf("adapter definition: unknown schema %q", name)
	}
}
