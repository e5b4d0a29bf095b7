package compliance

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Rule is a single compliance check: evaluate Predicate against every
// entity of the Target collection, optionally pre-filtered by Where.
// Entities not matching Where are excluded from the rule entirely,
// counting neither as checked nor as violations.
type Rule struct {
	// Identifier, unique within the pack. (required)
	ID string `json:"id" yaml:"id"`

	// Human-readable rule title. (optional)
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Entity collection the rule applies to: "spaces", "doors", ...
	// (required). An unknown target skips the rule at evaluation time;
	// see ParseEntityKind.
	Target string `json:"target" yaml:"target"`

	// Candidate pre-filter. (optional)
	Where *Predicate `json:"where,omitempty" yaml:"where,omitempty"`

	// Pass/fail condition. (required)
	Predicate *Predicate `json:"predicate" yaml:"predicate"`

	// Building-code citation backing the rule. (optional)
	Citation string `json:"citation,omitempty" yaml:"citation,omitempty"`
}

// PackMetadata identifies the jurisdiction and revision a pack encodes.
type PackMetadata struct {
	Jurisdiction string `json:"jurisdiction" yaml:"jurisdiction"`
	Version      string `json:"version" yaml:"version"`
}

// RulePack is an ordered list of compliance rules for one jurisdiction.
// Rule order is preserved in evaluation reports; it is the ordering
// contract callers rely on for stable report diffs.
type RulePack struct {
	Metadata PackMetadata `json:"metadata" yaml:"metadata"`
	Rules    []*Rule      `json:"rules" yaml:"rules"`
}

// Structural pack errors, detected at load time. A pack that fails
// these is rejected before any rule is evaluated: a garbage pack
// silently producing zero violations would read as falsely compliant.
var (
	ErrEmptyPack        = errors.New("rule pack has no rules")
	ErrMissingPredicate = errors.New("rule has no predicate")
)

// ParsePack decodes and validates a JSON rule-pack document. Unknown
// fields are rejected so that a misspelled combinator key cannot
// silently turn a condition vacuous.
func ParsePack(data []byte) (*RulePack, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var p RulePack
	if err := dec.Decode(&p); err != nil {
		return nil, errors.Wrap(err, "parsing rule pack")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ParsePackYAML decodes and validates a YAML rule-pack document, with
// the same strictness as ParsePack.
func ParsePackYAML(data []byte) (*RulePack, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var p RulePack
	if err := dec.Decode(&p); err != nil {
		return nil, errors.Wrap(err, "parsing rule pack")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the pack's caller contract: at least one rule, unique
// non-empty rule ids, and a predicate on every rule. Anything beyond
// that -- unknown target kinds, unknown operators, a malformed predicate
// shape -- is a rule-authoring error that degrades the single affected
// rule at evaluation time instead of rejecting the whole pack.
func (p *RulePack) Validate() error {
	if p == nil {
		return errors.New("nil rule pack")
	}
	if len(p.Rules) == 0 {
		return ErrEmptyPack
	}
	seen := make(map[string]bool, len(p.Rules))
	for i, r := range p.Rules {
		if r == nil {
			return fmt.Errorf("rule %d is null", i)
		}
		if r.ID == "" {
			return fmt.Errorf("rule %d has no id", i)
		}
		if seen[r.ID] {
			return fmt.Errorf("duplicate rule id %q", r.ID)
		}
		seen[r.ID] = true
		if r.Predicate == nil {
			return errors.Wrapf(ErrMissingPredicate, "rule %q", r.ID)
		}
	}
	return nil
}

// String renders the pack as a table, one row per rule in pack order.
func (p *RulePack) String() string {
	tw := table.NewWriter()
	tw.SetTitle(fmt.Sprintf("\nRULE PACK %s %s\n", p.Metadata.Jurisdiction, p.Metadata.Version))
	tw.AppendHeader(table.Row{"\nRule", "\nTarget", "\nTitle", "Pre-\nFilter", "\nCitation"})

	for _, r := range p.Rules {
		where := ""
		if r.Where != nil {
			where = "yes"
		}
		tw.AppendRow(table.Row{r.ID, r.Target, r.Title, where, r.Citation})
	}

	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)
	return tw.Render()
}
