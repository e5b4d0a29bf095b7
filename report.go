package compliance

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Unavailable is the sentinel rendered in a Fact's actual slot when the
// fact could not be resolved (dangling path, degenerate boundary). It
// keeps "no value" distinguishable from a true zero in reports.
const Unavailable = "unavailable"

// Fact is one leaf comparison from the diagnostic trail, reproduced
// verbatim in violation reports. Actual is the plain JSON form of the
// resolved value, or the Unavailable sentinel.
type Fact struct {
	Field    string `json:"field"`
	Actual   any    `json:"actual"`
	Expected any    `json:"expected"`
	Operator string `json:"operator"`
}

// Violation records one entity that failed a rule's predicate, with the
// failure messages and every fact that was checked.
type Violation struct {
	EntityID string   `json:"entity_id"`
	Messages []string `json:"messages"`
	Facts    []Fact   `json:"facts"`
}

// RuleResult is the outcome of one rule: how many candidates were
// checked after the where pre-filter, and which of them violated.
type RuleResult struct {
	RuleID     string      `json:"rule_id"`
	Checked    int         `json:"checked"`
	Violations []Violation `json:"violations"`
}

// Summary aggregates a report: total rules evaluated, entities checked
// across all rules, and total violations.
type Summary struct {
	TotalRules      int `json:"total_rules"`
	CheckedEntities int `json:"checked_entities"`
	Violations      int `json:"violations"`
}

// Report is the full outcome of evaluating a rule pack against a
// geometry graph. Results preserve pack rule order. Warnings carry
// engine-level notes about rules that were degraded (unknown target,
// unknown operator) rather than evaluated.
type Report struct {
	Summary  Summary      `json:"summary"`
	Results  []RuleResult `json:"results"`
	Warnings []string     `json:"warnings,omitempty"`
}

// String renders the report as a table: one row per rule, with each
// violation listed under its rule.
func (r *Report) String() string {
	tw := table.NewWriter()
	tw.SetTitle("\nCOMPLIANCE REPORT\n")
	tw.AppendHeader(table.Row{"\nRule", "Entities\nChecked", "\nViolations", "\nDetail"})

	for _, rr := range r.Results {
		tw.AppendRow(table.Row{rr.RuleID, rr.Checked, len(rr.Violations), ""})
		for _, v := range rr.Violations {
			tw.AppendRow(table.Row{"  " + v.EntityID, "", "", strings.Join(v.Messages, "; ")})
		}
	}
	tw.AppendFooter(table.Row{
		fmt.Sprintf("%d rules", r.Summary.TotalRules),
		r.Summary.CheckedEntities,
		r.Summary.Violations,
		"",
	})

	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	style.Format.Footer = text.FormatDefault
	tw.SetStyle(style)

	out := tw.Render()
	if len(r.Warnings) > 0 {
		out += "\nWarnings:\n"
		for _, w := range r.Warnings {
			out += "  - " + w + "\n"
		}
	}
	return out
}
