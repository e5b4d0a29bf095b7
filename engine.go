package compliance

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/WSG23/optimal-build-sub007/geometry"
)

// Engine evaluates rule packs against geometry graphs. It holds no
// evaluation state between calls, so one engine can be shared by any
// number of goroutines as long as callers do not mutate a graph while
// an evaluation over it is in flight.
type Engine struct {
	computed *ComputedRegistry
	log      *zap.Logger
}

// NewEngine returns an engine with the built-in computed facts and a
// no-op logger.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		computed: DefaultComputed(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EngineOption configures an engine at construction.
type EngineOption func(*Engine)

// WithLogger sets the logger used for rule-degradation warnings.
// A nil logger is ignored.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithComputed replaces the computed-fact registry.
func WithComputed(reg *ComputedRegistry) EngineOption {
	return func(e *Engine) {
		if reg != nil {
			e.computed = reg
		}
	}
}

// WithComputedFact registers one additional derived fact on top of the
// engine's registry.
func WithComputedFact(kind EntityKind, name string, fn ComputedFunc) EngineOption {
	return func(e *Engine) {
		e.computed.Register(kind, name, fn)
	}
}

// Evaluate checks every rule in the pack against the graph and returns
// the report. The pack is validated first; a structurally invalid pack
// is rejected before any rule runs. After that point evaluation is
// fail-soft: a rule with an unknown target, an unknown operator or a
// malformed predicate shape is degraded to
// zero checked and zero violations, noted in the report warnings and
// logged, and never aborts the remaining rules.
//
// Given unchanged inputs the report is byte-identical across runs:
// rules evaluate in pack order, candidates in graph insertion order,
// and nothing time-based or random is involved.
func (e *Engine) Evaluate(pack *RulePack, g *geometry.Graph) (*Report, error) {
	if g == nil {
		return nil, errors.New("nil geometry graph")
	}
	if err := pack.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid rule pack")
	}

	resolver := NewGraphResolver(g, e.computed)
	report := &Report{Results: make([]RuleResult, 0, len(pack.Rules))}

	for _, rule := range pack.Rules {
		report.Results = append(report.Results, e.evalRule(rule, g, resolver, report))
	}

	report.Summary.TotalRules = len(pack.Rules)
	for _, rr := range report.Results {
		report.Summary.CheckedEntities += rr.Checked
		report.Summary.Violations += len(rr.Violations)
	}
	return report, nil
}

func (e *Engine) evalRule(rule *Rule, g *geometry.Graph, resolver FactResolver, report *Report) RuleResult {
	res := RuleResult{RuleID: rule.ID, Violations: []Violation{}}

	kind := ParseEntityKind(rule.Target)
	if kind == KindInvalid {
		e.degrade(report, rule, fmt.Sprintf("unknown target kind %q", rule.Target))
		return res
	}
	if err := checkRule(rule); err != nil {
		e.degrade(report, rule, err.Error())
		return res
	}

	for _, ent := range entitiesFor(g, kind) {
		if rule.Where != nil {
			match, _, _ := rule.Where.Evaluate(ent, resolver)
			if !match {
				continue
			}
		}
		res.Checked++

		pass, facts, msgs := rule.Predicate.Evaluate(ent, resolver)
		if !pass {
			res.Violations = append(res.Violations, Violation{
				EntityID: ent.ID(),
				Messages: msgs,
				Facts:    facts,
			})
		}
	}
	return res
}

// checkRule pre-screens a rule's predicates for authoring mistakes --
// malformed shapes and unknown operators -- so the rule degrades up
// front instead of surfacing an error per candidate.
func checkRule(rule *Rule) error {
	if err := rule.Predicate.validate(); err != nil {
		return err
	}
	if err := rule.Predicate.checkOperators(); err != nil {
		return err
	}
	if rule.Where != nil {
		if err := rule.Where.validate(); err != nil {
			return errors.Wrap(err, "where clause")
		}
		if err := rule.Where.checkOperators(); err != nil {
			return errors.Wrap(err, "where clause")
		}
	}
	return nil
}

func (e *Engine) degrade(report *Report, rule *Rule, reason string) {
	report.Warnings = append(report.Warnings, fmt.Sprintf("rule %q skipped: %s", rule.ID, reason))
	e.log.Warn("rule degraded",
		zap.String("rule_id", rule.ID),
		zap.String("reason", reason),
	)
}
