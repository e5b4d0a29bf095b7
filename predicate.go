package compliance

import "fmt"

// Comparison operators supported in leaf predicates. Ordering operators
// require both sides to resolve as numbers; "in" requires a list on the
// rule side; "contains" requires a list or string fact.
const (
	OpEq       = "=="
	OpNe       = "!="
	OpGe       = ">="
	OpLe       = "<="
	OpGt       = ">"
	OpLt       = "<"
	OpIn       = "in"
	OpContains = "contains"
)

// Predicate is one node of a rule's boolean expression tree. A node is
// either a leaf comparison (Field, Operator, Value) or exactly one of
// the combinator forms:
//
//	all:  logical AND over the children, vacuously true when empty
//	any:  logical OR over the children, vacuously false when empty
//	none: true only if no child is true, vacuously true when empty
//	not:  negation of a single child
//
// Message is the rule-authored failure text. On a failing leaf it
// replaces the generated message; on a failing combinator it is
// prepended to the failing children's messages.
type Predicate struct {
	Field    string `json:"field,omitempty" yaml:"field,omitempty"`
	Operator string `json:"operator,omitempty" yaml:"operator,omitempty"`
	Value    any    `json:"value,omitempty" yaml:"value,omitempty"`

	All  []*Predicate `json:"all,omitempty" yaml:"all,omitempty"`
	Any  []*Predicate `json:"any,omitempty" yaml:"any,omitempty"`
	None []*Predicate `json:"none,omitempty" yaml:"none,omitempty"`
	Not  *Predicate   `json:"not,omitempty" yaml:"not,omitempty"`

	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// outcome carries a subtree's verdict plus the diagnostic trail: one
// Fact per leaf checked (pass or fail), and the failure messages.
type outcome struct {
	pass     bool
	facts    []Fact
	messages []string
}

// Evaluate checks the predicate against the entity. It returns the
// verdict, every leaf fact that was checked (not just failing ones, so
// authors can see why a combinator failed on all of its branches), and
// the failure messages. All children of a combinator are evaluated;
// there is no short-circuiting, because the full fact trail is part of
// the report contract.
func (p *Predicate) Evaluate(e Entity, r FactResolver) (bool, []Fact, []string) {
	o := p.eval(e, r)
	if o.facts == nil {
		o.facts = []Fact{}
	}
	if o.messages == nil {
		o.messages = []string{}
	}
	return o.pass, o.facts, o.messages
}

func (p *Predicate) eval(e Entity, r FactResolver) outcome {
	switch {
	case p.All != nil:
		return p.evalAll(e, r)
	case p.Any != nil:
		return p.evalAny(e, r)
	case p.None != nil:
		return p.evalNone(e, r)
	case p.Not != nil:
		return p.evalNot(e, r)
	default:
		return p.evalLeaf(e, r)
	}
}

func (p *Predicate) evalLeaf(e Entity, r FactResolver) outcome {
	actual, ok := r.Resolve(e, p.Field)
	expected := From(p.Value)

	pass, diag := compare(p.Operator, actual, ok, expected)

	shown := any(Unavailable)
	if ok {
		shown = actual.Interface()
	}
	o := outcome{
		pass:  pass,
		facts: []Fact{{Field: p.Field, Actual: shown, Expected: expected.Interface(), Operator: p.Operator}},
	}
	if pass {
		return o
	}

	msg := p.Message
	if msg == "" {
		msg = fmt.Sprintf("%s %s %v failed (actual: %v)", p.Field, p.Operator, expected, shown)
	}
	o.messages = append(o.messages, msg)
	if diag != "" {
		o.messages = append(o.messages, diag)
	}
	return o
}

func (p *Predicate) evalAll(e Entity, r FactResolver) outcome {
	o := outcome{pass: true}
	var failed []string
	for _, c := range p.All {
		co := c.eval(e, r)
		o.facts = append(o.facts, co.facts...)
		if !co.pass {
			o.pass = false
			failed = append(failed, co.messages...)
		}
	}
	if !o.pass {
		o.messages = p.failureMessages(failed, "not all conditions were met")
	}
	return o
}

func (p *Predicate) evalAny(e Entity, r FactResolver) outcome {
	o := outcome{}
	var failed []string
	for _, c := range p.Any {
		co := c.eval(e, r)
		o.facts = append(o.facts, co.facts...)
		if co.pass {
			o.pass = true
		} else {
			failed = append(failed, co.messages...)
		}
	}
	if !o.pass {
		o.messages = p.failureMessages(failed, "no condition was met")
	}
	return o
}

func (p *Predicate) evalNone(e Entity, r FactResolver) outcome {
	o := outcome{pass: true}
	for _, c := range p.None {
		co := c.eval(e, r)
		o.facts = append(o.facts, co.facts...)
		if co.pass {
			o.pass = false
		}
	}
	if !o.pass {
		o.messages = p.failureMessages(nil, "a condition was met when none should be")
	}
	return o
}

func (p *Predicate) evalNot(e Entity, r FactResolver) outcome {
	co := p.Not.eval(e, r)
	o := outcome{pass: !co.pass, facts: co.facts}
	if !o.pass {
		o.messages = p.failureMessages(nil, "negated condition was met")
	}
	return o
}

// failureMessages assembles a failing combinator's message list: the
// authored message first, then the failing children's messages. Both
// may surface together so that an authored summary never shadows the
// per-branch detail.
func (p *Predicate) failureMessages(children []string, fallback string) []string {
	msgs := make([]string, 0, len(children)+1)
	if p.Message != "" {
		msgs = append(msgs, p.Message)
	}
	msgs = append(msgs, children...)
	if len(msgs) == 0 {
		msgs = append(msgs, fallback)
	}
	return msgs
}

// compare applies the operator. A missing actual (ok=false) is false
// for every operator with no diagnostic; a type mismatch is false with
// a diagnostic, since that is a rule-authoring mistake worth surfacing.
func compare(op string, actual Value, ok bool, expected Value) (bool, string) {
	if !ok {
		return false, ""
	}
	switch op {
	case OpEq:
		return actual.Equal(expected), ""
	case OpNe:
		return !actual.Equal(expected), ""
	case OpGe, OpGt, OpLe, OpLt:
		an, aok := actual.AsNum()
		en, eok := expected.AsNum()
		if !aok || !eok {
			return false, fmt.Sprintf("ordering operator %q applied to non-numeric value", op)
		}
		switch op {
		case OpGe:
			return an >= en, ""
		case OpGt:
			return an > en, ""
		case OpLe:
			return an <= en, ""
		default:
			return an < en, ""
		}
	case OpIn:
		if expected.Kind() != ListKind {
			return false, fmt.Sprintf("operator %q requires a list value", op)
		}
		found, _ := expected.Contains(actual)
		return found, ""
	case OpContains:
		found, applicable := actual.Contains(expected)
		if !applicable {
			return false, fmt.Sprintf("operator %q requires a list or string fact", op)
		}
		return found, ""
	default:
		return false, fmt.Sprintf("unknown operator %q", op)
	}
}

// validate checks the structural shape of the node: exactly one form,
// leaves with both a field and an operator. Operator names are not
// checked here; an unknown operator degrades the rule at evaluation
// time instead of failing the whole pack.
func (p *Predicate) validate() error {
	if p == nil {
		return fmt.Errorf("nil predicate")
	}
	forms := 0
	if p.Field != "" || p.Operator != "" || p.Value != nil {
		forms++
	}
	if p.All != nil {
		forms++
	}
	if p.Any != nil {
		forms++
	}
	if p.None != nil {
		forms++
	}
	if p.Not != nil {
		forms++
	}
	if forms == 0 {
		return fmt.Errorf("predicate has no comparison and no combinator")
	}
	if forms > 1 {
		return fmt.Errorf("predicate mixes leaf and combinator forms")
	}

	if p.isLeaf() {
		if p.Field == "" {
			return fmt.Errorf("leaf predicate missing field")
		}
		if p.Operator == "" {
			return fmt.Errorf("leaf predicate missing operator")
		}
		return nil
	}
	for _, c := range p.children() {
		if err := c.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Predicate) isLeaf() bool {
	return p.All == nil && p.Any == nil && p.None == nil && p.Not == nil
}

func (p *Predicate) children() []*Predicate {
	switch {
	case p.All != nil:
		return p.All
	case p.Any != nil:
		return p.Any
	case p.None != nil:
		return p.None
	case p.Not != nil:
		return []*Predicate{p.Not}
	default:
		return nil
	}
}

// checkOperators walks the tree and reports the first unknown leaf
// operator. The engine calls this per rule so one bad operator degrades
// only its own rule.
func (p *Predicate) checkOperators() error {
	if p.isLeaf() {
		switch p.Operator {
		case OpEq, OpNe, OpGe, OpLe, OpGt, OpLt, OpIn, OpContains:
			return nil
		default:
			return fmt.Errorf("unknown operator %q", p.Operator)
		}
	}
	for _, c := range p.children() {
		if err := c.checkOperators(); err != nil {
			return err
		}
	}
	return nil
}
