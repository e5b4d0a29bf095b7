package compliance

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
)

const minimalPackJSON = `{
	"metadata": {"jurisdiction": "SG", "version": "2024.1"},
	"rules": [
		{
			"id": "min_bedroom_area",
			"title": "Minimum bedroom area",
			"target": "spaces",
			"where": {"field": "category", "operator": "==", "value": "bedroom"},
			"predicate": {"field": "computed.area", "operator": ">=", "value": 10, "message": "bedroom area below minimum"},
			"citation": "BCA 3.4.1"
		},
		{
			"id": "door_width",
			"target": "doors",
			"predicate": {"field": "width", "operator": ">=", "value": 1}
		}
	]
}`

func TestParsePack(t *testing.T) {
	p, err := ParsePack([]byte(minimalPackJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Metadata.Jurisdiction != "SG" || p.Metadata.Version != "2024.1" {
		t.Errorf("metadata = %+v", p.Metadata)
	}
	if len(p.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(p.Rules))
	}
	r := p.Rules[0]
	if r.ID != "min_bedroom_area" || r.Target != "spaces" || r.Citation != "BCA 3.4.1" {
		t.Errorf("rule 0 = %+v", r)
	}
	if r.Where == nil || r.Predicate == nil {
		t.Fatal("where and predicate must both be populated")
	}
	if r.Predicate.Message != "bedroom area below minimum" {
		t.Errorf("message = %q", r.Predicate.Message)
	}
}

func TestParsePackYAML(t *testing.T) {
	doc := `
metadata:
  jurisdiction: SG
  version: "2024.1"
rules:
  - id: bedroom_ventilation
    title: Bedroom ventilation
    target: spaces
    where:
      field: category
      operator: "=="
      value: bedroom
    predicate:
      message: bedroom lacks ventilation
      any:
        - field: window_count
          operator: ">="
          value: 1
        - field: has_mechanical_ventilation
          operator: "=="
          value: true
`
	p, err := ParsePackYAML([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := p.Rules[0]
	if len(r.Predicate.Any) != 2 {
		t.Fatalf("expected 2 any branches, got %d", len(r.Predicate.Any))
	}
	if r.Predicate.Any[1].Value != true {
		t.Errorf("boolean value not preserved: %v", r.Predicate.Any[1].Value)
	}
}

func TestParsePackFailsFast(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{"garbage", `{"rules": `, "parsing rule pack"},
		{"no rules", `{"metadata": {"jurisdiction": "SG", "version": "1"}, "rules": []}`, "no rules"},
		{
			"missing predicate",
			`{"rules": [{"id": "r1", "target": "spaces"}]}`,
			"no predicate",
		},
		{
			"missing id",
			`{"rules": [{"target": "spaces", "predicate": {"field": "a", "operator": "=="}}]}`,
			"has no id",
		},
		{
			"duplicate ids",
			`{"rules": [
				{"id": "r1", "target": "spaces", "predicate": {"field": "a", "operator": "=="}},
				{"id": "r1", "target": "doors", "predicate": {"field": "b", "operator": "=="}}
			]}`,
			"duplicate rule id",
		},
		{
			"misspelled combinator key",
			`{"rules": [{"id": "r1", "target": "spaces", "predicate": {"anyy": []}}]}`,
			"unknown field",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParsePack([]byte(c.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Errorf("error %q does not mention %q", err, c.want)
			}
		})
	}
}

func TestAuthoringErrorsAreNotLoadErrors(t *testing.T) {
	// A missing target and a malformed predicate shape are
	// rule-authoring mistakes; they load fine and degrade the affected
	// rule at evaluation time.
	doc := `{"rules": [
		{"id": "r1", "predicate": {"field": "a", "operator": "=="}},
		{"id": "r2", "target": "spaces", "predicate": {"message": "m"}}
	]}`
	if _, err := ParsePack([]byte(doc)); err != nil {
		t.Errorf("authoring errors must not reject the pack: %v", err)
	}
}

func TestMissingPredicateSentinel(t *testing.T) {
	_, err := ParsePack([]byte(`{"rules": [{"id": "r1", "target": "spaces"}]}`))
	if !errors.Is(err, ErrMissingPredicate) {
		t.Errorf("expected ErrMissingPredicate, got %v", err)
	}

	_, err = ParsePack([]byte(`{"rules": []}`))
	if !errors.Is(err, ErrEmptyPack) {
		t.Errorf("expected ErrEmptyPack, got %v", err)
	}
}

func TestPackString(t *testing.T) {
	p, err := ParsePack([]byte(minimalPackJSON))
	if err != nil {
		t.Fatal(err)
	}
	s := p.String()
	for _, want := range []string{"min_bedroom_area", "door_width", "spaces", "doors", "BCA 3.4.1"} {
		if !strings.Contains(s, want) {
			t.Errorf("pack table missing %q:\n%s", want, s)
		}
	}
}
