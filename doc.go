// Package compliance evaluates jurisdiction-specific building-code rule
// packs against a structured building-geometry model and produces a
// deterministic violation report with citations.
//
// Typical use is as follows:
//
//  1. Build or parse a geometry.Graph (levels, spaces, doors,
//     relationships) from your ingestion layer
//  2. Load a rule pack with ParsePack or ParsePackYAML; structurally
//     invalid packs are rejected at this point
//  3. Create an Engine
//  4. Call Engine.Evaluate to obtain the Report
//  5. Render the report with Report.String, or marshal it to the JSON
//     contract consumed by the export layer
//
// Rules are declarative: each names a target entity collection, an
// optional "where" pre-filter, and a predicate tree of leaf comparisons
// combined with all/any/none/not. Field paths are dotted; the
// computed.* namespace derives facts (polygon area, perimeter,
// relationship counts) that are not stored on the entity.
//
// # Failure Semantics
//
// Evaluation is fail-soft. A rule with an unknown target kind
// or operator is degraded to zero checked entities plus a warning, and
// the remaining rules still run: a compliance report with one bad rule
// is still useful. A fact that cannot be resolved (missing metadata
// key, degenerate boundary polygon) compares false under every operator
// and is reported as "unavailable" rather than zero. Only a
// structurally invalid pack -- no rules, duplicate ids, a rule without
// a predicate -- is rejected outright, before any rule is evaluated.
//
// # Concurrency
//
// The engine is stateless across calls; a single instance may be shared
// freely. Graphs and packs must be treated as read-only while an
// evaluation over them is in flight. PackSet offers a lock-free,
// hot-swappable pack registry for hosts that serve many jurisdictions.
package compliance
