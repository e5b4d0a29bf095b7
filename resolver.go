package compliance

import (
	"strings"

	"github.com/WSG23/optimal-build-sub007/geometry"
)

// A FactResolver turns a dotted field path into a scalar value for an
// entity. ok=false means the fact is missing: the path did not resolve,
// or a computed fact could not be derived (e.g. area of a degenerate
// boundary). Missing is deliberately not a Value; comparisons against a
// missing fact evaluate false for every operator, and reports render the
// actual as "unavailable" rather than a number.
type FactResolver interface {
	Resolve(e Entity, path string) (Value, bool)
}

// ComputedFunc derives a fact not stored directly on an entity. It must
// be pure: same entity and graph, same result.
type ComputedFunc func(e Entity, g *geometry.Graph) (Value, bool)

type computedKey struct {
	kind EntityKind
	name string
}

// ComputedRegistry maps (entity kind, fact name) to the function that
// derives the fact, serving the computed.* path namespace.
type ComputedRegistry struct {
	funcs map[computedKey]ComputedFunc
}

// NewComputedRegistry returns an empty registry.
func NewComputedRegistry() *ComputedRegistry {
	return &ComputedRegistry{funcs: map[computedKey]ComputedFunc{}}
}

// Register adds or replaces the derived fact for the kind and name.
func (r *ComputedRegistry) Register(kind EntityKind, name string, fn ComputedFunc) {
	r.funcs[computedKey{kind, name}] = fn
}

func (r *ComputedRegistry) lookup(kind EntityKind, name string) (ComputedFunc, bool) {
	fn, ok := r.funcs[computedKey{kind, name}]
	return fn, ok
}

// DefaultComputed returns the built-in derived facts: computed.area and
// computed.perimeter for spaces.
func DefaultComputed() *ComputedRegistry {
	r := NewComputedRegistry()
	r.Register(KindSpace, "area", func(e Entity, _ *geometry.Graph) (Value, bool) {
		a, ok := geometry.PolygonArea(e.Space.Boundary)
		if !ok {
			return Value{}, false
		}
		return NumValue(a), true
	})
	r.Register(KindSpace, "perimeter", func(e Entity, _ *geometry.Graph) (Value, bool) {
		p, ok := geometry.PolygonPerimeter(e.Space.Boundary)
		if !ok {
			return Value{}, false
		}
		return NumValue(p), true
	})
	return r
}

// GraphResolver resolves fact paths against a single geometry graph.
// It is stateless apart from its configuration and safe for concurrent
// use as long as the graph is not mutated.
type GraphResolver struct {
	graph    *geometry.Graph
	computed *ComputedRegistry
}

// NewGraphResolver returns a resolver over the graph. With a nil
// registry only stored attributes and the relationship-count namespace
// resolve; pass DefaultComputed for the built-in derived facts.
func NewGraphResolver(g *geometry.Graph, reg *ComputedRegistry) *GraphResolver {
	if reg == nil {
		reg = NewComputedRegistry()
	}
	return &GraphResolver{graph: g, computed: reg}
}

// Resolve walks the dotted path. Non-computed paths try the entity's
// direct attributes first, then fall through into the metadata bag when
// the first segment is not a known attribute. Missing intermediate keys
// yield ok=false, never an error.
func (r *GraphResolver) Resolve(e Entity, path string) (Value, bool) {
	if path == "" {
		return Value{}, false
	}
	segs := strings.Split(path, ".")

	if segs[0] == "computed" {
		return r.resolveComputed(e, segs[1:])
	}

	if v, ok := e.attr(segs[0]); ok {
		return walk(v, segs[1:])
	}

	// Fall through into metadata: "category" resolves the same as
	// "metadata.category".
	if md, ok := e.attr("metadata"); ok {
		return walk(md, segs)
	}
	return Value{}, false
}

// resolveComputed dispatches computed.* paths. The reserved
// computed.related_count.<rel_type> form counts relationships of the
// type originating at the entity; every other name goes through the
// per-kind registry.
func (r *GraphResolver) resolveComputed(e Entity, segs []string) (Value, bool) {
	if len(segs) == 2 && segs[0] == "related_count" {
		return NumValue(float64(r.graph.RelatedCount(e.ID(), segs[1]))), true
	}
	if len(segs) != 1 {
		return Value{}, false
	}
	fn, ok := r.computed.lookup(e.Kind, segs[0])
	if !ok {
		return Value{}, false
	}
	return fn(e, r.graph)
}

// walk descends the remaining path segments through nested maps.
func walk(v Value, segs []string) (Value, bool) {
	for _, seg := range segs {
		next, ok := v.Field(seg)
		if !ok {
			return Value{}, false
		}
		v = next
	}
	return v, true
}
