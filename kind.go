package compliance

import "github.com/WSG23/optimal-build-sub007/geometry"

// EntityKind is the closed set of entity-collection kinds a rule can
// target. Adding a new kind means adding a variant here plus arms in
// Entity.attr and entitiesFor; the compiler flags every switch that
// needs extending.
type EntityKind int

const (
	KindInvalid EntityKind = iota
	KindSpace
	KindDoor
	KindLevel
)

// ParseEntityKind maps a rule's target string to a kind. Unknown
// targets parse to KindInvalid, which the engine treats as a skipped
// rule rather than an error, so forward-compatible rule packs that
// reference kinds this engine version does not model degrade cleanly.
func ParseEntityKind(target string) EntityKind {
	switch target {
	case "spaces":
		return KindSpace
	case "doors":
		return KindDoor
	case "levels":
		return KindLevel
	default:
		return KindInvalid
	}
}

func (k EntityKind) String() string {
	switch k {
	case KindSpace:
		return "spaces"
	case KindDoor:
		return "doors"
	case KindLevel:
		return "levels"
	default:
		return "invalid"
	}
}

// Entity is a single evaluable member of a geometry graph, tagged with
// its kind. Exactly one of the payload fields is populated.
type Entity struct {
	Kind  EntityKind
	Space geometry.Space
	Door  geometry.Door
	Level geometry.Level
}

// SpaceEntity wraps a space for evaluation.
func SpaceEntity(s geometry.Space) Entity { return Entity{Kind: KindSpace, Space: s} }

// DoorEntity wraps a door for evaluation.
func DoorEntity(d geometry.Door) Entity { return Entity{Kind: KindDoor, Door: d} }

// LevelEntity wraps a level for evaluation.
func LevelEntity(l geometry.Level) Entity { return Entity{Kind: KindLevel, Level: l} }

// ID returns the wrapped entity's id.
func (e Entity) ID() string {
	switch e.Kind {
	case KindSpace:
		return e.Space.ID
	case KindDoor:
		return e.Door.ID
	case KindLevel:
		return e.Level.ID
	default:
		return ""
	}
}

// attr returns a directly stored attribute of the entity. The metadata
// bag itself is an attribute of spaces; fallthrough into its entries is
// the resolver's job.
func (e Entity) attr(name string) (Value, bool) {
	switch e.Kind {
	case KindSpace:
		switch name {
		case "id":
			return StrValue(e.Space.ID), true
		case "name":
			return StrValue(e.Space.Name), true
		case "level_id":
			return StrValue(e.Space.LevelID), true
		case "metadata":
			return From(anyMap(e.Space.Metadata)), true
		}
	case KindDoor:
		switch name {
		case "id":
			return StrValue(e.Door.ID), true
		case "name":
			return StrValue(e.Door.Name), true
		case "width":
			return NumValue(e.Door.Width), true
		case "level_id":
			return StrValue(e.Door.LevelID), true
		}
	case KindLevel:
		switch name {
		case "id":
			return StrValue(e.Level.ID), true
		case "name":
			return StrValue(e.Level.Name), true
		case "elevation":
			return NumValue(e.Level.Elevation), true
		}
	}
	return Value{}, false
}

func anyMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

// entitiesFor selects the graph collection for a kind, in graph
// insertion order. KindInvalid yields nil.
func entitiesFor(g *geometry.Graph, k EntityKind) []Entity {
	switch k {
	case KindSpace:
		out := make([]Entity, 0, len(g.Spaces()))
		for _, s := range g.Spaces() {
			out = append(out, SpaceEntity(s))
		}
		return out
	case KindDoor:
		out := make([]Entity, 0, len(g.Doors()))
		for _, d := range g.Doors() {
			out = append(out, DoorEntity(d))
		}
		return out
	case KindLevel:
		out := make([]Entity, 0, len(g.Levels()))
		for _, l := range g.Levels() {
			out = append(out, LevelEntity(l))
		}
		return out
	default:
		return nil
	}
}
