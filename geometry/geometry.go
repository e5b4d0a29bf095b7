// Package geometry defines the building model the compliance engine
// evaluates: levels, spaces with polygon boundaries, doors, and typed
// relationships between entities, assembled into a Graph.
//
// A Graph is built once from parsed CAD/BIM input or manual entry and
// must be treated as read-only for the duration of any evaluation over
// it. The Graph tolerates dangling level references; entities whose
// level_id does not resolve are simply excluded from level-scoped
// selection rather than causing an error.
package geometry

import "fmt"

// Point is a 2D coordinate in meters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Level is a storey of the building.
type Level struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Elevation float64 `json:"elevation"`
}

// Space is a room or zone. The boundary is a closed polygon given as an
// ordered point sequence with the first point not repeated. Metadata is
// the rule-visible attribute bag; values are plain JSON-shaped data
// (numbers, booleans, strings, nested maps and lists).
type Space struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	LevelID  string         `json:"level_id"`
	Boundary []Point        `json:"boundary"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Door is an opening between spaces. Width is in meters.
type Door struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Width   float64 `json:"width"`
	LevelID string  `json:"level_id"`
}

// Relationship is a typed edge between two entity ids, e.g.
// {"contains", "level_1", "space_a"}. Both ids are weak references;
// they are not checked against the graph's collections.
type Relationship struct {
	Type     string `json:"rel_type"`
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
}

// Graph owns the building's entity collections. Entity ids must be
// unique within their own collection (not globally). Iteration order
// over each collection is insertion order, which makes evaluation
// reports deterministic for a given graph.
type Graph struct {
	levels []Level
	spaces []Space
	doors  []Door
	rels   []Relationship

	levelIdx map[string]int
	spaceIdx map[string]int
	doorIdx  map[string]int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		levelIdx: map[string]int{},
		spaceIdx: map[string]int{},
		doorIdx:  map[string]int{},
	}
}

// AddLevel appends a level. The id must be non-empty and unique among levels.
func (g *Graph) AddLevel(l Level) error {
	if l.ID == "" {
		return fmt.Errorf("level with empty id")
	}
	if _, ok := g.levelIdx[l.ID]; ok {
		return fmt.Errorf("duplicate level id %q", l.ID)
	}
	g.levelIdx[l.ID] = len(g.levels)
	g.levels = append(g.levels, l)
	return nil
}

// AddSpace appends a space. The id must be non-empty and unique among spaces.
// The level reference is not checked; a dangling level_id excludes the space
// from level-scoped selection only.
func (g *Graph) AddSpace(s Space) error {
	if s.ID == "" {
		return fmt.Errorf("space with empty id")
	}
	if _, ok := g.spaceIdx[s.ID]; ok {
		return fmt.Errorf("duplicate space id %q", s.ID)
	}
	g.spaceIdx[s.ID] = len(g.spaces)
	g.spaces = append(g.spaces, s)
	return nil
}

// AddDoor appends a door. The id must be non-empty and unique among doors.
func (g *Graph) AddDoor(d Door) error {
	if d.ID == "" {
		return fmt.Errorf("door with empty id")
	}
	if _, ok := g.doorIdx[d.ID]; ok {
		return fmt.Errorf("duplicate door id %q", d.ID)
	}
	g.doorIdx[d.ID] = len(g.doors)
	g.doors = append(g.doors, d)
	return nil
}

// AddRelationship appends a typed edge. No referential check is made.
func (g *Graph) AddRelationship(r Relationship) {
	g.rels = append(g.rels, r)
}

// Level returns the level with the id.
func (g *Graph) Level(id string) (Level, bool) {
	i, ok := g.levelIdx[id]
	if !ok {
		return Level{}, false
	}
	return g.levels[i], true
}

// Space returns the space with the id.
func (g *Graph) Space(id string) (Space, bool) {
	i, ok := g.spaceIdx[id]
	if !ok {
		return Space{}, false
	}
	return g.spaces[i], true
}

// Door returns the door with the id.
func (g *Graph) Door(id string) (Door, bool) {
	i, ok := g.doorIdx[id]
	if !ok {
		return Door{}, false
	}
	return g.doors[i], true
}

// Levels returns the level collection in insertion order.
// The slice is shared with the graph; callers must not modify it.
func (g *Graph) Levels() []Level { return g.levels }

// Spaces returns the space collection in insertion order.
// The slice is shared with the graph; callers must not modify it.
func (g *Graph) Spaces() []Space { return g.spaces }

// Doors returns the door collection in insertion order.
// The slice is shared with the graph; callers must not modify it.
func (g *Graph) Doors() []Door { return g.doors }

// Relationships returns all typed edges in insertion order.
func (g *Graph) Relationships() []Relationship { return g.rels }

// SpacesOnLevel returns the spaces whose level_id resolves to the given
// level. If the level is unknown, or a space references a level that does
// not exist, those spaces are excluded rather than reported as an error.
func (g *Graph) SpacesOnLevel(levelID string) []Space {
	if _, ok := g.levelIdx[levelID]; !ok {
		return nil
	}
	var out []Space
	for _, s := range g.spaces {
		if s.LevelID == levelID {
			out = append(out, s)
		}
	}
	return out
}

// DoorsOnLevel returns the doors whose level_id resolves to the given level.
func (g *Graph) DoorsOnLevel(levelID string) []Door {
	if _, ok := g.levelIdx[levelID]; !ok {
		return nil
	}
	var out []Door
	for _, d := range g.doors {
		if d.LevelID == levelID {
			out = append(out, d)
		}
	}
	return out
}

// RelatedCount returns the number of relationships of the given type
// originating at the entity id.
func (g *Graph) RelatedCount(sourceID, relType string) int {
	n := 0
	for _, r := range g.rels {
		if r.SourceID == sourceID && r.Type == relType {
			n++
		}
	}
	return n
}
