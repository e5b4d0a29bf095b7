package geometry

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// graphDoc is the JSON wire shape produced by the ingestion layer
// (CAD/BIM parsers, manual entry APIs).
type graphDoc struct {
	Levels        []Level        `json:"levels"`
	Spaces        []Space        `json:"spaces"`
	Doors         []Door         `json:"doors"`
	Relationships []Relationship `json:"relationships"`
}

// ParseGraph decodes a graph from its JSON document form:
//
//	{
//	  "levels":        [{"id": ..., "name": ..., "elevation": ...}, ...],
//	  "spaces":        [{"id": ..., "level_id": ..., "boundary": [...], "metadata": {...}}, ...],
//	  "doors":         [{"id": ..., "width": ..., "level_id": ...}, ...],
//	  "relationships": [{"rel_type": ..., "source_id": ..., "target_id": ...}, ...]
//	}
//
// Duplicate or empty entity ids are rejected. Dangling level references
// are allowed; they only exclude the entity from level-scoped selection.
func ParseGraph(data []byte) (*Graph, error) {
	var doc graphDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing geometry graph")
	}

	g := NewGraph()
	for _, l := range doc.Levels {
		if err := g.AddLevel(l); err != nil {
			return nil, errors.Wrap(err, "parsing geometry graph")
		}
	}
	for _, s := range doc.Spaces {
		if err := g.AddSpace(s); err != nil {
			return nil, errors.Wrap(err, "parsing geometry graph")
		}
	}
	for _, d := range doc.Doors {
		if err := g.AddDoor(d); err != nil {
			return nil, errors.Wrap(err, "parsing geometry graph")
		}
	}
	for _, r := range doc.Relationships {
		g.AddRelationship(r)
	}
	return g, nil
}
