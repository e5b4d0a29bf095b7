package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphAddAndLookup(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddLevel(Level{ID: "l1", Name: "Ground", Elevation: 0}))
	require.NoError(t, g.AddSpace(Space{ID: "s1", Name: "Bedroom", LevelID: "l1"}))
	require.NoError(t, g.AddDoor(Door{ID: "d1", Width: 0.9, LevelID: "l1"}))

	l, ok := g.Level("l1")
	require.True(t, ok)
	assert.Equal(t, "Ground", l.Name)

	s, ok := g.Space("s1")
	require.True(t, ok)
	assert.Equal(t, "Bedroom", s.Name)

	d, ok := g.Door("d1")
	require.True(t, ok)
	assert.Equal(t, 0.9, d.Width)

	_, ok = g.Space("nope")
	assert.False(t, ok)
}

func TestGraphRejectsDuplicateAndEmptyIDs(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddSpace(Space{ID: "s1"}))
	assert.Error(t, g.AddSpace(Space{ID: "s1"}))
	assert.Error(t, g.AddSpace(Space{}))

	// Uniqueness is per collection, not global: a door may reuse a
	// space id.
	assert.NoError(t, g.AddDoor(Door{ID: "s1"}))
}

func TestGraphInsertionOrderPreserved(t *testing.T) {
	g := NewGraph()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, g.AddSpace(Space{ID: id}))
	}
	got := make([]string, 0, 3)
	for _, s := range g.Spaces() {
		got = append(got, s.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, got)
}

func TestLevelScopedSelectionExcludesDangling(t *testing.T) {
	g := NewGraph()
	require.NoError(t, g.AddLevel(Level{ID: "l1"}))
	require.NoError(t, g.AddSpace(Space{ID: "s1", LevelID: "l1"}))
	require.NoError(t, g.AddSpace(Space{ID: "s2", LevelID: "ghost"}))
	require.NoError(t, g.AddDoor(Door{ID: "d1", LevelID: "l1"}))
	require.NoError(t, g.AddDoor(Door{ID: "d2", LevelID: ""}))

	spaces := g.SpacesOnLevel("l1")
	require.Len(t, spaces, 1)
	assert.Equal(t, "s1", spaces[0].ID)

	doors := g.DoorsOnLevel("l1")
	require.Len(t, doors, 1)
	assert.Equal(t, "d1", doors[0].ID)

	// Unknown level yields nothing rather than an error.
	assert.Empty(t, g.SpacesOnLevel("ghost"))
}

func TestRelatedCount(t *testing.T) {
	g := NewGraph()
	g.AddRelationship(Relationship{Type: "contains", SourceID: "l1", TargetID: "s1"})
	g.AddRelationship(Relationship{Type: "contains", SourceID: "l1", TargetID: "s2"})
	g.AddRelationship(Relationship{Type: "adjacent_to", SourceID: "s1", TargetID: "s2"})

	assert.Equal(t, 2, g.RelatedCount("l1", "contains"))
	assert.Equal(t, 1, g.RelatedCount("s1", "adjacent_to"))
	assert.Equal(t, 0, g.RelatedCount("s1", "contains"))
}

func TestParseGraph(t *testing.T) {
	doc := `{
		"levels": [{"id": "l1", "name": "Ground", "elevation": 0}],
		"spaces": [
			{"id": "s1", "name": "Bedroom 1", "level_id": "l1",
			 "boundary": [{"x": 0, "y": 0}, {"x": 3, "y": 0}, {"x": 3, "y": 3}, {"x": 0, "y": 3}],
			 "metadata": {"category": "bedroom", "window_count": 2}}
		],
		"doors": [{"id": "d1", "name": "Entry", "width": 1.2, "level_id": "l1"}],
		"relationships": [{"rel_type": "contains", "source_id": "l1", "target_id": "s1"}]
	}`

	g, err := ParseGraph([]byte(doc))
	require.NoError(t, err)

	s, ok := g.Space("s1")
	require.True(t, ok)
	assert.Equal(t, "l1", s.LevelID)
	assert.Equal(t, "bedroom", s.Metadata["category"])
	require.Len(t, s.Boundary, 4)

	a, ok := PolygonArea(s.Boundary)
	require.True(t, ok)
	assert.InDelta(t, 9.0, a, 1e-9)

	assert.Equal(t, 1, g.RelatedCount("l1", "contains"))
}

func TestParseGraphRejectsDuplicates(t *testing.T) {
	doc := `{"spaces": [{"id": "s1"}, {"id": "s1"}]}`
	_, err := ParseGraph([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate space id")
}

func TestParseGraphBadJSON(t *testing.T) {
	_, err := ParseGraph([]byte(`{`))
	assert.Error(t, err)
}
