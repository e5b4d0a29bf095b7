package compliance

import (
	"sync"
	"testing"

	"github.com/matryer/is"
)

func packFor(jurisdiction, version string) *RulePack {
	return &RulePack{
		Metadata: PackMetadata{Jurisdiction: jurisdiction, Version: version},
		Rules: []*Rule{
			{
				ID:        "min_door_width",
				Target:    "doors",
				Predicate: &Predicate{Field: "width", Operator: ">=", Value: 1},
			},
		},
	}
}

func TestPackSetReplaceAndGet(t *testing.T) {
	is := is.New(t)
	s := NewPackSet()

	is.NoErr(s.Replace(packFor("SG", "2024.1"), packFor("NYC", "2023.2")))
	is.Equal(s.Jurisdictions(), []string{"NYC", "SG"})

	p, ok := s.Get("SG")
	is.True(ok)
	is.Equal(p.Metadata.Version, "2024.1")

	_, ok = s.Get("LDN")
	is.True(!ok)
}

func TestPackSetUpsert(t *testing.T) {
	is := is.New(t)
	s := NewPackSet()
	is.NoErr(s.Replace(packFor("SG", "2024.1")))

	// Revision swap.
	is.NoErr(s.Upsert(packFor("SG", "2024.2")))
	p, ok := s.Get("SG")
	is.True(ok)
	is.Equal(p.Metadata.Version, "2024.2")

	// New jurisdiction alongside.
	is.NoErr(s.Upsert(packFor("NYC", "2023.2")))
	is.Equal(len(s.Jurisdictions()), 2)
}

func TestPackSetRejectsInvalid(t *testing.T) {
	is := is.New(t)
	s := NewPackSet()
	is.NoErr(s.Replace(packFor("SG", "2024.1")))

	// An invalid pack must not disturb the stored set.
	err := s.Replace(&RulePack{Metadata: PackMetadata{Jurisdiction: "NYC"}})
	is.True(err != nil)
	_, ok := s.Get("SG")
	is.True(ok)

	// A valid pack without a jurisdiction has no key to live under.
	err = s.Upsert(packFor("", "1"))
	is.True(err != nil)
}

func TestPackSetConcurrentReads(t *testing.T) {
	s := NewPackSet()
	if err := s.Replace(packFor("SG", "2024.1")); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, ok := s.Get("SG"); !ok {
					t.Error("pack disappeared during swap")
					return
				}
				_ = s.Upsert(packFor("SG", "2024.2"))
			}
		}()
	}
	wg.Wait()

	// Racing writers are last-writer-wins; whichever won, the stored
	// pack is a complete validated snapshot.
	p, ok := s.Get("SG")
	if !ok {
		t.Fatal("pack missing after concurrent upserts")
	}
	if v := p.Metadata.Version; v != "2024.1" && v != "2024.2" {
		t.Errorf("unexpected version %q", v)
	}
}
