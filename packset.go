package compliance

import (
	"maps"
	"sort"
	"sync/atomic"

	"github.com/pkg/errors"
)

// PackSet provides lock-free, hot-reloadable storage of rule packs
// keyed by jurisdiction. A host serving many simultaneous evaluations
// can swap in a revised pack without pausing in-flight calls: readers
// always see a complete, validated snapshot.
type PackSet struct {
	packs atomic.Pointer[map[string]*RulePack]
}

// NewPackSet returns an empty set.
func NewPackSet() *PackSet {
	s := &PackSet{}
	empty := map[string]*RulePack{}
	s.packs.Store(&empty)
	return s
}

// Replace swaps the entire set for the given packs. Every pack is
// validated first; on any failure the current set is left untouched.
func (s *PackSet) Replace(packs ...*RulePack) error {
	next := make(map[string]*RulePack, len(packs))
	for _, p := range packs {
		if err := p.Validate(); err != nil {
			return errors.Wrapf(err, "pack %q", p.jurisdiction())
		}
		if p.Metadata.Jurisdiction == "" {
			return errors.New("pack has no jurisdiction")
		}
		next[p.Metadata.Jurisdiction] = p
	}
	s.packs.Store(&next)
	return nil
}

// Upsert validates the pack and adds or replaces it under its
// jurisdiction, leaving all other packs in place. Reads stay lock-free
// during the swap, but concurrent writers are last-writer-wins;
// serialize Upsert and Replace calls externally.
func (s *PackSet) Upsert(p *RulePack) error {
	if err := p.Validate(); err != nil {
		return errors.Wrapf(err, "pack %q", p.jurisdiction())
	}
	if p.Metadata.Jurisdiction == "" {
		return errors.New("pack has no jurisdiction")
	}
	next := maps.Clone(*s.packs.Load())
	next[p.Metadata.Jurisdiction] = p
	s.packs.Store(&next)
	return nil
}

// Get returns the pack for the jurisdiction.
func (s *PackSet) Get(jurisdiction string) (*RulePack, bool) {
	p, ok := (*s.packs.Load())[jurisdiction]
	return p, ok
}

// Jurisdictions lists the stored jurisdiction codes, sorted.
func (s *PackSet) Jurisdictions() []string {
	m := *s.packs.Load()
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (p *RulePack) jurisdiction() string {
	if p == nil {
		return ""
	}
	return p.Metadata.Jurisdiction
}
