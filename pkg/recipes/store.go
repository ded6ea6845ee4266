// Package recipes loads button-page recipe documents and answers identity
// lookups against them.
package recipes

import (
	"sync/atomic"

	"codeberg.org/martonv/autopage/pkg/autopage"
)

// Store holds the loaded recipes behind an immutable snapshot. Replace
// publishes a whole new snapshot, so readers in the middle of a lookup
// never see a half-updated set.
type Store struct {
	snapshot atomic.Pointer[[]*autopage.Recipe]
}

func NewStore() *Store {
	s := &Store{}
	s.Replace(nil)
	return s
}

// Replace swaps in a new recipe set. The slice is owned by the store after
// the call. Recipe order is load order and acts as the lookup tie-break.
func (s *Store) Replace(recipes []*autopage.Recipe) {
	s.snapshot.Store(&recipes)
}

// Recipes returns the current snapshot. Callers must not mutate it.
func (s *Store) Recipes() []*autopage.Recipe {
	return *s.snapshot.Load()
}

// Lookup returns the recipe for the first candidate that matches anything.
// Candidate order dominates: a storefront candidate that matches beats any
// pattern match, even one declared earlier. Within a single candidate the
// first-loaded matching recipe wins. Nil means no recipe applies.
func (s *Store) Lookup(candidates []autopage.Identity) *autopage.Recipe {
	recipes := s.Recipes()

	for _, candidate := range candidates {
		for _, recipe := range recipes {
			for _, key := range recipe.Keys {
				if matches(key, candidate) {
					return recipe
				}
			}
		}
	}

	return nil
}

// matches tests one candidate against one recipe key. Keys only ever match
// candidates of their own kind.
func matches(key autopage.RecipeKey, candidate autopage.Identity) bool {
	switch key := key.(type) {
	case autopage.KeyStorefront:
		c, ok := candidate.(autopage.StorefrontIdentity)
		return ok && c.Store == key.Store && c.AppID == key.AppID

	case autopage.KeyPackage:
		c, ok := candidate.(autopage.PackageIdentity)
		return ok && c.Namespace == key.Namespace

	case autopage.KeyPattern:
		c, ok := candidate.(autopage.PatternIdentity)
		if !ok {
			return false
		}
		// An observation with neither class nor title matches nothing;
		// otherwise empty strings would satisfy permissive patterns.
		if c.Class == "" && c.Title == "" {
			return false
		}
		if key.Class == nil && key.Name == nil {
			return false
		}
		if key.Class != nil && !key.Class.MatchString(c.Class) {
			return false
		}
		if key.Name != nil && !key.Name.MatchString(c.Title) {
			return false
		}
		return true
	}

	return false
}
