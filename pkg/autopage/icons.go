package autopage

import (
	"regexp"
	"sort"
	"strings"
)

// Resolver maps icon requests from recipes to installed icon assets.
// The catalog and pack priority are fixed at construction; a reload builds
// a new Resolver.
type Resolver struct {
	packs  []string
	byPack map[string][]IconCatalogEntry
}

// NewResolver indexes the catalog. Packs listed in priority are searched
// first, in order; installed packs missing from the priority list follow in
// name order. Entries within a pack are kept name-sorted so resolution is
// deterministic regardless of catalog input order.
func NewResolver(catalog []IconCatalogEntry, priority []string) *Resolver {
	byPack := make(map[string][]IconCatalogEntry)
	for _, e := range catalog {
		byPack[e.Pack] = append(byPack[e.Pack], e)
	}
	for pack := range byPack {
		entries := byPack[pack]
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	}

	seen := make(map[string]bool, len(priority))
	packs := make([]string, 0, len(byPack))
	for _, pack := range priority {
		if _, installed := byPack[pack]; installed && !seen[pack] {
			packs = append(packs, pack)
			seen[pack] = true
		}
	}

	rest := make([]string, 0, len(byPack))
	for pack := range byPack {
		if !seen[pack] {
			rest = append(rest, pack)
		}
	}
	sort.Strings(rest)
	packs = append(packs, rest...)

	return &Resolver{packs: packs, byPack: byPack}
}

// Resolve finds the asset for an icon request. The request is tried as an
// exact name in every pack first; failing that, as a case-insensitive
// regex (or plain substring if it doesn't compile as one). A miss returns
// nil: a missing icon never blocks page generation.
func (r *Resolver) Resolve(request string) *IconCatalogEntry {
	if request == "" {
		return nil
	}

	for _, pack := range r.packs {
		for i := range r.byPack[pack] {
			if r.byPack[pack][i].Name == request {
				return &r.byPack[pack][i]
			}
		}
	}

	match := looseMatcher(request)
	for _, pack := range r.packs {
		for i := range r.byPack[pack] {
			if match(r.byPack[pack][i].Name) {
				return &r.byPack[pack][i]
			}
		}
	}

	return nil
}

func looseMatcher(request string) func(string) bool {
	re, err := regexp.Compile("(?i)" + request)
	if err != nil {
		lower := strings.ToLower(request)
		return func(name string) bool {
			return strings.Contains(strings.ToLower(name), lower)
		}
	}
	return re.MatchString
}
