package search

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
)

// Field weights used when scoring a site against query terms.
const (
	weightName        = 4
	weightTag         = 3
	weightFeature     = 2
	weightDomain      = 2
	weightDescription = 1
	weightContent     = 1
)

// CatalogProvider searches an in-process list of sites.
type CatalogProvider struct {
	mu    sync.RWMutex
	sites map[string]Site
}

// NewCatalogProvider creates a provider over sites.
func NewCatalogProvider(sites []Site) *CatalogProvider {
	p := &CatalogProvider{sites: make(map[string]Site, len(sites))}

	for _, site := range sites {
		p.sites[site.ID] = site
	}

	return p
}

// Index adds or replaces a site.
func (p *CatalogProvider) Index(_ context.Context, site Site) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.sites[site.ID] = site

	return nil
}

// Search returns sites matching every query term, best match first.
// Ties are broken by most recently updated.
func (p *CatalogProvider) Search(_ context.Context, query Query) (*Results, error) {
	query = query.Normalize()
	terms := query.Terms()

	type scored struct {
		site  Site
		score int
	}

	p.mu.RLock()

	matches := make([]scored, 0, len(p.sites))

	for _, site := range p.sites {
		if !query.Filters.Match(site) {
			continue
		}

		if score := Score(site, terms); score > 0 {
			matches = append(matches, scored{site: site, score: score})
		}
	}

	p.mu.RUnlock()

	slices.SortFunc(matches, func(a, b scored) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}

		if c := b.site.UpdatedAt.Compare(a.site.UpdatedAt); c != 0 {
			return c
		}

		return cmp.Compare(a.site.ID, b.site.ID)
	})

	hits := make([]Site, 0, min(len(matches), query.PerPage))
	for _, m := range matches[:min(len(matches), query.PerPage)] {
		hits = append(hits, m.site)
	}

	return &Results{Found: len(matches), Hits: hits}, nil
}

// Score rates how well site matches terms. Every term must match at least one
// field, otherwise the score is zero.
func Score(site Site, terms []string) int {
	if len(terms) == 0 {
		return 0
	}

	total := 0

	for _, term := range terms {
		s := 0

		if containsFold(site.Name, term) {
			s += weightName
		}

		if anyContainsFold(site.Tags, term) {
			s += weightTag
		}

		if anyContainsFold(site.Features, term) {
			s += weightFeature
		}

		if containsFold(site.Domain, term) {
			s += weightDomain
		}

		if containsFold(site.Description, term) {
			s += weightDescription
		}

		if containsFold(site.Content, term) {
			s += weightContent
		}

		if s == 0 {
			return 0
		}

		total += s
	}

	return total
}

func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), term)
}

func anyContainsFold(values []string, term string) bool {
	return slices.ContainsFunc(values, func(v string) bool {
		return containsFold(v, term)
	})
}

var (
	_ Provider = (*CatalogProvider)(nil)
	_ Indexer  = (*CatalogProvider)(nil)
)
