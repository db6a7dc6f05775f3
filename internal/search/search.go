package search

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"
)

// DefaultPerPage is the page size used when a query does not set one.
const DefaultPerPage = 20

// ErrUnavailable is returned when the search backend cannot serve queries.
var ErrUnavailable = errors.New("search service unavailable")

// Site is a searchable portal entry.
type Site struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Domain      string    `json:"domain"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Content     string    `json:"content,omitempty"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	Features    []string  `json:"features"`
	Tags        []string  `json:"tags"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Filters narrows a query. Values within a field are alternatives; fields are
// combined with AND. Empty fields do not filter.
type Filters struct {
	Category []string `json:"category,omitempty"`
	Status   []string `json:"status,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Empty reports whether no filter is set.
func (f Filters) Empty() bool {
	return len(f.Category) == 0 && len(f.Status) == 0 && len(f.Tags) == 0
}

// Match reports whether site passes every set filter.
func (f Filters) Match(site Site) bool {
	if len(f.Category) > 0 && !slices.Contains(f.Category, site.Category) {
		return false
	}

	if len(f.Status) > 0 && !slices.Contains(f.Status, site.Status) {
		return false
	}

	if len(f.Tags) > 0 && !slices.ContainsFunc(site.Tags, func(tag string) bool {
		return slices.Contains(f.Tags, tag)
	}) {
		return false
	}

	return true
}

// Query is a full-text search request.
type Query struct {
	Text    string  `json:"q"`
	Filters Filters `json:"filters"`
	PerPage int     `json:"perPage"`
}

// Normalize trims the text, sorts filter values and applies the default page
// size. Equal queries normalize to equal values.
func (q Query) Normalize() Query {
	out := Query{
		Text:    strings.ToLower(strings.TrimSpace(q.Text)),
		PerPage: q.PerPage,
		Filters: Filters{
			Category: sortedCopy(q.Filters.Category),
			Status:   sortedCopy(q.Filters.Status),
			Tags:     sortedCopy(q.Filters.Tags),
		},
	}

	if out.PerPage <= 0 {
		out.PerPage = DefaultPerPage
	}

	return out
}

// Terms splits the query text into lowercase search terms.
func (q Query) Terms() []string {
	return strings.Fields(strings.ToLower(q.Text))
}

// Results is a page of matching sites.
type Results struct {
	Found    int    `json:"found"`
	Hits     []Site `json:"hits"`
	CacheHit bool   `json:"cacheHit"`
}

// Provider executes search queries.
type Provider interface {
	Search(ctx context.Context, query Query) (*Results, error)
}

// Indexer accepts sites into a search index.
type Indexer interface {
	Index(ctx context.Context, site Site) error
}

func sortedCopy(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	out := slices.Clone(values)
	slices.Sort(out)

	return out
}
