package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/portal-api/internal/search"
)

const sitesSchema = `
	CREATE TABLE IF NOT EXISTS sites (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		domain      TEXT NOT NULL,
		url         TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		content     TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL,
		status      TEXT NOT NULL,
		features    TEXT[] NOT NULL DEFAULT '{}',
		tags        TEXT[] NOT NULL DEFAULT '{}',
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// Tables created before content was indexed gain the column on startup.
const sitesContentColumn = `ALTER TABLE sites ADD COLUMN IF NOT EXISTS content TEXT NOT NULL DEFAULT ''`

// likeEscaper escapes LIKE wildcards using the default backslash escape.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// PostgresSiteIndex is a PostgreSQL implementation of search.Provider.
type PostgresSiteIndex struct {
	pool *pgxpool.Pool
}

// NewPostgresSiteIndex creates a new PostgreSQL-backed site index.
func NewPostgresSiteIndex(pool *pgxpool.Pool) *PostgresSiteIndex {
	return &PostgresSiteIndex{pool: pool}
}

// EnsureSchema creates the sites table if it does not exist.
func (p *PostgresSiteIndex) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{sitesSchema, sitesContentColumn} {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}

// Index inserts the site or replaces the stored copy.
func (p *PostgresSiteIndex) Index(ctx context.Context, site search.Site) error {
	query := `
		INSERT INTO sites (id, name, domain, url, description, content, category, status, features, tags, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			domain = EXCLUDED.domain,
			url = EXCLUDED.url,
			description = EXCLUDED.description,
			content = EXCLUDED.content,
			category = EXCLUDED.category,
			status = EXCLUDED.status,
			features = EXCLUDED.features,
			tags = EXCLUDED.tags,
			updated_at = EXCLUDED.updated_at
	`

	_, err := p.pool.Exec(ctx, query,
		site.ID,
		site.Name,
		site.Domain,
		site.URL,
		site.Description,
		site.Content,
		site.Category,
		site.Status,
		nonNil(site.Features),
		nonNil(site.Tags),
		site.UpdatedAt,
	)

	return err
}

// Search matches every query term against the text columns and applies filters.
// Backend failures are reported as search.ErrUnavailable.
func (p *PostgresSiteIndex) Search(ctx context.Context, query search.Query) (*search.Results, error) {
	query = query.Normalize()
	sql, args := buildSiteQuery(query)

	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", search.ErrUnavailable, err)
	}

	sites, err := pgx.CollectRows(rows, scanSite)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", search.ErrUnavailable, err)
	}

	ranked := rankSites(sites, query.Terms())
	hits := make([]search.Site, 0, min(len(ranked), query.PerPage))
	hits = append(hits, ranked[:min(len(ranked), query.PerPage)]...)

	return &search.Results{Found: len(ranked), Hits: hits}, nil
}

// Shutdown is a no-op for PostgresSiteIndex (pool managed externally).
func (p *PostgresSiteIndex) Shutdown() error {
	return nil
}

func buildSiteQuery(query search.Query) (string, []any) {
	var (
		where []string
		args  []any
	)

	for _, term := range query.Terms() {
		args = append(args, "%"+likeEscaper.Replace(term)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(name ILIKE $%[1]d OR domain ILIKE $%[1]d OR description ILIKE $%[1]d OR content ILIKE $%[1]d"+
				" OR array_to_string(features, ' ') ILIKE $%[1]d OR array_to_string(tags, ' ') ILIKE $%[1]d)", n))
	}

	if len(query.Filters.Category) > 0 {
		args = append(args, query.Filters.Category)
		where = append(where, fmt.Sprintf("category = ANY($%d)", len(args)))
	}

	if len(query.Filters.Status) > 0 {
		args = append(args, query.Filters.Status)
		where = append(where, fmt.Sprintf("status = ANY($%d)", len(args)))
	}

	if len(query.Filters.Tags) > 0 {
		args = append(args, query.Filters.Tags)
		where = append(where, fmt.Sprintf("tags && $%d", len(args)))
	}

	sql := "SELECT id, name, domain, url, description, content, category, status, features, tags, updated_at FROM sites"
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}

	sql += " ORDER BY updated_at DESC, id"

	return sql, args
}

func scanSite(row pgx.CollectableRow) (search.Site, error) {
	var site search.Site

	err := row.Scan(
		&site.ID,
		&site.Name,
		&site.Domain,
		&site.URL,
		&site.Description,
		&site.Content,
		&site.Category,
		&site.Status,
		&site.Features,
		&site.Tags,
		&site.UpdatedAt,
	)

	return site, err
}

// rankSites drops rows that do not score against terms and orders the rest
// best first. Rows arrive ordered by updated_at, which the stable sort keeps
// as the tiebreak.
func rankSites(sites []search.Site, terms []string) []search.Site {
	scores := make(map[string]int, len(sites))
	ranked := make([]search.Site, 0, len(sites))

	for _, site := range sites {
		if score := search.Score(site, terms); score > 0 {
			scores[site.ID] = score
			ranked = append(ranked, site)
		}
	}

	slices.SortStableFunc(ranked, func(a, b search.Site) int {
		return cmp.Compare(scores[b.ID], scores[a.ID])
	})

	return ranked
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}

// Compile-time checks.
var (
	_ search.Provider = (*PostgresSiteIndex)(nil)
	_ search.Indexer  = (*PostgresSiteIndex)(nil)
)
