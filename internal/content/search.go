package content

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/almajalla/content-forge/pkg/cache"
	"github.com/almajalla/content-forge/pkg/strapi"
)

// SearchResults groups cross-entity search hits per entity type.
// Callers display per-category result groups, never a flat interleaved
// list; any of the four lists may be empty.
type SearchResults struct {
	Articles   []strapi.Article
	Categories []strapi.Category
	Authors    []strapi.Author
	Issues     []strapi.MagazineIssue
}

// Search fans out to four parallel sub-queries, one per searchable
// entity type, each capped at perTypeLimit. A failing sub-query fails
// the whole search: upstream failures must surface so the page can
// render an error state.
func (s *Service) Search(ctx context.Context, term string, perTypeLimit int) (*SearchResults, error) {
	if perTypeLimit <= 0 {
		perTypeLimit = 5
	}

	results := &SearchResults{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		q := strapi.Query{
			Filters:  []strapi.Filter{{Field: "title", Op: "$containsi", Value: term}},
			Populate: articlePopulate,
			Sort:     []string{"publish_date:desc"},
			PageSize: perTypeLimit,
		}
		items, err := searchList(ctx, s, "searchArticles", CollectionArticles, q, strapi.DecodeArticles)
		results.Articles = items
		return err
	})

	g.Go(func() error {
		q := strapi.Query{
			Filters:  []strapi.Filter{{Field: "name", Op: "$containsi", Value: term}},
			Sort:     []string{"name:asc"},
			PageSize: perTypeLimit,
		}
		items, err := searchList(ctx, s, "searchCategories", CollectionCategories, q, strapi.DecodeCategories)
		results.Categories = items
		return err
	})

	g.Go(func() error {
		q := strapi.Query{
			Filters:  []strapi.Filter{{Field: "name", Op: "$containsi", Value: term}},
			Populate: authorPopulate,
			Sort:     []string{"name:asc"},
			PageSize: perTypeLimit,
		}
		items, err := searchList(ctx, s, "searchAuthors", CollectionAuthors, q, strapi.DecodeAuthors)
		results.Authors = items
		return err
	})

	g.Go(func() error {
		q := strapi.Query{
			Filters:  []strapi.Filter{{Field: "title", Op: "$containsi", Value: term}},
			Populate: issuePopulate,
			Sort:     []string{"issue_number:desc"},
			PageSize: perTypeLimit,
		}
		items, err := searchList(ctx, s, "searchIssues", CollectionIssues, q, strapi.DecodeMagazineIssues)
		results.Issues = items
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}
	return results, nil
}

// searchList runs one cached sub-query of the search fan-out.
func searchList[T any](ctx context.Context, s *Service, name, collection string, q strapi.Query, decode func([]byte, string) ([]T, strapi.Pagination, error)) ([]T, error) {
	return cache.GetOrFetch(ctx, s.cache, key(name, q), s.ttl.List, func(ctx context.Context) ([]T, error) {
		payload, err := s.cms.Get(ctx, collection, q)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		items, _, err := decode(payload, s.origin())
		return items, err
	})
}
