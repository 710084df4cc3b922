package content

import (
	"context"
	"fmt"

	"github.com/almajalla/content-forge/pkg/cache"
	"github.com/almajalla/content-forge/pkg/strapi"
)

var authorPopulate = []string{"avatar", "seo"}

// AuthorBySlug returns the author with the given slug, or nil.
func (s *Service) AuthorBySlug(ctx context.Context, slug string) (*strapi.Author, error) {
	q := strapi.Query{
		Filters:  []strapi.Filter{{Field: "slug", Op: "$eq", Value: slug}},
		Populate: authorPopulate,
		PageSize: 1,
	}
	return cache.GetOrFetch(ctx, s.cache, key("authorBySlug", q), s.ttl.Entry, func(ctx context.Context) (*strapi.Author, error) {
		payload, err := s.cms.Get(ctx, CollectionAuthors, q)
		if err != nil {
			return nil, fmt.Errorf("fetch author by slug %q: %w", slug, err)
		}
		return strapi.DecodeAuthor(payload, s.origin())
	})
}

// Authors returns every author, sorted by name. Cached on the long
// taxonomy TTL.
func (s *Service) Authors(ctx context.Context) ([]strapi.Author, error) {
	q := strapi.Query{
		Populate: authorPopulate,
		Sort:     []string{"name:asc"},
		PageSize: 100,
	}
	return cache.GetOrFetch(ctx, s.cache, key("authors", q), s.ttl.Taxonomy, func(ctx context.Context) ([]strapi.Author, error) {
		payload, err := s.cms.Get(ctx, CollectionAuthors, q)
		if err != nil {
			return nil, fmt.Errorf("fetch authors: %w", err)
		}
		items, _, err := strapi.DecodeAuthors(payload, s.origin())
		return items, err
	})
}
