package content

import (
	"context"
	"fmt"

	"github.com/almajalla/content-forge/pkg/cache"
	"github.com/almajalla/content-forge/pkg/strapi"
)

// CategoryBySlug returns the category with the given slug, or nil.
func (s *Service) CategoryBySlug(ctx context.Context, slug string) (*strapi.Category, error) {
	q := strapi.Query{
		Filters:  []strapi.Filter{{Field: "slug", Op: "$eq", Value: slug}},
		Populate: []string{"seo"},
		PageSize: 1,
	}
	return cache.GetOrFetch(ctx, s.cache, key("categoryBySlug", q), s.ttl.Entry, func(ctx context.Context) (*strapi.Category, error) {
		payload, err := s.cms.Get(ctx, CollectionCategories, q)
		if err != nil {
			return nil, fmt.Errorf("fetch category by slug %q: %w", slug, err)
		}
		return strapi.DecodeCategory(payload, s.origin())
	})
}

// Categories returns every category in display order. Cached on the
// long taxonomy TTL.
func (s *Service) Categories(ctx context.Context) ([]strapi.Category, error) {
	q := strapi.Query{
		Sort:     []string{"name:asc"},
		PageSize: 100,
	}
	return cache.GetOrFetch(ctx, s.cache, key("categories", q), s.ttl.Taxonomy, func(ctx context.Context) ([]strapi.Category, error) {
		payload, err := s.cms.Get(ctx, CollectionCategories, q)
		if err != nil {
			return nil, fmt.Errorf("fetch categories: %w", err)
		}
		items, _, err := strapi.DecodeCategories(payload, s.origin())
		return items, err
	})
}
