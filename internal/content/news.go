package content

import (
	"context"
	"fmt"

	"github.com/almajalla/content-forge/pkg/cache"
	"github.com/almajalla/content-forge/pkg/strapi"
)

var newsPopulate = []string{"cover_image", "category", "seo"}

// NewsBySlug returns the news entry with the given slug, or nil.
func (s *Service) NewsBySlug(ctx context.Context, slug string) (*strapi.News, error) {
	q := strapi.Query{
		Filters:  []strapi.Filter{{Field: "slug", Op: "$eq", Value: slug}},
		Populate: newsPopulate,
		PageSize: 1,
	}
	return cache.GetOrFetch(ctx, s.cache, key("newsBySlug", q), s.ttl.Entry, func(ctx context.Context) (*strapi.News, error) {
		payload, err := s.cms.Get(ctx, CollectionNews, q)
		if err != nil {
			return nil, fmt.Errorf("fetch news by slug %q: %w", slug, err)
		}
		return strapi.DecodeNews(payload, s.origin())
	})
}

// News returns one page of news entries, newest first.
func (s *Service) News(ctx context.Context, page, pageSize int) (Page[strapi.News], error) {
	q := strapi.Query{
		Populate: newsPopulate,
		Sort:     []string{"publish_date:desc"},
		Page:     page,
		PageSize: pageSize,
	}
	return cache.GetOrFetch(ctx, s.cache, key("news", q), s.ttl.List, func(ctx context.Context) (Page[strapi.News], error) {
		payload, err := s.cms.Get(ctx, CollectionNews, q)
		if err != nil {
			return Page[strapi.News]{}, fmt.Errorf("fetch news: %w", err)
		}
		items, pg, err := strapi.DecodeNewsList(payload, s.origin())
		return Page[strapi.News]{Items: items, Pagination: pg}, err
	})
}

// LatestNews returns up to limit news entries, newest first.
func (s *Service) LatestNews(ctx context.Context, limit int) ([]strapi.News, error) {
	q := strapi.Query{
		Populate: newsPopulate,
		Sort:     []string{"publish_date:desc"},
		PageSize: limit,
	}
	return cache.GetOrFetch(ctx, s.cache, key("latestNews", q), s.ttl.List, func(ctx context.Context) ([]strapi.News, error) {
		payload, err := s.cms.Get(ctx, CollectionNews, q)
		if err != nil {
			return nil, fmt.Errorf("fetch latest news: %w", err)
		}
		items, _, err := strapi.DecodeNewsList(payload, s.origin())
		return items, err
	})
}
