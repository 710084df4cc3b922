package content

import (
	"context"
	"fmt"

	"github.com/almajalla/content-forge/pkg/cache"
	"github.com/almajalla/content-forge/pkg/strapi"
)

// articlePopulate is the population depth article pages render with.
var articlePopulate = []string{"cover_image", "author", "author.avatar", "category", "seo"}

// ArticleBySlug returns the article with the given slug, or nil when
// no such article exists.
func (s *Service) ArticleBySlug(ctx context.Context, slug string) (*strapi.Article, error) {
	q := strapi.Query{
		Filters:  []strapi.Filter{{Field: "slug", Op: "$eq", Value: slug}},
		Populate: articlePopulate,
		PageSize: 1,
	}
	return cache.GetOrFetch(ctx, s.cache, key("articleBySlug", q), s.ttl.Entry, func(ctx context.Context) (*strapi.Article, error) {
		payload, err := s.cms.Get(ctx, CollectionArticles, q)
		if err != nil {
			return nil, fmt.Errorf("fetch article by slug %q: %w", slug, err)
		}
		return strapi.DecodeArticle(payload, s.origin())
	})
}

// Articles returns one page of articles, newest first.
func (s *Service) Articles(ctx context.Context, page, pageSize int) (Page[strapi.Article], error) {
	q := strapi.Query{
		Populate: articlePopulate,
		Sort:     []string{"publish_date:desc"},
		Page:     page,
		PageSize: pageSize,
	}
	return s.articlePage(ctx, "articles", q)
}

// ArticlesByAuthor returns one page of articles written by the author
// with the given slug.
func (s *Service) ArticlesByAuthor(ctx context.Context, authorSlug string, page, pageSize int) (Page[strapi.Article], error) {
	q := strapi.Query{
		Filters:  []strapi.Filter{{Field: "author.slug", Op: "$eq", Value: authorSlug}},
		Populate: articlePopulate,
		Sort:     []string{"publish_date:desc"},
		Page:     page,
		PageSize: pageSize,
	}
	return s.articlePage(ctx, "articlesByAuthor", q)
}

// ArticlesByCategory returns one page of articles in the category with
// the given slug.
func (s *Service) ArticlesByCategory(ctx context.Context, categorySlug string, page, pageSize int) (Page[strapi.Article], error) {
	q := strapi.Query{
		Filters:  []strapi.Filter{{Field: "category.slug", Op: "$eq", Value: categorySlug}},
		Populate: articlePopulate,
		Sort:     []string{"publish_date:desc"},
		Page:     page,
		PageSize: pageSize,
	}
	return s.articlePage(ctx, "articlesByCategory", q)
}

// FeaturedArticles returns up to limit featured articles, newest
// first. Cached on the short list TTL since the selection changes with
// every publish.
func (s *Service) FeaturedArticles(ctx context.Context, limit int) ([]strapi.Article, error) {
	q := strapi.Query{
		Filters:  []strapi.Filter{{Field: "is_featured", Op: "$eq", Value: "true"}},
		Populate: articlePopulate,
		Sort:     []string{"publish_date:desc"},
		PageSize: limit,
	}
	return cache.GetOrFetch(ctx, s.cache, key("featuredArticles", q), s.ttl.List, func(ctx context.Context) ([]strapi.Article, error) {
		payload, err := s.cms.Get(ctx, CollectionArticles, q)
		if err != nil {
			return nil, fmt.Errorf("fetch featured articles: %w", err)
		}
		items, _, err := strapi.DecodeArticles(payload, s.origin())
		return items, err
	})
}

func (s *Service) articlePage(ctx context.Context, name string, q strapi.Query) (Page[strapi.Article], error) {
	return cache.GetOrFetch(ctx, s.cache, key(name, q), s.ttl.List, func(ctx context.Context) (Page[strapi.Article], error) {
		payload, err := s.cms.Get(ctx, CollectionArticles, q)
		if err != nil {
			return Page[strapi.Article]{}, fmt.Errorf("fetch %s: %w", name, err)
		}
		items, pg, err := strapi.DecodeArticles(payload, s.origin())
		return Page[strapi.Article]{Items: items, Pagination: pg}, err
	})
}
