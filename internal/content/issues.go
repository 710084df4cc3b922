package content

import (
	"context"
	"fmt"

	"github.com/almajalla/content-forge/pkg/cache"
	"github.com/almajalla/content-forge/pkg/strapi"
)

var issuePopulate = []string{"cover_image", "pdf", "seo"}

// IssueBySlug returns the magazine issue with the given slug, or nil.
func (s *Service) IssueBySlug(ctx context.Context, slug string) (*strapi.MagazineIssue, error) {
	q := strapi.Query{
		Filters:  []strapi.Filter{{Field: "slug", Op: "$eq", Value: slug}},
		Populate: issuePopulate,
		PageSize: 1,
	}
	return cache.GetOrFetch(ctx, s.cache, key("issueBySlug", q), s.ttl.Entry, func(ctx context.Context) (*strapi.MagazineIssue, error) {
		payload, err := s.cms.Get(ctx, CollectionIssues, q)
		if err != nil {
			return nil, fmt.Errorf("fetch issue by slug %q: %w", slug, err)
		}
		return strapi.DecodeMagazineIssue(payload, s.origin())
	})
}

// MagazineIssues returns one page of magazine issues, newest first.
func (s *Service) MagazineIssues(ctx context.Context, page, pageSize int) (Page[strapi.MagazineIssue], error) {
	q := strapi.Query{
		Populate: issuePopulate,
		Sort:     []string{"issue_number:desc"},
		Page:     page,
		PageSize: pageSize,
	}
	return cache.GetOrFetch(ctx, s.cache, key("magazineIssues", q), s.ttl.List, func(ctx context.Context) (Page[strapi.MagazineIssue], error) {
		payload, err := s.cms.Get(ctx, CollectionIssues, q)
		if err != nil {
			return Page[strapi.MagazineIssue]{}, fmt.Errorf("fetch magazine issues: %w", err)
		}
		items, pg, err := strapi.DecodeMagazineIssues(payload, s.origin())
		return Page[strapi.MagazineIssue]{Items: items, Pagination: pg}, err
	})
}

// FeaturedIssues returns up to limit featured magazine issues, newest
// first.
func (s *Service) FeaturedIssues(ctx context.Context, limit int) ([]strapi.MagazineIssue, error) {
	q := strapi.Query{
		Filters:  []strapi.Filter{{Field: "is_featured", Op: "$eq", Value: "true"}},
		Populate: issuePopulate,
		Sort:     []string{"issue_number:desc"},
		PageSize: limit,
	}
	return cache.GetOrFetch(ctx, s.cache, key("featuredIssues", q), s.ttl.List, func(ctx context.Context) ([]strapi.MagazineIssue, error) {
		payload, err := s.cms.Get(ctx, CollectionIssues, q)
		if err != nil {
			return nil, fmt.Errorf("fetch featured issues: %w", err)
		}
		items, _, err := strapi.DecodeMagazineIssues(payload, s.origin())
		return items, err
	})
}
