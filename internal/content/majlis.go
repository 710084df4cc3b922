package content

import (
	"context"
	"fmt"

	"github.com/almajalla/content-forge/pkg/cache"
	"github.com/almajalla/content-forge/pkg/strapi"
)

var majlisPopulate = []string{"cover_image", "seo"}

// MajlisBySlug returns the majlis session with the given slug, or nil.
func (s *Service) MajlisBySlug(ctx context.Context, slug string) (*strapi.Majlis, error) {
	q := strapi.Query{
		Filters:  []strapi.Filter{{Field: "slug", Op: "$eq", Value: slug}},
		Populate: majlisPopulate,
		PageSize: 1,
	}
	return cache.GetOrFetch(ctx, s.cache, key("majlisBySlug", q), s.ttl.Entry, func(ctx context.Context) (*strapi.Majlis, error) {
		payload, err := s.cms.Get(ctx, CollectionMajlis, q)
		if err != nil {
			return nil, fmt.Errorf("fetch majlis by slug %q: %w", slug, err)
		}
		return strapi.DecodeMajlis(payload, s.origin())
	})
}

// MajlisSessions returns one page of majlis sessions, newest first.
func (s *Service) MajlisSessions(ctx context.Context, page, pageSize int) (Page[strapi.Majlis], error) {
	q := strapi.Query{
		Populate: majlisPopulate,
		Sort:     []string{"publish_date:desc"},
		Page:     page,
		PageSize: pageSize,
	}
	return cache.GetOrFetch(ctx, s.cache, key("majlisSessions", q), s.ttl.List, func(ctx context.Context) (Page[strapi.Majlis], error) {
		payload, err := s.cms.Get(ctx, CollectionMajlis, q)
		if err != nil {
			return Page[strapi.Majlis]{}, fmt.Errorf("fetch majlis sessions: %w", err)
		}
		items, pg, err := strapi.DecodeMajlisList(payload, s.origin())
		return Page[strapi.Majlis]{Items: items, Pagination: pg}, err
	})
}
