package content

import (
	"context"
	"fmt"

	"github.com/almajalla/content-forge/pkg/cache"
	"github.com/almajalla/content-forge/pkg/strapi"
)

var podcastPopulate = []string{"cover_image", "audio", "author", "author.avatar", "seo"}

// PodcastBySlug returns the podcast episode with the given slug, or nil.
func (s *Service) PodcastBySlug(ctx context.Context, slug string) (*strapi.Podcast, error) {
	q := strapi.Query{
		Filters:  []strapi.Filter{{Field: "slug", Op: "$eq", Value: slug}},
		Populate: podcastPopulate,
		PageSize: 1,
	}
	return cache.GetOrFetch(ctx, s.cache, key("podcastBySlug", q), s.ttl.Entry, func(ctx context.Context) (*strapi.Podcast, error) {
		payload, err := s.cms.Get(ctx, CollectionPodcasts, q)
		if err != nil {
			return nil, fmt.Errorf("fetch podcast by slug %q: %w", slug, err)
		}
		return strapi.DecodePodcast(payload, s.origin())
	})
}

// Podcasts returns one page of podcast episodes, newest first.
func (s *Service) Podcasts(ctx context.Context, page, pageSize int) (Page[strapi.Podcast], error) {
	q := strapi.Query{
		Populate: podcastPopulate,
		Sort:     []string{"publish_date:desc"},
		Page:     page,
		PageSize: pageSize,
	}
	return cache.GetOrFetch(ctx, s.cache, key("podcasts", q), s.ttl.List, func(ctx context.Context) (Page[strapi.Podcast], error) {
		payload, err := s.cms.Get(ctx, CollectionPodcasts, q)
		if err != nil {
			return Page[strapi.Podcast]{}, fmt.Errorf("fetch podcasts: %w", err)
		}
		items, pg, err := strapi.DecodePodcasts(payload, s.origin())
		return Page[strapi.Podcast]{Items: items, Pagination: pg}, err
	})
}
