package content

import (
	"context"
	"fmt"

	"github.com/almajalla/content-forge/pkg/cache"
	"github.com/almajalla/content-forge/pkg/strapi"
)

type slugPage struct {
	Slugs      []string
	Pagination strapi.Pagination
}

// Slugs returns every slug in the given collection, paging through the
// API. Used by static path enumeration; callers wrap it in the
// build-time fallback executor rather than calling it on a request
// path.
func (s *Service) Slugs(ctx context.Context, collection string) ([]string, error) {
	out := []string{}
	for page := 1; ; page++ {
		q := strapi.Query{
			Fields:   []string{"slug"},
			Sort:     []string{"slug:asc"},
			Page:     page,
			PageSize: 100,
		}
		batch, err := cache.GetOrFetch(ctx, s.cache, key("slugs:"+collection, q), s.ttl.List, func(ctx context.Context) (slugPage, error) {
			payload, err := s.cms.Get(ctx, collection, q)
			if err != nil {
				return slugPage{}, fmt.Errorf("fetch %s slugs page %d: %w", collection, page, err)
			}
			slugs, pg, err := strapi.DecodeSlugs(payload)
			return slugPage{Slugs: slugs, Pagination: pg}, err
		})
		if err != nil {
			return nil, err
		}
		if len(batch.Slugs) == 0 {
			break
		}
		out = append(out, batch.Slugs...)
		if batch.Pagination.PageCount == 0 || page >= batch.Pagination.PageCount {
			break
		}
	}
	return out, nil
}
