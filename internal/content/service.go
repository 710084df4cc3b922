// Package content exposes one typed query function per logical fetch
// the magazine front-end performs, backed by the shared request cache
// and the CMS client.
package content

import (
	"time"

	"github.com/almajalla/content-forge/pkg/cache"
	"github.com/almajalla/content-forge/pkg/strapi"
)

// Collection API IDs on the CMS.
const (
	CollectionArticles   = "articles"
	CollectionNews       = "news-items"
	CollectionPodcasts   = "podcasts"
	CollectionMajlis     = "majlis-sessions"
	CollectionIssues     = "magazine-issues"
	CollectionAuthors    = "authors"
	CollectionCategories = "categories"
)

// RoutedCollections lists every collection whose entries produce a
// routable page, in the order the path manifest is written.
var RoutedCollections = []string{
	CollectionArticles,
	CollectionNews,
	CollectionPodcasts,
	CollectionMajlis,
	CollectionIssues,
	CollectionAuthors,
	CollectionCategories,
}

// TTLConfig sets the cache TTL per query volatility class. By-slug
// entries change rarely, latest/featured lists churn with every
// publish, taxonomies almost never move.
type TTLConfig struct {
	Entry    time.Duration
	List     time.Duration
	Taxonomy time.Duration
}

// DefaultTTLConfig returns the TTLs used in production. They are
// chosen to sit inside the hosting framework's page revalidation
// window so the in-process cache never outlives the page cache.
func DefaultTTLConfig() TTLConfig {
	return TTLConfig{
		Entry:    10 * time.Minute,
		List:     2 * time.Minute,
		Taxonomy: 30 * time.Minute,
	}
}

// Page is one page of a list query together with its pagination meta.
type Page[T any] struct {
	Items      []T
	Pagination strapi.Pagination
}

// Service is the query layer. Construct it once with the process-wide
// cache; tests construct isolated instances.
type Service struct {
	cms   *strapi.Client
	cache *cache.Cache
	ttl   TTLConfig
}

// NewService creates a query service.
func NewService(cms *strapi.Client, c *cache.Cache, ttl TTLConfig) *Service {
	if ttl.Entry <= 0 {
		ttl.Entry = DefaultTTLConfig().Entry
	}
	if ttl.List <= 0 {
		ttl.List = DefaultTTLConfig().List
	}
	if ttl.Taxonomy <= 0 {
		ttl.Taxonomy = DefaultTTLConfig().Taxonomy
	}
	return &Service{cms: cms, cache: c, ttl: ttl}
}

func (s *Service) origin() string {
	return s.cms.MediaOrigin()
}

// key derives a cache key from the query function name and the
// deterministic query encoding.
func key(name string, q strapi.Query) string {
	return name + "?" + q.Encode()
}
