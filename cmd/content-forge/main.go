// Package main provides the CLI entry point for content-forge.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/almajalla/content-forge/internal/buildcache"
	"github.com/almajalla/content-forge/internal/config"
	"github.com/almajalla/content-forge/internal/content"
	"github.com/almajalla/content-forge/internal/preview"
	"github.com/almajalla/content-forge/pkg/cache"
	"github.com/almajalla/content-forge/pkg/fallback"
	"github.com/almajalla/content-forge/pkg/strapi"
)

// CLI structure
var CLI struct {
	Config string `help:"Configuration file path" default:"config.yaml"`
	Debug  bool   `help:"Enable debug logging" default:"false"`

	Paths struct {
		Outfile   string `help:"Manifest output path (defaults to build.manifest_path)" short:"o"`
		TimeoutMs int    `help:"Per-collection enumeration budget in milliseconds" default:"0"`
	} `cmd:"" help:"Enumerate static paths for the site build."`

	Preview struct {
		Collection string `arg:"" optional:"" default:"articles" help:"Collection to browse"`
		Limit      int    `help:"Maximum number of entries to fetch" default:"20"`
	} `cmd:"" help:"Preview normalized content interactively."`

	Search struct {
		Term  string `arg:"" help:"Search term"`
		Limit int    `help:"Result cap per entity type" default:"5"`
	} `cmd:"" help:"Search across articles, categories, authors and magazine issues."`
}

func main() {
	ctx := kong.Parse(&CLI)

	// Configure logging level based on debug flag
	if CLI.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	} else {
		slog.SetLogLoggerLevel(slog.LevelWarn)
	}

	cfg, err := config.LoadConfig(CLI.Config)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := run(ctx.Command(), cfg, newService(cfg)); err != nil {
		slog.Error("Command failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}

// run dispatches a parsed kong command. The collection argument of
// preview is optional, so kong reports both "preview" and
// "preview <collection>" depending on the invocation.
func run(cmd string, cfg *config.Config, svc *content.Service) error {
	switch cmd {
	case "paths":
		return runPaths(cfg, svc)

	case "preview", "preview <collection>":
		return runPreview(svc, CLI.Preview.Collection, CLI.Preview.Limit)

	case "search <term>":
		return runSearch(svc, CLI.Search.Term, CLI.Search.Limit)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func newService(cfg *config.Config) *content.Service {
	client := strapi.NewClient(&strapi.ClientConfig{
		BaseURL:      cfg.CMS.BaseURL,
		MediaOrigin:  cfg.CMS.MediaOrigin,
		APIToken:     cfg.CMS.APIToken,
		Timeout:      cfg.CMSTimeout(),
		MaxRetries:   3,
		RetryBackoff: 1 * time.Second,
		UserAgent:    "content-forge/1.0",
	})
	return content.NewService(client, cache.New(), content.TTLConfig{
		Entry:    cfg.EntryTTL(),
		List:     cfg.ListTTL(),
		Taxonomy: cfg.TaxonomyTTL(),
	})
}

// runPaths enumerates slugs per routed collection, falling back to the
// last successful enumeration when the CMS is slow or down, so the
// build never fails on backend unavailability.
func runPaths(cfg *config.Config, svc *content.Service) error {
	timeout := cfg.BuildTimeout()
	if CLI.Paths.TimeoutMs > 0 {
		timeout = time.Duration(CLI.Paths.TimeoutMs) * time.Millisecond
	}
	outfile := cfg.Build.ManifestPath
	if CLI.Paths.Outfile != "" {
		outfile = CLI.Paths.Outfile
	}

	store, err := buildcache.Open(cfg.Build.CachePath)
	if err != nil {
		return fmt.Errorf("failed to open build cache: %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	manifest := make(map[string][]string, len(content.RoutedCollections))

	for _, collection := range content.RoutedCollections {
		slugs := fallback.WithTimeout(ctx, "enumerate "+collection, func(ctx context.Context) ([]string, error) {
			return svc.Slugs(ctx, collection)
		}, nil, timeout)

		if slugs == nil {
			// Fallback fired; prefer the last successful enumeration
			// over pre-rendering nothing.
			cached, found, err := store.LoadSlugs(collection)
			if err != nil {
				slog.Warn("Failed to read build cache", "collection", collection, "error", err)
			}
			if found {
				slog.Warn("Using last-known-good slugs", "collection", collection, "count", len(cached))
				slugs = cached
			} else {
				slugs = []string{}
			}
		} else if err := store.SaveSlugs(collection, slugs); err != nil {
			slog.Warn("Failed to update build cache", "collection", collection, "error", err)
		}

		manifest[collection] = slugs
		slog.Debug("Enumerated collection", "collection", collection, "count", len(slugs))
	}

	encoded, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to encode path manifest: %w", err)
	}
	if err := os.WriteFile(outfile, encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write path manifest to %s: %w", outfile, err)
	}
	fmt.Printf("wrote %s\n", outfile)
	return nil
}

// runPreview fetches the latest entries of a collection and opens the
// preview TUI on the normalized output.
func runPreview(svc *content.Service, collection string, limit int) error {
	ctx := context.Background()

	items, err := fetchPreviewItems(ctx, svc, collection, limit)
	if err != nil {
		return fmt.Errorf("failed to fetch %s entries: %w", collection, err)
	}

	return preview.Run(items, collection)
}

func fetchPreviewItems(ctx context.Context, svc *content.Service, collection string, limit int) ([]preview.Item, error) {
	switch collection {
	case content.CollectionArticles:
		page, err := svc.Articles(ctx, 1, limit)
		if err != nil {
			return nil, err
		}
		items := make([]preview.Item, 0, len(page.Items))
		for _, a := range page.Items {
			items = append(items, preview.Item{
				Title:     a.Title,
				Slug:      a.Slug,
				Published: timeOf(a.PublishDate),
				Featured:  a.IsFeatured,
				Excerpt:   content.Excerpt(firstOf(a.Description, a.Body), 280),
				CoverURL:  mediaURL(a.CoverImage),
				Entity:    a,
			})
		}
		return items, nil

	case content.CollectionNews:
		page, err := svc.News(ctx, 1, limit)
		if err != nil {
			return nil, err
		}
		items := make([]preview.Item, 0, len(page.Items))
		for _, n := range page.Items {
			items = append(items, preview.Item{
				Title:     n.Title,
				Slug:      n.Slug,
				Published: timeOf(n.PublishDate),
				Featured:  n.IsFeatured,
				Excerpt:   content.Excerpt(firstOf(n.Description, n.Body), 280),
				CoverURL:  mediaURL(n.CoverImage),
				Entity:    n,
			})
		}
		return items, nil

	case content.CollectionPodcasts:
		page, err := svc.Podcasts(ctx, 1, limit)
		if err != nil {
			return nil, err
		}
		items := make([]preview.Item, 0, len(page.Items))
		for _, p := range page.Items {
			items = append(items, preview.Item{
				Title:     p.Title,
				Slug:      p.Slug,
				Published: timeOf(p.PublishDate),
				Featured:  p.IsFeatured,
				Excerpt:   content.Excerpt(str(p.Description), 280),
				CoverURL:  mediaURL(p.CoverImage),
				Entity:    p,
			})
		}
		return items, nil

	case content.CollectionMajlis:
		page, err := svc.MajlisSessions(ctx, 1, limit)
		if err != nil {
			return nil, err
		}
		items := make([]preview.Item, 0, len(page.Items))
		for _, m := range page.Items {
			items = append(items, preview.Item{
				Title:     m.Title,
				Slug:      m.Slug,
				Published: timeOf(m.PublishDate),
				Featured:  m.IsFeatured,
				Excerpt:   content.Excerpt(str(m.Description), 280),
				CoverURL:  mediaURL(m.CoverImage),
				Entity:    m,
			})
		}
		return items, nil

	case content.CollectionIssues:
		page, err := svc.MagazineIssues(ctx, 1, limit)
		if err != nil {
			return nil, err
		}
		items := make([]preview.Item, 0, len(page.Items))
		for _, i := range page.Items {
			items = append(items, preview.Item{
				Title:     i.Title,
				Slug:      i.Slug,
				Published: timeOf(i.PublishDate),
				Featured:  i.IsFeatured,
				Excerpt:   content.Excerpt(str(i.Description), 280),
				CoverURL:  mediaURL(i.CoverImage),
				Entity:    i,
			})
		}
		return items, nil

	case content.CollectionAuthors:
		authors, err := svc.Authors(ctx)
		if err != nil {
			return nil, err
		}
		if len(authors) > limit {
			authors = authors[:limit]
		}
		items := make([]preview.Item, 0, len(authors))
		for _, a := range authors {
			items = append(items, preview.Item{
				Title:    a.Name,
				Slug:     a.Slug,
				Excerpt:  content.Excerpt(str(a.Bio), 280),
				CoverURL: mediaURL(a.Avatar),
				Entity:   a,
			})
		}
		return items, nil

	case content.CollectionCategories:
		categories, err := svc.Categories(ctx)
		if err != nil {
			return nil, err
		}
		if len(categories) > limit {
			categories = categories[:limit]
		}
		items := make([]preview.Item, 0, len(categories))
		for _, c := range categories {
			items = append(items, preview.Item{
				Title:   c.Name,
				Slug:    c.Slug,
				Excerpt: content.Excerpt(str(c.Description), 280),
				Entity:  c,
			})
		}
		return items, nil
	}

	return nil, fmt.Errorf("unknown collection %q", collection)
}

// runSearch runs the cross-entity search and prints grouped results.
func runSearch(svc *content.Service, term string, limit int) error {
	results, err := svc.Search(context.Background(), term, limit)
	if err != nil {
		return fmt.Errorf("search %q failed: %w", term, err)
	}

	fmt.Printf("Articles (%d)\n", len(results.Articles))
	for _, a := range results.Articles {
		fmt.Printf("  %s (%s)\n", a.Title, a.Slug)
	}

	fmt.Printf("Magazine issues (%d)\n", len(results.Issues))
	for _, i := range results.Issues {
		fmt.Printf("  %s (%s)\n", i.Title, i.Slug)
	}

	fmt.Printf("Authors (%d)\n", len(results.Authors))
	for _, a := range results.Authors {
		fmt.Printf("  %s (%s)\n", a.Name, a.Slug)
	}

	fmt.Printf("Categories (%d)\n", len(results.Categories))
	for _, c := range results.Categories {
		fmt.Printf("  %s (%s)\n", c.Name, c.Slug)
	}
	return nil
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func firstOf(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

func timeOf(t *strapi.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.Time
}

func mediaURL(m *strapi.Media) string {
	if m == nil {
		return ""
	}
	return m.URL
}
