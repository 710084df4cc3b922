package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alecthomas/kong"

	"github.com/almajalla/content-forge/internal/config"
	"github.com/almajalla/content-forge/internal/content"
	"github.com/almajalla/content-forge/pkg/cache"
	"github.com/almajalla/content-forge/pkg/strapi"
)

func parseCLI(t *testing.T, args []string) string {
	t.Helper()

	parser, err := kong.New(&CLI)
	if err != nil {
		t.Fatalf("kong.New() error = %v", err)
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	return ctx.Command()
}

func newEmptyService(t *testing.T) *content.Service {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	}))
	t.Cleanup(srv.Close)

	client := strapi.NewClient(&strapi.ClientConfig{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	})
	return content.NewService(client, cache.New(), content.DefaultTTLConfig())
}

func TestRunBarePreview(t *testing.T) {
	// The collection argument is optional, so kong reports the command
	// without it when the user types just "preview".
	cmd := parseCLI(t, []string{"preview"})
	if cmd != "preview" {
		t.Fatalf("Command() = %q, want %q", cmd, "preview")
	}
	if CLI.Preview.Collection != "articles" {
		t.Errorf("default collection = %q, want articles", CLI.Preview.Collection)
	}

	if err := run(cmd, &config.Config{}, newEmptyService(t)); err != nil {
		t.Errorf("run(%q) error = %v", cmd, err)
	}
}

func TestRunPreviewWithCollection(t *testing.T) {
	cmd := parseCLI(t, []string{"preview", "news-items"})
	if cmd != "preview <collection>" {
		t.Fatalf("Command() = %q, want %q", cmd, "preview <collection>")
	}
	if CLI.Preview.Collection != "news-items" {
		t.Errorf("collection = %q, want news-items", CLI.Preview.Collection)
	}

	if err := run(cmd, &config.Config{}, newEmptyService(t)); err != nil {
		t.Errorf("run(%q) error = %v", cmd, err)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	if err := run("bogus", &config.Config{}, nil); err == nil {
		t.Error("run() error = nil, want unknown command error")
	}
}
