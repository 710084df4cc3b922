package strapi

import (
	"encoding/json"
	"testing"

	"github.com/almajalla/content-forge/pkg/testutil"
)

const mediaOrigin = "https://cdn.example.com/"

func TestDecodeArticleLegacyWrapper(t *testing.T) {
	payload := []byte(`{
		"data": [
			{
				"id": 1,
				"documentId": "abc",
				"attributes": {
					"title": "Test",
					"slug": "test",
					"cover_image": {
						"data": {
							"id": 5,
							"attributes": {"url": "/img.jpg"}
						}
					}
				}
			}
		]
	}`)

	article, err := DecodeArticle(payload, mediaOrigin)
	if err != nil {
		t.Fatalf("DecodeArticle() error = %v", err)
	}
	if article == nil {
		t.Fatal("DecodeArticle() = nil, want article")
	}

	if article.ID != 1 {
		t.Errorf("ID = %d, want 1", article.ID)
	}
	if article.DocumentID != "abc" {
		t.Errorf("DocumentID = %q, want %q", article.DocumentID, "abc")
	}
	if article.Title != "Test" {
		t.Errorf("Title = %q, want %q", article.Title, "Test")
	}
	if article.Slug != "test" {
		t.Errorf("Slug = %q, want %q", article.Slug, "test")
	}
	if article.CoverImage == nil {
		t.Fatal("CoverImage = nil, want resolved media")
	}
	if article.CoverImage.URL != "https://cdn.example.com/img.jpg" {
		t.Errorf("CoverImage.URL = %q, want %q", article.CoverImage.URL, "https://cdn.example.com/img.jpg")
	}
}

func TestDecodeArticleGolden(t *testing.T) {
	payload := []byte(`{
		"data": [
			{
				"id": 1,
				"documentId": "abc",
				"attributes": {
					"title": "Test",
					"slug": "test",
					"cover_image": {
						"data": {
							"id": 5,
							"attributes": {"url": "/img.jpg"}
						}
					}
				}
			}
		]
	}`)

	article, err := DecodeArticle(payload, mediaOrigin)
	if err != nil {
		t.Fatalf("DecodeArticle() error = %v", err)
	}
	if article == nil {
		t.Fatal("DecodeArticle() = nil, want article")
	}

	actual, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent() error = %v", err)
	}
	testutil.CompareGoldenBytes(t, "testdata/article_normalized.golden", actual)
}

func TestDecodeArticleShapeEquivalence(t *testing.T) {
	// The same logical entry in both response conventions must
	// normalize to identical values.
	legacy := []byte(`{
		"data": {
			"id": 7,
			"documentId": "doc-7",
			"attributes": {
				"title": "Equivalence",
				"slug": "equivalence",
				"is_featured": true,
				"author": {
					"data": {
						"id": 2,
						"attributes": {"name": "Sara", "slug": "sara"}
					}
				}
			}
		}
	}`)
	modern := []byte(`{
		"data": {
			"id": 7,
			"documentId": "doc-7",
			"title": "Equivalence",
			"slug": "equivalence",
			"is_featured": true,
			"author": {"id": 2, "name": "Sara", "slug": "sara"}
		}
	}`)

	fromLegacy, err := DecodeArticle(legacy, mediaOrigin)
	if err != nil {
		t.Fatalf("DecodeArticle(legacy) error = %v", err)
	}
	fromModern, err := DecodeArticle(modern, mediaOrigin)
	if err != nil {
		t.Fatalf("DecodeArticle(modern) error = %v", err)
	}
	if fromLegacy == nil || fromModern == nil {
		t.Fatalf("decode returned nil: legacy=%v modern=%v", fromLegacy, fromModern)
	}

	a, _ := json.Marshal(fromLegacy)
	b, _ := json.Marshal(fromModern)
	if string(a) != string(b) {
		t.Errorf("normalized shapes differ:\nlegacy: %s\nmodern: %s", a, b)
	}

	if fromLegacy.Author == nil || fromLegacy.Author.Name != "Sara" {
		t.Errorf("Author not normalized from legacy wrapper: %+v", fromLegacy.Author)
	}
	if !fromLegacy.IsFeatured {
		t.Error("IsFeatured = false, want true")
	}
}

func TestDecodeArticleNotFound(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "null data",
			payload: `{"data": null}`,
		},
		{
			name:    "empty array",
			payload: `{"data": []}`,
		},
		{
			name:    "unrecognized shape",
			payload: `{"error": {"status": 404}}`,
		},
		{
			name:    "empty payload",
			payload: ``,
		},
		{
			name:    "bare null",
			payload: `null`,
		},
		{
			name:    "scalar payload",
			payload: `42`,
		},
		{
			name:    "missing required title",
			payload: `{"data": {"id": 3, "attributes": {"slug": "untitled"}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			article, err := DecodeArticle([]byte(tt.payload), mediaOrigin)
			if err != nil {
				t.Fatalf("DecodeArticle() error = %v, want nil", err)
			}
			if article != nil {
				t.Errorf("DecodeArticle() = %+v, want nil", article)
			}
		})
	}
}

func TestDecodeArticlesEmptyList(t *testing.T) {
	articles, pg, err := DecodeArticles([]byte(`{"data": [], "meta": {"pagination": {"page": 1, "pageSize": 25, "pageCount": 0, "total": 0}}}`), mediaOrigin)
	if err != nil {
		t.Fatalf("DecodeArticles() error = %v", err)
	}
	if articles == nil {
		t.Fatal("DecodeArticles() = nil slice, want empty slice")
	}
	if len(articles) != 0 {
		t.Errorf("len = %d, want 0", len(articles))
	}
	if pg.Page != 1 || pg.PageSize != 25 {
		t.Errorf("pagination = %+v, want page 1, pageSize 25", pg)
	}
}

func TestDecodeArticlesSkipsMalformedEntries(t *testing.T) {
	payload := []byte(`{
		"data": [
			{"id": 1, "attributes": {"title": "Kept", "slug": "kept"}},
			{"id": 2, "attributes": {"slug": "no-title"}},
			{"id": 3, "attributes": {"title": "Also kept", "slug": "also-kept"}}
		],
		"meta": {"pagination": {"page": 1, "pageSize": 25, "pageCount": 1, "total": 3}}
	}`)

	articles, pg, err := DecodeArticles(payload, mediaOrigin)
	if err != nil {
		t.Fatalf("DecodeArticles() error = %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("len = %d, want 2 (incomplete entry dropped)", len(articles))
	}
	if articles[0].Slug != "kept" || articles[1].Slug != "also-kept" {
		t.Errorf("unexpected slugs: %q, %q", articles[0].Slug, articles[1].Slug)
	}
	if pg.Total != 3 {
		t.Errorf("pagination.Total = %d, want 3", pg.Total)
	}
}

func TestDecodeArticleDropsUnresolvableMedia(t *testing.T) {
	// A media stub whose URL cannot be made absolute is pruned rather
	// than surfaced half-formed.
	payload := []byte(`{"data": {"id": 1, "attributes": {"title": "T", "slug": "t", "cover_image": {"data": {"id": 9, "attributes": {"url": "/img.jpg"}}}}}}`)

	article, err := DecodeArticle(payload, "")
	if err != nil {
		t.Fatalf("DecodeArticle() error = %v", err)
	}
	if article == nil {
		t.Fatal("DecodeArticle() = nil, want article")
	}
	if article.CoverImage != nil {
		t.Errorf("CoverImage = %+v, want nil for unresolvable URL", article.CoverImage)
	}
}

func TestDecodeArticleDropsEmptyRelationStubs(t *testing.T) {
	payload := []byte(`{"data": {"id": 1, "attributes": {"title": "T", "slug": "t", "author": {"data": null}, "category": {"data": null}}}}`)

	article, err := DecodeArticle(payload, mediaOrigin)
	if err != nil {
		t.Fatalf("DecodeArticle() error = %v", err)
	}
	if article == nil {
		t.Fatal("DecodeArticle() = nil, want article")
	}
	if article.Author != nil {
		t.Errorf("Author = %+v, want nil", article.Author)
	}
	if article.Category != nil {
		t.Errorf("Category = %+v, want nil", article.Category)
	}
}

func TestDecodeMagazineIssue(t *testing.T) {
	payload := []byte(`{
		"data": {
			"id": 4,
			"documentId": "issue-4",
			"title": "Issue 12",
			"slug": "issue-12",
			"issue_number": 12,
			"publish_date": "2025-06-01",
			"pdf": {"id": 8, "url": "/issues/12.pdf"},
			"cover_image": {"id": 9, "url": "https://static.example.com/12.jpg"}
		}
	}`)

	issue, err := DecodeMagazineIssue(payload, mediaOrigin)
	if err != nil {
		t.Fatalf("DecodeMagazineIssue() error = %v", err)
	}
	if issue == nil {
		t.Fatal("DecodeMagazineIssue() = nil, want issue")
	}
	if issue.IssueNumber == nil || *issue.IssueNumber != 12 {
		t.Errorf("IssueNumber = %v, want 12", issue.IssueNumber)
	}
	if issue.PDF == nil || issue.PDF.URL != "https://cdn.example.com/issues/12.pdf" {
		t.Errorf("PDF = %+v, want resolved URL", issue.PDF)
	}
	if issue.CoverImage == nil || issue.CoverImage.URL != "https://static.example.com/12.jpg" {
		t.Errorf("CoverImage = %+v, want absolute URL untouched", issue.CoverImage)
	}
	if issue.PublishDate == nil || issue.PublishDate.Format("2006-01-02") != "2025-06-01" {
		t.Errorf("PublishDate = %v, want 2025-06-01", issue.PublishDate)
	}
}

func TestDecodeSlugs(t *testing.T) {
	payload := []byte(`{
		"data": [
			{"id": 1, "attributes": {"slug": "alpha"}},
			{"id": 2, "attributes": {"slug": "beta"}},
			{"id": 3, "attributes": {}}
		],
		"meta": {"pagination": {"page": 1, "pageSize": 100, "pageCount": 1, "total": 3}}
	}`)

	slugs, pg, err := DecodeSlugs(payload)
	if err != nil {
		t.Fatalf("DecodeSlugs() error = %v", err)
	}
	if len(slugs) != 2 || slugs[0] != "alpha" || slugs[1] != "beta" {
		t.Errorf("slugs = %v, want [alpha beta]", slugs)
	}
	if pg.PageCount != 1 {
		t.Errorf("pagination.PageCount = %d, want 1", pg.PageCount)
	}
}

func TestDecodeSlugsGolden(t *testing.T) {
	payload := []byte(`{
		"data": [
			{"id": 1, "attributes": {"slug": "culture-of-the-gulf"}},
			{"id": 2, "attributes": {"slug": "desert-voices"}},
			{"id": 3, "attributes": {"slug": "issue-12-editorial"}}
		],
		"meta": {"pagination": {"page": 1, "pageSize": 100, "pageCount": 1, "total": 3}}
	}`)

	slugs, _, err := DecodeSlugs(payload)
	if err != nil {
		t.Fatalf("DecodeSlugs() error = %v", err)
	}
	testutil.CompareGoldenSlice(t, "testdata/slugs.golden", slugs)
}

func TestTimeUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "RFC 3339",
			input: `"2025-10-21T09:30:00.000Z"`,
			want:  "2025-10-21",
		},
		{
			name:  "bare date",
			input: `"2025-10-21"`,
			want:  "2025-10-21",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Time
			if err := json.Unmarshal([]byte(tt.input), &ts); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.input, err)
			}
			if got := ts.Format("2006-01-02"); got != tt.want {
				t.Errorf("parsed date = %s, want %s", got, tt.want)
			}
		})
	}

	t.Run("null", func(t *testing.T) {
		var ts Time
		if err := json.Unmarshal([]byte(`null`), &ts); err != nil {
			t.Fatalf("Unmarshal(null) error = %v", err)
		}
		if !ts.IsZero() {
			t.Errorf("parsed null = %v, want zero time", ts.Time)
		}
	})
}
