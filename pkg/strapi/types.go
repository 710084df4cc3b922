package strapi

import (
	"encoding/json"
	"strings"
	"time"
)

// Time accepts the timestamp formats Strapi has emitted across schema
// versions: RFC 3339 datetimes and bare YYYY-MM-DD dates.
type Time struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Pagination mirrors the meta.pagination block of Strapi list responses.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// SEO is the shared SEO component attached to most content types.
type SEO struct {
	MetaTitle       *string `json:"metaTitle,omitempty"`
	MetaDescription *string `json:"metaDescription,omitempty"`
	Keywords        *string `json:"keywords,omitempty"`
}

// Media is the canonical shape of an uploaded file reference. URL is
// always absolute after normalization; a reference whose URL cannot be
// resolved is dropped from the parent entity entirely.
type Media struct {
	ID              int     `json:"id"`
	DocumentID      string  `json:"documentId,omitempty"`
	URL             string  `json:"url"`
	AlternativeText *string `json:"alternativeText,omitempty"`
	Width           *int    `json:"width,omitempty"`
	Height          *int    `json:"height,omitempty"`
	Mime            *string `json:"mime,omitempty"`
}

// Author is a normalized author relation.
type Author struct {
	ID         int     `json:"id"`
	DocumentID string  `json:"documentId,omitempty"`
	Name       string  `json:"name"`
	Slug       string  `json:"slug"`
	Bio        *string `json:"bio,omitempty"`
	Avatar     *Media  `json:"avatar,omitempty"`
	SEO        *SEO    `json:"seo,omitempty"`
}

// Category is a normalized category relation.
type Category struct {
	ID          int     `json:"id"`
	DocumentID  string  `json:"documentId,omitempty"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	SEO         *SEO    `json:"seo,omitempty"`
}

// Article is a normalized magazine article.
type Article struct {
	ID          int       `json:"id"`
	DocumentID  string    `json:"documentId,omitempty"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Body        *string   `json:"body,omitempty"`
	PublishDate *Time     `json:"publish_date,omitempty"`
	IsFeatured  bool      `json:"is_featured"`
	CoverImage  *Media    `json:"cover_image,omitempty"`
	Author      *Author   `json:"author,omitempty"`
	Category    *Category `json:"category,omitempty"`
	SEO         *SEO      `json:"seo,omitempty"`
	CreatedAt   *Time     `json:"createdAt,omitempty"`
	UpdatedAt   *Time     `json:"updatedAt,omitempty"`
	PublishedAt *Time     `json:"publishedAt,omitempty"`
}

// News is a normalized news entry.
type News struct {
	ID          int       `json:"id"`
	DocumentID  string    `json:"documentId,omitempty"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	Body        *string   `json:"body,omitempty"`
	PublishDate *Time     `json:"publish_date,omitempty"`
	IsFeatured  bool      `json:"is_featured"`
	CoverImage  *Media    `json:"cover_image,omitempty"`
	Category    *Category `json:"category,omitempty"`
	SEO         *SEO      `json:"seo,omitempty"`
	CreatedAt   *Time     `json:"createdAt,omitempty"`
	UpdatedAt   *Time     `json:"updatedAt,omitempty"`
	PublishedAt *Time     `json:"publishedAt,omitempty"`
}

// Podcast is a normalized podcast episode.
type Podcast struct {
	ID          int     `json:"id"`
	DocumentID  string  `json:"documentId,omitempty"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	PublishDate *Time   `json:"publish_date,omitempty"`
	IsFeatured  bool    `json:"is_featured"`
	CoverImage  *Media  `json:"cover_image,omitempty"`
	Audio       *Media  `json:"audio,omitempty"`
	Duration    *int    `json:"duration,omitempty"`
	Author      *Author `json:"author,omitempty"`
	SEO         *SEO    `json:"seo,omitempty"`
	CreatedAt   *Time   `json:"createdAt,omitempty"`
	UpdatedAt   *Time   `json:"updatedAt,omitempty"`
	PublishedAt *Time   `json:"publishedAt,omitempty"`
}

// Majlis is a normalized majlis (panel session) entry.
type Majlis struct {
	ID          int     `json:"id"`
	DocumentID  string  `json:"documentId,omitempty"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	PublishDate *Time   `json:"publish_date,omitempty"`
	IsFeatured  bool    `json:"is_featured"`
	CoverImage  *Media  `json:"cover_image,omitempty"`
	VideoURL    *string `json:"video_url,omitempty"`
	SEO         *SEO    `json:"seo,omitempty"`
	CreatedAt   *Time   `json:"createdAt,omitempty"`
	UpdatedAt   *Time   `json:"updatedAt,omitempty"`
	PublishedAt *Time   `json:"publishedAt,omitempty"`
}

// MagazineIssue is a normalized magazine issue.
type MagazineIssue struct {
	ID          int     `json:"id"`
	DocumentID  string  `json:"documentId,omitempty"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	IssueNumber *int    `json:"issue_number,omitempty"`
	PublishDate *Time   `json:"publish_date,omitempty"`
	IsFeatured  bool    `json:"is_featured"`
	CoverImage  *Media  `json:"cover_image,omitempty"`
	PDF         *Media  `json:"pdf,omitempty"`
	SEO         *SEO    `json:"seo,omitempty"`
	CreatedAt   *Time   `json:"createdAt,omitempty"`
	UpdatedAt   *Time   `json:"updatedAt,omitempty"`
	PublishedAt *Time   `json:"publishedAt,omitempty"`
}
