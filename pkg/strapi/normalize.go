package strapi

import (
	"bytes"
	"encoding/json"
	"log/slog"
)

// The CMS has emitted relation and media fields in two shapes over its
// lifetime: the legacy wrapper {"data":{"id":1,"attributes":{...}}} and
// the modern direct object {"id":1,...}. flattenNode classifies a node
// by field probing and rewrites legacy wrappers into the direct shape,
// so that typed decoding only ever sees one convention. A node that
// matches neither convention flattens to nil, which callers surface as
// not-found rather than an error.
func flattenNode(b json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, nil
		}
		return flattenNode(items[0])

	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, err
		}

		// Legacy relation wrapper: the payload itself carries no entity
		// fields, only a "data" envelope (and optionally "meta").
		if data, ok := obj["data"]; ok {
			if _, hasID := obj["id"]; !hasID {
				return flattenNode(data)
			}
		}

		// Legacy entity wrapper: id/documentId live next to an
		// "attributes" object holding the real fields.
		if attrs, ok := obj["attributes"]; ok {
			var fields map[string]json.RawMessage
			if err := json.Unmarshal(attrs, &fields); err != nil {
				return nil, err
			}
			for _, key := range []string{"id", "documentId"} {
				if v, ok := obj[key]; ok {
					fields[key] = v
				}
			}
			return json.Marshal(fields)
		}

		return trimmed, nil
	}

	return nil, nil
}

// listEnvelope is the documented shape of Strapi list responses.
type listEnvelope struct {
	Data json.RawMessage `json:"data"`
	Meta *struct {
		Pagination Pagination `json:"pagination"`
	} `json:"meta"`
}

// splitList breaks a list payload into flattened entity nodes plus
// pagination. recognized is false when the payload matches no known
// response convention; an empty data array is recognized and yields
// zero nodes.
func splitList(payload []byte) (nodes []json.RawMessage, pg Pagination, recognized bool, err error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, pg, false, nil
	}

	var data json.RawMessage
	switch trimmed[0] {
	case '[':
		data = trimmed

	case '{':
		var env listEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, pg, false, err
		}
		if env.Meta != nil {
			pg = env.Meta.Pagination
		}
		if env.Data != nil {
			data = env.Data
			break
		}
		// Ad hoc bare-object responses observed from older deployments.
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, pg, false, err
		}
		if _, ok := obj["id"]; ok {
			data = trimmed
			break
		}
		if _, ok := obj["attributes"]; ok {
			data = trimmed
			break
		}
		return nil, pg, false, nil

	default:
		return nil, pg, false, nil
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []json.RawMessage{}, pg, true, nil
	}

	var raw []json.RawMessage
	if data[0] == '[' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, pg, false, err
		}
	} else {
		raw = []json.RawMessage{data}
	}

	nodes = make([]json.RawMessage, 0, len(raw))
	for _, item := range raw {
		node, err := flattenNode(item)
		if err != nil {
			return nil, pg, false, err
		}
		if node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes, pg, true, nil
}

// entity is implemented by every canonical content type: normalize
// resolves nested media against the media origin and prunes relation
// stubs, incomplete reports whether required fields are missing.
type entity interface {
	normalize(origin string)
	incomplete() bool
}

func decodeList[T any, P interface {
	*T
	entity
}](payload []byte, origin string) ([]T, Pagination, error) {
	nodes, pg, recognized, err := splitList(payload)
	if err != nil {
		return nil, pg, err
	}
	if !recognized {
		slog.Debug("unrecognized list payload shape, treating as not found")
		return nil, pg, nil
	}

	out := make([]T, 0, len(nodes))
	for _, node := range nodes {
		var v T
		if err := json.Unmarshal(node, &v); err != nil {
			slog.Warn("skipping entity with unexpected field types", "error", err)
			continue
		}
		p := P(&v)
		if p.incomplete() {
			slog.Warn("skipping entity with missing required fields")
			continue
		}
		p.normalize(origin)
		out = append(out, v)
	}
	return out, pg, nil
}

func decodeSingle[T any, P interface {
	*T
	entity
}](payload []byte, origin string) (*T, error) {
	nodes, _, recognized, err := splitList(payload)
	if err != nil {
		return nil, err
	}
	if !recognized || len(nodes) == 0 {
		return nil, nil
	}

	var v T
	if err := json.Unmarshal(nodes[0], &v); err != nil {
		slog.Warn("discarding entity with unexpected field types", "error", err)
		return nil, nil
	}
	p := P(&v)
	if p.incomplete() {
		return nil, nil
	}
	p.normalize(origin)
	return &v, nil
}

// DecodeArticles normalizes a list payload of articles.
func DecodeArticles(payload []byte, origin string) ([]Article, Pagination, error) {
	return decodeList[Article](payload, origin)
}

// DecodeArticle normalizes a single-article payload. A payload that
// represents no article yields (nil, nil).
func DecodeArticle(payload []byte, origin string) (*Article, error) {
	return decodeSingle[Article](payload, origin)
}

// DecodeNewsList normalizes a list payload of news entries.
func DecodeNewsList(payload []byte, origin string) ([]News, Pagination, error) {
	return decodeList[News](payload, origin)
}

// DecodeNews normalizes a single news payload.
func DecodeNews(payload []byte, origin string) (*News, error) {
	return decodeSingle[News](payload, origin)
}

// DecodePodcasts normalizes a list payload of podcast episodes.
func DecodePodcasts(payload []byte, origin string) ([]Podcast, Pagination, error) {
	return decodeList[Podcast](payload, origin)
}

// DecodePodcast normalizes a single podcast payload.
func DecodePodcast(payload []byte, origin string) (*Podcast, error) {
	return decodeSingle[Podcast](payload, origin)
}

// DecodeMajlisList normalizes a list payload of majlis sessions.
func DecodeMajlisList(payload []byte, origin string) ([]Majlis, Pagination, error) {
	return decodeList[Majlis](payload, origin)
}

// DecodeMajlis normalizes a single majlis payload.
func DecodeMajlis(payload []byte, origin string) (*Majlis, error) {
	return decodeSingle[Majlis](payload, origin)
}

// DecodeMagazineIssues normalizes a list payload of magazine issues.
func DecodeMagazineIssues(payload []byte, origin string) ([]MagazineIssue, Pagination, error) {
	return decodeList[MagazineIssue](payload, origin)
}

// DecodeMagazineIssue normalizes a single magazine issue payload.
func DecodeMagazineIssue(payload []byte, origin string) (*MagazineIssue, error) {
	return decodeSingle[MagazineIssue](payload, origin)
}

// DecodeAuthors normalizes a list payload of authors.
func DecodeAuthors(payload []byte, origin string) ([]Author, Pagination, error) {
	return decodeList[Author](payload, origin)
}

// DecodeAuthor normalizes a single author payload.
func DecodeAuthor(payload []byte, origin string) (*Author, error) {
	return decodeSingle[Author](payload, origin)
}

// DecodeCategories normalizes a list payload of categories.
func DecodeCategories(payload []byte, origin string) ([]Category, Pagination, error) {
	return decodeList[Category](payload, origin)
}

// DecodeCategory normalizes a single category payload.
func DecodeCategory(payload []byte, origin string) (*Category, error) {
	return decodeSingle[Category](payload, origin)
}

// DecodeSlugs extracts just the slug field from a list payload, for
// static path enumeration.
func DecodeSlugs(payload []byte) ([]string, Pagination, error) {
	nodes, pg, recognized, err := splitList(payload)
	if err != nil {
		return nil, pg, err
	}
	if !recognized {
		return nil, pg, nil
	}

	out := make([]string, 0, len(nodes))
	for _, node := range nodes {
		var row struct {
			Slug string `json:"slug"`
		}
		if err := json.Unmarshal(node, &row); err != nil || row.Slug == "" {
			continue
		}
		out = append(out, row.Slug)
	}
	return out, pg, nil
}

// UnmarshalJSON tolerates the legacy relation wrapper around media.
func (m *Media) UnmarshalJSON(b []byte) error {
	node, err := flattenNode(b)
	if err != nil || node == nil {
		return err
	}
	type plain Media
	var tmp plain
	if err := json.Unmarshal(node, &tmp); err != nil {
		return err
	}
	*m = Media(tmp)
	return nil
}

// UnmarshalJSON tolerates the legacy relation wrapper around authors.
func (a *Author) UnmarshalJSON(b []byte) error {
	node, err := flattenNode(b)
	if err != nil || node == nil {
		return err
	}
	type plain Author
	var tmp plain
	if err := json.Unmarshal(node, &tmp); err != nil {
		return err
	}
	*a = Author(tmp)
	return nil
}

// UnmarshalJSON tolerates the legacy relation wrapper around categories.
func (c *Category) UnmarshalJSON(b []byte) error {
	node, err := flattenNode(b)
	if err != nil || node == nil {
		return err
	}
	type plain Category
	var tmp plain
	if err := json.Unmarshal(node, &tmp); err != nil {
		return err
	}
	*c = Category(tmp)
	return nil
}

func mediaOrNil(m *Media, origin string) *Media {
	if m == nil {
		return nil
	}
	m.URL = ResolveMediaURL(origin, m.URL)
	if m.URL == "" {
		return nil
	}
	return m
}

func authorOrNil(a *Author, origin string) *Author {
	if a == nil || (a.ID == 0 && a.Name == "" && a.Slug == "") {
		return nil
	}
	a.normalize(origin)
	return a
}

func categoryOrNil(c *Category, origin string) *Category {
	if c == nil || (c.ID == 0 && c.Name == "" && c.Slug == "") {
		return nil
	}
	c.normalize(origin)
	return c
}

func (a *Author) normalize(origin string) {
	a.Avatar = mediaOrNil(a.Avatar, origin)
}

func (a *Author) incomplete() bool { return a.Name == "" }

func (c *Category) normalize(string) {}

func (c *Category) incomplete() bool { return c.Name == "" }

func (a *Article) normalize(origin string) {
	a.CoverImage = mediaOrNil(a.CoverImage, origin)
	a.Author = authorOrNil(a.Author, origin)
	a.Category = categoryOrNil(a.Category, origin)
}

func (a *Article) incomplete() bool { return a.Title == "" }

func (n *News) normalize(origin string) {
	n.CoverImage = mediaOrNil(n.CoverImage, origin)
	n.Category = categoryOrNil(n.Category, origin)
}

func (n *News) incomplete() bool { return n.Title == "" }

func (p *Podcast) normalize(origin string) {
	p.CoverImage = mediaOrNil(p.CoverImage, origin)
	p.Audio = mediaOrNil(p.Audio, origin)
	p.Author = authorOrNil(p.Author, origin)
}

func (p *Podcast) incomplete() bool { return p.Title == "" }

func (m *Majlis) normalize(origin string) {
	m.CoverImage = mediaOrNil(m.CoverImage, origin)
}

func (m *Majlis) incomplete() bool { return m.Title == "" }

func (i *MagazineIssue) normalize(origin string) {
	i.CoverImage = mediaOrNil(i.CoverImage, origin)
	i.PDF = mediaOrNil(i.PDF, origin)
}

func (i *MagazineIssue) incomplete() bool { return i.Title == "" }
