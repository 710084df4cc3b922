package strapi

import "strings"

// ResolveMediaURL maps a media reference from the CMS onto the
// configured media origin. Absolute URLs, protocol-relative URLs and
// data URIs pass through unchanged, so resolution is idempotent.
// An empty reference, or a relative reference with no origin to join
// against, resolves to "" and the caller drops the media field.
func ResolveMediaURL(origin, ref string) string {
	if ref == "" {
		return ""
	}

	if strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "//") ||
		strings.HasPrefix(ref, "data:") {
		return ref
	}

	origin = strings.TrimSuffix(origin, "/")
	if origin == "" {
		return ""
	}

	return origin + "/" + strings.TrimPrefix(ref, "/")
}
