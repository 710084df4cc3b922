package strapi

import "fmt"

// HTTPError represents a non-2xx response from the CMS. It surfaces to
// callers as an upstream failure; not-found is never reported this way,
// the CMS answers filtered lookups with an empty data array instead.
type HTTPError struct {
	StatusCode int
	Status     string
	URL        string

	// Body holds the start of the error response, for log context.
	Body string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("cms request %s failed: HTTP %d %s: %s", e.URL, e.StatusCode, e.Status, e.Body)
	}
	return fmt.Sprintf("cms request %s failed: HTTP %d %s", e.URL, e.StatusCode, e.Status)
}
