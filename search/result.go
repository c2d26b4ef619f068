package search

// Hits is a slice of Hit with helper methods.
type Hits []Hit

// URLs returns the hit URLs in order.
func (h Hits) URLs() []string {
	urls := make([]string, len(h))
	for i, hit := range h {
		urls[i] = hit.URL
	}
	return urls
}

// Snippets returns the content previews of hits that have one.
func (h Hits) Snippets() []string {
	var out []string
	for _, hit := range h {
		if hit.SnippetResult != nil {
			out = append(out, hit.SnippetResult.Content.Value)
		}
	}
	return out
}

// FilterByVersion returns hits whose document version equals version.
// An empty version keeps every hit.
func (h Hits) FilterByVersion(version string) Hits {
	if version == "" {
		return h
	}
	var filtered Hits
	for _, hit := range h {
		if hit.Version == version {
			filtered = append(filtered, hit)
		}
	}
	return filtered
}
