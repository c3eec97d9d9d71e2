package browser

import "github.com/ijalalfrz/flight-scraper-service/internal/pkg/utils"

// RequestBlocker decides which page requests get aborted.
type RequestBlocker struct {
	Extensions []string
	Domains    []string
}

// DefaultRequestBlocker drops images and tracking traffic.
func DefaultRequestBlocker() RequestBlocker {
	return RequestBlocker{
		Extensions: []string{".png", ".jpg", ".jpeg", ".webp", ".gif", ".svg"},
		Domains: []string{
			"analytics",
			"google-analytics",
			"googletagmanager",
			"doubleclick",
			"facebook",
			"twitter",
		},
	}
}

// Blocks reports whether a request to url should be aborted.
func (b RequestBlocker) Blocks(url string) bool {
	return utils.HasAnySuffix(url, b.Extensions...) || utils.ContainsAny(url, b.Domains...)
}
