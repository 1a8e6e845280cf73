// Package filter rejects extraction results that are analytics or social
// widget boilerplate rather than article content.
package filter

import "strings"

var trackingMarkers = []string{
	"Google Tag Manager",
	"googletagmanager.com",
	"gtag(",
	"GoogleAnalyticsObject",
	"google-analytics.com",
	"dataLayer.push",
	"fbq(",
	"connect.facebook.net",
	"fbAsyncInit",
	"_gaq.push",
}

// IsTrackingContent reports whether text carries any known tracking marker.
func IsTrackingContent(text string) bool {
	for _, marker := range trackingMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// Markers returns a copy of the marker set.
func Markers() []string {
	out := make([]string, len(trackingMarkers))
	copy(out, trackingMarkers)
	return out
}
