package models

// Observation is one completed network request reported by the observation feed.
type Observation struct {
	URL          string `json:"url"`
	StatusCode   int    `json:"statusCode"`
	ResourceType string `json:"resourceType,omitempty"`
	DocumentID   string `json:"documentId,omitempty"`
}
