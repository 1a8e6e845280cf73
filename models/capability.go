package models

// Availability is what an external capability reports before use.
type Availability string

const (
	Available    Availability = "available"
	Downloadable Availability = "downloadable"
	Unavailable  Availability = "unavailable"
)
