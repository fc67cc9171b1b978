package tracking

import (
	"time"
)

// PartyInfo is the subset of client identity exposed on the tracking page.
type PartyInfo struct {
	Name        string `json:"name"`
	City        string `json:"city,omitempty"`
	CountryCode string `json:"country_code"`
}

type PackageInfo struct {
	Number      string   `json:"number"`
	Status      string   `json:"status"`
	Description string   `json:"description"`
	WeightKg    *float64 `json:"weight_kg,omitempty"`
	Pieces      int      `json:"pieces"`
}

type ContainerInfo struct {
	Number           string     `json:"number"`
	Status           string     `json:"status"`
	CurrentLocation  string     `json:"current_location,omitempty"`
	PlannedArrivalAt *time.Time `json:"planned_arrival_at,omitempty"`
	ActualArrivalAt  *time.Time `json:"actual_arrival_at,omitempty"`
}

// TrackingResponse is the public payload for a package or shipment lookup.
type TrackingResponse struct {
	Number    string          `json:"number"`
	Type      string          `json:"type"` // "package" or "shipment"
	Sender    PartyInfo       `json:"sender"`
	Recipient PartyInfo       `json:"recipient"`
	Packages  []PackageInfo   `json:"packages"`
	Container *ContainerInfo  `json:"container,omitempty"`
	Timeline  []TimelineEntry `json:"timeline"`
}
