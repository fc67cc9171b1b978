package ingestion

import (
	"time"
)

// PositionMessage is a GPS fix published by a container tracker on
// containers/<number>/position. The container number comes from the topic,
// not the payload.
type PositionMessage struct {
	ContainerNumber string    `json:"-"`
	Timestamp       time.Time `json:"timestamp"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	Speed           *float64  `json:"speed"`
	Accuracy        *float64  `json:"accuracy"`

	// Optional human-readable place name resolved by the tracker
	Place string `json:"place"`
}
