package models

import "time"

type PropertyStatus string

const (
	PropertyStatusAvailable   PropertyStatus = "available"
	PropertyStatusUnavailable PropertyStatus = "unavailable"
)

type Property struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Barangay  string         `json:"barangay"`
	Category  string         `json:"category"`
	Price     float64        `json:"price"`
	Rooms     int            `json:"rooms"`
	AreaSqm   float64        `json:"areaSqm"`
	HasVideo  bool           `json:"hasVideo"`
	Status    PropertyStatus `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (p Property) Key() string { return p.ID }

func (s PropertyStatus) Valid() bool {
	return s == PropertyStatusAvailable || s == PropertyStatusUnavailable
}
