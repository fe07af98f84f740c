package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// SavedLocation is a user-pinned place. Created and removed by explicit user
// action, never mutated in place.
type SavedLocation struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Country string    `json:"country"`
	Lat     float64   `json:"lat"`
	Lon     float64   `json:"lon"`
	AddedAt time.Time `json:"added_at"`
}

// LocationID produces a deterministic ID from a coordinate pair at
// four-decimal precision. The display name deliberately does not participate:
// two resolutions of the same coordinates yield the same ID regardless of how
// the provider labeled them.
func LocationID(lat, lon float64) string {
	input := fmt.Sprintf("%.4f|%.4f", lat, lon)
	hash := sha256.Sum256([]byte(input))
	return "loc-" + hex.EncodeToString(hash[:8])
}

// NewSavedLocation builds a SavedLocation for the given place, stamping the
// creation time from the package clock.
func NewSavedLocation(name, country string, lat, lon float64) SavedLocation {
	return SavedLocation{
		ID:      LocationID(lat, lon),
		Name:    name,
		Country: country,
		Lat:     lat,
		Lon:     lon,
		AddedAt: clock.Now().UTC(),
	}
}
