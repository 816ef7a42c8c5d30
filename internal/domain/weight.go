package domain

import (
	"context"
	"time"
)

// WeightEntry represents a single weight measurement for a pet.
type WeightEntry struct {
	ID        int64     `json:"id"`
	PetID     int64     `json:"petId"`
	Day       string    `json:"day"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValueKg returns the measurement converted to kilograms.
func (e WeightEntry) ValueKg() float64 {
	return ConvertWeight(e.Value, e.Unit, "kg")
}

// WeightRepository is the port for weight persistence.
type WeightRepository interface {
	AddWeightEvent(ctx context.Context, petID int64, value float64, unit string, createdAt time.Time) (int64, error)
	DeleteLatestWeightEvent(ctx context.Context, petID int64) (bool, error)
	LatestWeightEvent(ctx context.Context, petID int64) (*WeightEntry, error)
	LatestWeightForLocalDay(ctx context.Context, petID int64, localDay string) (*WeightEntry, error)
	ListRecentWeightEvents(ctx context.Context, petID int64, limit int) ([]WeightEntry, error)
}
