package app

import (
	"context"
	"errors"
	"time"

	"pettrack/internal/domain"
)

// WeightService encapsulates weight-tracking use cases.
type WeightService struct {
	repo domain.WeightRepository
}

// NewWeightService creates a WeightService backed by the given repository.
func NewWeightService(repo domain.WeightRepository) *WeightService {
	return &WeightService{repo: repo}
}

// GetTodayWeight returns the latest weight entry for the given local day.
func (s *WeightService) GetTodayWeight(ctx context.Context, petID int64, today string) (*domain.WeightEntry, error) {
	return s.repo.LatestWeightForLocalDay(ctx, petID, today)
}

// RecordWeight validates and stores a new weight measurement, returning
// the latest entry for today after the insert.
func (s *WeightService) RecordWeight(ctx context.Context, petID int64, value float64, unit string) (*domain.WeightEntry, string, error) {
	if value <= 0 {
		return nil, "", errors.New("value must be > 0")
	}
	if unit != "kg" && unit != "lb" {
		return nil, "", errors.New("unit must be \"kg\" or \"lb\"")
	}
	now := time.Now()
	today := now.In(time.Local).Format("2006-01-02")
	if _, err := s.repo.AddWeightEvent(ctx, petID, value, unit, now); err != nil {
		return nil, today, err
	}
	entry, err := s.repo.LatestWeightForLocalDay(ctx, petID, today)
	return entry, today, err
}

// ListRecent returns the most recent weight events up to limit.
func (s *WeightService) ListRecent(ctx context.Context, petID int64, limit int) ([]domain.WeightEntry, error) {
	return s.repo.ListRecentWeightEvents(ctx, petID, limit)
}

// UndoLast deletes the most recent weight event and returns the new
// latest entry for today.
func (s *WeightService) UndoLast(ctx context.Context, petID int64) (bool, *domain.WeightEntry, string, error) {
	today := time.Now().In(time.Local).Format("2006-01-02")
	deleted, err := s.repo.DeleteLatestWeightEvent(ctx, petID)
	if err != nil {
		return false, nil, today, err
	}
	entry, _ := s.repo.LatestWeightForLocalDay(ctx, petID, today)
	return deleted, entry, today, nil
}

// CurrentWeightKg returns the pet's most recent measurement converted to
// kilograms. The second return is false when the pet has no weight
// history yet.
func (s *WeightService) CurrentWeightKg(ctx context.Context, petID int64) (float64, bool, error) {
	entry, err := s.repo.LatestWeightEvent(ctx, petID)
	if err != nil {
		return 0, false, err
	}
	if entry == nil {
		return 0, false, nil
	}
	return entry.ValueKg(), true, nil
}
