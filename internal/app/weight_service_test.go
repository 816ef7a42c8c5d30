package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pettrack/internal/app"
	"pettrack/internal/domain"
)

type mockWeightRepo struct {
	addFn       func(ctx context.Context, petID int64, v float64, u string, t time.Time) (int64, error)
	deleteFn    func(ctx context.Context, petID int64) (bool, error)
	latestFn    func(ctx context.Context, petID int64) (*domain.WeightEntry, error)
	latestDayFn func(ctx context.Context, petID int64, day string) (*domain.WeightEntry, error)
	listFn      func(ctx context.Context, petID int64, limit int) ([]domain.WeightEntry, error)
}

func (m *mockWeightRepo) AddWeightEvent(ctx context.Context, petID int64, v float64, u string, t time.Time) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, petID, v, u, t)
	}
	return 0, nil
}

func (m *mockWeightRepo) DeleteLatestWeightEvent(ctx context.Context, petID int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, petID)
	}
	return false, nil
}

func (m *mockWeightRepo) LatestWeightEvent(ctx context.Context, petID int64) (*domain.WeightEntry, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, petID)
	}
	return nil, nil
}

func (m *mockWeightRepo) LatestWeightForLocalDay(ctx context.Context, petID int64, day string) (*domain.WeightEntry, error) {
	if m.latestDayFn != nil {
		return m.latestDayFn(ctx, petID, day)
	}
	return nil, nil
}

func (m *mockWeightRepo) ListRecentWeightEvents(ctx context.Context, petID int64, limit int) ([]domain.WeightEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, petID, limit)
	}
	return nil, nil
}

func TestRecordWeight_Validation(t *testing.T) {
	svc := app.NewWeightService(&mockWeightRepo{})

	tests := []struct {
		name  string
		value float64
		unit  string
	}{
		{"zero value", 0, "kg"},
		{"negative value", -5, "kg"},
		{"bad unit", 80, "stones"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.RecordWeight(context.Background(), 1, tc.value, tc.unit)
			if err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestRecordWeight_Success(t *testing.T) {
	entry := &domain.WeightEntry{ID: 1, PetID: 1, Value: 8.4, Unit: "kg"}
	repo := &mockWeightRepo{
		addFn: func(_ context.Context, _ int64, _ float64, _ string, _ time.Time) (int64, error) {
			return 1, nil
		},
		latestDayFn: func(_ context.Context, _ int64, _ string) (*domain.WeightEntry, error) {
			return entry, nil
		},
	}
	svc := app.NewWeightService(repo)

	got, today, err := svc.RecordWeight(context.Background(), 1, 8.4, "kg")
	if err != nil {
		t.Fatalf("RecordWeight: %v", err)
	}
	if today == "" {
		t.Error("expected a local day string")
	}
	if got != entry {
		t.Errorf("got %+v; want %+v", got, entry)
	}
}

func TestRecordWeight_RepoError(t *testing.T) {
	repo := &mockWeightRepo{
		addFn: func(_ context.Context, _ int64, _ float64, _ string, _ time.Time) (int64, error) {
			return 0, errors.New("boom")
		},
	}
	svc := app.NewWeightService(repo)

	if _, _, err := svc.RecordWeight(context.Background(), 1, 8.4, "kg"); err == nil {
		t.Fatal("expected repo error to propagate")
	}
}

func TestUndoLast(t *testing.T) {
	repo := &mockWeightRepo{
		deleteFn: func(_ context.Context, _ int64) (bool, error) { return true, nil },
	}
	svc := app.NewWeightService(repo)

	deleted, _, _, err := svc.UndoLast(context.Background(), 1)
	if err != nil {
		t.Fatalf("UndoLast: %v", err)
	}
	if !deleted {
		t.Error("expected deleted=true")
	}
}

func TestCurrentWeightKg_ConvertsFromLb(t *testing.T) {
	repo := &mockWeightRepo{
		latestFn: func(_ context.Context, _ int64) (*domain.WeightEntry, error) {
			return &domain.WeightEntry{Value: 22.046226218, Unit: "lb"}, nil
		},
	}
	svc := app.NewWeightService(repo)

	kg, ok, err := svc.CurrentWeightKg(context.Background(), 1)
	if err != nil {
		t.Fatalf("CurrentWeightKg: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true")
	}
	if kg < 9.99 || kg > 10.01 {
		t.Errorf("kg = %v; want ~10", kg)
	}
}

func TestCurrentWeightKg_NoHistory(t *testing.T) {
	svc := app.NewWeightService(&mockWeightRepo{})

	_, ok, err := svc.CurrentWeightKg(context.Background(), 1)
	if err != nil {
		t.Fatalf("CurrentWeightKg: %v", err)
	}
	if ok {
		t.Error("expected ok=false with no history")
	}
}
