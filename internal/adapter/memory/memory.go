// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"pettrack/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu           sync.Mutex
	pets         []domain.Pet
	weights      []domain.WeightEntry
	goals        []domain.WeightGoal
	foods        []domain.FoodItem
	meals        []domain.MealEvent
	calorieGoals map[int64]domain.CalorieGoal
	users        []*domain.User
	sessions     map[string]*domain.Session

	petIDCounter    int64
	weightIDCounter int64
	goalIDCounter   int64
	foodIDCounter   int64
	mealIDCounter   int64
	userIDCounter   int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		calorieGoals: make(map[int64]domain.CalorieGoal),
		sessions:     make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.PetRepository = (*DB)(nil)
var _ domain.WeightRepository = (*DB)(nil)
var _ domain.GoalRepository = (*DB)(nil)
var _ domain.NutritionRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- PetRepository ---

// CreatePet adds a pet profile.
func (db *DB) CreatePet(ctx context.Context, userID int64, name, species, breed string, birthDate *time.Time) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.petIDCounter++
	db.pets = append(db.pets, domain.Pet{
		ID:        db.petIDCounter,
		UserID:    userID,
		Name:      name,
		Species:   species,
		Breed:     breed,
		BirthDate: birthDate,
		CreatedAt: time.Now().UTC(),
	})
	return db.petIDCounter, nil
}

// GetPet returns a pet by ID.
func (db *DB) GetPet(ctx context.Context, id int64) (*domain.Pet, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.pets {
		if db.pets[i].ID == id {
			p := db.pets[i]
			return &p, nil
		}
	}
	return nil, nil
}

// ListPets returns all pets owned by a user.
func (db *DB) ListPets(ctx context.Context, userID int64) ([]domain.Pet, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.Pet
	for _, p := range db.pets {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

// DeletePet removes a pet and its events and goals.
func (db *DB) DeletePet(ctx context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, p := range db.pets {
		if p.ID == id {
			db.pets = append(db.pets[:i], db.pets[i+1:]...)
			break
		}
	}

	weights := db.weights[:0]
	for _, w := range db.weights {
		if w.PetID != id {
			weights = append(weights, w)
		}
	}
	db.weights = weights

	meals := db.meals[:0]
	for _, m := range db.meals {
		if m.PetID != id {
			meals = append(meals, m)
		}
	}
	db.meals = meals

	goals := db.goals[:0]
	for _, g := range db.goals {
		if g.PetID != id {
			goals = append(goals, g)
		}
	}
	db.goals = goals

	delete(db.calorieGoals, id)
	return nil
}

// --- WeightRepository ---

// AddWeightEvent adds a weight event.
func (db *DB) AddWeightEvent(ctx context.Context, petID int64, value float64, unit string, createdAt time.Time) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.weightIDCounter++
	db.weights = append(db.weights, domain.WeightEntry{
		ID:        db.weightIDCounter,
		PetID:     petID,
		Value:     value,
		Unit:      unit,
		CreatedAt: createdAt.UTC(),
	})
	return db.weightIDCounter, nil
}

// DeleteLatestWeightEvent deletes the pet's most recent weight event.
func (db *DB) DeleteLatestWeightEvent(ctx context.Context, petID int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	lastIdx := -1
	var lastTime time.Time
	for i, w := range db.weights {
		if w.PetID != petID {
			continue
		}
		if lastIdx == -1 || w.CreatedAt.After(lastTime) {
			lastIdx = i
			lastTime = w.CreatedAt
		}
	}

	if lastIdx != -1 {
		db.weights = append(db.weights[:lastIdx], db.weights[lastIdx+1:]...)
		return true, nil
	}
	return false, nil
}

// LatestWeightEvent returns the pet's most recent weight event.
func (db *DB) LatestWeightEvent(ctx context.Context, petID int64) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var latest *domain.WeightEntry
	for i := range db.weights {
		w := &db.weights[i]
		if w.PetID != petID {
			continue
		}
		if latest == nil || w.CreatedAt.After(latest.CreatedAt) {
			latest = w
		}
	}
	if latest == nil {
		return nil, nil
	}
	ret := *latest
	ret.Day = ret.CreatedAt.In(time.Local).Format("2006-01-02")
	return &ret, nil
}

// LatestWeightForLocalDay returns the latest weight for the given day.
func (db *DB) LatestWeightForLocalDay(ctx context.Context, petID int64, localDay string) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	dayStart, err := time.ParseInLocation("2006-01-02", localDay, time.Local)
	if err != nil {
		return nil, err
	}
	dayEnd := dayStart.Add(24 * time.Hour)

	var latest *domain.WeightEntry
	for i := range db.weights {
		w := &db.weights[i]
		if w.PetID != petID {
			continue
		}
		// Compare using UTC as that's how it's stored
		if !w.CreatedAt.Before(dayStart.UTC()) && w.CreatedAt.Before(dayEnd.UTC()) {
			if latest == nil || w.CreatedAt.After(latest.CreatedAt) {
				latest = w
			}
		}
	}

	if latest != nil {
		ret := *latest
		ret.Day = localDay
		return &ret, nil
	}
	return nil, nil
}

// ListRecentWeightEvents lists the pet's most recent weight events.
func (db *DB) ListRecentWeightEvents(ctx context.Context, petID int64, limit int) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.WeightEntry
	for _, w := range db.weights {
		if w.PetID == petID {
			result = append(result, w)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if len(result) > limit {
		result = result[:limit]
	}

	for i := range result {
		result[i].Day = result[i].CreatedAt.In(time.Local).Format("2006-01-02")
	}
	return result, nil
}

// --- GoalRepository ---

// SetActiveGoal retires the pet's active goal and stores the new one.
func (db *DB) SetActiveGoal(ctx context.Context, goal domain.WeightGoal) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.goals {
		if db.goals[i].PetID == goal.PetID {
			db.goals[i].Active = false
		}
	}

	db.goalIDCounter++
	goal.ID = db.goalIDCounter
	goal.Active = true
	db.goals = append(db.goals, goal)
	return goal.ID, nil
}

// ActiveGoal returns the pet's active goal, or nil.
func (db *DB) ActiveGoal(ctx context.Context, petID int64) (*domain.WeightGoal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.goals {
		if db.goals[i].PetID == petID && db.goals[i].Active {
			g := db.goals[i]
			return &g, nil
		}
	}
	return nil, nil
}

// ClearActiveGoal retires the pet's active goal.
func (db *DB) ClearActiveGoal(ctx context.Context, petID int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.goals {
		if db.goals[i].PetID == petID {
			db.goals[i].Active = false
		}
	}
	return nil
}

// --- NutritionRepository ---

// AddFoodItem adds a food catalog entry.
func (db *DB) AddFoodItem(ctx context.Context, name, brand string, kcalPerServing, servingGrams float64) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.foodIDCounter++
	db.foods = append(db.foods, domain.FoodItem{
		ID:             db.foodIDCounter,
		Name:           name,
		Brand:          brand,
		KcalPerServing: kcalPerServing,
		ServingGrams:   servingGrams,
		CreatedAt:      time.Now().UTC(),
	})
	return db.foodIDCounter, nil
}

// GetFoodItem returns a food item by ID.
func (db *DB) GetFoodItem(ctx context.Context, id int64) (*domain.FoodItem, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.foods {
		if db.foods[i].ID == id {
			f := db.foods[i]
			return &f, nil
		}
	}
	return nil, nil
}

// SearchFoodItems returns items matching the query by name or brand.
func (db *DB) SearchFoodItems(ctx context.Context, query string, limit int) ([]domain.FoodItem, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	q := strings.ToLower(query)
	var result []domain.FoodItem
	for _, f := range db.foods {
		if strings.Contains(strings.ToLower(f.Name), q) || strings.Contains(strings.ToLower(f.Brand), q) {
			result = append(result, f)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// AddMealEvent adds a meal event.
func (db *DB) AddMealEvent(ctx context.Context, petID int64, foodID *int64, description string, kcal float64, createdAt time.Time) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.mealIDCounter++
	db.meals = append(db.meals, domain.MealEvent{
		ID:          db.mealIDCounter,
		PetID:       petID,
		FoodID:      foodID,
		Description: description,
		Kcal:        kcal,
		CreatedAt:   createdAt.UTC(),
	})
	return db.mealIDCounter, nil
}

// DeleteMealEvent deletes a meal event by ID.
func (db *DB) DeleteMealEvent(ctx context.Context, petID int64, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, m := range db.meals {
		if m.ID == id && m.PetID == petID {
			db.meals = append(db.meals[:i], db.meals[i+1:]...)
			return nil
		}
	}
	return nil
}

// ListRecentMealEvents lists the pet's most recent meal events.
func (db *DB) ListRecentMealEvents(ctx context.Context, petID int64, limit int) ([]domain.MealEvent, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.MealEvent
	for _, m := range db.meals {
		if m.PetID == petID {
			result = append(result, m)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// CaloriesForLocalDay returns the pet's total calories for the given day.
func (db *DB) CaloriesForLocalDay(ctx context.Context, petID int64, localDay string) (float64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	dayStart, err := time.ParseInLocation("2006-01-02", localDay, time.Local)
	if err != nil {
		return 0, err
	}
	dayEnd := dayStart.Add(24 * time.Hour)

	var total float64
	for _, m := range db.meals {
		if m.PetID != petID {
			continue
		}
		if !m.CreatedAt.Before(dayStart.UTC()) && m.CreatedAt.Before(dayEnd.UTC()) {
			total += m.Kcal
		}
	}
	return total, nil
}

// SetCalorieGoal upserts the pet's daily calorie budget.
func (db *DB) SetCalorieGoal(ctx context.Context, petID int64, dailyKcal float64, updatedAt time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.calorieGoals[petID] = domain.CalorieGoal{
		PetID:     petID,
		DailyKcal: dailyKcal,
		UpdatedAt: updatedAt.UTC(),
	}
	return nil
}

// GetCalorieGoal returns the pet's daily calorie budget, or nil.
func (db *DB) GetCalorieGoal(ctx context.Context, petID int64) (*domain.CalorieGoal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if g, ok := db.calorieGoals[petID]; ok {
		return &g, nil
	}
	return nil, nil
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		return s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
