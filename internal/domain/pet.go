package domain

import (
	"context"
	"time"
)

// Pet represents a tracked animal profile belonging to a user.
type Pet struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Name      string     `json:"name"`
	Species   string     `json:"species"`
	Breed     string     `json:"breed,omitempty"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// PetRepository is the port for pet persistence.
type PetRepository interface {
	CreatePet(ctx context.Context, userID int64, name, species, breed string, birthDate *time.Time) (int64, error)
	GetPet(ctx context.Context, id int64) (*Pet, error)
	ListPets(ctx context.Context, userID int64) ([]Pet, error)
	DeletePet(ctx context.Context, id int64) error
}
