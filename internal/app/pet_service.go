package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"pettrack/internal/domain"
)

// ErrPetNotFound indicates that the pet does not exist or belongs to a
// different user.
var ErrPetNotFound = errors.New("pet not found")

// PetService encapsulates pet-profile use cases.
type PetService struct {
	repo domain.PetRepository
}

// NewPetService creates a PetService backed by the given repository.
func NewPetService(repo domain.PetRepository) *PetService {
	return &PetService{repo: repo}
}

// Create validates and stores a new pet profile.
func (s *PetService) Create(ctx context.Context, userID int64, name, species, breed string, birthDate *time.Time) (*domain.Pet, error) {
	name = strings.TrimSpace(name)
	species = strings.TrimSpace(species)
	if name == "" {
		return nil, errors.New("name is required")
	}
	if species == "" {
		return nil, errors.New("species is required")
	}
	if birthDate != nil && birthDate.After(time.Now()) {
		return nil, errors.New("birthDate must not be in the future")
	}

	id, err := s.repo.CreatePet(ctx, userID, name, species, strings.TrimSpace(breed), birthDate)
	if err != nil {
		return nil, err
	}
	return s.repo.GetPet(ctx, id)
}

// Get returns a pet owned by the given user.
func (s *PetService) Get(ctx context.Context, userID, petID int64) (*domain.Pet, error) {
	pet, err := s.repo.GetPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	if pet == nil || pet.UserID != userID {
		return nil, ErrPetNotFound
	}
	return pet, nil
}

// List returns all pets owned by the given user.
func (s *PetService) List(ctx context.Context, userID int64) ([]domain.Pet, error) {
	return s.repo.ListPets(ctx, userID)
}

// Delete removes a pet owned by the given user.
func (s *PetService) Delete(ctx context.Context, userID, petID int64) error {
	if _, err := s.Get(ctx, userID, petID); err != nil {
		return err
	}
	return s.repo.DeletePet(ctx, petID)
}
