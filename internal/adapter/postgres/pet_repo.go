package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pettrack/internal/domain"
)

// CreatePet inserts a new pet profile.
func (d *DB) CreatePet(ctx context.Context, userID int64, name, species, breed string, birthDate *time.Time) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO pets(user_id, name, species, breed, birth_date, created_at) VALUES($1, $2, $3, $4, $5, $6) RETURNING id;",
		userID, name, species, breed, birthDate, time.Now().UTC(),
	).Scan(&id)
	return id, err
}

// GetPet retrieves a pet by ID.
func (d *DB) GetPet(ctx context.Context, id int64) (*domain.Pet, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, user_id, name, species, breed, birth_date, created_at FROM pets WHERE id=$1;", id)

	var p domain.Pet
	var birthDate sql.NullTime
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Species, &p.Breed, &birthDate, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if birthDate.Valid {
		p.BirthDate = &birthDate.Time
	}
	return &p, nil
}

// ListPets returns all pets owned by a user, oldest first.
func (d *DB) ListPets(ctx context.Context, userID int64) ([]domain.Pet, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, name, species, breed, birth_date, created_at FROM pets WHERE user_id=$1 ORDER BY created_at;", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Pet
	for rows.Next() {
		var p domain.Pet
		var birthDate sql.NullTime
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Species, &p.Breed, &birthDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		if birthDate.Valid {
			p.BirthDate = &birthDate.Time
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeletePet removes a pet and, via cascade, its events and goals.
func (d *DB) DeletePet(ctx context.Context, id int64) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM pets WHERE id=$1;", id)
	return err
}
