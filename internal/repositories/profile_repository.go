package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	"github.com/aaravmahajanofficial/fashionhub/internal/utils"
)

type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *models.Profile) error
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
}

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepo(db *sql.DB) ProfileRepository {
	return &profileRepository{DB: db}
}

func (r *profileRepository) CreateProfile(ctx context.Context, profile *models.Profile) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO profiles (id, email, name, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.DB.QueryRowContext(dbCtx, query, profile.ID, profile.Email, profile.Name, profile.IsAdmin).Scan(&profile.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("profile %s: %w", profile.ID, ErrDuplicate)
		}
		return fmt.Errorf("inserting profile: %w", err)
	}

	return nil
}

func (r *profileRepository) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	profile := &models.Profile{}

	query := `
		SELECT id, email, name, is_admin, created_at
		FROM profiles
		WHERE id = $1`

	err := r.DB.QueryRowContext(dbCtx, query, id).Scan(&profile.ID, &profile.Email, &profile.Name, &profile.IsAdmin, &profile.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	return profile, nil
}
