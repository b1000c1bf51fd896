package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	"github.com/aaravmahajanofficial/fashionhub/internal/utils"
	"github.com/google/uuid"
)

// AccountRepository stores the credentials the identity service verifies.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)
	UpdateDisplayName(ctx context.Context, id, displayName string) error
}

type accountRepository struct {
	DB *sql.DB
}

func NewAccountRepo(db *sql.DB) AccountRepository {
	return &accountRepository{DB: db}
}

func (r *accountRepository) CreateAccount(ctx context.Context, account *models.Account) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if account.ID == "" {
		account.ID = uuid.NewString()
	}

	query := `
		INSERT INTO accounts (id, email, display_name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.DB.QueryRowContext(dbCtx, query, account.ID, account.Email, account.DisplayName, account.PasswordHash).Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account %s: %w", account.Email, ErrDuplicate)
		}
		return fmt.Errorf("inserting account: %w", err)
	}

	return nil
}

func (r *accountRepository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.getAccount(ctx, "email", email)
}

func (r *accountRepository) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	return r.getAccount(ctx, "id", id)
}

func (r *accountRepository) getAccount(ctx context.Context, column, value string) (*models.Account, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	account := &models.Account{}

	// column is one of two constants above, never user input
	query := `
		SELECT id, email, display_name, password_hash, created_at, updated_at
		FROM accounts
		WHERE ` + column + ` = $1`

	err := r.DB.QueryRowContext(dbCtx, query, value).Scan(&account.ID, &account.Email, &account.DisplayName, &account.PasswordHash, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %s: %w", value, ErrNotFound)
		}
		return nil, fmt.Errorf("querying account: %w", err)
	}

	return account, nil
}

func (r *accountRepository) UpdateDisplayName(ctx context.Context, id, displayName string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(dbCtx, `UPDATE accounts SET display_name = $1, updated_at = NOW() WHERE id = $2`, displayName, id)
	if err != nil {
		return fmt.Errorf("updating display name: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("account %s: %w", id, ErrNotFound)
	}

	return nil
}
