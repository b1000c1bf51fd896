package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	repository "github.com/aaravmahajanofficial/fashionhub/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewProfileRepo(db)
	ctx := t.Context()

	insertSQL := regexp.QuoteMeta(`INSERT INTO profiles (id, email, name, is_admin) VALUES ($1, $2, $3, $4) RETURNING created_at`)
	selectSQL := regexp.QuoteMeta(`SELECT id, email, name, is_admin, created_at FROM profiles WHERE id = $1`)

	t.Run("CreateProfile_Success", func(t *testing.T) {
		// Arrange
		profile := &models.Profile{ID: "acc-1", Email: "owner@fashionhub.io", Name: "Owner", IsAdmin: true}
		now := time.Now()

		mock.ExpectQuery(insertSQL).
			WithArgs(profile.ID, profile.Email, profile.Name, true).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

		// Act
		err := repo.CreateProfile(ctx, profile)

		// Assert
		require.NoError(t, err)
		assert.WithinDuration(t, now, profile.CreatedAt, time.Second)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CreateProfile_Error", func(t *testing.T) {
		dbError := errors.New("insert failed")
		mock.ExpectQuery(insertSQL).WillReturnError(dbError)

		err := repo.CreateProfile(ctx, &models.Profile{ID: "acc-2"})

		assert.ErrorIs(t, err, dbError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetProfile_Success", func(t *testing.T) {
		created := time.Now().Add(-time.Hour)
		mock.ExpectQuery(selectSQL).WithArgs("acc-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "is_admin", "created_at"}).
				AddRow("acc-1", "owner@fashionhub.io", "Owner", true, created))

		profile, err := repo.GetProfile(ctx, "acc-1")

		require.NoError(t, err)
		assert.Equal(t, &models.Profile{ID: "acc-1", Email: "owner@fashionhub.io", Name: "Owner", IsAdmin: true, CreatedAt: created}, profile)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetProfile_NotFound", func(t *testing.T) {
		mock.ExpectQuery(selectSQL).WithArgs("missing").WillReturnError(sql.ErrNoRows)

		profile, err := repo.GetProfile(ctx, "missing")

		assert.Nil(t, profile)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
