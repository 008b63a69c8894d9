package repositories

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/quillpress/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserTestRepository(t *testing.T) (*userRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, logger, cleanup := setupTestDB(t)
	return NewUserRepository(db, logger), mock, cleanup
}

func TestNewUserRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewUserRepository(db, nil)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestUserRepository_Create(t *testing.T) {
	user := &models.User{
		ID:           "7d4f1c2a-0b9e-4c1d-8f3a-2e5b6c7d8e9f",
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: "hashedpassword",
		CreatedAt:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedKind  error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs(user.ID, "testuser", "test@example.com", "hashedpassword", user.CreatedAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "duplicate entry",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs(user.ID, "testuser", "test@example.com", "hashedpassword", user.CreatedAt).
					WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'testuser' for key 'uq_users_username'"})
			},
			expectedError: true,
			expectedKind:  models.ErrConflict,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), user)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.expectedKind != nil {
					assert.ErrorIs(t, err, tt.expectedKind)
				}
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmailOrUsername(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT id, username, email, password_hash, created_at FROM users WHERE username = ? OR email = ? LIMIT 1`)
	createdAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		login         string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedKind  error
		expectedUser  *models.User
	}{
		{
			name:  "success",
			login: "test@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
					AddRow("user-1", "testuser", "test@example.com", "hashedpassword", createdAt)
				mock.ExpectQuery(query).
					WithArgs("test@example.com", "test@example.com").
					WillReturnRows(rows)
			},
			expectedUser: &models.User{
				ID:           "user-1",
				Username:     "testuser",
				Email:        "test@example.com",
				PasswordHash: "hashedpassword",
				CreatedAt:    createdAt,
			},
		},
		{
			name:  "not found",
			login: "ghost",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).
					WithArgs("ghost", "ghost").
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: true,
			expectedKind:  models.ErrNotFound,
		},
		{
			name:  "database error",
			login: "testuser",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).
					WithArgs("testuser", "testuser").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			user, err := repo.GetByEmailOrUsername(context.Background(), tt.login)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, user)
				if tt.expectedKind != nil {
					assert.ErrorIs(t, err, tt.expectedKind)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedUser, user)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Exists(t *testing.T) {
	t.Run("email exists", func(t *testing.T) {
		repo, mock, cleanup := setupUserTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`)).
			WithArgs("test@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		exists, err := repo.ExistsByEmail(context.Background(), "test@example.com")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("username free", func(t *testing.T) {
		repo, mock, cleanup := setupUserTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`)).
			WithArgs("newuser").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		exists, err := repo.ExistsByUsername(context.Background(), "newuser")
		require.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, cleanup := setupUserTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT EXISTS`).WillReturnError(errors.New("database error"))

		exists, err := repo.ExistsByUsername(context.Background(), "newuser")
		assert.Error(t, err)
		assert.False(t, exists)
	})
}

func TestUserRepository_GetUsernamesByIDs(t *testing.T) {
	t.Run("empty input skips query", func(t *testing.T) {
		repo, mock, cleanup := setupUserTestRepository(t)
		defer cleanup()

		usernames, err := repo.GetUsernamesByIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, usernames)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns only existing users", func(t *testing.T) {
		repo, mock, cleanup := setupUserTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username FROM users WHERE id IN (?,?)`)).
			WithArgs("user-1", "user-2").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow("user-1", "alice"))

		usernames, err := repo.GetUsernamesByIDs(context.Background(), []string{"user-1", "user-2"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"user-1": "alice"}, usernames)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock, cleanup := setupUserTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT id, username FROM users`).WillReturnError(errors.New("database error"))

		usernames, err := repo.GetUsernamesByIDs(context.Background(), []string{"user-1"})
		assert.Error(t, err)
		assert.Nil(t, usernames)
	})
}
