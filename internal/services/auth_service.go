package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/quillpress/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for Users table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// If username or email is already taken, a conflict error is returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByEmailOrUsername retrieves a user by email or username.
	//
	// "login" parameter is matched against both columns.
	// If no user matches, a not found error will be returned together with "nil" value.
	GetByEmailOrUsername(ctx context.Context, login string) (*models.User, error)
	// Method ExistsByEmail checks if a user with such email exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Method ExistsByUsername checks if a user with such username exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// TokenIssuer signs bearer tokens for authenticated users
type TokenIssuer interface {
	GenerateToken(userID, username string) (string, error)
}

const (
	minPasswordLength = 6
	// bcrypt only hashes the first 72 bytes and rejects longer input
	maxPasswordBytes  = 72
	maxUsernameLength = 50
	maxEmailLength    = 255
)

const invalidCredentialsMessage = "invalid credentials"

// emailRegex validates email format
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// authService implements AuthService
type authService struct {
	userRepo       UserRepository
	tokenGenerator TokenIssuer
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, tokenGenerator TokenIssuer, logger *zap.Logger) *authService {
	return &authService{
		userRepo:       userRepo,
		tokenGenerator: tokenGenerator,
		logger:         logger,
	}
}

// Register creates a new user account.
//
// Registration does not log the user in, the client has to call Login afterwards.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) error {
	normalizedEmail, normalizedUsername, err := checkRegisterCredentials(ctx, s.userRepo, req.Email, req.Username, req.Password)
	if err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     normalizedUsername,
		Email:        normalizedEmail,
		PasswordHash: string(passwordHash),
		CreatedAt:    time.Now().UTC(),
	}

	// The unique indexes still reject a user that slipped past the pre-check
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	s.logger.Info("user registered", zap.String("userId", user.ID))
	return nil
}

// Login authenticates a user by username or email and issues a bearer token.
//
// Unknown user and wrong password produce the same error.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, *models.User, error) {
	login := strings.TrimSpace(req.Username)
	if login == "" || req.Password == "" {
		return "", nil, models.NewValidationError("username and password are required")
	}

	user, err := s.userRepo.GetByEmailOrUsername(ctx, login)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", nil, models.NewUnauthorizedError(invalidCredentialsMessage)
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, models.NewUnauthorizedError(invalidCredentialsMessage)
	}

	token, err := s.tokenGenerator.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	user.PasswordHash = ""
	return token, user, nil
}

// Method that combines all checks for register credentials
//
// There is no need for check parts to wait each other, so the checks run in parallel goroutines.
func checkRegisterCredentials(ctx context.Context, userRepo UserRepository, email, username, password string) (string, string, error) {
	validationErrors := make(chan error, 3)
	normalizedEmail := strings.TrimSpace(strings.ToLower(email))
	normalizedUsername := strings.TrimSpace(username)

	go func() {
		if len(password) < minPasswordLength {
			validationErrors <- models.NewValidationError(fmt.Sprintf("password must be at least %d characters long", minPasswordLength))
			return
		}
		if len(password) > maxPasswordBytes {
			validationErrors <- models.NewValidationError(fmt.Sprintf("password must be at most %d bytes long", maxPasswordBytes))
			return
		}
		validationErrors <- nil
	}()

	go func() {
		if utf8.RuneCountInString(normalizedEmail) > maxEmailLength || !emailRegex.MatchString(normalizedEmail) {
			validationErrors <- models.NewValidationError("invalid email format")
			return
		}
		emailExists, err := userRepo.ExistsByEmail(ctx, normalizedEmail)
		if err != nil {
			validationErrors <- fmt.Errorf("failed to check email: %w", err)
			return
		}
		if emailExists {
			validationErrors <- models.NewConflictError("username or email already exists")
			return
		}
		validationErrors <- nil
	}()

	go func() {
		if normalizedUsername == "" {
			validationErrors <- models.NewValidationError("username cannot be empty")
			return
		}
		if utf8.RuneCountInString(normalizedUsername) > maxUsernameLength {
			validationErrors <- models.NewValidationError(fmt.Sprintf("username must be at most %d characters long", maxUsernameLength))
			return
		}
		usernameExists, err := userRepo.ExistsByUsername(ctx, normalizedUsername)
		if err != nil {
			validationErrors <- fmt.Errorf("failed to check username: %w", err)
			return
		}
		if usernameExists {
			validationErrors <- models.NewConflictError("username or email already exists")
			return
		}
		validationErrors <- nil
	}()

	for range 3 {
		if err := <-validationErrors; err != nil {
			return "", "", err
		}
	}

	return normalizedEmail, normalizedUsername, nil
}
