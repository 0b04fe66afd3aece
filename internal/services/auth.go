package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/noschwa/expense-tracker/internal/logger"
	"github.com/noschwa/expense-tracker/internal/models"
	"github.com/noschwa/expense-tracker/internal/repositories"
)

// Error variables
var (
	ErrMissingCredentials = errors.New("username, email and password are required")
	ErrUserAlreadyExists  = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// minBcryptCost is the floor for the password hashing work factor.
const minBcryptCost = 10

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsernameOrEmail(ctx context.Context, username *string, email *string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username string, email string, passwordHash string) (uuid.UUID, error)
}

// TokenGenerator defines an interface for issuing session tokens.
type TokenGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
}

// AuthService handles registration and login.
type AuthService struct {
	reader     UserReader
	writer     UserWriter
	jwt        TokenGenerator
	bcryptCost int
}

// AuthOpt configures an AuthService.
type AuthOpt func(*AuthService)

// WithBcryptCost sets the password hashing cost, clamped to the minimum
// work factor.
func WithBcryptCost(cost int) AuthOpt {
	return func(s *AuthService) {
		if cost < minBcryptCost {
			cost = minBcryptCost
		}
		s.bcryptCost = cost
	}
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, jwt TokenGenerator, opts ...AuthOpt) *AuthService {
	svc := &AuthService{
		reader:     reader,
		writer:     writer,
		jwt:        jwt,
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Register creates a new user and returns a session token with the new id.
// The shared default categories are already visible to the new user, so
// registration seeds nothing.
func (svc *AuthService) Register(ctx context.Context, username, email, password string) (string, uuid.UUID, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return "", uuid.Nil, ErrMissingCredentials
	}

	user, err := svc.reader.GetByUsernameOrEmail(ctx, &username, &email)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return "", uuid.Nil, err
	}
	if user != nil {
		logger.Log.Errorw("user already exists", "username", username, "email", email)
		return "", uuid.Nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), svc.bcryptCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return "", uuid.Nil, err
	}

	userID, err := svc.writer.Save(ctx, username, email, string(hashedPassword))
	if errors.Is(err, repositories.ErrUserDuplicate) {
		// Unique-index backstop for the window between the check and the
		// insert.
		logger.Log.Errorw("user already exists", "username", username, "email", email)
		return "", uuid.Nil, ErrUserAlreadyExists
	}
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return "", uuid.Nil, err
	}

	token, err := svc.jwt.Generate(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return "", uuid.Nil, err
	}

	return token, userID, nil
}

// Login authenticates a user and returns a session token with the user id.
// Unknown username and wrong password are indistinguishable to the caller.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, uuid.UUID, error) {
	user, err := svc.reader.GetByUsernameOrEmail(ctx, &username, nil)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", uuid.Nil, err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "username", username)
		return "", uuid.Nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "username", username)
		return "", uuid.Nil, ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return "", uuid.Nil, err
	}

	return token, user.UserID, nil
}
