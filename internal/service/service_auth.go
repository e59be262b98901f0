package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/plateup/plateup-server/internal/config"
	"github.com/plateup/plateup-server/internal/logger"
	"github.com/plateup/plateup-server/internal/store"
	"github.com/plateup/plateup-server/internal/utils"
	"github.com/plateup/plateup-server/models"
)

// authService is the concrete implementation of AuthService.
// It handles user onboarding, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// mailer delivers the onboarding welcome email. A failed send aborts
	// user creation so no unreachable account is persisted.
	mailer WelcomeMailer

	// uuidGenerator produces the opaque ids assigned at creation time
	// (user id plus the derived settings/shopping/inventory ids).
	uuidGenerator *utils.UUIDGenerator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and mailer, populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, mailer WelcomeMailer, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		mailer:         mailer,
		uuidGenerator:  utils.NewUUIDGenerator(),
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// The email is lowercased before any lookup so that uniqueness is
// case-insensitive. The plaintext password is replaced with its bcrypt hash
// before persistence, and the welcome email is sent before the row is
// written: a failed send aborts the whole registration.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided if name, email or password is empty.
//   - store.ErrEmailAlreadyExists if the email is taken.
//   - ErrWelcomeEmailNotSent if the onboarding email could not be delivered.
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Name == "" || user.Email == "" || user.Password == "" {
		log.Error().Str("email", user.Email).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	user.Email = strings.ToLower(user.Email)

	_, err := a.userRepository.FindUserByEmail(ctx, user.Email)
	if err == nil {
		return models.User{}, store.ErrEmailAlreadyExists
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Str("email", user.Email).Msg("user lookup by email failed")
		return models.User{}, fmt.Errorf("user lookup by email failed: %w", err)
	}

	plainPassword := user.Password
	hashedPassword, err := utils.HashPassword(user.Password)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}
	user.Password = hashedPassword

	user.ID = a.uuidGenerator.Generate()
	user.SettingsID = a.uuidGenerator.Generate()
	user.ShoppingID = a.uuidGenerator.Generate()
	user.InventoryID = a.uuidGenerator.Generate()

	if err := a.mailer.SendWelcome(ctx, user, plainPassword); err != nil {
		log.Err(err).Str("email", user.Email).Msg("welcome email delivery failed, user not saved")
		return models.User{}, fmt.Errorf("%w: %w", ErrWelcomeEmailNotSent, err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user by email and password.
//
// The stored bcrypt hash is compared against the supplied password. Lookup
// failure and password mismatch are both normalised to ErrWrongCredentials
// so the caller cannot probe which emails are registered.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Error().Str("email", email).Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, ErrWrongCredentials
	}

	if !utils.CheckPassword(foundUser.Password, password) {
		log.Error().Str("email", email).Msg("wrong password")
		return models.User{}, ErrWrongCredentials
	}

	return foundUser, nil
}

// GetAllUsers returns every registered user.
func (a *authService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := a.userRepository.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("user listing failed: %w", err)
	}

	return users, nil
}

// DeleteAllUsers removes every registered user and returns the deleted count.
func (a *authService) DeleteAllUsers(ctx context.Context) (int64, error) {
	deleted, err := a.userRepository.DeleteAllUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("user reset failed: %w", err)
	}

	return deleted, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
