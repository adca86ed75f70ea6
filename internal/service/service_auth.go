// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/crypto/argon2"

	"github.com/opsboard/credvault/internal/config"
	"github.com/opsboard/credvault/internal/logger"
	"github.com/opsboard/credvault/internal/store"
	"github.com/opsboard/credvault/internal/utils"
	"github.com/opsboard/credvault/models"
)

// Argon2id parameters for account password hashing. Lighter than the vault
// KDF since login happens far more often than unlock.
const (
	authArgonTime    = 1
	authArgonMemory  = 32 * 1024
	authArgonThreads = 2
	authArgonKeyLen  = 32
	authSaltLen      = 16
)

// authService is the concrete implementation of [AuthService]. It handles
// account registration, credential verification, and JWT token lifecycle
// using a UserRepository for persistence and Argon2id for password hashing.
type authService struct {
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] wired to the given
// UserRepository and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new dashboard account. The plain password is
// replaced with an Argon2id hash before it reaches the repository.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - [ErrInvalidDataProvided] if Login or Password is empty.
//   - A wrapped storage error if the repository call fails (e.g. login
//     already taken — see [store.ErrLoginAlreadyExists]).
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := hashAccountPassword(user.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hashing account password: %w", err)
	}
	user.AuthHash = hash
	user.Password = ""

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	registeredUser.AuthHash = ""
	return registeredUser, nil
}

// Login authenticates an existing account by verifying the supplied
// password against the stored Argon2id hash.
//
// Returns the authenticated user record or:
//   - [ErrInvalidDataProvided] if Login or Password is empty.
//   - A wrapped storage error if the lookup fails (e.g. user not found —
//     see [store.ErrNoUserWasFound]).
//   - [ErrWrongPassword] if the password does not verify.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Login == "" || user.Password == "" {
		log.Error().Str("login", user.Login).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, user.Login)
	if err != nil {
		log.Err(err).Str("login", user.Login).Msg("user search by login failed")
		return models.User{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if !verifyAccountPassword(user.Password, foundUser.AuthHash) {
		log.Warn().Int64("id", foundUser.UserID).Str("login", foundUser.Login).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	foundUser.AuthHash = ""
	foundUser.Password = ""
	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string. Any validation failure
// (expired, wrong issuer, malformed) is normalised to
// [ErrTokenIsExpiredOrInvalid].
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// hashAccountPassword produces a self-describing "salt$hash" string, both
// parts base64, from an Argon2id digest over a fresh random salt.
func hashAccountPassword(password string) (string, error) {
	salt := make([]byte, authSaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", err
	}

	digest := argon2.IDKey([]byte(password), salt, authArgonTime, authArgonMemory, authArgonThreads, authArgonKeyLen)
	return base64.RawStdEncoding.EncodeToString(salt) + "$" + base64.RawStdEncoding.EncodeToString(digest), nil
}

// verifyAccountPassword re-derives the digest with the stored salt and
// compares in constant time.
func verifyAccountPassword(password, stored string) bool {
	saltB64, digestB64, ok := strings.Cut(stored, "$")
	if !ok {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(saltB64)
	if err != nil {
		return false
	}
	digest, err := base64.RawStdEncoding.DecodeString(digestB64)
	if err != nil {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, authArgonTime, authArgonMemory, authArgonThreads, authArgonKeyLen)
	return subtle.ConstantTimeCompare(candidate, digest) == 1
}
