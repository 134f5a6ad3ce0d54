package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/lawateaditya/Stock-Management/internal"
	providerDatamodel "github.com/lawateaditya/Stock-Management/internal/core/datamodel/identityprovider"
	userDatamodel "github.com/lawateaditya/Stock-Management/internal/core/datamodel/user"
)

// Bootstrap super admin, seeded idempotently at startup so a fresh
// deployment is never locked out.
const (
	SuperAdminEmail    = "admin@inventory.com"
	SuperAdminPassword = "Master@123"
	SuperAdminName     = "Master Admin"
)

type RepositoryAPI interface {
	GetUserByEmail(email string) (*userDatamodel.User, error)
	GetUserByID(userID string) (*userDatamodel.User, error)
	CreateUser(user *userDatamodel.User) error
	UpdateUser(user *userDatamodel.User) error
	EnsureUser(user *userDatamodel.User) error
	CreateSession(session *userDatamodel.Session) error
	GetSessionByToken(token string) (*userDatamodel.Session, error)
	DeleteSessionByToken(token string) error
}

// SessionProvider verifies an OAuth session against the federated auth
// provider and returns its payload.
type SessionProvider interface {
	GetSessionData(ctx context.Context, sessionID string) (*providerDatamodel.SessionData, error)
}

// Service is the main auth service with dependencies
type Service struct {
	repo           RepositoryAPI
	provider       SessionProvider
	tokenGenerator TokenGenerator
	logger         *slog.Logger
	bcryptCost     int
	sessionTTL     time.Duration
}

// NewService creates a new auth service
func NewService(repo RepositoryAPI, provider SessionProvider, tokenGen TokenGenerator, logger *slog.Logger, bcryptCost int, sessionTTL time.Duration) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if sessionTTL == 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return &Service{
		repo:           repo,
		provider:       provider,
		tokenGenerator: tokenGen,
		logger:         logger,
		bcryptCost:     bcryptCost,
		sessionTTL:     sessionTTL,
	}
}

// NewJWTTokenGenerator creates a new JWT token generator
func NewJWTTokenGenerator(secret string, accessTokenTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret:         []byte(secret),
		AccessTokenTTL: accessTokenTTL,
	}
}

// Register creates a password-backed account and logs it in.
func (s *Service) Register(dto RegisterDTO) (*User, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", err
	}

	role := RoleInwardUser
	if dto.Role != "" {
		parsed, err := ParseRole(dto.Role)
		if err != nil {
			return nil, "", err
		}
		role = parsed
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return nil, "", internal.NewInternalError("failed to hash password", err)
	}

	dm := &userDatamodel.User{
		UserID:       internal.NewID("user"),
		Email:        dto.Email,
		Name:         dto.Name,
		PasswordHash: hash,
		Role:         role.String(),
		IsActive:     true,
	}
	if err := s.repo.CreateUser(dm); err != nil {
		return nil, "", err
	}

	token, err := s.tokenGenerator.GenerateAccessToken(dm.UserID, dm.Email)
	if err != nil {
		return nil, "", internal.NewInternalError("failed to generate token", err)
	}

	s.logger.Info("user registered", "user_id", dm.UserID, "role", dm.Role)
	return FromDataModel(dm), token, nil
}

// Login validates credentials and returns the user with an access token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(dto LoginDTO) (*User, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", err
	}

	dm, err := s.repo.GetUserByEmail(dto.Email)
	if err != nil {
		return nil, "", internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(dm.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, "", internal.ErrInvalidCredentials
	}

	if !dm.IsActive {
		return nil, "", internal.ErrUserInactive
	}

	token, err := s.tokenGenerator.GenerateAccessToken(dm.UserID, dm.Email)
	if err != nil {
		return nil, "", internal.NewInternalError("failed to generate token", err)
	}

	return FromDataModel(dm), token, nil
}

// FederatedLogin verifies an OAuth session with the external provider,
// upserts the user by email and stores a server-side session row. Every
// provider failure collapses into one generic upstream error so callers
// cannot distinguish network failure from an invalid session.
func (s *Service) FederatedLogin(ctx context.Context, sessionID string) (*User, *Session, error) {
	data, err := s.provider.GetSessionData(ctx, sessionID)
	if err != nil {
		s.logger.Warn("auth provider session verification failed", "error", err)
		return nil, nil, internal.NewExternalError("Failed to verify session", internal.ErrCodeAuthProviderError, err)
	}

	dm, err := s.repo.GetUserByEmail(data.Email)
	switch {
	case err == nil:
		dm.Name = data.Name
		dm.Picture = data.Picture
		if err := s.repo.UpdateUser(dm); err != nil {
			return nil, nil, internal.NewInternalError("failed to update user", err)
		}
	case errors.Is(err, internal.ErrUserNotFound):
		dm = &userDatamodel.User{
			UserID:   internal.NewID("user"),
			Email:    data.Email,
			Name:     data.Name,
			Picture:  data.Picture,
			Role:     RoleInwardUser.String(),
			IsActive: true,
		}
		if err := s.repo.CreateUser(dm); err != nil {
			return nil, nil, internal.NewInternalError("failed to create user", err)
		}
		s.logger.Info("user provisioned from federated login", "user_id", dm.UserID)
	default:
		return nil, nil, internal.NewInternalError("failed to look up user", err)
	}

	if !dm.IsActive {
		return nil, nil, internal.ErrUserInactive
	}

	sessionDM := &userDatamodel.Session{
		SessionToken: data.SessionToken,
		UserID:       dm.UserID,
		ExpiresAt:    time.Now().Add(s.sessionTTL),
	}
	if err := s.repo.CreateSession(sessionDM); err != nil {
		return nil, nil, internal.NewInternalError("failed to create session", err)
	}

	return FromDataModel(dm), sessionFromDataModel(sessionDM), nil
}

// ResolveCredentials turns request credentials into a user. The session
// cookie takes priority; an absent, unknown or expired session falls
// back silently to the bearer token. An inactive account is rejected on
// either path.
func (s *Service) ResolveCredentials(sessionToken, bearerToken string) (*User, error) {
	if sessionToken != "" {
		user, err := s.resolveSession(sessionToken)
		switch {
		case err == nil:
			return user, nil
		case errors.Is(err, internal.ErrUserInactive):
			return nil, internal.ErrUserInactive
		}
		// fall through to bearer auth
	}

	if bearerToken == "" {
		return nil, internal.ErrMissingCredentials
	}

	claims, err := s.tokenGenerator.ValidateToken(bearerToken)
	if err != nil {
		return nil, err
	}

	dm, err := s.repo.GetUserByID(claims.UserID)
	if err != nil {
		return nil, internal.ErrInvalidToken
	}
	if !dm.IsActive {
		return nil, internal.ErrUserInactive
	}
	return FromDataModel(dm), nil
}

func (s *Service) resolveSession(token string) (*User, error) {
	dm, err := s.repo.GetSessionByToken(token)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	session := sessionFromDataModel(dm)
	if time.Now().After(session.ExpiresAt) {
		return nil, ErrSessionNotFound
	}

	userDM, err := s.repo.GetUserByID(session.UserID)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	if !userDM.IsActive {
		return nil, internal.ErrUserInactive
	}
	return FromDataModel(userDM), nil
}

// Logout removes the server-side session row. A missing row is not an
// error; logout is idempotent.
func (s *Service) Logout(sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	if err := s.repo.DeleteSessionByToken(sessionToken); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return internal.NewInternalError("failed to delete session", err)
	}
	return nil
}

// EnsureSuperAdmin seeds the bootstrap account. The insert is guarded by
// the unique email constraint, so concurrent instances starting at once
// cannot create duplicates.
func (s *Service) EnsureSuperAdmin() error {
	hash, err := s.HashPassword(SuperAdminPassword)
	if err != nil {
		return internal.NewInternalError("failed to hash password", err)
	}
	dm := &userDatamodel.User{
		UserID:       internal.NewID("user"),
		Email:        SuperAdminEmail,
		Name:         SuperAdminName,
		PasswordHash: hash,
		Role:         RoleSuperAdmin.String(),
		IsActive:     true,
	}
	if err := s.repo.EnsureUser(dm); err != nil {
		return internal.NewInternalError("failed to seed super admin", err)
	}
	return nil
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// HashPassword creates a bcrypt hash of the password
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GenerateAccessToken creates a new access token
func (j *JWTTokenGenerator) GenerateAccessToken(userID string, email string) (string, error) {
	expiresAt := time.Now().Add(j.AccessTokenTTL)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}
