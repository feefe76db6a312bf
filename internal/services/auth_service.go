package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/conterGui/Aconchego-Pap/internal/caching"
	"github.com/conterGui/Aconchego-Pap/internal/common"
	"github.com/conterGui/Aconchego-Pap/internal/models"
	"github.com/conterGui/Aconchego-Pap/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin   = "admin"
	tokenIssuer = "aconchego-auth"
	tokenAud    = "aconchego-api"
)

// AuthService handles admin login and JWT token management
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	GenerateTokens(ctx context.Context, user *models.AdminUser) (*models.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string, claims *TokenClaims) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	EnsureAdmin(ctx context.Context, email, password, name string) error
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type refreshRecord struct {
	UserID    string `json:"user_id"`
	ExpiresAt int64  `json:"expires_at"`
}

type authService struct {
	userRepo   repositories.UserRepository
	cacheSvc   caching.CacheService
	jwtSecret  []byte
	tokenTTL   time.Duration
	refreshTTL time.Duration
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo repositories.UserRepository, cacheSvc caching.CacheService, jwtSecret string, tokenTTL, refreshTTL time.Duration) AuthService {
	return &authService{
		userRepo:   userRepo,
		cacheSvc:   cacheSvc,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		refreshTTL: refreshTTL,
	}
}

func refreshKey(hash string) string { return "aconchego:refresh_token:" + hash }

func blacklistKey(tokenID string) string { return "aconchego:token_blacklist:" + tokenID }

// Login checks the bcrypt hash. Unknown email and wrong password give the same error.
func (s *authService) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, common.NewValidationError("credentials", "email and password are required")
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("invalid credentials: %w", common.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		log.Warn().Str("email", user.Email).Msg("Failed admin login")
		return nil, fmt.Errorf("invalid credentials: %w", common.ErrUnauthorized)
	}
	return s.GenerateTokens(ctx, user)
}

// GenerateTokens generates access and refresh tokens for a user
func (s *authService) GenerateTokens(ctx context.Context, user *models.AdminUser) (*models.TokenResponse, error) {
	now := time.Now()
	tokenID := uuid.NewString()

	claims := TokenClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings{tokenAud},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        tokenID,
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %w", err)
	}

	refreshToken, err := generateSecureToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	record, err := json.Marshal(refreshRecord{UserID: user.ID.String(), ExpiresAt: now.Add(s.refreshTTL).Unix()})
	if err != nil {
		return nil, err
	}
	if err := s.cacheSvc.SetString(ctx, refreshKey(hashToken(refreshToken)), string(record), s.refreshTTL); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &models.TokenResponse{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.tokenTTL.Seconds()),
		RefreshToken: refreshToken,
		UserID:       user.ID.String(),
		IssuedAt:     now,
	}, nil
}

// RefreshToken rotates the refresh token: the presented one is consumed.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	if refreshToken == "" {
		return nil, common.NewValidationError("refresh_token", "is required")
	}
	key := refreshKey(hashToken(refreshToken))
	data, err := s.cacheSvc.GetString(ctx, key)
	if err != nil {
		return nil, err
	}
	if data == "" {
		return nil, fmt.Errorf("invalid refresh token: %w", common.ErrUnauthorized)
	}

	var record refreshRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("invalid refresh token data: %w", common.ErrUnauthorized)
	}
	if err := s.cacheSvc.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Msg("Failed to delete used refresh token")
	}
	if time.Now().Unix() > record.ExpiresAt {
		return nil, fmt.Errorf("refresh token expired: %w", common.ErrUnauthorized)
	}

	userID, err := uuid.Parse(record.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", common.ErrUnauthorized)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("user no longer exists: %w", common.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	return s.GenerateTokens(ctx, user)
}

// Logout drops the refresh token and blacklists the access token until it would have expired.
func (s *authService) Logout(ctx context.Context, refreshToken string, claims *TokenClaims) error {
	if refreshToken != "" {
		if err := s.cacheSvc.Delete(ctx, refreshKey(hashToken(refreshToken))); err != nil {
			return err
		}
	}
	if claims != nil && claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if ttl > 0 {
			if err := s.cacheSvc.SetString(ctx, blacklistKey(claims.ID), "revoked", ttl); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *authService) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	val, err := s.cacheSvc.GetString(ctx, blacklistKey(tokenID))
	if err != nil {
		return false, err
	}
	return val != "", nil
}

// EnsureAdmin bootstraps the first admin account from configuration.
func (s *authService) EnsureAdmin(ctx context.Context, email, password, name string) error {
	if err := common.ValidateEmail(email, "admin_email"); err != nil {
		return err
	}
	if len(password) < 8 {
		return common.NewValidationError("admin_password", "must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	created, err := s.userRepo.EnsureAdmin(ctx, &models.AdminUser{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	})
	if err != nil {
		return err
	}
	if created {
		log.Info().Str("email", email).Msg("Admin user created")
	}
	return nil
}

// generateSecureToken generates a cryptographically secure random token
func generateSecureToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// hashToken creates a SHA-256 hash of the token for storage
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
