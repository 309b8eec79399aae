package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/acadsys/registra-backend/internal/config"
	"github.com/acadsys/registra-backend/internal/model"
	"github.com/acadsys/registra-backend/internal/repository"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionInvalidated = errors.New("session invalidated")
)

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	InstructorID int    `json:"instructor_id"`
	Username     string `json:"username"`
}

// AuthService handles instructor accounts, JWTs, and session management.
type AuthService struct {
	cfg            *config.Config
	rdb            *redis.Client
	instructorRepo repository.InstructorRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, rdb *redis.Client, instructorRepo repository.InstructorRepository) *AuthService {
	return &AuthService{cfg: cfg, rdb: rdb, instructorRepo: instructorRepo}
}

// Register creates a new instructor account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.Instructor, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	instructor := &model.Instructor{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.instructorRepo.Create(ctx, instructor); err != nil {
		return nil, err
	}
	return instructor, nil
}

// Login verifies credentials and issues a signed token. A fresh login
// replaces any previous session, invalidating older tokens.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.Instructor, error) {
	instructor, err := s.instructorRepo.GetByUsername(ctx, username)
	if err != nil {
		// Indistinguishable from a bad password on purpose.
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(instructor.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(ctx, instructor)
	if err != nil {
		return "", nil, err
	}
	return token, instructor, nil
}

// GetInstructor retrieves the instructor behind a set of claims.
func (s *AuthService) GetInstructor(ctx context.Context, instructorID int) (*model.Instructor, error) {
	return s.instructorRepo.GetByID(ctx, instructorID)
}

func (s *AuthService) generateToken(ctx context.Context, instructor *model.Instructor) (string, error) {
	jti := uuid.New().String()
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   strconv.Itoa(instructor.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		InstructorID: instructor.ID,
		Username:     instructor.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	// Store the session jti with the same expiry as the JWT. Overwriting it
	// is what invalidates tokens from earlier logins.
	sessionKey := config.CacheKey.InstructorSessionKey(instructor.ID)
	if err := s.rdb.Set(ctx, sessionKey, jti, s.cfg.JWTExpiry).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// ValidateSession checks that the token's jti matches the active session.
func (s *AuthService) ValidateSession(ctx context.Context, instructorID int, jti string) error {
	sessionKey := config.CacheKey.InstructorSessionKey(instructorID)
	stored, err := s.rdb.Get(ctx, sessionKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrSessionInvalidated
		}
		return fmt.Errorf("check session: %w", err)
	}
	if stored != jti {
		return ErrSessionInvalidated
	}
	return nil
}

// Logout removes the instructor's session, invalidating the current token.
func (s *AuthService) Logout(ctx context.Context, instructorID int) error {
	return s.rdb.Del(ctx, config.CacheKey.InstructorSessionKey(instructorID)).Err()
}
