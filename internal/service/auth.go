package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PShah260898/PRS-FinSight/internal/models"
	"github.com/PShah260898/PRS-FinSight/internal/repository"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type AuthService struct {
	Repo      repository.Repository
	Logger    *zap.Logger
	JWTSecret string
	TokenTTL  time.Duration
}

type RegisterInput struct {
	FullName string
	Username string
	Password string
	Email    string
	Phone    string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if s == nil || s.Repo == nil {
		return nil, fmt.Errorf("auth service not configured")
	}
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" || len(in.Password) < 4 {
		return nil, fmt.Errorf("username and a password of at least 4 characters are required")
	}
	existing, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	salt, err := newSalt()
	if err != nil {
		return nil, err
	}
	user := &models.User{
		FullName:     strings.TrimSpace(in.FullName),
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		Phone:        strings.TrimSpace(in.Phone),
		Salt:         salt,
		PasswordHash: hashPassword(salt, in.Password),
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("user registered", zap.Uint64("user_id", user.ID), zap.String("username", username))
	}
	return user, nil
}

// Login verifies credentials and issues a signed token. Failures are folded
// into one error so the response does not reveal whether the username exists.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	if s == nil || s.Repo == nil {
		return nil, "", fmt.Errorf("auth service not configured")
	}
	user, err := s.Repo.GetUserByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	got := hashPassword(user.Salt, password)
	if subtle.ConstantTimeCompare([]byte(got), []byte(user.PasswordHash)) != 1 {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": fmt.Sprintf("%d", user.ID),
		"usr": user.Username,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.JWTSecret))
}

// VerifyToken returns the user id from a valid token.
func (s *AuthService) VerifyToken(tokenString string) (uint64, error) {
	if s == nil {
		return 0, fmt.Errorf("auth service not configured")
	}
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidCredentials
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidCredentials
	}
	sub, _ := claims["sub"].(string)
	var id uint64
	if _, err := fmt.Sscanf(sub, "%d", &id); err != nil || id == 0 {
		return 0, ErrInvalidCredentials
	}
	return id, nil
}

func newSalt() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func hashPassword(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}
