// internal/service/auth_service.go
package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"sportsbook/internal/domain"
	"sportsbook/internal/repository"
	"sportsbook/internal/util"
)

const tokenDuration = 7 * 24 * time.Hour

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Identity is the verified {userId, role} pair attached to an authenticated
// request. Downstream services trust this value and perform no
// authentication themselves.
type Identity struct {
	UserID string
	Role   domain.Role
}

// Claims is the JWT payload issued at registration and login.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies the tokens the rest of the API trusts.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	VerifyToken(token string) (*Identity, error)
	EnsureAdmin(ctx context.Context, name, email, password string) error
}

type authService struct {
	dbExecutor repository.DBExecutor
	userRepo   repository.UserRepository
	jwtSecret  []byte
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(dbExecutor repository.DBExecutor, userRepo repository.UserRepository, jwtSecret string) AuthService {
	return &authService{
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
	}
}

// Register creates an account with the fixed starting balance and returns it
// with a signed token.
func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))

	if name == "" || len(name) > 120 {
		return nil, "", util.ErrInvalidInput
	}
	if !validEmail(email) {
		return nil, "", util.ErrInvalidInput
	}
	if !strongPassword(password) {
		return nil, "", util.ErrInvalidInput
	}

	if _, err := s.userRepo.GetUserByEmail(ctx, s.dbExecutor, email); err == nil {
		return nil, "", util.ErrEmailTaken
	} else if !util.IsError(err, util.ErrUserNotFound) {
		return nil, "", fmt.Errorf("register: failed to check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("register: failed to hash password: %w", err)
	}

	user := domain.NewUser(name, email, string(hash), domain.RoleUser)
	if err := s.userRepo.CreateUser(ctx, s.dbExecutor, user); err != nil {
		return nil, "", fmt.Errorf("register: failed to create user: %w", err)
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the account with a fresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", util.ErrInvalidInput
	}

	user, err := s.userRepo.GetUserByEmail(ctx, s.dbExecutor, email)
	if err != nil {
		if util.IsError(err, util.ErrUserNotFound) {
			return nil, "", util.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("login: failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", util.ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// VerifyToken parses and validates a bearer token and returns the identity
// it asserts.
func (s *authService) VerifyToken(tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, util.ErrInvalidToken
	}
	return &Identity{UserID: claims.Subject, Role: claims.Role}, nil
}

// EnsureAdmin seeds the configured administrator account at startup if its
// email is not yet registered.
func (s *authService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return util.ErrInvalidInput
	}

	_, err := s.userRepo.GetUserByEmail(ctx, s.dbExecutor, email)
	if err == nil {
		return nil
	}
	if !util.IsError(err, util.ErrUserNotFound) {
		return fmt.Errorf("ensure admin: failed to check existing admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ensure admin: failed to hash password: %w", err)
	}

	admin := domain.NewUser(name, email, string(hash), domain.RoleAdmin)
	if err := s.userRepo.CreateUser(ctx, s.dbExecutor, admin); err != nil {
		return fmt.Errorf("ensure admin: failed to create admin: %w", err)
	}
	return nil
}

func (s *authService) signToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func validEmail(email string) bool {
	return len(email) <= 254 && emailPattern.MatchString(email)
}

// strongPassword requires 8-64 chars with upper, lower, digit and special.
func strongPassword(password string) bool {
	if len(password) < 8 || len(password) > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSpecial
}
