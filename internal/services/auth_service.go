package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pollpulse/internal/domain/user"
	"pollpulse/internal/repository"
	pollpulse_errors "pollpulse/pkg/errors"
)

type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string, expiry time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		accessTTL: expiry,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Identity string // username or email
	Password string
}

type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	ExpiresIn   int64    `json:"expires_in"`
	User        UserInfo `json:"user"`
}

type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AccessClaims struct {
	UserID string `json:"sub"`
	jwt.RegisteredClaims
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResponse, error) {
	if err := validateRegister(in); err != nil {
		return AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Username:     in.Username,
		Email:        strings.ToLower(in.Email),
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	// The unique indexes on username and email are the authority on
	// availability; no pre-check.
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return AuthResponse{}, err
	}

	return s.issueToken(*newUser)
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResponse, error) {
	if in.Identity == "" || in.Password == "" {
		return AuthResponse{}, pollpulse_errors.ErrValidation
	}

	u, err := s.userRepo.GetByUsername(ctx, in.Identity)
	if errors.Is(err, pollpulse_errors.ErrNotFound) {
		u, err = s.userRepo.GetByEmail(ctx, strings.ToLower(in.Identity))
	}
	if err != nil {
		if errors.Is(err, pollpulse_errors.ErrNotFound) {
			return AuthResponse{}, pollpulse_errors.ErrUnauthorized
		}
		return AuthResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return AuthResponse{}, pollpulse_errors.ErrUnauthorized
	}

	return s.issueToken(u)
}

func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *AuthService) ParseAccessToken(token string) (AccessClaims, error) {
	if token == "" {
		return AccessClaims{}, pollpulse_errors.ErrUnauthorized
	}

	var claims AccessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, pollpulse_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return AccessClaims{}, pollpulse_errors.ErrUnauthorized
	}
	return claims, nil
}

func (s *AuthService) issueToken(u user.User) (AuthResponse, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: u.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return AuthResponse{}, err
	}

	return AuthResponse{
		AccessToken: signed,
		ExpiresIn:   int64(s.accessTTL.Seconds()),
		User: UserInfo{
			ID:       u.ID.String(),
			Username: u.Username,
			Email:    u.Email,
		},
	}, nil
}

func validateRegister(in RegisterInput) error {
	if in.Username == "" || len(in.Username) > 50 {
		return pollpulse_errors.ErrValidation
	}
	if !strings.Contains(in.Email, "@") {
		return pollpulse_errors.ErrValidation
	}
	if len(in.Password) < 8 {
		return pollpulse_errors.ErrValidation
	}
	return nil
}
