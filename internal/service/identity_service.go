package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/TejaVenkatBalla/Workspace-Management/internal/booking"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/model"
	"github.com/TejaVenkatBalla/Workspace-Management/internal/repository"
)

const (
	accessTokenTTL  = 30 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// IdentityService реализует регистрацию и вход; движок дальше работает
// только с RequestContext, который восстанавливается из access-токена.
type IdentityService struct {
	users  repository.UserRepository
	secret []byte
	log    *zap.Logger
}

func NewIdentityService(users repository.UserRepository, jwtSecret string, log *zap.Logger) *IdentityService {
	return &IdentityService{users: users, secret: []byte(jwtSecret), log: log}
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Role     string `json:"role"`
}

// TokenPair — access/refresh пара.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Claims access/refresh-токена.
type Claims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Signup создаёт пользователя и выдаёт пару токенов.
func (s *IdentityService) Signup(ctx context.Context, req SignupRequest) (*TokenPair, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Name == "" {
		return nil, booking.NewValidationError("name is required")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return nil, booking.NewValidationError("valid email is required")
	}
	if len(req.Password) < 6 {
		return nil, booking.NewValidationError("password must be at least 6 characters")
	}
	if req.Age <= 0 {
		return nil, booking.NewValidationError("age must be positive")
	}

	role := model.UserRoleUser
	switch req.Role {
	case "", string(model.UserRoleUser):
	case string(model.UserRoleAdmin):
		role = model.UserRoleAdmin
	default:
		return nil, booking.NewValidationError("role must be admin or user")
	}

	if _, err := s.users.FindByName(ctx, req.Name); err == nil {
		return nil, booking.NewValidationError("name is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, booking.NewValidationError("email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Age:          req.Age,
		Gender:       req.Gender,
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Гонка по uniqueIndex на имя/почту.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, booking.NewValidationError("name or email is already taken")
		}
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()), zap.String("role", string(role)))
	return s.issueTokens(user)
}

// Login проверяет имя и пароль и выдаёт пару токенов.
func (s *IdentityService) Login(ctx context.Context, name, password string) (*TokenPair, error) {
	user, err := s.users.FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, booking.NewForbiddenError("invalid name or password")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, booking.NewForbiddenError("invalid name or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, booking.NewForbiddenError("invalid name or password")
	}
	return s.issueTokens(user)
}

func (s *IdentityService) issueTokens(user *model.User) (*TokenPair, error) {
	access, err := s.signToken(user, "access", accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(user, "refresh", refreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *IdentityService) signToken(user *model.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:    user.ID.String(),
		Role:      string(user.Role),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseAccessToken восстанавливает RequestContext из access-токена.
func (s *IdentityService) ParseAccessToken(tokenString string) (booking.RequestContext, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return booking.RequestContext{}, booking.NewForbiddenError("invalid token")
	}
	if claims.TokenType != "access" {
		return booking.RequestContext{}, booking.NewForbiddenError("invalid token")
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return booking.RequestContext{}, booking.NewForbiddenError("invalid token")
	}
	return booking.RequestContext{UserID: userID, Role: model.UserRole(claims.Role)}, nil
}
