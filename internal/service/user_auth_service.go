package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/vietcart-next/internal/cache"
	"github.com/vietcart-next/internal/config"
	"github.com/vietcart-next/internal/constants"
	"github.com/vietcart-next/internal/models"
	"github.com/vietcart-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserAuthService 用户认证服务
type UserAuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository) *UserAuthService {
	return &UserAuthService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateUserJWT 生成用户 JWT Token
func (s *UserAuthService) GenerateUserJWT(user *models.User, rememberMe bool) (string, time.Time, error) {
	hours := s.cfg.UserJWT.ExpireHours
	if rememberMe && s.cfg.UserJWT.RememberMeExpireHours > 0 {
		hours = s.cfg.UserJWT.RememberMeExpireHours
	}
	if hours <= 0 {
		hours = 24
	}
	expiresAt := time.Now().Add(time.Duration(hours) * time.Hour)
	claims := UserJWTClaims{
		UserID:       user.ID,
		Email:        user.Email,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析用户 JWT Token
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的 token")
}

// Register 用户注册
func (s *UserAuthService) Register(email, password, displayName, phone string) (*models.User, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	exist, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if exist != nil {
		return nil, "", time.Time{}, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &models.User{
		Email:        normalized,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(displayName),
		Phone:        strings.TrimSpace(phone),
		Status:       constants.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateUserJWT(user, false)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, expiresAt, nil
}

// Login 用户登录
func (s *UserAuthService) Login(email, password string, rememberMe bool) (*models.User, string, time.Time, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if user.Status == constants.UserStatusDisabled {
		return nil, "", time.Time{}, ErrUserDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateUserJWT(user, rememberMe)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	return user, token, expiresAt, nil
}

// UpdateProfile 更新用户资料（昵称与电话）
func (s *UserAuthService) UpdateProfile(userID uint, displayName, phone string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	user.DisplayName = strings.TrimSpace(displayName)
	user.Phone = strings.TrimSpace(phone)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return "", ErrInvalidInput
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return "", ErrInvalidInput
	}
	return trimmed, nil
}
