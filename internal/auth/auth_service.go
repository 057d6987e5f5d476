package auth

import (
	"context"
	"errors"
	"time"

	autherrors "leavedesk/internal/auth/errors"
	"leavedesk/internal/user"
	usererrors "leavedesk/internal/user/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock

type Config struct {
	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (c Config) withDefaults() Config {
	if c.AccessTTL == 0 {
		c.AccessTTL = 15 * time.Minute
	}
	if c.RefreshTTL == 0 {
		c.RefreshTTL = 7 * 24 * time.Hour
	}
	return c
}

type Service interface {
	Login(ctx context.Context, mobile, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	cfg      Config
	userRepo user.Repository
	logger   *zap.Logger
}

func NewService(cfg Config, userRepo user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{cfg: cfg.withDefaults(), userRepo: userRepo, logger: l}
}

func (s *service) Login(ctx context.Context, mobile, password string) (string, string, AuthResponse, error) {
	u, err := s.userRepo.FindByMobile(ctx, mobile)
	if err != nil {
		s.logger.Warn("login failed: unknown mobile", zap.String("mobile", mobile))
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.logger.Warn("login failed: bad password", zap.String("user_id", u.ID.String()))
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	accessToken, err := s.generateToken(u.ID.String(), u.Role, s.cfg.AccessTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(u.ID.String(), u.Role, s.cfg.RefreshTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("user logged in", zap.String("user_id", u.ID.String()))
	return accessToken, refreshToken, toAuthResponse(u), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, usererrors.ErrUserNotFound
	}

	newAccessToken, err := s.generateToken(u.ID.String(), u.Role, s.cfg.AccessTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := s.generateToken(u.ID.String(), u.Role, s.cfg.RefreshTTL)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, toAuthResponse(u), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	u, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, err
	}

	resp := toAuthResponse(u)
	return &resp, nil
}

func (s *service) generateToken(userID, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func toAuthResponse(u *user.User) AuthResponse {
	return AuthResponse{
		ID:       u.ID.String(),
		FullName: u.FullName,
		Mobile:   u.Mobile,
		Role:     u.Role,
	}
}
