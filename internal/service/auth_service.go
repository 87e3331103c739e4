package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"socialnetwork/internal/apperror"
	"socialnetwork/internal/config"
	"socialnetwork/internal/models"
	"socialnetwork/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, string, string, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	CallerFromToken(ctx context.Context, tokenString string) (models.Caller, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *authService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	existingUser, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err == nil && existingUser != nil {
		return nil, apperror.Validation(fmt.Sprintf("user with email %s already exists", req.Email))
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Internal("failed to look up user", err)
	}

	refreshToken, refreshTokenExpiry := s.generateRefreshToken()

	user := &models.User{
		Email:                  req.Email,
		FirstName:              req.FirstName,
		LastName:               req.LastName,
		IsStaff:                req.IsStaff,
		RefreshToken:           &refreshToken,
		RefreshTokenExpiryTime: &refreshTokenExpiry,
	}

	if err := s.userRepo.CreateUser(ctx, user, req.Password); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Validation(fmt.Sprintf("user with email %s already exists", req.Email))
		}
		return nil, apperror.Internal("failed to create user", err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, strings.ToLower(strings.TrimSpace(email)), password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			return nil, "", "", apperror.Unauthenticated("Invalid email or password")
		}
		return nil, "", "", apperror.Internal("failed to verify credentials", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", "", apperror.Unauthenticated("Refresh token is invalid or expired")
		}
		return nil, "", "", apperror.Internal("failed to look up refresh token", err)
	}

	return s.issueTokens(ctx, user)
}

// issueTokens signs a new access token and rotates the stored refresh token.
func (s *authService) issueTokens(ctx context.Context, user *models.User) (*models.User, string, string, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", "", apperror.Internal("failed to generate access token", err)
	}

	refreshToken, refreshTokenExpiry := s.generateRefreshToken()

	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, refreshToken, refreshTokenExpiry); err != nil {
		return nil, "", "", apperror.Internal("failed to save refresh token", err)
	}

	user.RefreshToken = &refreshToken
	user.RefreshTokenExpiryTime = &refreshTokenExpiry

	return user, accessToken, refreshToken, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  user.UserID,
		"email":    user.Email,
		"is_staff": user.IsStaff,
		"exp":      now.Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (s *authService) generateRefreshToken() (string, time.Time) {
	return uuid.New().String(), time.Now().Add(s.cfg.RefreshTokenDuration)
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	return token, nil
}

// CallerFromToken resolves a token to the user it was issued for. The user row is
// re-read so deleted accounts stop authenticating and staff rights are current.
func (s *authService) CallerFromToken(ctx context.Context, tokenString string) (models.Caller, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return models.Caller{}, apperror.Unauthenticated("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Caller{}, apperror.Unauthenticated("Invalid token claims")
	}

	userID, ok1 := claims["user_id"].(string)
	_, ok2 := claims["email"].(string)
	_, ok3 := claims["is_staff"].(bool)
	if !ok1 || !ok2 || !ok3 || userID == "" {
		return models.Caller{}, apperror.Unauthenticated("Invalid token claims")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Caller{}, apperror.Unauthenticated("User not found")
		}
		return models.Caller{}, apperror.Internal("failed to load token user", err)
	}

	return models.Caller{UserID: user.UserID, Email: user.Email, IsStaff: user.IsStaff}, nil
}
