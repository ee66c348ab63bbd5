package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"gocart/internal/models"
	"gocart/internal/repositories/interfaces"
	"gocart/internal/utils"
	"gocart/internal/validators"
	"gocart/pkg/logger"
)

type AuthService interface {
	Register(ctx context.Context, request *validators.UserRegistrationRequest) (*AuthResponse, error)
	Login(ctx context.Context, request *validators.UserLoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error)
	ChangePassword(ctx context.Context, userID primitive.ObjectID, request *validators.PasswordChangeRequest) error
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, request *validators.ProfileUpdateRequest) (*models.User, error)
	RegisterDeviceToken(ctx context.Context, userID primitive.ObjectID, deviceToken string) error
}

type AuthResponse struct {
	User   *models.User     `json:"user"`
	Tokens *utils.TokenPair `json:"tokens"`
}

type authService struct {
	userRepo  interfaces.UserRepository
	jwtSecret string
	logger    *logger.Logger
}

func NewAuthService(userRepo interfaces.UserRepository, jwtSecret string, log *logger.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

func (s *authService) Register(ctx context.Context, request *validators.UserRegistrationRequest) (*AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		DisplayName: request.DisplayName,
		Email:       request.Email,
		Password:    string(hashed),
		Role:        models.UserRoleCustomer,
		Status:      models.UserStatusActive,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	s.logger.LogUserAction(user.ID, utils.EventUserRegistered, map[string]interface{}{
		"email": user.Email,
	})

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

func (s *authService) Login(ctx context.Context, request *validators.UserLoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, request.Email)
	if err != nil {
		if err == models.ErrUserNotFound {
			return nil, models.ErrInvalidPassword
		}
		return nil, err
	}

	if user.Status != models.UserStatusActive {
		return nil, models.ErrInvalidPassword
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		return nil, models.ErrInvalidPassword
	}

	tokens, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.WithError(err).WithUserID(user.ID).Warn("failed to record last login")
	}
	user.LastLoginAt = &now

	s.logger.LogUserAction(user.ID, utils.EventUserLogin, nil)

	return &AuthResponse{User: user, Tokens: tokens}, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	tokens, err := utils.RefreshAccessToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, models.ErrNotAuthenticated
	}
	return tokens, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID primitive.ObjectID, request *validators.PasswordChangeRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.CurrentPassword)); err != nil {
		return models.ErrInvalidPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.Update(ctx, userID, map[string]interface{}{
		"password": string(hashed),
	})
}

func (s *authService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, request *validators.ProfileUpdateRequest) (*models.User, error) {
	err := s.userRepo.Update(ctx, userID, map[string]interface{}{
		"display_name": request.DisplayName,
	})
	if err != nil {
		return nil, err
	}

	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) RegisterDeviceToken(ctx context.Context, userID primitive.ObjectID, deviceToken string) error {
	return s.userRepo.Update(ctx, userID, map[string]interface{}{
		"device_token": deviceToken,
	})
}
