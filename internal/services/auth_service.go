package services

import (
	"gorm.io/gorm"

	"chatlink_backend/internal/auth"
	"chatlink_backend/internal/models"
	"chatlink_backend/internal/repositories"
	"chatlink_backend/internal/services/dto"
	"chatlink_backend/pkg/apperrors"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

func NewAuthService(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository) AuthService {
	return &authService{userRepo: userRepo, profileRepo: profileRepo}
}

// Register creates the user and the empty profile in one transaction, so
// every account observable from the API has a profile row.
func (s *authService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	if req.Password != req.PasswordConfirmation {
		return nil, apperrors.ErrPasswordMismatch
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tx, err := beginTx(db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(tx, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.profileRepo.Create(tx, &models.Profile{UserID: user.ID}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueToken(user)
}

func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(db, req.Username)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return s.issueToken(user)
}

func (s *authService) issueToken(user *models.User) (*dto.LoginResponse, error) {
	token, expiresAt, err := auth.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        userSummary(user),
	}, nil
}
