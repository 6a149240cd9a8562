package services

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"chatlink_backend/internal/auth"
	"chatlink_backend/internal/config"
	"chatlink_backend/internal/logger"
	"chatlink_backend/internal/repositories"
	"chatlink_backend/internal/services/dto"
	"chatlink_backend/internal/storage"
	"chatlink_backend/pkg/apperrors"
)

type ProfileService interface {
	GetProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	UploadAvatar(db *gorm.DB, userID string, file *multipart.FileHeader) (*dto.ProfileResponse, error)
	ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error
}

type profileService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	store       storage.Storage
}

func NewProfileService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	store storage.Storage,
) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		store:       store,
	}
}

func (s *profileService) buildResponse(user *dto.UserSummary, bio, avatarPath string) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{User: *user, Bio: bio}
	if avatarPath != "" {
		resp.AvatarURL = s.store.URL(avatarPath)
	}
	return resp
}

func (s *profileService) GetProfile(db *gorm.DB, userID string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserLookupError(err)
	}

	summary := userSummary(user)
	if user.Profile == nil {
		return s.buildResponse(&summary, "", ""), nil
	}
	return s.buildResponse(&summary, user.Profile.Bio, user.Profile.AvatarPath), nil
}

func (s *profileService) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	tx, err := beginTx(db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	user, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		return nil, handleUserLookupError(err)
	}

	email := strings.TrimSpace(req.Email)
	if email != "" && email != user.Email {
		inUse, err := s.userRepo.EmailInUse(tx, email, userID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if inUse {
			return nil, apperrors.ErrEmailAlreadyExists
		}
	}
	if email != "" {
		user.Email = email
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if err := s.userRepo.Update(tx, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	profile, err := s.profileRepo.FindByUserID(tx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	profile.Bio = req.Bio
	if err := s.profileRepo.Update(tx, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	summary := userSummary(user)
	return s.buildResponse(&summary, profile.Bio, profile.AvatarPath), nil
}

// UploadAvatar validates size and MIME type, writes the new blob, updates
// the profile and then removes the previous blob. Blob cleanup failure is
// logged, not surfaced.
func (s *profileService) UploadAvatar(db *gorm.DB, userID string, file *multipart.FileHeader) (*dto.ProfileResponse, error) {
	cfg := config.GetConfig()
	if file.Size > cfg.Upload.MaxAvatarSize {
		return nil, apperrors.ErrAvatarTooLarge
	}

	contentType := file.Header.Get("Content-Type")
	allowed := false
	for _, t := range cfg.Upload.AllowedTypes {
		if t == contentType {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperrors.ErrInvalidAvatarType
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserLookupError(err)
	}
	profile, err := s.profileRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	newPath := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.NewString(), ext)
	storedPath, err := s.store.Save(newPath, src)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	oldPath := profile.AvatarPath
	profile.AvatarPath = storedPath
	if err := s.profileRepo.Update(db, profile); err != nil {
		// The new blob is orphaned if the row update fails; remove it.
		if cleanupErr := s.store.Delete(storedPath); cleanupErr != nil {
			logger.WithError(cleanupErr).Warn("failed to remove orphaned avatar blob", "path", storedPath)
		}
		return nil, apperrors.InternalError(err)
	}

	if oldPath != "" && oldPath != storedPath {
		if err := s.store.Delete(oldPath); err != nil {
			logger.WithError(err).Warn("failed to remove replaced avatar blob", "path", oldPath)
		}
	}

	summary := userSummary(user)
	return s.buildResponse(&summary, profile.Bio, profile.AvatarPath), nil
}

func (s *profileService) ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error {
	if req.NewPassword != req.NewPasswordConfirmation {
		return apperrors.ErrPasswordMismatch
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return handleUserLookupError(err)
	}
	if !auth.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		return apperrors.ErrInvalidOperation("profile", "Current password is incorrect")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, userID, hash); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
